package catalog

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/ia-booster/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertAllCategories(t *testing.T, cat Catalog) {
	t.Helper()
	for _, c := range Categories {
		assert.NotEmpty(t, cat[c], "category %s is empty", c)
	}
}

func TestLoadMissingFileFallsBackToBuiltin(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.json"))

	cat := loader.Load(context.Background())
	assertAllCategories(t, cat)
	assert.False(t, loader.Loaded())
}

func TestLoadCorruptFileFallsBackToBuiltin(t *testing.T) {
	path := writeFile(t, "outils.json", `{"serviceClient": [`)
	loader := NewLoader(path)

	cat := loader.Load(context.Background())
	assertAllCategories(t, cat)
	assert.False(t, loader.Loaded())
}

func TestLoadRetriesAfterFailureAndMemoizesSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outils.json")
	loader := NewLoader(path)

	loader.Load(context.Background())
	require.False(t, loader.Loaded())

	require.NoError(t, os.WriteFile(path, []byte(`{"vente":[{"nom":"Close","description":"CRM","prix":"29€/mois","lien":"https://close.com"}]}`), 0o644))
	cat := loader.Load(context.Background())
	require.True(t, loader.Loaded())
	assert.Equal(t, "Close", cat[CategorySales][0].Name)
	assertAllCategories(t, cat)

	// later file changes are not observed once memoized
	require.NoError(t, os.Remove(path))
	again := loader.Load(context.Background())
	assert.Equal(t, "Close", again[CategorySales][0].Name)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "outils.yaml", `
marketing:
  - nom: Jasper
    description: Contenu
    prix: 29€/mois
    lien: https://jasper.ai
  - nom: " jasper "
    description: duplicate
    prix: ""
    lien: ""
  - nom: ""
    description: nameless
`)
	cat, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, cat[CategoryMarketing], 1)
	assert.Equal(t, "Jasper", cat[CategoryMarketing][0].Name)
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := writeFile(t, "outils.json", `{}`)
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestBundledCatalogFile(t *testing.T) {
	path := filepath.Join("..", "..", "public", "outils_ia_etendus.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("bundled catalog not found, skipping")
	}

	cat, err := LoadFromFile(path)
	require.NoError(t, err)
	for _, c := range Categories {
		assert.GreaterOrEqual(t, len(cat[c]), 2, "category %s", c)
	}
}

func TestLookup(t *testing.T) {
	cat := Builtin()

	tools := cat.Lookup(models.DomainServiceClient, 2, nil)
	require.Len(t, tools, 2)
	assert.Equal(t, "ChatGPT", tools[0].Name)
	assert.Equal(t, "Intercom", tools[1].Name)

	assert.Empty(t, cat.Lookup("Finance", 3, nil))
	assert.Empty(t, cat.Lookup(models.DomainMarketing, 0, nil))
	assert.Len(t, cat.Lookup(models.DomainProduction, 5, nil), 2)
}

func TestLookupSeededSampleIsDeterministic(t *testing.T) {
	cat := Builtin()

	first := cat.Lookup(models.DomainData, 2, rand.New(rand.NewPCG(7, 11)))
	second := cat.Lookup(models.DomainData, 2, rand.New(rand.NewPCG(7, 11)))
	assert.Equal(t, first, second)

	// sampling never mutates the catalog
	assert.Equal(t, "Tableau", cat[CategoryData][0].Name)
}

func TestDedupe(t *testing.T) {
	tools := []models.Tool{
		{Name: "Notion AI", Price: "10€/mois"},
		{Name: "notion  ai", Price: "duplicate"},
		{Name: "ClickUp AI"},
		{Name: "NotionAI"},
	}
	out := Dedupe(tools)
	require.Len(t, out, 2)
	assert.Equal(t, "10€/mois", out[0].Price)
	assert.Equal(t, "ClickUp AI", out[1].Name)
}

func TestSummaries(t *testing.T) {
	sums := Builtin().Summaries()
	require.Len(t, sums, 9)
	assert.Equal(t, CategoryServiceClient, sums[0].Category)
	assert.Equal(t, models.DomainServiceClient, sums[0].Domain)
	assert.Equal(t, 3, sums[0].ToolsCount)
	for i, s := range sums {
		assert.Equal(t, models.Domains[i], s.Domain)
	}
}

func TestBuiltinCoversEveryCategory(t *testing.T) {
	cat := Builtin()
	for _, category := range Categories {
		tools := cat[category]
		assert.GreaterOrEqual(t, len(tools), 2, category)
		for _, tool := range tools {
			assert.NotEmpty(t, tool.Name, category)
			assert.NotEmpty(t, tool.URL, category)
		}
	}
}
