package advisor

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/metrics"
	"github.com/terra-clan/ia-booster/internal/models"
)

type fakeCompleter struct {
	content string
	err     error
	reqs    []llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.content}, nil
}

type staticCatalog struct {
	cat catalog.Catalog
}

func (s staticCatalog) Load(context.Context) catalog.Catalog { return s.cat }

type analysisCount struct {
	source, reason string
}

type fakeRecorder struct {
	metrics.NoopRecorder
	analyses []analysisCount
}

func (f *fakeRecorder) IncAnalysis(source, reason string) {
	f.analyses = append(f.analyses, analysisCount{source, reason})
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

var sampleAnswers = models.Answers{
	DemandeClientVolume: intPtr(60),
	ServiceClient:       boolPtr(true),
	TailleEntreprise:    models.SizeGrande,
	SecteurActivite:     "E-commerce",
}

func newTestAdvisor(c llm.Completer, rec metrics.Recorder) *Advisor {
	return New(c, staticCatalog{cat: catalog.Builtin()}, "test-model",
		WithRecorder(rec),
		WithRand(func() *rand.Rand { return nil }),
	)
}

const validOutput = "Voici mon analyse:\n```json\n" + `{
  "score": 72.6,
  "recommandations": [
    {
      "domaine": "Service Client",
      "description": "Automatisez le support de premier niveau",
      "outils": [{"nom": "Intercom", "description": "Support", "prix": "39€/mois", "lien": "https://intercom.com"}],
      "priorite": "haute",
      "impact": "18 heures/semaine"
    },
    {
      "domaine": "Marketing Digital",
      "description": "Produisez vos contenus plus vite",
      "outils": [
        {"nom": "Jasper", "description": "", "prix": "", "lien": ""},
        {"nom": "jasper ", "description": "", "prix": "", "lien": ""},
        {"nom": "Copy.ai", "description": "", "prix": "", "lien": ""},
        {"nom": "Canva AI", "description": "", "prix": "", "lien": ""},
        {"nom": "Mailchimp AI", "description": "", "prix": "", "lien": ""}
      ],
      "priorite": "moyenne",
      "impact": "x3",
    },
  ]
}` + "\n```"

func TestRecommendAIResult(t *testing.T) {
	completer := &fakeCompleter{content: validOutput}
	rec := &fakeRecorder{}
	result := newTestAdvisor(completer, rec).Recommend(context.Background(), sampleAnswers)

	assert.Equal(t, models.SourceAI, result.Source)
	assert.Equal(t, 73, result.Score)
	assert.Equal(t, []string{models.DomainServiceClient, models.DomainMarketing}, result.Domains)
	assert.Equal(t, "37 heures/semaine", result.AverageTimeSaved)
	require.Len(t, result.Recommendations, 2)

	// one tool from the model, topped up in catalog order without duplicates
	var names []string
	for _, tool := range result.Recommendations[0].Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"Intercom", "ChatGPT"}, names)

	names = nil
	for _, tool := range result.Recommendations[1].Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"Jasper", "Copy.ai", "Canva AI"}, names)

	require.Len(t, rec.analyses, 1)
	assert.Equal(t, analysisCount{"ai", ""}, rec.analyses[0])

	require.Len(t, completer.reqs, 1)
	req := completer.reqs[0]
	assert.Equal(t, "test-model", req.Model)
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
	assert.Equal(t, 2000, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "Volume demandes client/semaine: 60")
}

func TestRecommendFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
		reason    string
	}{
		{"not configured", &fakeCompleter{err: llm.ErrNotConfigured}, ReasonNotConfigured},
		{"upstream", &fakeCompleter{err: errors.New("connection reset")}, ReasonUpstream},
		{"empty", &fakeCompleter{err: llm.ErrEmptyResponse}, ReasonEmpty},
		{"prose only", &fakeCompleter{content: "Je ne peux pas répondre."}, ReasonParse},
		{"truncated", &fakeCompleter{content: `{"score": 50, "recommandations": [`}, ReasonParse},
		{"score as text", &fakeCompleter{content: `{"score": "élevé", "recommandations": []}`}, ReasonValidation},
		{"score out of range", &fakeCompleter{content: `{"score": 140, "recommandations": []}`}, ReasonValidation},
		{"missing recommendations", &fakeCompleter{content: `{"score": 40}`}, ReasonValidation},
		{"unknown domain", &fakeCompleter{content: `{"score": 40, "recommandations": [{"domaine": "Cuisine", "description": "x", "priorite": "haute"}]}`}, ReasonValidation},
		{"unknown priority", &fakeCompleter{content: `{"score": 40, "recommandations": [{"domaine": "Production", "description": "x", "priorite": "urgent"}]}`}, ReasonValidation},
		{"blank description", &fakeCompleter{content: `{"score": 40, "recommandations": [{"domaine": "Production", "description": " ", "priorite": "haute"}]}`}, ReasonValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			result := newTestAdvisor(tt.completer, rec).Recommend(context.Background(), sampleAnswers)

			assert.Equal(t, models.SourceFallback, result.Source)
			assert.Equal(t, 35, result.Score)
			require.Len(t, rec.analyses, 1)
			assert.Equal(t, analysisCount{"fallback", tt.reason}, rec.analyses[0])
		})
	}
}

func TestAnalyzeKeepsProvidedDomainsAndTime(t *testing.T) {
	completer := &fakeCompleter{content: `{
		"score": 20,
		"recommandations": [],
		"domainesAOptimiser": ["Logistique"],
		"tempsMoyenEconomise": "5 heures/semaine"
	}`}

	result, err := newTestAdvisor(completer, metrics.Nop()).Analyze(context.Background(), models.Answers{})
	require.NoError(t, err)
	assert.Equal(t, 20, result.Score)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, []string{models.DomainLogistics}, result.Domains)
	assert.Equal(t, "5 heures/semaine", result.AverageTimeSaved)
}

func TestAnalyzeRejectsUnknownListedDomain(t *testing.T) {
	completer := &fakeCompleter{content: `{"score": 20, "recommandations": [], "domainesAOptimiser": ["Astrologie"]}`}

	_, err := newTestAdvisor(completer, metrics.Nop()).Analyze(context.Background(), models.Answers{})
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestEnrichWithSeededRand(t *testing.T) {
	content := `{"score": 10, "recommandations": [{"domaine": "Vente & CRM", "description": "CRM", "outils": [], "priorite": "faible"}]}`
	seeded := func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

	a := New(&fakeCompleter{content: content}, staticCatalog{cat: catalog.Builtin()}, "m", WithRand(seeded))
	first, err := a.Analyze(context.Background(), models.Answers{})
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), models.Answers{})
	require.NoError(t, err)

	require.Len(t, first.Recommendations, 1)
	assert.Len(t, first.Recommendations[0].Tools, 3)
	assert.Equal(t, first.Recommendations[0].Tools, second.Recommendations[0].Tools)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(models.Answers{
		Recrutement:      boolPtr(true),
		TailleEntreprise: models.SizePME,
	})

	assert.Contains(t, prompt, "- Taille: pme")
	assert.Contains(t, prompt, "- Secteur: non spécifié")
	assert.Contains(t, prompt, "- Volume demandes client/semaine: 0")
	assert.Contains(t, prompt, "- Recrutement chronophage: Oui")
	assert.Contains(t, prompt, "- Service client difficile: Non")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "sans texte supplémentaire."))
}

func TestSystemPromptListsEveryDomain(t *testing.T) {
	prompt := SystemPrompt()
	for _, d := range models.Domains {
		assert.Contains(t, prompt, `"`+d+`"`)
	}
	assert.NotContains(t, prompt, "%!")
}
