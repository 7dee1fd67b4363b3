package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/ia-booster/internal/models"
)

func TestQuestionnaireShape(t *testing.T) {
	all := All()
	require.Len(t, all, 10)
	assert.Equal(t, TotalSteps(), len(all))
	assert.Equal(t, models.FieldTailleEntreprise, all[0].ID)

	seen := map[string]bool{}
	for _, q := range all {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
		assert.True(t, q.Required)
		if q.Type == models.QuestionRadio {
			assert.NotEmpty(t, q.Options, q.ID)
		}
	}

	// callers cannot mutate the package copy
	all[0].Title = "changed"
	q, ok := ByID(models.FieldTailleEntreprise)
	require.True(t, ok)
	assert.NotEqual(t, "changed", q.Title)

	_, ok = ByID("unknown")
	assert.False(t, ok)
}

func TestMissing(t *testing.T) {
	var a models.Answers
	assert.Len(t, Missing(a), 10)
	assert.False(t, Complete(a))

	require.NoError(t, a.Set(models.FieldTailleEntreprise, "pme"))
	require.NoError(t, a.Set(models.FieldSecteurActivite, "Services"))
	require.NoError(t, a.Set(models.FieldDemandeClientVolume, float64(0)))
	for _, id := range []string{
		models.FieldServiceClient,
		models.FieldCreationContenu,
		models.FieldMarketingDigital,
		models.FieldAnalysesDonnees,
		models.FieldGestionStock,
		models.FieldRecrutement,
	} {
		require.NoError(t, a.Set(id, false))
	}

	assert.Equal(t, []string{models.FieldComptabilite}, Missing(a))

	require.NoError(t, a.Set(models.FieldComptabilite, true))
	assert.Empty(t, Missing(a))
	assert.True(t, Complete(a))
}

func TestMissingTreatsBlankSectorAsUnanswered(t *testing.T) {
	a := models.Answers{SecteurActivite: "   "}
	assert.Contains(t, Missing(a), models.FieldSecteurActivite)
}
