// Package quiz holds the static questionnaire and the completeness rules
// applied to the answers collected from it.
package quiz

import "github.com/terra-clan/ia-booster/internal/models"

var questions = []models.Question{
	{
		ID:          models.FieldTailleEntreprise,
		Title:       "Quelle est la taille de votre entreprise ?",
		Description: "Cela nous aide à personnaliser nos recommandations",
		Type:        models.QuestionRadio,
		Options:     []string{string(models.SizeStartup), string(models.SizePME), string(models.SizeGrande)},
		Required:    true,
	},
	{
		ID:          models.FieldSecteurActivite,
		Title:       "Dans quel secteur évoluez-vous ?",
		Description: "Sélectionnez le secteur qui correspond le mieux à votre activité",
		Type:        models.QuestionRadio,
		Options: []string{
			"E-commerce",
			"Services",
			"Manufacturing",
			"Tech/IT",
			"Santé",
			"Finance",
			"Éducation",
			"Autre",
		},
		Required: true,
	},
	{
		ID:          models.FieldDemandeClientVolume,
		Title:       "Combien de demandes client recevez-vous par semaine ?",
		Description: "Emails, appels, messages sur les réseaux sociaux, chat...",
		Type:        models.QuestionNumber,
		Required:    true,
	},
	{
		ID:          models.FieldServiceClient,
		Title:       "Rencontrez-vous des difficultés avec votre service client ?",
		Description: "Temps de réponse long, questions répétitives, saturation de l'équipe...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
	{
		ID:          models.FieldCreationContenu,
		Title:       "Passez-vous beaucoup de temps à créer du contenu marketing ?",
		Description: "Articles de blog, posts réseaux sociaux, newsletters, descriptions produits...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
	{
		ID:          models.FieldMarketingDigital,
		Title:       "Souhaitez-vous améliorer votre marketing digital ?",
		Description: "Personnalisation, ciblage, optimisation des campagnes...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
	{
		ID:          models.FieldAnalysesDonnees,
		Title:       "Avez-vous des données que vous n'exploitez pas assez ?",
		Description: "Données clients, ventes, comportements utilisateurs, analytics...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
	{
		ID:          models.FieldGestionStock,
		Title:       "La gestion de stock ou d'inventaire est-elle un défi ?",
		Description: "Prévisions, optimisation, automatisation des commandes...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
	{
		ID:          models.FieldRecrutement,
		Title:       "Le recrutement vous prend-il beaucoup de temps ?",
		Description: "Tri des CV, entretiens, évaluation des candidats...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
	{
		ID:          models.FieldComptabilite,
		Title:       "Souhaitez-vous automatiser vos tâches administratives ?",
		Description: "Saisie comptable, facturation, reporting, gestion documentaire...",
		Type:        models.QuestionBoolean,
		Required:    true,
	},
}

// All returns the questionnaire in display order. The slice is a copy.
func All() []models.Question {
	out := make([]models.Question, len(questions))
	copy(out, questions)
	return out
}

// ByID returns the question with the given id
func ByID(id string) (models.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// TotalSteps returns the number of questionnaire steps
func TotalSteps() int {
	return len(questions)
}

// Missing returns the ids of required questions that have no defined value yet,
// in questionnaire order. An empty result means the flow can finish.
func Missing(a models.Answers) []string {
	var missing []string
	for _, q := range questions {
		if q.Required && !a.Has(q.ID) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Complete reports whether every required question is answered
func Complete(a models.Answers) bool {
	return len(Missing(a)) == 0
}
