// Package scoring implements the deterministic rule-based analysis used when
// the AI recommendation path is unavailable.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/terra-clan/ia-booster/internal/models"
)

const (
	defaultVolume = 10
	maxScore      = 100
)

var (
	serviceClientTools = []models.Tool{
		{Name: "ChatGPT", Description: "Chatbot intelligent pour automatiser les réponses client", Price: "20€/mois", URL: "https://openai.com/chatgpt"},
		{Name: "Intercom", Description: "Plateforme de service client avec IA intégrée", Price: "39€/mois", URL: "https://intercom.com"},
		{Name: "Zendesk AI", Description: "Support client intelligent avec IA", Price: "49€/mois", URL: "https://zendesk.com"},
	}
	marketingTools = []models.Tool{
		{Name: "Jasper", Description: "Génération de contenu marketing avec IA", Price: "29€/mois", URL: "https://jasper.ai"},
		{Name: "Copy.ai", Description: "Rédaction automatique de copies marketing", Price: "36€/mois", URL: "https://copy.ai"},
		{Name: "Canva AI", Description: "Design graphique assisté par IA", Price: "15€/mois", URL: "https://canva.com"},
	}
	dataTools = []models.Tool{
		{Name: "Tableau", Description: "Visualisation de données avancée avec IA", Price: "70€/mois", URL: "https://tableau.com"},
		{Name: "Power BI", Description: "Business Intelligence avec IA Microsoft", Price: "10€/mois", URL: "https://powerbi.microsoft.com"},
		{Name: "Looker", Description: "Plateforme d'analyse de données IA", Price: "60€/mois", URL: "https://looker.com"},
	}
	managementTools = []models.Tool{
		{Name: "Notion AI", Description: "Workspace intelligent avec IA", Price: "10€/mois", URL: "https://notion.so"},
		{Name: "Monday.com AI", Description: "Gestion de projets avec IA", Price: "8€/mois", URL: "https://monday.com"},
		{Name: "ClickUp AI", Description: "Productivité et gestion avec IA", Price: "7€/mois", URL: "https://clickup.com"},
	}
	recruitmentTools = []models.Tool{
		{Name: "HireVue", Description: "Entretiens vidéo automatisés avec IA", Price: "Sur devis", URL: "https://hirevue.com"},
		{Name: "Workday AI", Description: "RH et recrutement assisté par IA", Price: "Sur devis", URL: "https://workday.com"},
		{Name: "BambooHR AI", Description: "Gestion RH intelligente", Price: "6€/mois/employé", URL: "https://bamboohr.com"},
	}
)

var sizeBonus = map[models.CompanySize]int{
	models.SizeGrande:  10,
	models.SizePME:     5,
	models.SizeStartup: 0,
}

// Score computes an AnalysisResult from the answers alone. It never fails and
// does not consult the tool catalog.
func Score(a models.Answers) models.AnalysisResult {
	recs := make([]models.Recommendation, 0, 5)
	domains := make([]string, 0, 5)
	score := 0

	add := func(rec models.Recommendation, points int) {
		recs = append(recs, rec)
		domains = append(domains, rec.Domain)
		score += points
	}

	volume := defaultVolume
	if a.DemandeClientVolume != nil {
		volume = *a.DemandeClientVolume
	}

	if a.Flag(models.FieldServiceClient) || a.Volume() > 10 {
		priority, points := models.PriorityMedium, 15
		if volume > 50 {
			priority, points = models.PriorityHigh, 25
		}
		add(models.Recommendation{
			Domain:      models.DomainServiceClient,
			Description: "Automatisez vos réponses client pour gagner du temps et améliorer la satisfaction",
			Tools:       cloneTools(serviceClientTools),
			Priority:    priority,
			Impact:      hoursPerWeek(float64(volume) * 0.3),
		}, points)
	}

	if a.Flag(models.FieldCreationContenu) || a.Flag(models.FieldMarketingDigital) {
		add(models.Recommendation{
			Domain:      models.DomainMarketing,
			Description: "Accélérez la création de contenu et optimisez vos campagnes marketing",
			Tools:       cloneTools(marketingTools),
			Priority:    models.PriorityHigh,
			Impact:      "Productivité contenu x3",
		}, 20)
	}

	if a.Flag(models.FieldAnalysesDonnees) {
		priority := models.PriorityMedium
		if a.TailleEntreprise == models.SizeGrande {
			priority = models.PriorityHigh
		}
		add(models.Recommendation{
			Domain:      models.DomainData,
			Description: "Transformez vos données en insights actionnables avec l'IA",
			Tools:       cloneTools(dataTools),
			Priority:    priority,
			Impact:      "Décisions data-driven 5x plus rapides",
		}, 15)
	}

	if a.Flag(models.FieldGestionStock) || a.Flag(models.FieldComptabilite) {
		add(models.Recommendation{
			Domain:      models.DomainManagement,
			Description: "Optimisez vos processus internes et automatisez les tâches répétitives",
			Tools:       cloneTools(managementTools),
			Priority:    models.PriorityMedium,
			Impact:      "Efficacité organisationnelle +40%",
		}, 10)
	}

	if a.Flag(models.FieldRecrutement) {
		priority := models.PriorityMedium
		if a.TailleEntreprise == models.SizeStartup {
			priority = models.PriorityLow
		}
		add(models.Recommendation{
			Domain:      models.DomainRecruitment,
			Description: "Automatisez le screening et améliorez la sélection des candidats",
			Tools:       cloneTools(recruitmentTools),
			Priority:    priority,
			Impact:      "Temps de recrutement divisé par 2",
		}, 12)
	}

	score += sizeBonus[a.TailleEntreprise]
	if score > maxScore {
		score = maxScore
	}

	SortByPriority(recs)

	return models.AnalysisResult{
		Score:            score,
		Recommendations:  recs,
		Domains:          domains,
		AverageTimeSaved: AverageTimeSaved(score),
		Source:           models.SourceFallback,
	}
}

// SortByPriority orders recommendations by priority rank, highest first,
// keeping the relative order of equal priorities.
func SortByPriority(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
}

// AverageTimeSaved formats the weekly time saving derived from a score
func AverageTimeSaved(score int) string {
	return hoursPerWeek(float64(score) * 0.5)
}

// hoursPerWeek rounds half away from zero, matching the front-end display
func hoursPerWeek(hours float64) string {
	return fmt.Sprintf("%d heures/semaine", int(math.Round(hours)))
}

func cloneTools(tools []models.Tool) []models.Tool {
	out := make([]models.Tool, len(tools))
	copy(out, tools)
	return out
}
