package advisor

import (
	"fmt"
	"strings"

	"github.com/terra-clan/ia-booster/internal/models"
)

const systemPrompt = `Tu es un expert en transformation digitale et intelligence artificielle pour les entreprises. Tu analyses les réponses d'un questionnaire pour recommander les meilleurs outils IA selon le contexte spécifique de l'entreprise.

Tu dois retourner uniquement un JSON valide avec cette structure exacte:
{
  "score": number (0-100),
  "recommandations": [
    {
      "domaine": string (choix: %s),
      "description": string,
      "outils": [
        {
          "nom": string,
          "description": string,
          "prix": string,
          "lien": string
        }
      ],
      "priorite": "haute" | "moyenne" | "faible",
      "impact": string
    }
  ],
  "domainesAOptimiser": string[],
  "tempsMoyenEconomise": string
}

IMPORTANT: Pour les outils, utilise uniquement des noms réels et populaires comme:
- Service Client: ChatGPT, Intercom, Zendesk AI, Freshdesk, Drift
- Marketing: Jasper, Copy.ai, Canva AI, HubSpot AI, Mailchimp AI
- Données: Tableau, Power BI, Google Analytics Intelligence, Looker
- Gestion: Notion AI, Monday.com AI, Asana Intelligence, ClickUp AI
- Recrutement: HireVue, Pymetrics, Workday AI, BambooHR AI

Calcule un score d'optimisation IA (0-100) basé sur:
- Potentiel d'amélioration identifié
- Urgence des défis
- Taille de l'entreprise
- Secteur d'activité

Priorise les domaines avec le plus fort impact business et ROI.`

// SystemPrompt returns the analysis system message with the closed domain list inlined
func SystemPrompt() string {
	quoted := make([]string, len(models.Domains))
	for i, d := range models.Domains {
		quoted[i] = fmt.Sprintf("%q", d)
	}
	return fmt.Sprintf(systemPrompt, strings.Join(quoted, ", "))
}

// BuildPrompt renders the user message describing the company profile and its challenges
func BuildPrompt(a models.Answers) string {
	var b strings.Builder

	b.WriteString("Analyse cette entreprise et recommande les meilleurs outils IA:\n\n")

	b.WriteString("**Profil Entreprise:**\n")
	fmt.Fprintf(&b, "- Taille: %s\n", orUnspecified(string(a.TailleEntreprise)))
	fmt.Fprintf(&b, "- Secteur: %s\n", orUnspecified(strings.TrimSpace(a.SecteurActivite)))
	fmt.Fprintf(&b, "- Volume demandes client/semaine: %d\n\n", a.Volume())

	b.WriteString("**Défis identifiés:**\n")
	challenges := []struct {
		label string
		field string
	}{
		{"Service client difficile", models.FieldServiceClient},
		{"Création contenu chronophage", models.FieldCreationContenu},
		{"Marketing digital à améliorer", models.FieldMarketingDigital},
		{"Données sous-exploitées", models.FieldAnalysesDonnees},
		{"Gestion stock/inventaire difficile", models.FieldGestionStock},
		{"Recrutement chronophage", models.FieldRecrutement},
		{"Tâches administratives à automatiser", models.FieldComptabilite},
	}
	for _, c := range challenges {
		fmt.Fprintf(&b, "- %s: %s\n", c.label, yesNo(a.Flag(c.field)))
	}

	b.WriteString(`
**Instructions d'analyse:**
1. Calcule un score d'optimisation IA (0-100) basé sur le potentiel d'amélioration réel
2. Identifie 2-4 domaines prioritaires avec le plus fort impact business
3. Pour chaque domaine, recommande 2-3 outils IA spécifiques et réels avec:
   - Nom de l'outil réel et populaire sur le marché
   - Description précise de son utilité pour ce contexte
   - Prix réaliste basé sur les tarifs actuels du marché
   - URL du site officiel de l'outil
4. Priorise selon l'urgence business et le ROI potentiel
5. Estime l'impact concret et mesurable
6. Calcule le temps total économisé par semaine de façon réaliste

**Contexte supplémentaire:**
- Startups: Focus sur outils économiques et faciles à implémenter
- PME: Équilibre entre coût et fonctionnalités avancées
- Grandes entreprises: Outils enterprise avec intégrations complexes

Secteurs spécifiques à considérer:
- E-commerce: Focus automatisation marketing et service client
- Services: Outils de productivité et gestion client
- Manufacturing: IA prédictive et optimisation opérationnelle
- Tech: Outils de développement et analyse avancée

Réponds uniquement avec le JSON demandé, sans texte supplémentaire.
`)

	return b.String()
}

func orUnspecified(s string) string {
	if s == "" {
		return "non spécifié"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}
