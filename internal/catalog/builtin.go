package catalog

// Builtin returns the in-memory catalog used when the data file is unavailable.
// Every call returns a fresh copy.
func Builtin() Catalog {
	return Catalog{
		CategoryServiceClient: {
			{Name: "ChatGPT", Description: "Chatbot intelligent pour automatiser les réponses client", Price: "20€/mois", URL: "https://openai.com/chatgpt"},
			{Name: "Intercom", Description: "Plateforme de service client avec IA intégrée", Price: "39€/mois", URL: "https://intercom.com"},
			{Name: "Zendesk AI", Description: "Support client intelligent avec IA", Price: "49€/mois", URL: "https://zendesk.com"},
		},
		CategoryMarketing: {
			{Name: "Jasper", Description: "Génération de contenu marketing avec IA", Price: "29€/mois", URL: "https://jasper.ai"},
			{Name: "Copy.ai", Description: "Rédaction automatique de copies marketing", Price: "36€/mois", URL: "https://copy.ai"},
			{Name: "Canva AI", Description: "Design graphique assisté par IA", Price: "15€/mois", URL: "https://canva.com"},
		},
		CategoryData: {
			{Name: "Tableau", Description: "Visualisation de données avec IA", Price: "70€/mois", URL: "https://tableau.com"},
			{Name: "Power BI", Description: "Business Intelligence avec IA Microsoft", Price: "10€/mois", URL: "https://powerbi.microsoft.com"},
			{Name: "Looker", Description: "Plateforme d'analyse de données IA", Price: "60€/mois", URL: "https://looker.com"},
		},
		CategoryManagement: {
			{Name: "Notion AI", Description: "Workspace intelligent avec IA", Price: "10€/mois", URL: "https://notion.so"},
			{Name: "Monday.com AI", Description: "Gestion de projets avec IA", Price: "8€/mois", URL: "https://monday.com"},
			{Name: "ClickUp AI", Description: "Productivité et gestion avec IA", Price: "7€/mois", URL: "https://clickup.com"},
		},
		CategoryRecruitment: {
			{Name: "HireVue", Description: "Entretiens vidéo avec analyse IA", Price: "Sur devis", URL: "https://hirevue.com"},
			{Name: "Workday AI", Description: "RH et recrutement assisté par IA", Price: "Sur devis", URL: "https://workday.com"},
			{Name: "BambooHR AI", Description: "Gestion RH intelligente", Price: "6€/mois/employé", URL: "https://bamboohr.com"},
		},
		CategoryAccounting: {
			{Name: "QuickBooks AI", Description: "Comptabilité automatisée", Price: "25€/mois", URL: "https://quickbooks.com"},
			{Name: "Xero AI", Description: "Comptabilité intelligente pour PME", Price: "20€/mois", URL: "https://xero.com"},
			{Name: "Sage AI", Description: "Solutions comptables avec IA", Price: "30€/mois", URL: "https://sage.com"},
		},
		CategorySales: {
			{Name: "Salesforce Einstein", Description: "CRM avec IA prédictive", Price: "75€/mois", URL: "https://salesforce.com"},
			{Name: "HubSpot AI", Description: "CRM et marketing automation IA", Price: "45€/mois", URL: "https://hubspot.com"},
			{Name: "Pipedrive AI", Description: "CRM intelligent pour ventes", Price: "15€/mois", URL: "https://pipedrive.com"},
		},
		CategoryProduction: {
			{Name: "Predictive Maintenance AI", Description: "Maintenance prédictive avec IA", Price: "Sur devis", URL: "#"},
			{Name: "Quality Control AI", Description: "Contrôle qualité automatisé par IA", Price: "Sur devis", URL: "#"},
		},
		CategoryLogistics: {
			{Name: "Optimize AI", Description: "Optimisation logistique avec IA", Price: "Sur devis", URL: "#"},
			{Name: "Route Planning AI", Description: "Planification de routes intelligente", Price: "Sur devis", URL: "#"},
		},
	}
}
