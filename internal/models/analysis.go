package models

import (
	"strings"
	"unicode"
)

// Priority is the urgency label of a recommendation
type Priority string

const (
	PriorityHigh   Priority = "haute"
	PriorityMedium Priority = "moyenne"
	PriorityLow    Priority = "faible"
)

// Rank orders priorities: haute=3, moyenne=2, faible=1, unknown=0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the three known priorities
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Business domains a recommendation can target. The set is closed.
const (
	DomainServiceClient = "Service Client"
	DomainMarketing     = "Marketing Digital"
	DomainData          = "Analyse de Données"
	DomainManagement    = "Gestion & Organisation"
	DomainRecruitment   = "Recrutement"
	DomainAccounting    = "Comptabilité & Admin"
	DomainSales         = "Vente & CRM"
	DomainProduction    = "Production"
	DomainLogistics     = "Logistique"
)

// Domains lists the closed set of domain names in display order
var Domains = []string{
	DomainServiceClient,
	DomainMarketing,
	DomainData,
	DomainManagement,
	DomainRecruitment,
	DomainAccounting,
	DomainSales,
	DomainProduction,
	DomainLogistics,
}

// IsDomain reports whether name belongs to the closed domain set
func IsDomain(name string) bool {
	for _, d := range Domains {
		if d == name {
			return true
		}
	}
	return false
}

// Tool is a catalog entry for a recommended AI tool
type Tool struct {
	Name        string `json:"nom" yaml:"nom"`
	Description string `json:"description" yaml:"description"`
	Price       string `json:"prix" yaml:"prix"`
	URL         string `json:"lien" yaml:"lien"`
}

// Key returns the uniqueness key of the tool: lower-cased name without whitespace
func (t Tool) Key() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, t.Name)
}

// Recommendation is one domain-level advice with up to 3 tools
type Recommendation struct {
	Domain      string   `json:"domaine"`
	Description string   `json:"description"`
	Tools       []Tool   `json:"outils"`
	Priority    Priority `json:"priorite"`
	Impact      string   `json:"impact"`
}

// ResultSource tells which path produced an AnalysisResult
type ResultSource string

const (
	SourceAI       ResultSource = "ai"
	SourceFallback ResultSource = "fallback"
)

// AnalysisResult is produced once per quiz submission and never mutated afterwards
type AnalysisResult struct {
	Score            int              `json:"score"`
	Recommendations  []Recommendation `json:"recommandations"`
	Domains          []string         `json:"domainesAOptimiser"`
	AverageTimeSaved string           `json:"tempsMoyenEconomise"`
	Source           ResultSource     `json:"source,omitempty"`
}
