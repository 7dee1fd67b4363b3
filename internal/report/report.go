// Package report renders an AnalysisResult as a downloadable PDF or an inline HTML page.
package report

import (
	"strings"
	"time"

	"github.com/terra-clan/ia-booster/internal/models"
)

const (
	defaultCompany  = "Votre Entreprise"
	maxToolsPerRec  = 3
	contactEmail    = "contact@iabooster.com"
	footerLine      = "Ce rapport a été généré par IA Booster - Optimisez votre entreprise avec l'IA"
	frenchDateShape = "02/01/2006"
)

// Options describes the company the report is addressed to
type Options struct {
	Company     string
	Sector      string
	GeneratedAt time.Time
}

func (o Options) withDefaults() Options {
	o.Company = strings.TrimSpace(o.Company)
	if o.Company == "" {
		o.Company = defaultCompany
	}
	o.Sector = strings.TrimSpace(o.Sector)
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now()
	}
	return o
}

func limitTools(tools []models.Tool) []models.Tool {
	if len(tools) > maxToolsPerRec {
		return tools[:maxToolsPerRec]
	}
	return tools
}
