// Package catalog loads the AI tool catalog and samples tools per business domain.
package catalog

import (
	"math/rand/v2"
	"sort"

	"github.com/terra-clan/ia-booster/internal/models"
)

// Category is a catalog bucket key as used in the bundled data file
type Category string

const (
	CategoryServiceClient Category = "serviceClient"
	CategoryMarketing     Category = "marketing"
	CategoryData          Category = "analysesDonnees"
	CategoryManagement    Category = "gestion"
	CategoryRecruitment   Category = "recrutement"
	CategoryAccounting    Category = "comptabilite"
	CategorySales         Category = "vente"
	CategoryProduction    Category = "production"
	CategoryLogistics     Category = "logistique"
)

// Categories lists the 9 categories, aligned with models.Domains
var Categories = []Category{
	CategoryServiceClient,
	CategoryMarketing,
	CategoryData,
	CategoryManagement,
	CategoryRecruitment,
	CategoryAccounting,
	CategorySales,
	CategoryProduction,
	CategoryLogistics,
}

var domainCategories = map[string]Category{
	models.DomainServiceClient: CategoryServiceClient,
	models.DomainMarketing:     CategoryMarketing,
	models.DomainData:          CategoryData,
	models.DomainManagement:    CategoryManagement,
	models.DomainRecruitment:   CategoryRecruitment,
	models.DomainAccounting:    CategoryAccounting,
	models.DomainSales:         CategorySales,
	models.DomainProduction:    CategoryProduction,
	models.DomainLogistics:     CategoryLogistics,
}

// CategoryFor maps a human-readable domain name to its catalog category
func CategoryFor(domain string) (Category, bool) {
	c, ok := domainCategories[domain]
	return c, ok
}

// Catalog maps each category to its tools
type Catalog map[Category][]models.Tool

// Lookup returns up to limit tools for a domain name. When rnd is non-nil the
// tools are a random sample; a nil rnd keeps catalog order. An unmapped domain
// yields an empty list.
func (c Catalog) Lookup(domain string, limit int, rnd *rand.Rand) []models.Tool {
	category, ok := CategoryFor(domain)
	if !ok || limit <= 0 {
		return []models.Tool{}
	}

	available := c[category]
	sample := make([]models.Tool, len(available))
	copy(sample, available)

	if rnd != nil {
		rnd.Shuffle(len(sample), func(i, j int) {
			sample[i], sample[j] = sample[j], sample[i]
		})
	}

	if len(sample) > limit {
		sample = sample[:limit]
	}
	return sample
}

// Summary describes a category for listings
type Summary struct {
	Category   Category `json:"category"`
	Domain     string   `json:"domain"`
	ToolsCount int      `json:"toolsCount"`
}

// Summaries returns one entry per category in canonical order
func (c Catalog) Summaries() []Summary {
	domains := make(map[Category]string, len(domainCategories))
	for d, cat := range domainCategories {
		domains[cat] = d
	}

	result := make([]Summary, 0, len(Categories))
	for _, cat := range Categories {
		result = append(result, Summary{
			Category:   cat,
			Domain:     domains[cat],
			ToolsCount: len(c[cat]),
		})
	}
	return result
}

// Dedupe removes tools whose normalized name was already seen, keeping the first occurrence
func Dedupe(tools []models.Tool) []models.Tool {
	seen := make(map[string]struct{}, len(tools))
	result := make([]models.Tool, 0, len(tools))
	for _, t := range tools {
		key := t.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, t)
	}
	return result
}

// complete fills categories missing from c with the built-in entries
func (c Catalog) complete() []Category {
	var filled []Category
	builtin := Builtin()
	for _, cat := range Categories {
		if len(c[cat]) == 0 {
			c[cat] = builtin[cat]
			filled = append(filled, cat)
		}
	}
	sort.Slice(filled, func(i, j int) bool { return filled[i] < filled[j] })
	return filled
}
