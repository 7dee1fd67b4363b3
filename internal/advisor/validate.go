package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/scoring"
)

var (
	// ErrUnparseable is returned when the model output holds no decodable JSON object.
	ErrUnparseable = errors.New("model output is not parseable")
	// ErrInvalidResult is returned when the decoded object does not match the result schema.
	ErrInvalidResult = errors.New("model output does not match the analysis schema")
)

type rawRecommendation struct {
	Domain      string          `json:"domaine"`
	Description string          `json:"description"`
	Tools       []models.Tool   `json:"outils"`
	Priority    models.Priority `json:"priorite"`
	Impact      string          `json:"impact"`
}

type rawResult struct {
	Score            *float64             `json:"score"`
	Recommendations  *[]rawRecommendation `json:"recommandations"`
	Domains          []string             `json:"domainesAOptimiser"`
	AverageTimeSaved string               `json:"tempsMoyenEconomise"`
}

// parseResult decodes model output and validates it against the result schema.
// Missing domain list and time estimate are derived.
func parseResult(content string) (models.AnalysisResult, error) {
	var raw rawResult
	if err := llm.DecodeJSONObject(content, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.AnalysisResult{}, fmt.Errorf("%w: field %s has the wrong type", ErrInvalidResult, typeErr.Field)
		}
		return models.AnalysisResult{}, fmt.Errorf("%w: %w", ErrUnparseable, err)
	}

	if raw.Score == nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: score is missing", ErrInvalidResult)
	}
	score := *raw.Score
	if math.IsNaN(score) || score < 0 || score > 100 {
		return models.AnalysisResult{}, fmt.Errorf("%w: score %v out of range", ErrInvalidResult, score)
	}

	if raw.Recommendations == nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: recommandations is missing", ErrInvalidResult)
	}

	recs := make([]models.Recommendation, 0, len(*raw.Recommendations))
	for i, r := range *raw.Recommendations {
		domain := strings.TrimSpace(r.Domain)
		if !models.IsDomain(domain) {
			return models.AnalysisResult{}, fmt.Errorf("%w: recommendation %d has unknown domain %q", ErrInvalidResult, i, r.Domain)
		}
		if !r.Priority.Valid() {
			return models.AnalysisResult{}, fmt.Errorf("%w: recommendation %d has unknown priority %q", ErrInvalidResult, i, r.Priority)
		}
		if strings.TrimSpace(r.Description) == "" {
			return models.AnalysisResult{}, fmt.Errorf("%w: recommendation %d has no description", ErrInvalidResult, i)
		}

		tools := make([]models.Tool, 0, len(r.Tools))
		for _, t := range r.Tools {
			if strings.TrimSpace(t.Name) == "" {
				continue
			}
			tools = append(tools, t)
		}

		recs = append(recs, models.Recommendation{
			Domain:      domain,
			Description: r.Description,
			Tools:       tools,
			Priority:    r.Priority,
			Impact:      r.Impact,
		})
	}

	rounded := int(math.Round(score))

	domains := raw.Domains
	if domains == nil {
		domains = deriveDomains(recs)
	}
	for _, d := range domains {
		if !models.IsDomain(strings.TrimSpace(d)) {
			return models.AnalysisResult{}, fmt.Errorf("%w: unknown domain %q in domainesAOptimiser", ErrInvalidResult, d)
		}
	}

	timeSaved := strings.TrimSpace(raw.AverageTimeSaved)
	if timeSaved == "" {
		timeSaved = scoring.AverageTimeSaved(rounded)
	}

	return models.AnalysisResult{
		Score:            rounded,
		Recommendations:  recs,
		Domains:          domains,
		AverageTimeSaved: timeSaved,
	}, nil
}

func deriveDomains(recs []models.Recommendation) []string {
	seen := make(map[string]struct{}, len(recs))
	domains := make([]string, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r.Domain]; ok {
			continue
		}
		seen[r.Domain] = struct{}{}
		domains = append(domains, r.Domain)
	}
	return domains
}
