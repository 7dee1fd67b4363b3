package api

import (
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/quiz"
)

const (
	defaultDomainLimit = 3
	maxDomainLimit     = 10
)

// Catalog handlers: browsing of categories and per-domain tool samples

func (s *Server) loadCatalog(r *http.Request) catalog.Catalog {
	if s.catalog == nil {
		return catalog.Builtin()
	}
	return s.catalog.Load(r.Context())
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	summaries := s.loadCatalog(r).Summaries()
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": summaries,
		"total":      len(summaries),
	})
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category := catalog.Category(chi.URLParam(r, "category"))
	cat := s.loadCatalog(r)

	for _, summary := range cat.Summaries() {
		if summary.Category != category {
			continue
		}
		tools := cat[category]
		if tools == nil {
			tools = []models.Tool{}
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"category": summary.Category,
			"domain":   summary.Domain,
			"tools":    tools,
		})
		return
	}

	respondError(w, http.StatusNotFound, "category not found")
}

func (s *Server) handleDomainTools(w http.ResponseWriter, r *http.Request) {
	domain, err := url.PathUnescape(chi.URLParam(r, "domain"))
	if err != nil || !models.IsDomain(domain) {
		respondError(w, http.StatusNotFound, "domain not found")
		return
	}

	limit := defaultDomainLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxDomainLimit {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 10")
			return
		}
		limit = n
	}

	var rnd *rand.Rand
	if r.URL.Query().Get("shuffle") != "false" {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"domain": domain,
		"tools":  s.loadCatalog(r).Lookup(domain, limit, rnd),
	})
}

// Questionnaire handlers

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"questions":  quiz.All(),
		"totalSteps": quiz.TotalSteps(),
	})
}

type progressResponse struct {
	Answers  models.Answers `json:"reponses"`
	Missing  []string       `json:"missing"`
	Complete bool           `json:"complete"`
}

func newProgress(answers models.Answers) progressResponse {
	missing := quiz.Missing(answers)
	if missing == nil {
		missing = []string{}
	}
	return progressResponse{
		Answers:  answers,
		Missing:  missing,
		Complete: quiz.Complete(answers),
	}
}

func (s *Server) handleValidateAnswers(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil || isNullOrAbsent(req.Answers) {
		respondError(w, http.StatusBadRequest, msgMissingAnswers)
		return
	}

	answers, err := parseAnswers(req.Answers)
	if err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidAnswers)
		return
	}

	respondJSON(w, http.StatusOK, newProgress(answers))
}
