package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/report"
)

type reportRequest struct {
	Result  *models.AnalysisResult `json:"resultat"`
	Company string                 `json:"entreprise"`
	Sector  string                 `json:"secteur"`
}

func (s *Server) decodeReportRequest(w http.ResponseWriter, r *http.Request) (reportRequest, bool) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return req, false
	}
	if req.Result == nil {
		respondError(w, http.StatusBadRequest, "Résultat manquant")
		return req, false
	}
	return req, true
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeReportRequest(w, r)
	if !ok {
		return
	}
	writePDF(w, *req.Result, report.Options{Company: req.Company, Sector: req.Sector})
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeReportRequest(w, r)
	if !ok {
		return
	}

	body, err := report.HTML(*req.Result, report.Options{Company: req.Company, Sector: req.Sector})
	if err != nil {
		slog.Error("failed to render html report", "error", err)
		respondError(w, http.StatusInternalServerError, "Erreur lors de la génération du rapport")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writePDF renders result and sends it as an attachment
func writePDF(w http.ResponseWriter, result models.AnalysisResult, opts report.Options) {
	body, err := report.PDF(result, opts)
	if err != nil {
		slog.Error("failed to render pdf report", "error", err)
		respondError(w, http.StatusInternalServerError, "Erreur lors de la génération du rapport")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(opts.Company)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
