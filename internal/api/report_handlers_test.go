package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPDF(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/report/pdf", map[string]any{
		"resultat":   sampleResult(),
		"entreprise": "Acme Studio",
		"secteur":    "Services",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ia-booster-rapport-acme-studio.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestReportPDFDefaultsFilename(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/report/pdf", map[string]any{"resultat": sampleResult()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ia-booster-rapport-entreprise.pdf")
}

func TestReportHTML(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/report/html", map[string]any{
		"resultat":   sampleResult(),
		"entreprise": "Acme",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "67/100")
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestReportRequiresResult(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/v1/report/pdf", "/api/v1/report/html"} {
		rec := env.do(t, http.MethodPost, path, map[string]any{"entreprise": "Acme"})
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)

		rec = env.do(t, http.MethodPost, path, "not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
