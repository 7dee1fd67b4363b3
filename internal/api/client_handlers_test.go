package api

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/ia-booster/internal/chat"
	"github.com/terra-clan/ia-booster/internal/config"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/state"
)

func createClient(t *testing.T, env *testEnv) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/clients", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.True(t, state.ValidClientID(body["clientId"]))
	return body["clientId"]
}

func TestClientRoutesRejectInvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/clients/bad.id/answers", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid client id", errorMessage(t, rec))
}

func TestClientRoutesWithoutState(t *testing.T) {
	srv := NewServer(config.ServerConfig{}, Dependencies{})
	env := &testEnv{server: srv}

	rec := env.do(t, http.MethodPost, "/api/v1/clients", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/clients/abc/answers", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestClientAnswersFlow(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)
	base := "/api/v1/clients/" + id

	rec := env.do(t, http.MethodGet, base+"/answers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var progress progressResponse
	decodeBody(t, rec, &progress)
	assert.Len(t, progress.Missing, 10)
	assert.False(t, progress.Complete)

	rec = env.do(t, http.MethodPut, base+"/answers", map[string]any{
		"reponses": map[string]any{"tailleEntreprise": "grande", "secteurActivite": "Industrie"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &progress)
	assert.Len(t, progress.Missing, 8)

	rec = env.do(t, http.MethodPatch, base+"/answers", map[string]any{"id": "demandeClientVolume", "value": 25})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &progress)
	assert.Equal(t, 25, progress.Answers.Volume())
	assert.Equal(t, models.SizeGrande, progress.Answers.TailleEntreprise)
	assert.Len(t, progress.Missing, 7)

	rec = env.do(t, http.MethodPatch, base+"/answers", map[string]any{"id": "serviceClient", "value": false})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &progress)
	assert.True(t, progress.Answers.Has(models.FieldServiceClient))
	assert.False(t, progress.Answers.Flag(models.FieldServiceClient))

	rec = env.do(t, http.MethodPatch, base+"/answers", map[string]any{"id": "serviceClient", "value": "oui"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, base+"/answers", map[string]any{"id": "horoscope", "value": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, base+"/answers", map[string]any{"id": "serviceClient"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, base+"/answers", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/answers", nil)
	decodeBody(t, rec, &progress)
	assert.Len(t, progress.Missing, 10)
}

func TestClientAnalysisCachesResult(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)
	base := "/api/v1/clients/" + id

	rec := env.do(t, http.MethodPost, base+"/analysis", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgMissingAnswers, errorMessage(t, rec))

	rec = env.do(t, http.MethodGet, base+"/result", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, base+"/answers", map[string]any{
		"reponses": map[string]any{"tailleEntreprise": "pme", "secteurActivite": "Commerce"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, base+"/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))

	rec = env.do(t, http.MethodPost, base+"/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hit", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, env.advisor.Calls())

	rec = env.do(t, http.MethodPost, base+"/analysis?refresh=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, env.advisor.Calls())

	rec = env.do(t, http.MethodGet, base+"/result", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	decodeBody(t, rec, &result)
	assert.Equal(t, sampleResult(), result)

	// Changing an answer invalidates the cached result
	rec = env.do(t, http.MethodPatch, base+"/answers", map[string]any{"id": "recrutement", "value": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/result", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientResultDelete(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)
	require.NoError(t, env.state.SaveResult(t.Context(), id, sampleResult()))

	rec := env.do(t, http.MethodDelete, "/api/v1/clients/"+id+"/result", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := env.state.Result(t.Context(), id)
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestClientReportPDF(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)
	base := "/api/v1/clients/" + id

	rec := env.do(t, http.MethodGet, base+"/report.pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, env.state.SaveResult(t.Context(), id, sampleResult()))

	rec = env.do(t, http.MethodGet, base+"/report.pdf?entreprise=Boulangerie%20Durand", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ia-booster-rapport-boulangerie-durand.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestClientChatSession(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)
	base := "/api/v1/clients/" + id

	rec := env.do(t, http.MethodGet, base+"/chat", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, base+"/chat/messages", map[string]any{"text": "Bonjour"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body chatMessageResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Bonjour ! Comment puis-je vous aider ?", body.Response)
	require.Len(t, body.Session.Messages, 2)
	assert.False(t, body.Session.Messages[0].IsBot)
	assert.True(t, body.Session.Messages[1].IsBot)
	assert.Equal(t, id, body.Session.UserID)
	assert.NotEmpty(t, body.Session.ID)

	rec = env.do(t, http.MethodPost, base+"/chat/messages", map[string]any{"text": "Et pour le marketing ?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.chat.history, 2)

	rec = env.do(t, http.MethodGet, base+"/chat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session models.ChatSession
	decodeBody(t, rec, &session)
	assert.Len(t, session.Messages, 4)
	assert.Equal(t, body.Session.ID, session.ID)

	rec = env.do(t, http.MethodPost, base+"/chat/messages", map[string]any{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, base+"/chat", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/chat", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientChatStoresApologyOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.chat.err = errors.New("upstream unavailable")
	id := createClient(t, env)

	rec := env.do(t, http.MethodPost, "/api/v1/clients/"+id+"/chat/messages", map[string]any{"text": "Bonjour"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, chat.Apology, body.Response)

	session, err := env.state.ChatSession(t.Context(), id)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, chat.Apology, session.Messages[1].Text)
}

func TestClientPutChat(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)

	rec := env.do(t, http.MethodPut, "/api/v1/clients/"+id+"/chat", map[string]any{
		"id":       "session-1",
		"messages": []map[string]any{{"text": "Salut", "isBot": false}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session models.ChatSession
	decodeBody(t, rec, &session)
	assert.Equal(t, "session-1", session.ID)
	assert.Equal(t, id, session.UserID)
	assert.False(t, session.LastActivity.IsZero())
}

func TestClientReset(t *testing.T) {
	env := newTestEnv(t)
	id := createClient(t, env)
	ctx := t.Context()

	require.NoError(t, env.state.SaveAnswers(ctx, id, models.Answers{SecteurActivite: "Santé"}))
	require.NoError(t, env.state.SaveResult(ctx, id, sampleResult()))
	_, err := env.state.SaveChatSession(ctx, id, models.ChatSession{})
	require.NoError(t, err)

	rec := env.do(t, http.MethodDelete, "/api/v1/clients/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	decodeBody(t, rec, &body)
	assert.Equal(t, 3, body["deleted"])

	_, err = env.state.Answers(ctx, id)
	assert.ErrorIs(t, err, state.ErrNotFound)
}
