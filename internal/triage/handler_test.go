package triage

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"oncolife-triage/internal/protocol"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	reg, err := protocol.NewDefaultRegistry()
	require.NoError(t, err)
	svc := NewService(newMemRepo(), NewEngine(reg), &fakeNormalizer{}, newFakeReporter(), zap.NewNop().Sugar(), 0.5)
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeTurn(t *testing.T, rec *httptest.ResponseRecorder) TurnResponse {
	t.Helper()
	var resp TurnResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCatalogEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/triage/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.EmergencyChecks, 5)
	assert.NotEmpty(t, resp.SymptomGroups)
}

func TestStartEndpointEmergencyFlag(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/triage", StartRequest{
		EmergencyFlags: []string{string(protocol.FlagTroubleBreathing)},
		SymptomCode:    protocol.ModHeadache,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeTurn(t, rec)
	assert.Empty(t, resp.SessionID)
	assert.Nil(t, resp.Prompt)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, protocol.SeverityRed, resp.Outcome.Level)
	assert.NotEmpty(t, resp.Disclaimer)
}

func TestStartAndAnswerFlow(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/triage", StartRequest{SymptomCode: protocol.ModHeadache})
	require.Equal(t, http.StatusOK, rec.Code)
	start := decodeTurn(t, rec)
	require.NotEmpty(t, start.SessionID)
	require.NotNil(t, start.Prompt)
	assert.Nil(t, start.Outcome)

	rec = doJSON(t, r, http.MethodPost, "/triage/answer", AnswerRequest{
		SessionID: start.SessionID,
		Text:      "Yes",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	turn := decodeTurn(t, rec)
	assert.Nil(t, turn.Prompt)
	require.NotNil(t, turn.Outcome)
	assert.Equal(t, protocol.SeverityRed, turn.Outcome.Level)
}

func TestAnswerAfterConclusionConflicts(t *testing.T) {
	r := newTestRouter(t)

	start := decodeTurn(t, doJSON(t, r, http.MethodPost, "/triage", StartRequest{SymptomCode: protocol.ModHeadache}))
	require.NotEmpty(t, start.SessionID)

	rec := doJSON(t, r, http.MethodPost, "/triage/answer", AnswerRequest{SessionID: start.SessionID, Text: "Yes"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/triage/answer", AnswerRequest{SessionID: start.SessionID, Text: "No"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAnswerUnknownSessionIs404(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/triage/answer", AnswerRequest{
		SessionID: uuid.NewString(),
		Text:      "Yes",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswerMalformedSessionID(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/triage/answer", AnswerRequest{SessionID: "not-a-uuid", Text: "Yes"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionEndpoint(t *testing.T) {
	r := newTestRouter(t)

	start := decodeTurn(t, doJSON(t, r, http.MethodPost, "/triage", StartRequest{SymptomCode: protocol.ModFever}))
	require.NotEmpty(t, start.SessionID)

	rec := doJSON(t, r, http.MethodGet, "/triage/"+start.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var s Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, protocol.ModFever, s.ModuleID)
	assert.False(t, s.Complete)

	rec = doJSON(t, r, http.MethodGet, "/triage/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
