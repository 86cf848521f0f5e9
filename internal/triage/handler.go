package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"oncolife-triage/internal/protocol"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type StartRequest struct {
	PatientID      string   `json:"patient_id"`
	EmergencyFlags []string `json:"emergency_flags"`
	SymptomCode    string   `json:"symptom_code"`
}

type AnswerRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// TurnResponse is the wire shape of one turn: a prompt or a terminal outcome.
type TurnResponse struct {
	SessionID  string               `json:"session_id,omitempty"`
	Disclaimer string               `json:"disclaimer,omitempty"`
	Prompt     *Prompt              `json:"prompt,omitempty"`
	Outcome    *protocol.ActionCard `json:"outcome,omitempty"`
	Clarify    bool                 `json:"clarify,omitempty"`
}

type CatalogResponse struct {
	EmergencyChecks []protocol.EmergencyCheck `json:"emergency_checks"`
	SymptomGroups   []protocol.SymptomGroup   `json:"symptom_groups"`
}

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{
		EmergencyChecks: protocol.EmergencyChecks(),
		SymptomGroups:   protocol.SymptomGroups(),
	})
}

func (h *Handler) StartAssessment(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	pid, err := uuid.Parse(req.PatientID)
	if err != nil {
		// Anonymous assessments get a fresh patient id
		pid = uuid.New()
	}

	flags := make([]protocol.EmergencyFlag, 0, len(req.EmergencyFlags))
	for _, f := range req.EmergencyFlags {
		flags = append(flags, protocol.EmergencyFlag(f))
	}

	turn, err := h.svc.StartAssessment(r.Context(), pid, flags, req.SymptomCode)
	if err != nil {
		http.Error(w, "Failed to start assessment", http.StatusInternalServerError)
		return
	}

	resp := TurnResponse{
		Disclaimer: protocol.Disclaimer,
		Prompt:     turn.Emission.Prompt,
		Outcome:    turn.Emission.Outcome,
	}
	if turn.Session != nil {
		resp.SessionID = turn.Session.ID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	turn, err := h.svc.SubmitAnswer(r.Context(), id, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			http.Error(w, "Session not found", http.StatusNotFound)
		case errors.Is(err, ErrSessionConcluded):
			http.Error(w, "Session already concluded", http.StatusConflict)
		default:
			http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, TurnResponse{
		SessionID: req.SessionID,
		Prompt:    turn.Emission.Prompt,
		Outcome:   turn.Emission.Outcome,
		Clarify:   turn.Clarify,
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	s, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/triage/catalog", h.ListCatalog)
	r.Post("/triage", h.StartAssessment)
	r.Post("/triage/answer", h.SubmitAnswer)
	r.Get("/triage/{sessionID}", h.GetSession)
}
