package triage

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"oncolife-triage/internal/protocol"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionConcluded = errors.New("session already concluded")
	// ErrOptionNotAllowed means the answer reaching the engine was not a
	// member of the active question's option set. The normalizer contract
	// should make this impossible; callers treat it as a re-prompt.
	ErrOptionNotAllowed = errors.New("answer is not one of the allowed options")
)

// QA is one transcript entry: a question as asked and the normalized answer.
type QA struct {
	ModuleID   string    `json:"module_id"`
	QuestionID string    `json:"question_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Session is the only mutable entity in the engine: which module is active,
// which question is next, and whether a terminal outcome has been reached.
// VisitedModules enforces the one-way-ticket rule: a module left via a jump
// is never re-entered by the same session.
type Session struct {
	ID             uuid.UUID            `json:"id"`
	PatientID      uuid.UUID            `json:"patient_id"`
	ModuleID       string               `json:"module_id"`
	QuestionIndex  int                  `json:"question_index"`
	VisitedModules []string             `json:"visited_modules"`
	Transcript     []QA                 `json:"transcript"`
	Outcome        *protocol.ActionCard `json:"outcome,omitempty"`
	Complete       bool                 `json:"is_complete"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func (s *Session) visited(moduleID string) bool {
	for _, id := range s.VisitedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}

// Prompt is the next-question emission handed back to the transport layer.
type Prompt struct {
	ModuleID   string   `json:"module_id"`
	ModuleName string   `json:"module_name"`
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
}

// Emission is the single output of one turn: either the next question or a
// terminal outcome, never both.
type Emission struct {
	Prompt  *Prompt              `json:"prompt,omitempty"`
	Outcome *protocol.ActionCard `json:"outcome,omitempty"`
}
