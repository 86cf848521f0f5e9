package triage

import (
	"fmt"

	"oncolife-triage/internal/protocol"
)

// Engine is the session state machine. It holds no mutable state of its own:
// Advance is a pure function of (session, answer) over the immutable
// registry, so concurrent sessions need no coordination.
type Engine struct {
	reg *protocol.Registry
}

func NewEngine(reg *protocol.Registry) *Engine {
	return &Engine{reg: reg}
}

// Start resolves moduleID (falling back to the generic questionnaire) and
// returns the resolved id together with the module's first question.
func (e *Engine) Start(moduleID string) (string, Prompt) {
	m := e.reg.Get(moduleID)
	return m.ID, promptFor(m, 0)
}

// CurrentPrompt re-emits the active question for a non-terminal session,
// used when the answer could not be normalized and the patient must pick
// explicitly.
func (e *Engine) CurrentPrompt(s Session) (Prompt, error) {
	if s.Complete {
		return Prompt{}, ErrSessionConcluded
	}
	m := e.reg.Get(s.ModuleID)
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(m.Questions) {
		return Prompt{}, fmt.Errorf("session %s: question index %d out of range for module %s", s.ID, s.QuestionIndex, m.ID)
	}
	return promptFor(m, s.QuestionIndex), nil
}

// Advance applies one normalized answer and returns the updated session with
// its emission. The input session is not modified.
func (e *Engine) Advance(s Session, answer string) (Session, Emission, error) {
	if s.Complete {
		return s, Emission{}, ErrSessionConcluded
	}
	m := e.reg.Get(s.ModuleID)
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(m.Questions) {
		return s, Emission{}, fmt.Errorf("session %s: question index %d out of range for module %s", s.ID, s.QuestionIndex, m.ID)
	}
	q := m.Questions[s.QuestionIndex]
	tr, ok := q.Logic[answer]
	if !ok {
		return s, Emission{}, fmt.Errorf("%w: %q", ErrOptionNotAllowed, answer)
	}

	switch tr.Kind {
	case protocol.TransitionJump:
		target := e.reg.Get(tr.TargetModule)
		if !s.visited(target.ID) {
			s.ModuleID = target.ID
			s.QuestionIndex = 0
			s.VisitedModules = append(append([]string(nil), s.VisitedModules...), target.ID)
			return s, Emission{Prompt: ptr(promptFor(target, 0))}, nil
		}
		// One-way ticket: the target was already assessed in this session,
		// so the jump degrades to advancing the current module.
		fallthrough
	case protocol.TransitionAdvance:
		next := s.QuestionIndex + 1
		if next < len(m.Questions) {
			s.QuestionIndex = next
			return s, Emission{Prompt: ptr(promptFor(m, next))}, nil
		}
		// Module exhausted without an explicit terminal rule: universal
		// GREEN safety net.
		card := protocol.MonitorAtHome()
		s.Complete = true
		s.Outcome = &card
		return s, Emission{Outcome: &card}, nil
	case protocol.TransitionTerminate:
		card := *tr.Card
		s.Complete = true
		s.Outcome = &card
		return s, Emission{Outcome: &card}, nil
	default:
		return s, Emission{}, fmt.Errorf("module %s question %s: unknown transition kind %q", m.ID, q.ID, tr.Kind)
	}
}

func promptFor(m protocol.Module, idx int) Prompt {
	q := m.Questions[idx]
	return Prompt{
		ModuleID:   m.ID,
		ModuleName: m.Name,
		QuestionID: q.ID,
		Text:       q.Text,
		Options:    q.Options,
	}
}

func ptr(p Prompt) *Prompt { return &p }
