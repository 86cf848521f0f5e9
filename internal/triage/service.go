package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"oncolife-triage/internal/protocol"
)

// Normalizer maps a free-text utterance to one of the active question's
// fixed options. The returned option must be a member of options; confidence
// below the service threshold triggers a re-prompt instead of a transition.
// We define it here to decouple from the specific classifier implementation.
type Normalizer interface {
	Normalize(ctx context.Context, freeText, question string, options []string) (string, float64, error)
}

// Reporter delivers a concluded assessment to the care team.
type Reporter interface {
	SendAssessmentReport(ctx context.Context, s Session) error
}

// Turn is the result of one user turn.
type Turn struct {
	Session  *Session
	Emission Emission
	// Clarify is set when no state transition happened and the current
	// question was re-emitted for an explicit choice.
	Clarify bool
}

type Service interface {
	StartAssessment(ctx context.Context, patientID uuid.UUID, flags []protocol.EmergencyFlag, symptomCode string) (*Turn, error)
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, text string) (*Turn, error)
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
}

type service struct {
	repo          Repository
	engine        *Engine
	normalizer    Normalizer
	reporter      Reporter
	log           *zap.SugaredLogger
	minConfidence float64
}

func NewService(repo Repository, engine *Engine, n Normalizer, reporter Reporter, log *zap.SugaredLogger, minConfidence float64) Service {
	if minConfidence <= 0 {
		minConfidence = 0.5
	}
	return &service{
		repo:          repo,
		engine:        engine,
		normalizer:    n,
		reporter:      reporter,
		log:           log,
		minConfidence: minConfidence,
	}
}

// StartAssessment runs the global emergency filter first. Any affirmed flag
// short-circuits to the RED outcome and no session is created; otherwise a
// session starts in the selected symptom's module.
func (s *service) StartAssessment(ctx context.Context, patientID uuid.UUID, flags []protocol.EmergencyFlag, symptomCode string) (*Turn, error) {
	if card, ok := protocol.CheckEmergency(flags); ok {
		s.log.Infow("emergency flag affirmed, bypassing assessment", "patient_id", patientID)
		return &Turn{Emission: Emission{Outcome: &card}}, nil
	}

	moduleID, first := s.engine.Start(symptomCode)
	now := time.Now()
	sess := &Session{
		ID:             uuid.New(),
		PatientID:      patientID,
		ModuleID:       moduleID,
		QuestionIndex:  0,
		VisitedModules: []string{moduleID},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.log.Infow("assessment started", "session_id", sess.ID, "module", moduleID, "requested", symptomCode)
	return &Turn{Session: sess, Emission: Emission{Prompt: &first}}, nil
}

// SubmitAnswer processes one user turn: normalize the utterance against the
// active question, apply the transition, persist, and emit. A normalizer
// failure or low-confidence match re-emits the current question unchanged.
func (s *service) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, text string) (*Turn, error) {
	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Complete {
		return nil, ErrSessionConcluded
	}

	prompt, err := s.engine.CurrentPrompt(*sess)
	if err != nil {
		return nil, err
	}

	answer, ok := matchOption(text, prompt.Options)
	if !ok {
		answer, err = s.normalizeRemote(ctx, text, prompt)
		if err != nil {
			s.log.Warnw("answer normalization inconclusive, re-prompting",
				"session_id", sess.ID, "question", prompt.QuestionID, "error", err)
			return &Turn{Session: sess, Emission: Emission{Prompt: &prompt}, Clarify: true}, nil
		}
	}

	next, emission, err := s.engine.Advance(*sess, answer)
	if err != nil {
		if errors.Is(err, ErrOptionNotAllowed) {
			// Normalizer contract violation; never surfaced as a hard
			// failure of the session.
			s.log.Errorw("normalizer returned out-of-set option",
				"session_id", sess.ID, "question", prompt.QuestionID, "answer", answer)
			return &Turn{Session: sess, Emission: Emission{Prompt: &prompt}, Clarify: true}, nil
		}
		return nil, err
	}

	next.Transcript = append(next.Transcript, QA{
		ModuleID:   prompt.ModuleID,
		QuestionID: prompt.QuestionID,
		Question:   prompt.Text,
		Answer:     answer,
		AnsweredAt: time.Now(),
	})
	next.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if next.Complete && next.Outcome != nil {
		s.log.Infow("assessment concluded",
			"session_id", next.ID, "level", next.Outcome.Level, "steps", len(next.Transcript))
		if next.Outcome.Level != protocol.SeverityGreen {
			// Notify the care team in the background, as the outcome has
			// already been delivered to the patient.
			go func(c Session) {
				bgCtx := context.Background()
				if err := s.reporter.SendAssessmentReport(bgCtx, c); err != nil {
					s.log.Errorw("failed to send assessment report", "session_id", c.ID, "error", err)
				}
			}(next)
		}
	}

	return &Turn{Session: &next, Emission: emission}, nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) normalizeRemote(ctx context.Context, text string, prompt Prompt) (string, error) {
	matched, confidence, err := s.normalizer.Normalize(ctx, text, prompt.Text, prompt.Options)
	if err != nil {
		return "", err
	}
	if confidence < s.minConfidence {
		return "", fmt.Errorf("confidence %.2f below threshold %.2f", confidence, s.minConfidence)
	}
	return matched, nil
}

// matchOption resolves an utterance that already is one of the options,
// which is the common case when the patient taps a button. The remote
// classifier is only consulted for genuine free text.
func matchOption(text string, options []string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	for _, opt := range options {
		if strings.EqualFold(trimmed, opt) {
			return opt, true
		}
	}
	return "", false
}
