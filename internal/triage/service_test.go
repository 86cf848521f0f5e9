package triage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"oncolife-triage/internal/protocol"
)

type memRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
}

func newMemRepo() *memRepo {
	return &memRepo{sessions: make(map[uuid.UUID]Session)}
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copy := s
	return &copy, nil
}

func (r *memRepo) Save(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

type fakeNormalizer struct {
	option     string
	confidence float64
	err        error
	calls      int
}

func (n *fakeNormalizer) Normalize(_ context.Context, _, _ string, _ []string) (string, float64, error) {
	n.calls++
	return n.option, n.confidence, n.err
}

type fakeReporter struct {
	sent chan Session
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{sent: make(chan Session, 1)}
}

func (r *fakeReporter) SendAssessmentReport(_ context.Context, s Session) error {
	r.sent <- s
	return nil
}

func newTestService(t *testing.T, n Normalizer, rep Reporter) (Service, *memRepo) {
	t.Helper()
	reg, err := protocol.NewDefaultRegistry()
	require.NoError(t, err)
	repo := newMemRepo()
	svc := NewService(repo, NewEngine(reg), n, rep, zap.NewNop().Sugar(), 0.5)
	return svc, repo
}

func TestStartAssessmentEmergencyBypass(t *testing.T) {
	svc, repo := newTestService(t, &fakeNormalizer{}, newFakeReporter())

	turn, err := svc.StartAssessment(context.Background(), uuid.New(),
		[]protocol.EmergencyFlag{protocol.FlagChestPain}, protocol.ModHeadache)
	require.NoError(t, err)

	assert.Nil(t, turn.Session, "emergency bypass must not create a session")
	require.NotNil(t, turn.Emission.Outcome)
	assert.Equal(t, protocol.SeverityRed, turn.Emission.Outcome.Level)
	assert.Empty(t, repo.sessions)
}

func TestStartAssessmentEmitsFirstQuestion(t *testing.T) {
	svc, _ := newTestService(t, &fakeNormalizer{}, newFakeReporter())

	turn, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	require.NotNil(t, turn.Session)
	require.NotNil(t, turn.Emission.Prompt)
	assert.Equal(t, protocol.ModHeadache, turn.Emission.Prompt.ModuleID)
	assert.Equal(t, []string{"Yes", "No"}, turn.Emission.Prompt.Options)
}

// Tapped options resolve locally; the remote classifier must not be called.
func TestSubmitAnswerExactMatchSkipsNormalizer(t *testing.T) {
	n := &fakeNormalizer{}
	rep := newFakeReporter()
	svc, _ := newTestService(t, n, rep)

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	turn, err := svc.SubmitAnswer(context.Background(), start.Session.ID, "yes")
	require.NoError(t, err)

	assert.Equal(t, 0, n.calls)
	require.NotNil(t, turn.Emission.Outcome)
	assert.Equal(t, protocol.SeverityRed, turn.Emission.Outcome.Level)
	require.Len(t, turn.Session.Transcript, 1)
	assert.Equal(t, "Yes", turn.Session.Transcript[0].Answer)
}

func TestSubmitAnswerLowConfidenceReprompts(t *testing.T) {
	n := &fakeNormalizer{option: "Yes", confidence: 0.2}
	svc, _ := newTestService(t, n, newFakeReporter())

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	turn, err := svc.SubmitAnswer(context.Background(), start.Session.ID, "it hurts a lot I guess")
	require.NoError(t, err)

	assert.True(t, turn.Clarify)
	require.NotNil(t, turn.Emission.Prompt)
	assert.Equal(t, start.Emission.Prompt.QuestionID, turn.Emission.Prompt.QuestionID)

	// No state transition happened.
	reloaded, err := svc.GetSession(context.Background(), start.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.QuestionIndex)
	assert.False(t, reloaded.Complete)
	assert.Empty(t, reloaded.Transcript)
}

func TestSubmitAnswerNormalizerErrorReprompts(t *testing.T) {
	n := &fakeNormalizer{err: errors.New("upstream timeout")}
	svc, _ := newTestService(t, n, newFakeReporter())

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModFever)
	require.NoError(t, err)

	turn, err := svc.SubmitAnswer(context.Background(), start.Session.ID, "dunno")
	require.NoError(t, err)
	assert.True(t, turn.Clarify)
	require.NotNil(t, turn.Emission.Prompt)
}

// A normalizer that violates its contract and returns an out-of-set option
// must cause a re-prompt, not a failed session.
func TestSubmitAnswerOutOfSetOptionReprompts(t *testing.T) {
	n := &fakeNormalizer{option: "Banana", confidence: 0.95}
	svc, _ := newTestService(t, n, newFakeReporter())

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	turn, err := svc.SubmitAnswer(context.Background(), start.Session.ID, "something odd")
	require.NoError(t, err)
	assert.True(t, turn.Clarify)
}

func TestSubmitAnswerOnConcludedSession(t *testing.T) {
	svc, _ := newTestService(t, &fakeNormalizer{}, newFakeReporter())

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), start.Session.ID, "Yes")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), start.Session.ID, "No")
	assert.ErrorIs(t, err, ErrSessionConcluded)
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	svc, _ := newTestService(t, &fakeNormalizer{}, newFakeReporter())

	_, err := svc.SubmitAnswer(context.Background(), uuid.New(), "Yes")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReportSentForNonGreenOutcome(t *testing.T) {
	rep := newFakeReporter()
	svc, _ := newTestService(t, &fakeNormalizer{}, rep)

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), start.Session.ID, "Yes")
	require.NoError(t, err)

	select {
	case sent := <-rep.sent:
		require.NotNil(t, sent.Outcome)
		assert.Equal(t, protocol.SeverityRed, sent.Outcome.Level)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a care-team report for a RED outcome")
	}
}

func TestNoReportForGreenOutcome(t *testing.T) {
	rep := newFakeReporter()
	svc, _ := newTestService(t, &fakeNormalizer{}, rep)

	start, err := svc.StartAssessment(context.Background(), uuid.New(), nil, protocol.ModHeadache)
	require.NoError(t, err)

	for _, a := range []string{"No", "No", "Mild"} {
		_, err = svc.SubmitAnswer(context.Background(), start.Session.ID, a)
		require.NoError(t, err)
	}

	select {
	case <-rep.sent:
		t.Fatal("GREEN outcome must not notify the care team")
	case <-time.After(100 * time.Millisecond):
	}
}
