package triage

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncolife-triage/internal/protocol"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	reg, err := protocol.NewDefaultRegistry()
	require.NoError(t, err)
	return NewEngine(reg)
}

func newSession(moduleID string) Session {
	return Session{
		ID:             uuid.New(),
		PatientID:      uuid.New(),
		ModuleID:       moduleID,
		QuestionIndex:  0,
		VisitedModules: []string{moduleID},
	}
}

// The worst-headache red flag ends the assessment after a single question.
func TestHeadacheWorstEverIsRed(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModHeadache)

	next, em, err := e.Advance(s, "Yes")
	require.NoError(t, err)
	require.NotNil(t, em.Outcome)
	assert.Nil(t, em.Prompt)
	assert.Equal(t, protocol.SeverityRed, em.Outcome.Level)
	assert.True(t, next.Complete)
}

// No red flags and a mild rating runs through all three headache questions
// and lands on the monitor-at-home outcome.
func TestHeadacheMildIsGreenAfterThreeQuestions(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModHeadache)

	answers := []string{"No", "No", "Mild"}
	var em Emission
	var err error
	for i, a := range answers {
		s, em, err = e.Advance(s, a)
		require.NoError(t, err, "answer %d", i)
	}

	require.NotNil(t, em.Outcome)
	assert.Equal(t, protocol.SeverityGreen, em.Outcome.Level)
	assert.True(t, s.Complete)
}

// A swollen, red, or warm leg is a possible clot: immediate RED without the
// second question being asked.
func TestLegPainSwollenIsImmediateRed(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModLegPain)

	next, em, err := e.Advance(s, "Yes")
	require.NoError(t, err)
	require.NotNil(t, em.Outcome)
	assert.Equal(t, protocol.SeverityRed, em.Outcome.Level)
	assert.Equal(t, "Possible Blood Clot", em.Outcome.Title)
	assert.True(t, next.Complete)
	assert.Equal(t, 0, next.QuestionIndex)
}

// A module whose last question only advances must fall back to GREEN rather
// than erroring out.
func TestModuleExhaustionDefaultsToGreen(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModEye)

	answers := []string{"No", "No", "No", "Mild", "No"}
	var em Emission
	var err error
	for _, a := range answers {
		s, em, err = e.Advance(s, a)
		require.NoError(t, err)
	}

	require.NotNil(t, em.Outcome)
	assert.Equal(t, protocol.SeverityGreen, em.Outcome.Level)
	assert.Equal(t, "Monitor Symptoms", em.Outcome.Title)
}

// Unknown module ids degrade to the generic questionnaire, which still
// yields a well-formed first question.
func TestStartUnknownModuleFallsBackToGeneric(t *testing.T) {
	e := newTestEngine(t)

	moduleID, prompt := e.Start("XYZ-999")
	assert.Equal(t, protocol.ModGeneric, moduleID)
	assert.NotEmpty(t, prompt.Text)
	assert.NotEmpty(t, prompt.Options)
}

func TestJumpSwitchesModuleAtFirstQuestion(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModNausea)
	s.QuestionIndex = 4 // "Have you vomited?"

	next, em, err := e.Advance(s, "Yes")
	require.NoError(t, err)
	require.NotNil(t, em.Prompt)
	assert.Equal(t, protocol.ModVomiting, next.ModuleID)
	assert.Equal(t, 0, next.QuestionIndex)
	assert.Equal(t, protocol.ModVomiting, em.Prompt.ModuleID)
	assert.Contains(t, next.VisitedModules, protocol.ModNausea)
	assert.Contains(t, next.VisitedModules, protocol.ModVomiting)
}

// Once a module has been assessed it is never re-entered: a jump back
// degrades to advancing the current module.
func TestJumpToVisitedModuleAdvancesInstead(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModNausea)
	s.QuestionIndex = 4
	s.VisitedModules = []string{protocol.ModVomiting, protocol.ModNausea}

	next, em, err := e.Advance(s, "Yes")
	require.NoError(t, err)
	require.NotNil(t, em.Prompt)
	assert.Equal(t, protocol.ModNausea, next.ModuleID)
	assert.Equal(t, 5, next.QuestionIndex)
}

func TestAdvanceOnConcludedSession(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModHeadache)
	s.Complete = true

	_, _, err := e.Advance(s, "Yes")
	assert.ErrorIs(t, err, ErrSessionConcluded)
}

func TestAdvanceRejectsOutOfSetAnswer(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModHeadache)

	_, _, err := e.Advance(s, "Maybe")
	assert.ErrorIs(t, err, ErrOptionNotAllowed)
}

// Advance is a pure function: identical inputs give identical outputs.
func TestAdvanceIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModDehydration)

	s1, em1, err1 := e.Advance(s, "Dark")
	s2, em2, err2 := e.Advance(s, "Dark")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, em1, em2)
}

// Every answer path must terminate within the sum of all modules' question
// counts, which the one-way-ticket rule guarantees.
func TestAllPathsTerminateWithinBound(t *testing.T) {
	reg, err := protocol.NewDefaultRegistry()
	require.NoError(t, err)
	e := NewEngine(reg)
	bound := reg.TotalQuestions()

	rng := rand.New(rand.NewSource(1))
	for _, m := range protocol.Modules() {
		for walk := 0; walk < 200; walk++ {
			s := newSession(m.ID)
			steps := 0
			for !s.Complete {
				require.LessOrEqual(t, steps, bound,
					"module %s: walk exceeded termination bound", m.ID)
				prompt, err := e.CurrentPrompt(s)
				require.NoError(t, err)
				answer := prompt.Options[rng.Intn(len(prompt.Options))]
				s, _, err = e.Advance(s, answer)
				require.NoError(t, err)
				steps++
			}
			require.NotNil(t, s.Outcome)
		}
	}
}

func TestCurrentPromptOnConcludedSession(t *testing.T) {
	e := newTestEngine(t)
	s := newSession(protocol.ModHeadache)
	s.Complete = true

	_, err := e.CurrentPrompt(s)
	assert.True(t, errors.Is(err, ErrSessionConcluded))
}
