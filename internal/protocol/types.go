package protocol

// Severity orders triage outcomes from most to least urgent.
type Severity string

const (
	SeverityRed    Severity = "RED"
	SeverityAmber  Severity = "AMBER"
	SeverityYellow Severity = "YELLOW"
	SeverityGreen  Severity = "GREEN"
)

// Rank returns a comparable urgency, higher meaning more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityRed:
		return 3
	case SeverityAmber:
		return 2
	case SeverityYellow:
		return 1
	case SeverityGreen:
		return 0
	}
	return -1
}

// ActionCard is the leveled recommendation shown to the patient when an
// assessment concludes.
type ActionCard struct {
	Title  string   `json:"title"`
	Action string   `json:"action"`
	Timing string   `json:"timing"`
	Script string   `json:"script"`
	Level  Severity `json:"level"`
}

// TransitionKind discriminates what answering a question does.
type TransitionKind string

const (
	TransitionAdvance   TransitionKind = "NEXT_QUESTION"
	TransitionJump      TransitionKind = "JUMP_MODULE"
	TransitionTerminate TransitionKind = "SHOW_CARD"
)

// Transition is the effect of one answer: move to the next question, hand off
// to another module, or end the assessment with an action card.
type Transition struct {
	Kind         TransitionKind
	TargetModule string      // JUMP_MODULE only
	Card         *ActionCard // SHOW_CARD only
}

// Next advances to the following question in the current module.
func Next() Transition { return Transition{Kind: TransitionAdvance} }

// JumpTo abandons the current module and starts moduleID at its first
// question.
func JumpTo(moduleID string) Transition {
	return Transition{Kind: TransitionJump, TargetModule: moduleID}
}

// Show ends the assessment with the given card.
func Show(card ActionCard) Transition {
	return Transition{Kind: TransitionTerminate, Card: &card}
}

// Question carries a prompt, its closed option set (ordered for display) and
// a logic table keyed by exact option string. Every option must have exactly
// one logic entry; the registry rejects modules that violate this.
type Question struct {
	ID      string
	Text    string
	Options []string
	Logic   map[string]Transition
}

// Module is a named, ordered question list for one symptom.
type Module struct {
	ID        string
	Name      string
	Questions []Question
}
