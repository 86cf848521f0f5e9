package protocol

import "fmt"

// Registry is the immutable, load-once module table. Construction validates
// every module; a broken protocol refuses to load rather than degrading
// mid-session. Concurrent readers are safe because nothing mutates after
// NewRegistry returns.
type Registry struct {
	modules map[string]Module
	total   int
}

// NewRegistry validates the given modules and builds the registry. The
// GENERIC fallback module must be present.
func NewRegistry(modules []Module) (*Registry, error) {
	byID := make(map[string]Module, len(modules))
	total := 0
	for _, m := range modules {
		if m.ID == "" {
			return nil, fmt.Errorf("module %q: missing id", m.Name)
		}
		if _, dup := byID[m.ID]; dup {
			return nil, fmt.Errorf("module %s: duplicate id", m.ID)
		}
		if len(m.Questions) == 0 {
			return nil, fmt.Errorf("module %s: no questions", m.ID)
		}
		for i, q := range m.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, fmt.Errorf("module %s: question %d (%s): %w", m.ID, i, q.ID, err)
			}
		}
		byID[m.ID] = m
		total += len(m.Questions)
	}
	if _, ok := byID[ModGeneric]; !ok {
		return nil, fmt.Errorf("fallback module %s is not registered", ModGeneric)
	}
	return &Registry{modules: byID, total: total}, nil
}

// NewDefaultRegistry loads the built-in clinical protocol set.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(Modules())
}

func validateQuestion(q Question) error {
	if len(q.Options) == 0 {
		return fmt.Errorf("no options")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt] {
			return fmt.Errorf("option %q declared twice", opt)
		}
		seen[opt] = true
		tr, ok := q.Logic[opt]
		if !ok {
			return fmt.Errorf("option %q has no logic entry", opt)
		}
		switch tr.Kind {
		case TransitionAdvance:
		case TransitionJump:
			if tr.TargetModule == "" {
				return fmt.Errorf("option %q: jump without target module", opt)
			}
		case TransitionTerminate:
			if tr.Card == nil {
				return fmt.Errorf("option %q: terminate without action card", opt)
			}
			if tr.Card.Level.Rank() < 0 {
				return fmt.Errorf("option %q: action card has unknown level %q", opt, tr.Card.Level)
			}
		default:
			return fmt.Errorf("option %q: unknown transition kind %q", opt, tr.Kind)
		}
	}
	for opt := range q.Logic {
		if !seen[opt] {
			return fmt.Errorf("logic entry %q does not match any declared option", opt)
		}
	}
	return nil
}

// Get returns the module for id, falling back to GENERIC when the id is not
// registered. Unknown symptom codes degrade to the generic questionnaire
// instead of failing the session.
func (r *Registry) Get(id string) Module {
	if m, ok := r.modules[id]; ok {
		return m
	}
	return r.modules[ModGeneric]
}

// Has reports whether id is registered without triggering the fallback.
func (r *Registry) Has(id string) bool {
	_, ok := r.modules[id]
	return ok
}

// TotalQuestions is the sum of question counts over all modules. With the
// one-way-ticket rule it bounds the number of steps any session can take.
func (r *Registry) TotalQuestions() int { return r.total }
