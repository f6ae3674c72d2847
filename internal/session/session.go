// Package session implements the word-by-word practice state machine.
//
// The machine never sleeps. Operations that need a delayed follow-up return a
// Transition; the caller waits Transition.After and then calls Fire with the
// transition's generation. Every intent bumps the generation, so a follow-up
// scheduled before a newer intent is ignored when it fires.
package session

import (
	"strings"
	"time"
)

const (
	// CorrectDelay is how long feedback for a correct answer stays up before
	// the advance transition starts.
	CorrectDelay = 2000 * time.Millisecond
	// SkipDelay is the length of the advance transition.
	SkipDelay = 300 * time.Millisecond
)

// Phase is the machine's visible state.
type Phase int

const (
	PhaseIdle      Phase = iota // Waiting for an attempt
	PhaseCorrect                // Correct feedback shown, advance pending
	PhaseIncorrect              // Incorrect feedback shown, same word
	PhaseSkipping               // Advancing to the next word
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCorrect:
		return "correct-transitioning"
	case PhaseIncorrect:
		return "incorrect-feedback"
	case PhaseSkipping:
		return "skipping"
	default:
		return "unknown"
	}
}

// TransitionKind tells Fire what a pending follow-up does.
type TransitionKind int

const (
	// KindBeginAdvance starts the skip transition after correct feedback.
	KindBeginAdvance TransitionKind = iota
	// KindAdvance moves to the next word.
	KindAdvance
)

// Transition is a delayed follow-up the caller must schedule.
type Transition struct {
	Generation uint64
	Kind       TransitionKind
	After      time.Duration
}

// Outcome is the result of a submitted attempt.
type Outcome struct {
	Word      string
	Attempt   string
	Correct   bool
	Accepted  bool
	Follow    *Transition
	WordIndex int
}

// State is a read-only copy of the machine.
type State struct {
	WordIndex       int
	Word            string
	CurrentAttempt  *string
	FeedbackVisible bool
	Transitioning   bool
	Phase           Phase
	Generation      uint64
}

// Machine holds the current word and transient feedback flags.
type Machine struct {
	words           []string
	index           int
	attempt         *string
	feedbackVisible bool
	transitioning   bool
	phase           Phase
	generation      uint64
}

// New returns a machine over words positioned at index. An index outside the
// list is kept as-is; Word falls back to the first entry for it.
func New(words []string, index int, lastAttempt *string) *Machine {
	m := &Machine{
		words: append([]string(nil), words...),
		index: index,
	}
	if lastAttempt != nil {
		a := *lastAttempt
		m.attempt = &a
	}
	return m
}

// Word returns the word being practiced.
func (m *Machine) Word() string {
	if len(m.words) == 0 {
		return ""
	}
	if m.index < 0 || m.index >= len(m.words) {
		return m.words[0]
	}
	return m.words[m.index]
}

// Index returns the persisted word position.
func (m *Machine) Index() int {
	return m.index
}

// Words returns the practice list.
func (m *Machine) Words() []string {
	return append([]string(nil), m.words...)
}

// LastAttempt returns the current attempt, nil when cleared.
func (m *Machine) LastAttempt() *string {
	if m.attempt == nil {
		return nil
	}
	a := *m.attempt
	return &a
}

// State returns a snapshot of the machine.
func (m *Machine) State() State {
	return State{
		WordIndex:       m.index,
		Word:            m.Word(),
		CurrentAttempt:  m.LastAttempt(),
		FeedbackVisible: m.feedbackVisible,
		Transitioning:   m.transitioning,
		Phase:           m.phase,
		Generation:      m.generation,
	}
}

// Submit scores text against the current word. Attempts made while the
// machine is transitioning are not accepted.
func (m *Machine) Submit(text string) Outcome {
	word := m.Word()
	if m.transitioning {
		return Outcome{Word: word, Attempt: text, WordIndex: m.index}
	}
	m.generation++
	correct := Matches(word, text)
	a := text
	m.attempt = &a
	m.feedbackVisible = true
	out := Outcome{
		Word:      word,
		Attempt:   text,
		Correct:   correct,
		Accepted:  true,
		WordIndex: m.index,
	}
	if correct {
		m.phase = PhaseCorrect
		out.Follow = &Transition{Generation: m.generation, Kind: KindBeginAdvance, After: CorrectDelay}
		return out
	}
	m.phase = PhaseIncorrect
	return out
}

// Skip clears feedback and starts the advance transition.
func (m *Machine) Skip() Transition {
	m.generation++
	m.attempt = nil
	m.feedbackVisible = false
	m.transitioning = true
	m.phase = PhaseSkipping
	return Transition{Generation: m.generation, Kind: KindAdvance, After: SkipDelay}
}

// Dismiss hides feedback and clears the attempt.
func (m *Machine) Dismiss() {
	m.generation++
	m.attempt = nil
	m.feedbackVisible = false
	m.transitioning = false
	m.phase = PhaseIdle
}

// Jump moves to word if it is in the list. It reports whether it moved.
func (m *Machine) Jump(word string) bool {
	for i, w := range m.words {
		if strings.EqualFold(w, word) {
			m.generation++
			m.index = i
			m.attempt = nil
			m.feedbackVisible = false
			m.transitioning = false
			m.phase = PhaseIdle
			return true
		}
	}
	return false
}

// Fire applies a pending transition. Stale generations are ignored and
// return nil. A KindBeginAdvance returns the follow-up advance transition.
func (m *Machine) Fire(t Transition) *Transition {
	if t.Generation != m.generation {
		return nil
	}
	switch t.Kind {
	case KindBeginAdvance:
		next := m.Skip()
		return &next
	case KindAdvance:
		m.advance()
	}
	return nil
}

func (m *Machine) advance() {
	if len(m.words) > 0 {
		idx := m.index
		if idx < 0 || idx >= len(m.words) {
			idx = 0
		}
		m.index = (idx + 1) % len(m.words)
	}
	m.attempt = nil
	m.feedbackVisible = false
	m.transitioning = false
	m.phase = PhaseIdle
}

// Matches compares an attempt with the target word, ignoring case.
func Matches(word, attempt string) bool {
	return strings.ToLower(word) == strings.ToLower(attempt)
}
