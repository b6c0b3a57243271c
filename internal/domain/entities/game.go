package entities

// MaxLives is the number of lives a session starts with.
const MaxLives = 2

// Phase - state of the current question in a session.
type Phase string

const (
	PhaseIdle      Phase = "idle"      // waiting for an answer
	PhaseVerifying Phase = "verifying" // incorrect answer being resolved, input ignored
	PhaseAdvancing Phase = "advancing" // correct answer, moving to the next item
	PhaseGameOver  Phase = "game_over" // lives exhausted (terminal)
	PhaseCompleted Phase = "completed" // all items answered (terminal)
)

// IsTerminal reports whether the session is over.
func (p Phase) IsTerminal() bool {
	return p == PhaseGameOver || p == PhaseCompleted
}

// Verdict is the outcome of submitting an answer.
type Verdict string

const (
	VerdictIgnored   Verdict = "ignored"   // another answer in flight or session over
	VerdictCorrect   Verdict = "correct"   // answer matched the item
	VerdictIncorrect Verdict = "incorrect" // answer did not match, a life was lost
)

// OptionMark is the feedback shown on a selected option.
type OptionMark string

const (
	MarkNone      OptionMark = "none"
	MarkCorrect   OptionMark = "correct"
	MarkIncorrect OptionMark = "incorrect"
)

// LifeState is the state of a single life indicator.
type LifeState string

const (
	LifeFull LifeState = "full" // red heart
	LifeLost LifeState = "lost" // black heart
)

// PopupKind identifies the popup shown at the end of a session.
type PopupKind string

const (
	PopupCompleted PopupKind = "completed"
	PopupGameOver  PopupKind = "game_over"
)

// Snapshot is a read-only copy of a session state.
type Snapshot struct {
	Index     int   // index of the current item, Total when complete
	Total     int   // number of items in the session
	Lives     int   // remaining lives
	Verifying bool  // an answer is in flight
	Phase     Phase // state of the current question
}
