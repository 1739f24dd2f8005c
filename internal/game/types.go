// internal/game/types.go
//
// Core type definitions for the round controller.
// Defines:
//   - State: lifecycle position of the current round (loading/in_progress/revealed).
//   - Round: state owned by a single play cycle.
//   - Snapshot: the read-only view handed to the presentation layer.
//   - Outcome: result of a single guess.

package game

import (
	"errors"
	"fmt"

	"github.com/youpv/whosthatpokemon/internal/catalog"
)

// MaxGuesses is the guess cap after which a round is force-revealed.
const MaxGuesses = 5

var (
	// ErrEmptyGuess is returned for an empty submission; nothing changes.
	ErrEmptyGuess = errors.New("empty guess")
	// ErrNotAccepting is returned when the current state does not allow the
	// action: a guess outside a round in progress, or a next round while one
	// is still being played.
	ErrNotAccepting = errors.New("not accepted in current round state")
)

// State represents where the current round sits in its lifecycle.
type State int

const (
	StateLoading State = iota
	StateInProgress
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in_progress"
	case StateRevealed:
		return "revealed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText renders the state as its string name in JSON.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a state name produced by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loading":
		*s = StateLoading
	case "in_progress":
		*s = StateInProgress
	case "revealed":
		*s = StateRevealed
	default:
		return fmt.Errorf("unknown state %q", b)
	}
	return nil
}

// Round holds the state of a single play cycle. It is replaced wholesale
// when a new round starts.
type Round struct {
	Number   uint64          // increments each time the controller enters Loading
	Record   *catalog.Record // nil while loading
	Revealed bool            // once true, never reverts within the round
	Guesses  []string        // submitted guesses in order, at most MaxGuesses
}

// Snapshot is a copy of the visible game state.
// Name and RecordID are only populated once the round is revealed.
type Snapshot struct {
	Seq         uint64   `json:"seq"` // increases with every transition
	State       State    `json:"state"`
	Round       uint64   `json:"round"`
	RecordID    int      `json:"recordId,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Name        string   `json:"name,omitempty"` // upper-cased display name
	Revealed    bool     `json:"revealed"`
	Guesses     []string `json:"guesses"`
	GuessesLeft int      `json:"guessesLeft"`
	Score       int      `json:"score"`
	HighScore   int      `json:"highScore"`
}

// Outcome reports the evaluation of one guess.
type Outcome struct {
	Correct  bool     `json:"correct"`
	Close    bool     `json:"close"` // incorrect but within a few edits of the name
	Snapshot Snapshot `json:"snapshot"`
}
