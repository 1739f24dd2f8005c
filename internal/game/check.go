// internal/game/check.go
//
// Guess evaluation helpers.
//
// Comparison is an exact match under Unicode case folding. Surrounding
// whitespace is deliberately left alone: "pika " and "pika" differ.

package game

import (
	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/youpv/whosthatpokemon/internal/catalog"
)

// CheckGuess reports whether guess names the record, ignoring case.
func CheckGuess(guess string, rec catalog.Record) bool {
	fold := cases.Fold()
	return fold.String(guess) == fold.String(rec.Name)
}

// IsClose reports whether an incorrect guess is within a small edit
// distance of the record name. Used only as a hint.
func IsClose(guess string, rec catalog.Record) bool {
	if guess == "" || CheckGuess(guess, rec) {
		return false
	}
	fold := cases.Fold()
	name := fold.String(rec.Name)
	dist := levenshtein.ComputeDistance(fold.String(guess), name)
	return dist <= closeLimit(len([]rune(name)))
}

// closeLimit scales the tolerated distance with name length.
func closeLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// DisplayName upper-cases a name for the reveal banner.
func DisplayName(name string) string {
	return cases.Upper(language.Und).String(name)
}
