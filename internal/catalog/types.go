// internal/catalog/types.go
//
// Record and error types returned by the catalog client.

package catalog

import (
	"fmt"
	"net/http"
)

// Record is the catalog entry for one creature.
// Immutable once fetched; the active round owns it.
type Record struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`     // canonical name, compared case-insensitively
	ImageURL string `json:"imageUrl"` // official artwork
}

// apiPokemon mirrors the subset of the PokéAPI /pokemon/{id} body we read.
type apiPokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		Other struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// NetworkError is the only failure kind of the catalog client.
// It covers transport failures (Status == 0), non-success responses and
// bodies that do not describe a usable record.
type NetworkError struct {
	ID     int   // requested identifier
	Status int   // HTTP status, 0 when no response was received
	Err    error // underlying cause
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog: fetch %d: %d %s: %v", e.ID, e.Status, http.StatusText(e.Status), e.Err)
	}
	return fmt.Sprintf("catalog: fetch %d: %v", e.ID, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
