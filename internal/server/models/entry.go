package models

import "time"

// Entry is a stored (locality, term) pair: the local word for bread at a place.
// Entries are append-only; ID and CreatedAt are assigned by the store.
type Entry struct {
	ID        string    `json:"-"`
	Locality  string    `json:"locality"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"-"`
}
