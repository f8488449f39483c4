// Package services holds the server's business logic. BreadService is the
// bread directory: lookups by exact locality, append-only submissions, and
// seeding from a JSON file. Store failures surface as
// common.ErrStoreUnavailable; empty input as common.ErrValidation.
package services
