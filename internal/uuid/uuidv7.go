// Package uuid generates the opaque tokens that tie installment rows together
// and tag HTTP requests.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 string. UUIDv7 is time-ordered, so installment
// groups created later sort after earlier ones.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the clock sequence can't be read
		return googleuuid.NewString()
	}
	return id.String()
}

// NewGroupID returns a fresh installment group identifier.
func NewGroupID() string {
	return New()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
