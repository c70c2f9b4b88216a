package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidID reports whether s is a 24 character hexadecimal document identifier.
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// NormalizeID returns the canonical lowercase form of a valid identifier.
func NormalizeID(s string) string {
	return strings.ToLower(s)
}

// NewID returns a fresh document identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// Now returns the current UTC time truncated to the millisecond precision of stored timestamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
