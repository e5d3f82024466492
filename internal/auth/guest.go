package auth

import (
	"strings"

	"github.com/google/uuid"
)

// GuestHeader carries the anonymous visitor id used for guest carts and favorites.
const GuestHeader = "X-Guest-ID"

// NewGuestID returns a fresh random visitor id.
func NewGuestID() string {
	return uuid.NewString()
}

// NormalizeGuestID returns the canonical form of a visitor id, or "" when it is not a valid UUID.
func NormalizeGuestID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil || parsed == uuid.Nil {
		return ""
	}
	return parsed.String()
}

// IsValidGuestID reports whether raw is a usable visitor id.
func IsValidGuestID(raw string) bool {
	return NormalizeGuestID(raw) != ""
}
