// Package iphash derives a one-way, salted identifier from a client IP so
// abuse patterns can be correlated without storing raw addresses.
package iphash

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MinSaltLength is the shortest salt accepted for hashing, in characters.
const MinSaltLength = 32

// Hasher hashes client IPs. The zero value is disabled.
type Hasher struct {
	enabled bool
	salt    string
}

// New returns a Hasher. When enabled with a salt shorter than MinSaltLength
// a warning is logged and hashing stays off; submissions are never blocked.
func New(enabled bool, salt string) *Hasher {
	if !enabled {
		return &Hasher{}
	}
	if !SaltLongEnough(salt) {
		slog.Warn("ip hashing disabled: salt is not secure", "min_length", MinSaltLength)
		return &Hasher{}
	}
	return &Hasher{enabled: true, salt: salt}
}

// SaltLongEnough reports whether salt has at least MinSaltLength characters.
func SaltLongEnough(salt string) bool {
	return utf8.RuneCountInString(salt) >= MinSaltLength
}

// Enabled reports whether Hash can return a value.
func (h *Hasher) Enabled() bool { return h != nil && h.enabled }

// Hash returns hex(SHA-256(ip + salt)), or "" when hashing is off or ip is blank.
func (h *Hasher) Hash(ip string) string {
	if !h.Enabled() || strings.TrimSpace(ip) == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])
}
