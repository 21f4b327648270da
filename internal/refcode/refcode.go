// Package refcode generates human-shareable confirmation numbers.
package refcode

import (
	"crypto/rand"
	"strings"
)

const (
	prefix   = "#SR-"
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLen  = 8
)

// New returns a random confirmation number of the form #SR-XXXXXXXX.
// No uniqueness guarantee: collision avoidance is the caller's concern.
// Prefer FromID when a unique record identifier exists.
func New() string {
	buf := make([]byte, codeLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to a fixed marker rather than panic in a web handler.
		return prefix + "00000000"
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, b := range buf {
		sb.WriteByte(alphabet[int(b)%len(alphabet)])
	}
	return sb.String()
}

// FromID derives a confirmation number deterministically from a unique
// record identifier, taking its first 8 alphanumeric characters. Falls back
// to New when the identifier has too few usable characters.
func FromID(id string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	n := 0
	for _, r := range strings.ToUpper(id) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
			n++
			if n == codeLen {
				return sb.String()
			}
		}
	}
	return New()
}
