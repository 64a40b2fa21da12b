// Package slugx provides small slug utilities used across the project.
package slugx

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
)

// Derive lowercases the input, maps runs of non-alphanumeric runes to single
// hyphens and trims leading/trailing hyphens. Non-ASCII letters are kept as-is
// after lowercasing; the backing store treats slugs as opaque unique strings.
func Derive(s string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// RandomSuffix returns n random bytes hex-encoded, for slug collision retries.
func RandomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the signature simple.
		return strings.Repeat("0", n*2)
	}
	return hex.EncodeToString(buf)
}
