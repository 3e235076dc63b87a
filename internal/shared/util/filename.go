package util

import (
	"errors"
	"strings"
)

// MaxKeyFileName caps the readable part of a store file name.
const MaxKeyFileName = 96

// ErrInvalidKey rejects empty keys and keys that try to climb out of the store directory.
var ErrInvalidKey = errors.New("invalid store key")

// KeyFileName maps a storage key to a single path segment. Runes outside
// [A-Za-z0-9._-] become '_' and the result is truncated to MaxKeyFileName.
// Callers that need distinct files for distinct keys should add a digest
// whenever the result differs from key.
func KeyFileName(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	var b strings.Builder
	for _, r := range key {
		if b.Len() >= MaxKeyFileName {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if strings.Trim(name, "._") == "" {
		return "", ErrInvalidKey
	}
	return name, nil
}
