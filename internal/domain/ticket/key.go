package ticket

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

var keyPrefixPattern = regexp.MustCompile(`^[A-Z]{2,10}$`)

// KeyGenerator proposes the next unused ticket key for a project prefix.
// The store's unique index on the key remains the authoritative guard.
type KeyGenerator interface {
	Generate(ctx context.Context, prefix string) (string, error)
}

// ValidatePrefix checks that prefix is 2 to 10 uppercase letters.
func ValidatePrefix(prefix string) error {
	if !keyPrefixPattern.MatchString(prefix) {
		return fmt.Errorf("project prefix must be 2 to 10 uppercase letters: %q", prefix)
	}
	return nil
}

// FormatKey renders a key such as PROJ-007. Numbers above 999 keep all digits.
func FormatKey(prefix string, number int) string {
	return fmt.Sprintf("%s-%03d", prefix, number)
}

// ParseKeyNumber extracts the numeric suffix of key when it belongs to prefix.
func ParseKeyNumber(prefix, key string) (int, bool) {
	if len(key) <= len(prefix)+1 || key[:len(prefix)] != prefix || key[len(prefix)] != '-' {
		return 0, false
	}
	digits := key[len(prefix)+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextKeyNumber returns one more than the highest suffix among keys of prefix.
func NextKeyNumber(prefix string, keys []string) int {
	highest := 0
	for _, k := range keys {
		if n, ok := ParseKeyNumber(prefix, k); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}
