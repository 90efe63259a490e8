// Package identifier implements the Melinia code scheme shared by
// participants and teams: "MLNU" followed by 6 alphanumeric characters.
package identifier

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// Prefix is common to every participant and team code.
const Prefix = "MLNU"

const suffixLen = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var pattern = regexp.MustCompile(`^MLNU[A-Z0-9]{6}$`)

// Normalize trims and uppercases a raw code and validates it against the
// scheme. The returned error names the offending value so it can be shown
// to an operator as-is.
func Normalize(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !pattern.MatchString(code) {
		return "", fmt.Errorf("%q is not a valid melinia code (want %s followed by %d letters or digits)", raw, Prefix, suffixLen)
	}

	return code, nil
}

// Valid reports whether raw normalizes to a well-formed code.
func Valid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

// New generates a fresh code. Collisions are left to the unique constraint
// on the codes column.
func New() string {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("identifier.New -> rand.Read -> %v", err))
	}

	suffix := make([]byte, suffixLen)
	for i, b := range buf {
		suffix[i] = alphabet[int(b)%len(alphabet)]
	}

	return Prefix + string(suffix)
}
