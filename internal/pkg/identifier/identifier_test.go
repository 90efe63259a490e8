package identifier

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "canonical code", raw: "MLNUAB12CD", want: "MLNUAB12CD"},
		{name: "lowercase input", raw: "mlnuab12cd", want: "MLNUAB12CD"},
		{name: "mixed case with whitespace", raw: "  mLnUx7k2Qz\n", want: "MLNUX7K2QZ"},
		{name: "all digits suffix", raw: "MLNU123456", want: "MLNU123456"},
		{name: "empty", raw: "", wantErr: true},
		{name: "wrong prefix", raw: "MLNX123456", wantErr: true},
		{name: "suffix too short", raw: "MLNU12345", wantErr: true},
		{name: "suffix too long", raw: "MLNU1234567", wantErr: true},
		{name: "symbol in suffix", raw: "MLNU12-456", wantErr: true},
		{name: "embedded whitespace", raw: "MLNU 12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.raw, "error should name the offending value")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Valid must agree exactly with the documented pattern applied after
// trim and uppercase.
func TestValidMatchesPattern(t *testing.T) {
	reference := regexp.MustCompile(`^MLNU[A-Z0-9]{6}$`)

	inputs := []string{
		"MLNUAB12CD", "mlnuab12cd", " MLNUAB12CD ", "MLNU", "", "MLNUABCDEFG",
		"MLNUABCDE", "XLNUAB12CD", "MLNUAB12C!", "mlnu000000", "MLNUZZZZZZ",
	}
	for _, in := range inputs {
		normalized := strings.ToUpper(strings.TrimSpace(in))
		assert.Equal(t, reference.MatchString(normalized), Valid(in), "input %q", in)
	}
}

func TestNewGeneratesValidCodes(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := New()
		require.True(t, Valid(code), "generated code %q", code)
		seen[code] = true
	}

	// 200 draws from a 36^6 space should not collide.
	assert.Greater(t, len(seen), 190)
}
