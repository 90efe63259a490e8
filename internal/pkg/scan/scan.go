// Package scan resolves raw scanner payloads into validated melinia codes.
//
// Badge QR codes encode either the bare code or a small JSON object with a
// user_id (older badges used id). Manual entry from the search box arrives
// as free text. Both funnel through Resolve, the only gate between operator
// input and the lookup layer.
package scan

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
)

type Kind int

const (
	// KindRaw means the payload was treated as a bare code.
	KindRaw Kind = iota
	// KindStructured means the code was extracted from a JSON object.
	KindStructured
)

// Payload is the tagged result of parsing one scanner input.
type Payload struct {
	Kind Kind
	Code string
}

var errNoCodeField = errors.New("scanned JSON carries neither user_id nor id")

// Resolve parses a raw scanner payload and returns the normalized code it
// carries. Payloads that look like JSON objects are decoded and the
// user_id (or id) field extracted; anything else is taken as the code
// itself. Malformed codes are rejected here, before any lookup happens.
func Resolve(raw string) (Payload, error) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			UserID string `json:"user_id"`
			ID     string `json:"id"`
		}
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			candidate := obj.UserID
			if candidate == "" {
				candidate = obj.ID
			}
			if candidate == "" {
				return Payload{}, errNoCodeField
			}

			code, err := identifier.Normalize(candidate)
			if err != nil {
				return Payload{}, err
			}

			return Payload{Kind: KindStructured, Code: code}, nil
		}
	}

	code, err := identifier.Normalize(trimmed)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Kind: KindRaw, Code: code}, nil
}
