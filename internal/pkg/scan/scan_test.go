package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
		wantCode string
		wantErr  bool
	}{
		{name: "bare code", raw: "MLNUAB12CD", wantKind: KindRaw, wantCode: "MLNUAB12CD"},
		{name: "bare code lowercase", raw: "mlnuab12cd", wantKind: KindRaw, wantCode: "MLNUAB12CD"},
		{name: "json user_id", raw: `{"user_id":"MLNUAB12CD"}`, wantKind: KindStructured, wantCode: "MLNUAB12CD"},
		{name: "json legacy id", raw: `{"id":"mlnuab12cd"}`, wantKind: KindStructured, wantCode: "MLNUAB12CD"},
		{name: "json user_id wins over id", raw: `{"user_id":"MLNUAB12CD","id":"MLNUZZ99ZZ"}`, wantKind: KindStructured, wantCode: "MLNUAB12CD"},
		{name: "json with extra fields", raw: `{"user_id":"MLNUX7K2QZ","name":"Priya"}`, wantKind: KindStructured, wantCode: "MLNUX7K2QZ"},
		{name: "json without code field", raw: `{"name":"Priya"}`, wantErr: true},
		{name: "json with malformed code", raw: `{"user_id":"NOPE"}`, wantErr: true},
		{name: "garbage", raw: "hello world", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "truncated json falls back to raw and fails", raw: `{"user_id":"MLNUAB12CD`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

// A structured payload and the bare string must resolve to the same code.
func TestResolveEquivalence(t *testing.T) {
	fromJSON, err := Resolve(`{"user_id":"MLNUAB12CD"}`)
	require.NoError(t, err)

	fromRaw, err := Resolve("MLNUAB12CD")
	require.NoError(t, err)

	assert.Equal(t, fromRaw.Code, fromJSON.Code)
}
