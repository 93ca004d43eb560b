package gameid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lox/teenpatti/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	gen := NewGenerator(nil)
	prev := gen.Generate()
	for range 10 {
		next := gen.Generate()
		assert.Less(t, strings.Compare(prev, next), 0, "IDs not sorted: %s >= %s", prev, next)
		prev = next
	}
}

func TestGeneratorWithSeededSource(t *testing.T) {
	gen := NewGenerator(randutil.New(42))
	seen := make(map[string]bool)
	for range 5 {
		id := gen.Generate()
		require.NoError(t, Validate(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, strings.Repeat("0", Length), Encode(uuid.Nil))

	var max uuid.UUID
	for i := range max {
		max[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), Encode(max))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid ID", id: "01h5n0et5q6mt3v7ms1234abcd"},
		{name: "too short", id: "01h5n0et5q6mt3v7ms123", wantErr: true},
		{name: "too long", id: "01h5n0et5q6mt3v7ms1234abcdef", wantErr: true},
		{name: "first char too high", id: "81h5n0et5q6mt3v7ms1234abcd", wantErr: true},
		{name: "invalid character", id: "01h5n0et5q6mt3v7ms1234abci", wantErr: true},
		{name: "uppercase not allowed", id: "01H5N0ET5Q6MT3V7MS1234ABCD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
