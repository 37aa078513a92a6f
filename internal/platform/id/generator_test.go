package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_NewID(t *testing.T) {
	gen := NewRandomGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: " abc-123 ", want: "abc-123", wantOK: true},
		{in: ""},
		{in: "has space"},
		{in: strings.Repeat("a", 65)},
	}
	for _, tc := range tests {
		got, ok := FromHeader(tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
