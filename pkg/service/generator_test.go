package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeFormat = regexp.MustCompile(`^[0-9A-Za-z]{6}$`)

func TestGenerateFormat(t *testing.T) {
	gen := NewRandomCodeGenerator()

	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, codeFormat, code)
	}
}

func TestGenerateVaries(t *testing.T) {
	gen := NewRandomCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		seen[code] = true
	}

	// 62^6 possible codes; 20 draws colliding down to one value would
	// mean the generator is broken, not unlucky.
	assert.Greater(t, len(seen), 1)
}
