package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterPoolDrawsAreDistinct(t *testing.T) {
	pool := newLetterPool()

	seen := make(map[string]bool)
	for i := 0; i < len(roundAlphabet); i++ {
		letter := pool.Draw()
		require.Len(t, letter, 1)
		assert.Contains(t, roundAlphabet, letter)
		assert.False(t, seen[letter], "letter %q drawn twice", letter)
		seen[letter] = true
	}

	assert.Len(t, seen, len(roundAlphabet))
}

func TestLetterPoolResetsWhenExhausted(t *testing.T) {
	pool := newLetterPool()

	for i := 0; i < len(roundAlphabet); i++ {
		pool.Draw()
	}
	require.Len(t, pool.Used(), len(roundAlphabet))

	// The pool refills before the draw, so this must not fail even though
	// every letter has been handed out.
	letter := pool.Draw()
	assert.Contains(t, roundAlphabet, letter)
	assert.Equal(t, []string{letter}, pool.Used())
}

func TestLetterPoolUsedIsOrdered(t *testing.T) {
	pool := newLetterPool()

	for i := 0; i < 5; i++ {
		pool.Draw()
	}

	used := pool.Used()
	require.Len(t, used, 5)
	assert.True(t, strings.Index(roundAlphabet, used[0]) < strings.Index(roundAlphabet, used[4]))
}

func TestLetterPoolReset(t *testing.T) {
	pool := newLetterPool()
	pool.Draw()
	pool.Draw()

	pool.reset()

	assert.Empty(t, pool.Used())
}
