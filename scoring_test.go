package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreRoundUniqueVersusShared(t *testing.T) {
	answers := map[string]map[string]string{
		"p1": {"Animale": "Gatto"},
		"p2": {"Animale": "gatto  "}, // same animal, different case and spacing
		"p3": {"Animale": "Giraffa"},
	}

	scores := scoreRound("G", answers)

	assert.Equal(t, 5, scores["p1"])
	assert.Equal(t, 5, scores["p2"])
	assert.Equal(t, 10, scores["p3"])
}

func TestScoreRoundLetterGate(t *testing.T) {
	answers := map[string]map[string]string{
		"p1": {"Cosa": "casa"},   // lowercase first letter still counts
		"p2": {"Cosa": "Banana"}, // wrong letter
	}

	scores := scoreRound("C", answers)

	assert.Equal(t, 10, scores["p1"])
	assert.Equal(t, 0, scores["p2"])
}

func TestScoreRoundEmptyAnswers(t *testing.T) {
	answers := map[string]map[string]string{
		"p1": {"Nome": "", "Animale": "   "},
		"p2": {},
	}

	scores := scoreRound("A", answers)

	assert.Equal(t, 0, scores["p1"])
	assert.Equal(t, 0, scores["p2"])
}

func TestScoreRoundSumsAcrossCategories(t *testing.T) {
	answers := map[string]map[string]string{
		"p1": {"Nome": "Marco", "Città": "Milano", "Animale": "Mucca"},
		"p2": {"Nome": "Marco", "Città": "Modena", "Animale": "Topo"},
	}

	scores := scoreRound("M", answers)

	// Marco is shared (5), Milano and Mucca are unique (10 each).
	assert.Equal(t, 25, scores["p1"])
	// Marco shared (5), Modena unique (10), Topo fails the letter gate.
	assert.Equal(t, 15, scores["p2"])
}

func TestScoreRoundWrongLetterDoesNotGroup(t *testing.T) {
	// Two identical answers with the wrong letter score nothing, and must not
	// drag down a correct answer of the same value... which cannot exist, but
	// an ineligible duplicate must not turn a unique answer into a shared one.
	answers := map[string]map[string]string{
		"p1": {"Animale": "Gatto"},
		"p2": {"Animale": "Cane"},
		"p3": {"Animale": "Cane"},
	}

	scores := scoreRound("G", answers)

	assert.Equal(t, 10, scores["p1"])
	assert.Equal(t, 0, scores["p2"])
	assert.Equal(t, 0, scores["p3"])
}

func TestScoreRoundOrderIndependent(t *testing.T) {
	forward := map[string]map[string]string{
		"p1": {"Nome": "Anna"},
		"p2": {"Nome": "anna"},
		"p3": {"Nome": "Aldo"},
	}
	reversed := map[string]map[string]string{
		"p3": {"Nome": "Aldo"},
		"p2": {"Nome": "anna"},
		"p1": {"Nome": "Anna"},
	}

	assert.Equal(t, scoreRound("A", forward), scoreRound("A", reversed))
}
