package main

import (
	"strings"
)

// Points awarded per category: a correct answer nobody else gave beats a
// correct answer shared with other players.
const (
	pointsUnique = 10
	pointsShared = 5
)

// normalizeAnswer is the comparison key for uniqueness grouping:
// case-insensitive, surrounding whitespace ignored.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// scoreRound computes each player's points for one round from the full set of
// submitted answers, keyed by player id and then by category.
//
// Per category: an empty answer scores 0, an answer whose first letter
// (case-normalized) is not the round letter scores 0, a letter-gated answer
// held by exactly one player scores 10, and one shared by two or more players
// scores 5 for each of them. The result depends only on the multiset of
// normalized answers, not on submission order.
func scoreRound(letter string, answers map[string]map[string]string) map[string]int {
	gate := strings.ToLower(letter)

	// How many players gave each normalized, letter-gated answer, per category.
	counts := make(map[string]map[string]int)
	for _, byCategory := range answers {
		for category, raw := range byCategory {
			normalized := normalizeAnswer(raw)
			if normalized == "" || !strings.HasPrefix(normalized, gate) {
				continue
			}
			if counts[category] == nil {
				counts[category] = make(map[string]int)
			}
			counts[category][normalized]++
		}
	}

	points := make(map[string]int, len(answers))
	for playerID, byCategory := range answers {
		total := 0
		for category, raw := range byCategory {
			normalized := normalizeAnswer(raw)
			if normalized == "" || !strings.HasPrefix(normalized, gate) {
				continue
			}
			if counts[category][normalized] == 1 {
				total += pointsUnique
			} else {
				total += pointsShared
			}
		}
		points[playerID] = total
	}

	return points
}
