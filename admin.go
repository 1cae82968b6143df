package main

import (
	"github.com/rs/zerolog/log"
)

// handleAdminScoreUpdate applies manual score corrections from the moderator
// panel, keyed by player id. Totals never go below zero, unknown ids are
// skipped, and round progression is left untouched; the updated totals are
// then rebroadcast to everyone.
func (h *Hub) handleAdminScoreUpdate(changes map[string]ScoreChange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.session

	for id, change := range changes {
		if err := s.applyScoreDeltaLocked(id, change.Difference); err != nil {
			log.Warn().Str("player_id", id).Msg("score change for unknown player ignored")
			continue
		}

		log.Info().
			Str("player_id", id).
			Int("difference", change.Difference).
			Int("total", s.scores[id]).
			Msg("score adjusted by moderator")
	}

	h.broadcastLocked(ScoresUpdatedMessage{
		Type:    "scores_updated",
		Totals:  s.totalsByNameLocked(),
		Message: "Scores were updated by the moderator.",
	})
}
