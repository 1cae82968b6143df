package main

import (
	"github.com/rs/zerolog/log"
)

// sanitizeAnswers keeps only the configured categories and cleans each value.
func sanitizeAnswers(answers map[string]string) map[string]string {
	clean := make(map[string]string, len(categories))
	for _, category := range categories {
		if raw, ok := answers[category]; ok {
			clean[category] = sanitizeAnswer(raw)
		}
	}
	return clean
}

// handleSubmit locks in a player's answers for the current round. Events from
// unknown players, outside an active round, or after the player already
// submitted are dropped without a reply. The submission that completes the
// quorum closes the round early.
func (h *Hub) handleSubmit(c *Client, answers map[string]string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.session

	p := h.playerLocked(c)
	if p == nil {
		return
	}
	if !s.roundActive {
		log.Debug().Str("name", p.Name).Msg("submission outside an active round ignored")
		return
	}
	if p.Submitted {
		log.Debug().Str("name", p.Name).Msg("duplicate submission ignored")
		return
	}

	p.Answers = sanitizeAnswers(answers)
	p.Submitted = true

	log.Debug().Str("name", p.Name).Int("round", s.currentRound).Msg("answers submitted")

	if s.allSubmittedLocked() {
		h.closeRoundLocked("all players submitted")
	}
}

// handleUpdate is the autosave path: it stores a player's in-progress answers
// so a timer expiry locks in something, but it never marks the player as
// submitted and never ends the round.
func (h *Hub) handleUpdate(c *Client, answers map[string]string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p := h.playerLocked(c)
	if p == nil {
		return
	}
	if !h.session.roundActive || p.Submitted {
		return
	}

	p.Answers = sanitizeAnswers(answers)
}
