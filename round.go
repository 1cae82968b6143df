package main

import (
	"time"

	"github.com/rs/zerolog/log"
)

// tryStartRoundLocked starts the next round if the ready quorum holds. It is
// the single gate out of the lobby and out of the results screen: no round
// starts while one is active or once the configured round count is reached.
func (h *Hub) tryStartRoundLocked() {
	s := h.session

	if s.roundActive || s.currentRound >= s.maxRounds {
		return
	}
	if !s.allReadyLocked() {
		return
	}

	h.startRoundLocked()
}

func (h *Hub) startRoundLocked() {
	s := h.session

	s.stopTimersLocked()

	s.currentRound++
	s.letter = s.letters.Draw()
	s.roundActive = true

	for _, p := range s.players {
		p.Ready = false
		p.Submitted = false
		p.Answers = make(map[string]string)
	}

	log.Info().
		Int("round", s.currentRound).
		Int("max_rounds", s.maxRounds).
		Str("letter", s.letter).
		Msg("round started")

	h.broadcastLocked(RoundStartedMessage{
		Type:            "round_started",
		Round:           s.currentRound,
		Letter:          s.letter,
		Categories:      categories,
		DurationSeconds: int(h.cfg.roundDuration.Seconds()),
		MaxRounds:       s.maxRounds,
	})

	s.roundTimer = time.AfterFunc(h.cfg.roundDuration, func() {
		h.closeRound("time expired")
	})
}

// closeRound is the timer-facing entry point for round closure. Timer expiry
// is an event like any other, so it gets the same panic boundary as dispatch.
func (h *Hub) closeRound(reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from round close")
		}
	}()

	h.closeRoundLocked(reason)
}

// closeRoundLocked is the close-if-open transition. The roundActive flag is
// checked and cleared under the hub mutex, so a last-submission early end and
// a near-simultaneous timer expiry cannot both score the round: whichever
// gets the mutex first wins, the other is a no-op.
func (h *Hub) closeRoundLocked(reason string) {
	s := h.session

	if !s.roundActive {
		log.Debug().Str("reason", reason).Msg("round already closed")
		return
	}
	s.roundActive = false

	if s.roundTimer != nil {
		s.roundTimer.Stop()
		s.roundTimer = nil
	}

	// Players that never submitted are locked in with whatever answers they
	// had autosaved so far, possibly none.
	for _, p := range s.players {
		if !p.Submitted {
			p.Submitted = true
		}
	}

	allAnswers := make(map[string]map[string]string, len(s.players))
	for id, p := range s.players {
		byCategory := make(map[string]string, len(p.Answers))
		for category, answer := range p.Answers {
			byCategory[category] = answer
		}
		allAnswers[id] = byCategory
	}

	roundScores := scoreRound(s.letter, allAnswers)
	for id, points := range roundScores {
		s.scores[id] += points
	}
	s.lastRoundScores = roundScores

	for _, p := range s.players {
		p.Ready = false
	}

	log.Info().
		Int("round", s.currentRound).
		Str("letter", s.letter).
		Str("reason", reason).
		Msg("round ended")

	h.broadcastLocked(RoundEndedMessage{
		Type:        "round_ended",
		Answers:     allAnswers,
		RoundScores: roundScores,
		Totals:      s.totalsByIDLocked(),
		Players:     s.playerViewsLocked(),
		Round:       s.currentRound,
		MaxRounds:   s.maxRounds,
	})

	if s.currentRound >= s.maxRounds {
		// Leave the last results on screen briefly before the final ranking.
		s.resultsTimer = time.AfterFunc(h.cfg.resultsDelay, h.endGame)
	}
}

func (h *Hub) endGame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from game end")
		}
	}()

	h.endGameLocked()
}

// endGameLocked broadcasts the final ranking and resets the session to its
// initial empty form. A fresh game begins only once players join again.
func (h *Hub) endGameLocked() {
	s := h.session

	if s.playerCountLocked() == 0 {
		s.resetLocked()
		return
	}

	winners, maxScore, isTie := s.winnersLocked()

	names := make([]string, 0, len(winners))
	for _, w := range winners {
		names = append(names, w.Name)
	}
	log.Info().
		Strs("winners", names).
		Int("max_score", maxScore).
		Bool("tie", isTie).
		Msg("game ended")

	h.broadcastLocked(GameEndedMessage{
		Type:     "game_ended",
		Winners:  winners,
		MaxScore: maxScore,
		Totals:   s.totalsByNameLocked(),
		IsTie:    isTie,
	})

	s.resetLocked()
}
