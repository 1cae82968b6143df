package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStartsOnReadyQuorum(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")

	h.handleReady(a, false)
	assert.False(t, h.session.roundActive, "one ready player is not a quorum")

	h.handleReady(b, false)

	s := h.session
	require.True(t, s.roundActive)
	assert.Equal(t, 1, s.currentRound)
	assert.NotEmpty(t, s.letter)
	for _, p := range s.players {
		assert.False(t, p.Ready, "ready flags reset on round start")
		assert.False(t, p.Submitted)
		assert.Empty(t, p.Answers)
	}

	starts := messagesOf[RoundStartedMessage](drainMessages(a))
	require.Len(t, starts, 1)
	assert.Equal(t, 1, starts[0].Round)
	assert.Equal(t, s.letter, starts[0].Letter)
	assert.Equal(t, categories, starts[0].Categories)
	assert.Equal(t, 60, starts[0].DurationSeconds)
	assert.Equal(t, 10, starts[0].MaxRounds)
}

func TestRoundClosesWhenAllSubmit(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	letter := h.session.letter
	drainMessages(a)

	h.handleSubmit(a, map[string]string{"Animale": letter + "allo"})
	assert.True(t, h.session.roundActive, "round stays open until everyone submits")

	h.handleSubmit(b, map[string]string{"Animale": letter + "allo"})
	assert.False(t, h.session.roundActive)

	ended := messagesOf[RoundEndedMessage](drainMessages(a))
	require.Len(t, ended, 1)
	assert.Equal(t, 1, ended[0].Round)
	// Both gave the same answer, so both earn the shared score.
	assert.Equal(t, pointsShared, ended[0].RoundScores[a.playerID])
	assert.Equal(t, pointsShared, ended[0].RoundScores[b.playerID])
	assert.Equal(t, pointsShared, ended[0].Totals[a.playerID])
}

func TestRoundCloseIsIdempotent(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	drainMessages(a)

	h.handleSubmit(a, nil)
	h.handleSubmit(b, nil)
	require.False(t, h.session.roundActive)

	// A stale timer firing after the early close must be a no-op.
	h.closeRound("stale timer")

	assert.Len(t, messagesOf[RoundEndedMessage](drainMessages(a)), 1)
	assert.Equal(t, 1, h.session.currentRound)
}

func TestDuplicateSubmissionIgnored(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	letter := h.session.letter

	h.handleSubmit(a, map[string]string{"Nome": letter + "ina"})
	h.handleSubmit(a, map[string]string{"Nome": "overwritten"})

	assert.Equal(t, letter+"ina", h.session.players[a.playerID].Answers["Nome"])
	assert.True(t, h.session.roundActive)
}

func TestUpdateAnswersNeverClosesRound(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)

	h.handleSubmit(a, nil)
	h.handleUpdate(b, map[string]string{"Cosa": "casa"})

	assert.True(t, h.session.roundActive)
	assert.False(t, h.session.players[b.playerID].Submitted)
	assert.Equal(t, "casa", h.session.players[b.playerID].Answers["Cosa"])
}

func TestTimerForcesSubmissionAndClosesOnce(t *testing.T) {
	h := newTestHub(func(cfg *Config) { cfg.roundDuration = 50 * time.Millisecond })

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	c := joinPlayer(t, h, "Carla")
	h.handleReady(a, false)
	h.handleReady(b, false)
	h.handleReady(c, false)
	letter := h.session.letter
	drainMessages(a)

	h.handleSubmit(a, map[string]string{"Animale": letter + "x"})
	h.handleSubmit(b, nil)
	h.handleUpdate(c, map[string]string{"Animale": letter + "y"})

	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return !h.session.roundActive
	}, time.Second, 10*time.Millisecond, "timer should close the round")

	time.Sleep(100 * time.Millisecond) // let any stray second close happen

	h.mu.Lock()
	carla := h.session.players[c.playerID]
	assert.True(t, carla.Submitted, "timer locks in the holdout")
	h.mu.Unlock()

	ended := messagesOf[RoundEndedMessage](drainMessages(a))
	require.Len(t, ended, 1, "round must close exactly once")
	assert.Equal(t, letter+"y", ended[0].Answers[c.playerID]["Animale"])
	assert.Equal(t, pointsUnique, ended[0].RoundScores[c.playerID])
}

func TestGameEndsAfterFinalRound(t *testing.T) {
	h := newTestHub(func(cfg *Config) { cfg.maxRounds = 1 })

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	drainMessages(a)

	// Neither answers anything: zero points each, a tie at the top.
	h.handleSubmit(a, nil)
	h.handleSubmit(b, nil)

	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.session.playerCountLocked() == 0
	}, time.Second, 10*time.Millisecond, "session should reset after the final ranking")

	ended := messagesOf[GameEndedMessage](drainMessages(a))
	require.Len(t, ended, 1)
	assert.True(t, ended[0].IsTie)
	assert.Len(t, ended[0].Winners, 2)
	assert.Equal(t, 0, ended[0].MaxScore)
	assert.Equal(t, map[string]int{"Anna": 0, "Bruno": 0}, ended[0].Totals)

	h.mu.Lock()
	assert.Zero(t, h.session.currentRound)
	assert.Empty(t, h.session.letters.Used())
	h.mu.Unlock()
}

func TestReadyIgnoredAfterFinalRound(t *testing.T) {
	h := newTestHub(func(cfg *Config) {
		cfg.maxRounds = 1
		cfg.resultsDelay = 300 * time.Millisecond
	})

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	h.handleSubmit(a, nil)
	h.handleSubmit(b, nil)
	require.False(t, h.session.roundActive)

	h.handleReady(a, true)
	h.handleReady(b, true)

	assert.False(t, h.session.roundActive, "no round may start once the game is over")
	assert.Equal(t, 1, h.session.currentRound)
}

func TestNextRoundStartsOnReadyQuorum(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	first := h.session.letter

	h.handleSubmit(a, nil)
	h.handleSubmit(b, nil)
	require.False(t, h.session.roundActive)

	h.handleReady(a, true)
	h.handleReady(b, true)

	require.True(t, h.session.roundActive)
	assert.Equal(t, 2, h.session.currentRound)
	assert.NotEqual(t, first, h.session.letter, "letters never repeat within a session")
}

func TestDisconnectDuringRoundForcesGameOver(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	h.handleReady(a, false)
	h.handleReady(b, false)
	require.True(t, h.session.roundActive)
	h.session.scores[b.playerID] = 15
	drainMessages(b)

	h.handleDisconnect(a)

	ended := messagesOf[GameEndedMessage](drainMessages(b))
	require.Len(t, ended, 1, "dropping to one player mid-round ends the game at once")
	require.Len(t, ended[0].Winners, 1)
	assert.Equal(t, "Bruno", ended[0].Winners[0].Name)
	assert.Equal(t, 15, ended[0].MaxScore)
	assert.False(t, ended[0].IsTie)

	assert.Zero(t, h.session.playerCountLocked())
	assert.False(t, h.session.roundActive)
}

func TestDisconnectOfLastHoldoutClosesRound(t *testing.T) {
	h := newTestHub()

	a := joinPlayer(t, h, "Anna")
	b := joinPlayer(t, h, "Bruno")
	c := joinPlayer(t, h, "Carla")
	h.handleReady(a, false)
	h.handleReady(b, false)
	h.handleReady(c, false)
	drainMessages(a)

	h.handleSubmit(a, nil)
	h.handleSubmit(b, nil)
	require.True(t, h.session.roundActive)

	h.handleDisconnect(c)

	assert.False(t, h.session.roundActive)
	assert.Len(t, messagesOf[RoundEndedMessage](drainMessages(a)), 1)
}
