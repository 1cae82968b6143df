package main

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// categories played every round, in display order. Fixed for the lifetime of
// a session.
var categories = []string{
	"Nome",
	"Cognome",
	"Città",
	"Animale",
	"Cosa",
	"Mestiere",
	"Personaggi Televisivi",
}

// Player holds the data we store server-side for one connected player.
type Player struct {
	ID        string
	Name      string
	Answers   map[string]string
	Ready     bool
	Submitted bool
}

// PlayerView is the public projection of a Player, safe to broadcast.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	Submitted bool   `json:"submitted"`
}

// Session is the single authoritative game aggregate. All fields are guarded
// by the hub mutex; methods use the Locked suffix to mark that they expect it
// held. No other component keeps its own copy of this state.
type Session struct {
	players         map[string]*Player
	scores          map[string]int
	currentRound    int
	maxRounds       int
	maxPlayers      int
	roundActive     bool
	letter          string
	letters         *LetterPool
	lastRoundScores map[string]int

	roundTimer   *time.Timer
	resultsTimer *time.Timer
}

func newSession(maxPlayers, maxRounds int) *Session {
	return &Session{
		players:    make(map[string]*Player),
		scores:     make(map[string]int),
		maxPlayers: maxPlayers,
		maxRounds:  maxRounds,
		letters:    newLetterPool(),
	}
}

// addPlayerLocked creates a new player with a fresh id. It fails with
// ErrSessionFull at capacity and ErrInvalidInput for an unusable name.
func (s *Session) addPlayerLocked(name string) (*Player, error) {
	if len(s.players) >= s.maxPlayers {
		return nil, ErrSessionFull
	}

	name, err := sanitizeName(name)
	if err != nil {
		return nil, err
	}

	player := &Player{
		ID:      uuid.NewString(),
		Name:    name,
		Answers: make(map[string]string),
	}

	s.players[player.ID] = player
	s.scores[player.ID] = 0

	return player, nil
}

func (s *Session) removePlayerLocked(id string) {
	delete(s.players, id)
	delete(s.scores, id)
}

// applyScoreDeltaLocked adds delta to a player's cumulative score, clamped at
// zero. Unknown ids are reported, not applied.
func (s *Session) applyScoreDeltaLocked(id string, delta int) error {
	if _, ok := s.players[id]; !ok {
		return ErrUnknownPlayer
	}

	total := s.scores[id] + delta
	if total < 0 {
		total = 0
	}
	s.scores[id] = total

	return nil
}

func (s *Session) playerCountLocked() int {
	return len(s.players)
}

func (s *Session) readyCountLocked() int {
	count := 0
	for _, p := range s.players {
		if p.Ready {
			count++
		}
	}
	return count
}

// allReadyLocked reports whether the ready quorum holds: every connected
// player ready, and at least two of them. Derived fresh on every call so it
// can never go stale as players join and leave.
func (s *Session) allReadyLocked() bool {
	if len(s.players) < 2 {
		return false
	}
	for _, p := range s.players {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (s *Session) allSubmittedLocked() bool {
	if len(s.players) == 0 {
		return false
	}
	for _, p := range s.players {
		if !p.Submitted {
			return false
		}
	}
	return true
}

func (s *Session) playerViewsLocked() []PlayerView {
	views := make([]PlayerView, 0, len(s.players))
	for _, p := range s.players {
		views = append(views, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Ready:     p.Ready,
			Submitted: p.Submitted,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Name < views[j].Name
	})

	return views
}

func (s *Session) totalsByIDLocked() map[string]int {
	totals := make(map[string]int, len(s.scores))
	for id, score := range s.scores {
		totals[id] = score
	}
	return totals
}

func (s *Session) totalsByNameLocked() map[string]int {
	totals := make(map[string]int, len(s.players))
	for id, p := range s.players {
		totals[p.Name] = s.scores[id]
	}
	return totals
}

// winnersLocked returns every player sharing the maximum cumulative score,
// the score itself, and whether more than one player holds it.
func (s *Session) winnersLocked() ([]PlayerView, int, bool) {
	maxScore := -1
	var winners []PlayerView

	for _, view := range s.playerViewsLocked() {
		score := s.scores[view.ID]
		switch {
		case score > maxScore:
			maxScore = score
			winners = []PlayerView{view}
		case score == maxScore:
			winners = append(winners, view)
		}
	}

	return winners, maxScore, len(winners) > 1
}

func (s *Session) stopTimersLocked() {
	if s.roundTimer != nil {
		s.roundTimer.Stop()
		s.roundTimer = nil
	}
	if s.resultsTimer != nil {
		s.resultsTimer.Stop()
		s.resultsTimer = nil
	}
}

// resetLocked returns the session to its initial empty form: no players, no
// scores, round zero, a full letter pool, and no armed timers. Used when a
// game concludes and when the last player leaves.
func (s *Session) resetLocked() {
	s.stopTimersLocked()

	s.players = make(map[string]*Player)
	s.scores = make(map[string]int)
	s.currentRound = 0
	s.roundActive = false
	s.letter = ""
	s.letters.reset()
	s.lastRoundScores = nil
}
