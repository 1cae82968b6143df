package main

// Messages coming from clients
type ClientMessage struct {
	Type    string                 `json:"type"`              // "join", "set_ready", "player_ready", "submit_answers", "update_answers", "admin_score_update"
	Name    string                 `json:"name,omitempty"`    // join
	Answers map[string]string      `json:"answers,omitempty"` // submit_answers / update_answers, keyed by category
	Changes map[string]ScoreChange `json:"changes,omitempty"` // admin_score_update, keyed by player id
}

// ScoreChange is one manual adjustment from the moderator panel. Only the
// difference is applied; old and new are what the moderator saw when editing.
type ScoreChange struct {
	Old        int `json:"old"`
	New        int `json:"new"`
	Difference int `json:"difference"`
}

// WelcomeMessage is sent to a client right after a successful join, so it
// knows its assigned id and the current shape of the session.
type WelcomeMessage struct {
	Type         string         `json:"type"` // "welcome"
	PlayerID     string         `json:"player_id"`
	Players      []PlayerView   `json:"players"`
	CurrentRound int            `json:"current_round"`
	MaxRounds    int            `json:"max_rounds"`
	RoundActive  bool           `json:"round_active"`
	Categories   []string       `json:"categories"`
	Totals       map[string]int `json:"totals"` // keyed by player id
}

// PlayerListMessage is broadcast whenever the player set or its flags change.
type PlayerListMessage struct {
	Type    string       `json:"type"` // "player_list"
	Players []PlayerView `json:"players"`
}

// ReadyStatusMessage is the running tally shown while waiting for a quorum.
type ReadyStatusMessage struct {
	Type  string `json:"type"` // "ready_status"
	Ready int    `json:"ready"`
	Total int    `json:"total"`
}

type RoundStartedMessage struct {
	Type            string   `json:"type"` // "round_started"
	Round           int      `json:"round"`
	Letter          string   `json:"letter"`
	Categories      []string `json:"categories"`
	DurationSeconds int      `json:"duration_seconds"`
	MaxRounds       int      `json:"max_rounds"`
}

// RoundEndedMessage carries everything needed to render one round's results:
// every player's answers, the points earned this round, and running totals.
// Answers and scores are keyed by player id; Players resolves ids to names.
type RoundEndedMessage struct {
	Type        string                       `json:"type"` // "round_ended"
	Answers     map[string]map[string]string `json:"answers"`
	RoundScores map[string]int               `json:"round_scores"`
	Totals      map[string]int               `json:"totals"`
	Players     []PlayerView                 `json:"players"`
	Round       int                          `json:"round"`
	MaxRounds   int                          `json:"max_rounds"`
}

type GameEndedMessage struct {
	Type     string         `json:"type"` // "game_ended"
	Winners  []PlayerView   `json:"winners"`
	MaxScore int            `json:"max_score"`
	Totals   map[string]int `json:"totals"` // keyed by display name
	IsTie    bool           `json:"is_tie"`
}

// ScoresUpdatedMessage is broadcast after a moderator override, keyed by
// display name for direct rendering.
type ScoresUpdatedMessage struct {
	Type    string         `json:"type"` // "scores_updated"
	Totals  map[string]int `json:"totals"`
	Message string         `json:"message"`
}

// SessionFullMessage is sent only to a client whose join was rejected at
// capacity.
type SessionFullMessage struct {
	Type           string `json:"type"` // "session_full"
	Message        string `json:"message"`
	MaxPlayers     int    `json:"max_players"`
	CurrentPlayers int    `json:"current_players"`
}

// ErrorMessage reports a rejected request to the requester only.
type ErrorMessage struct {
	Type    string `json:"type"` // "join_error"
	Message string `json:"message"`
}
