// Stoppa game server
//
// A single shared session of the classic Italian party game "Nome Cognome
// Città": each round one letter is drawn, every player fills in seven fixed
// categories with words starting with that letter, and unique answers score
// double what shared answers do. Ten rounds, highest total wins.
//
// Features:
// - One authoritative in-memory session; WebSocket at /ws
// - Lobby starts when every connected player is ready (minimum two)
// - Rounds end early once everyone submits, or when the round timer fires
// - Unsubmitted answers are locked in as-is on timeout
// - Uniqueness scoring: 10 points for an answer nobody else gave, 5 if shared
// - Letters never repeat within a session
// - Moderator score overrides, clamped at zero
// - Ties are reported as ties, with every top scorer listed as a winner
// - In-browser QR button to share the game URL, backed by go-qrcode

package main

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

type Client struct {
	conn *websocket.Conn
	send chan any

	// playerID is empty until a join succeeds; guarded by the hub mutex.
	playerID string
}

type inboundEvent struct {
	client *Client
	msg    ClientMessage
}

// Hub owns the session and every connected client. Inbound messages and
// connection changes are funneled through its channels and processed one at a
// time by run, with h.mu guarding all session state; timer callbacks take the
// same mutex, so session mutations never interleave.
type Hub struct {
	cfg *Config

	mu      sync.Mutex
	clients map[*Client]bool
	session *Session

	register chan *Client
	unreg    chan *Client
	events   chan inboundEvent
}

func newHub(cfg *Config) *Hub {
	return &Hub{
		cfg:      cfg,
		clients:  make(map[*Client]bool),
		session:  newSession(cfg.maxPlayers, cfg.maxRounds),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		events:   make(chan inboundEvent),
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)

		case c := <-h.unreg:
			h.handleDisconnect(c)

		case ev := <-h.events:
			h.dispatch(ev)
		}
	}
}

// dispatch routes one client message to its handler. A panic in any handler
// is caught here, leaving the session in its last consistent state instead of
// taking down the process.
func (h *Hub) dispatch(ev inboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("event", ev.msg.Type).Msg("recovered from event handler")
		}
	}()

	switch ev.msg.Type {
	case "join":
		h.handleJoin(ev.client, ev.msg.Name)
	case "set_ready", "player_ready":
		h.handleReady(ev.client, ev.msg.Type == "player_ready")
	case "submit_answers":
		h.handleSubmit(ev.client, ev.msg.Answers)
	case "update_answers":
		h.handleUpdate(ev.client, ev.msg.Answers)
	case "admin_score_update":
		h.handleAdminScoreUpdate(ev.msg.Changes)
	default:
		// ignore unknown types
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = true
}

// handleDisconnect removes the client and, if it had joined, its player.
// Losing the second-to-last player mid-round ends the game on the spot, since
// a one-player quorum can never complete; losing the last player resets the
// session entirely.
func (h *Hub) handleDisconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}

	if c.playerID == "" {
		return
	}

	s := h.session
	name := ""
	if p, ok := s.players[c.playerID]; ok {
		name = p.Name
	}
	s.removePlayerLocked(c.playerID)
	log.Info().Str("name", name).Int("players", s.playerCountLocked()).Msg("player left")

	switch {
	case s.playerCountLocked() == 0:
		s.resetLocked()

	case s.playerCountLocked() == 1 && s.roundActive:
		s.stopTimersLocked()
		s.roundActive = false
		h.broadcastLocked(PlayerListMessage{Type: "player_list", Players: s.playerViewsLocked()})
		h.endGameLocked()

	default:
		h.broadcastLocked(PlayerListMessage{Type: "player_list", Players: s.playerViewsLocked()})

		// The leaver may have been the last holdout of the submission quorum.
		if s.roundActive && s.allSubmittedLocked() {
			h.closeRoundLocked("last unsubmitted player left")
		}
	}
}

// handleJoin creates a player for this connection. Rejections go to the
// requester only and never disturb the rest of the session.
func (h *Hub) handleJoin(c *Client, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.playerID != "" {
		log.Debug().Str("player_id", c.playerID).Msg("duplicate join ignored")
		return
	}

	s := h.session

	player, err := s.addPlayerLocked(name)
	switch {
	case errors.Is(err, ErrSessionFull):
		h.sendLocked(c, SessionFullMessage{
			Type:           "session_full",
			Message:        "The game is full.",
			MaxPlayers:     s.maxPlayers,
			CurrentPlayers: s.playerCountLocked(),
		})
		return
	case err != nil:
		h.sendLocked(c, ErrorMessage{
			Type:    "join_error",
			Message: "Names must be 2-20 printable characters.",
		})
		return
	}

	c.playerID = player.ID
	log.Info().Str("name", player.Name).Int("players", s.playerCountLocked()).Msg("player joined")

	h.sendLocked(c, WelcomeMessage{
		Type:         "welcome",
		PlayerID:     player.ID,
		Players:      s.playerViewsLocked(),
		CurrentRound: s.currentRound,
		MaxRounds:    s.maxRounds,
		RoundActive:  s.roundActive,
		Categories:   categories,
		Totals:       s.totalsByIDLocked(),
	})

	h.broadcastLocked(PlayerListMessage{Type: "player_list", Players: s.playerViewsLocked()})
}

// handleReady marks a player ready, either in the lobby or between rounds.
// The same quorum rule applies in both phases: every connected player ready,
// at least two connected.
func (h *Hub) handleReady(c *Client, nextRound bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.session

	p := h.playerLocked(c)
	if p == nil {
		return
	}

	// Between the final round closing and the final ranking going out, ready
	// messages are meaningless; drop them.
	if nextRound && s.currentRound >= s.maxRounds {
		log.Debug().Str("name", p.Name).Msg("ready after final round ignored")
		return
	}

	p.Ready = true

	h.broadcastLocked(PlayerListMessage{Type: "player_list", Players: s.playerViewsLocked()})
	h.broadcastLocked(ReadyStatusMessage{
		Type:  "ready_status",
		Ready: s.readyCountLocked(),
		Total: s.playerCountLocked(),
	})

	h.tryStartRoundLocked()
}

// playerLocked resolves the client's player, or nil for connections that
// never joined or whose player is gone.
func (h *Hub) playerLocked(c *Client) *Player {
	if c.playerID == "" {
		return nil
	}
	p, ok := h.session.players[c.playerID]
	if !ok {
		log.Debug().Str("player_id", c.playerID).Msg("event from unknown player ignored")
		return nil
	}
	return p
}

func (h *Hub) sendLocked(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 8),
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.events <- inboundEvent{
			client: c,
			msg:    msg,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
