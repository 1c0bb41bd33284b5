package game

import (
	"errors"
	"slices"
	"time"
)

// MaxPlayers is the capacity of every room.
const MaxPlayers = 2

var (
	ErrRoomFull  = errors.New("room is full")
	ErrNotInRoom = errors.New("connection is not a player of this room")
)

// Session is the mutable round state of one room. It is only touched from
// the coordinator loop so it carries no lock.
type Session struct {
	players []string
	ready   map[string]struct{}
	scores  map[string]int
	words   map[string][]string

	// dispatching is set while a puzzle fetch is in flight for round.
	dispatching bool
	round       int
	emptySince  time.Time
}

func NewSession() *Session {
	return &Session{
		players: make([]string, 0, MaxPlayers),
		ready:   make(map[string]struct{}),
		scores:  make(map[string]int),
		words:   make(map[string][]string),
	}
}

func (s *Session) AddPlayer(connID string) error {
	if s.HasPlayer(connID) {
		return nil
	}
	if len(s.players) >= MaxPlayers {
		return ErrRoomFull
	}
	s.players = append(s.players, connID)
	s.emptySince = time.Time{}
	return nil
}

// RemovePlayer drops connID from the players and the ready set. Scores and
// words are kept until the next round resets them.
func (s *Session) RemovePlayer(connID string) {
	if i := slices.Index(s.players, connID); i >= 0 {
		s.players = slices.Delete(s.players, i, i+1)
	}
	delete(s.ready, connID)
}

func (s *Session) HasPlayer(connID string) bool {
	return slices.Contains(s.players, connID)
}

// Players returns a copy of the players in join order.
func (s *Session) Players() []string {
	return slices.Clone(s.players)
}

func (s *Session) IsEmpty() bool {
	return len(s.players) == 0
}

// OtherPlayer returns the player in the room that is not connID.
func (s *Session) OtherPlayer(connID string) (string, bool) {
	for _, p := range s.players {
		if p != connID {
			return p, true
		}
	}
	return "", false
}

func (s *Session) MarkReady(connID string) error {
	if !s.HasPlayer(connID) {
		return ErrNotInRoom
	}
	s.ready[connID] = struct{}{}
	return nil
}

func (s *Session) IsReady(connID string) bool {
	_, ok := s.ready[connID]
	return ok
}

func (s *Session) ReadyCount() int {
	return len(s.ready)
}

func (s *Session) ResetReady() {
	clear(s.ready)
}

func (s *Session) SetScore(connID string, points int) {
	s.scores[connID] = points
}

// Score returns 0 for players that have not readied up yet.
func (s *Session) Score(connID string) int {
	return s.scores[connID]
}

func (s *Session) SetWords(connID string, words []string) {
	if words == nil {
		words = []string{}
	}
	s.words[connID] = slices.Clone(words)
}

func (s *Session) Words(connID string) []string {
	w, ok := s.words[connID]
	if !ok {
		return []string{}
	}
	return slices.Clone(w)
}

// Recycle prepares a room that every occupant abandoned for a new pair. The
// round counter keeps increasing so an old in-flight fetch is discarded.
func (s *Session) Recycle() {
	s.players = s.players[:0]
	clear(s.ready)
	clear(s.scores)
	clear(s.words)
	s.dispatching = false
	s.round++
	s.emptySince = time.Time{}
}
