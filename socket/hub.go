// Package socket is the websocket transport: it tracks live clients and the
// room groups they joined, and fans messages out to them.
package socket

import (
	"sync"

	"github.com/rs/zerolog/log"

	"anagram-duel/game"
)

var _ game.Transport = (*Hub)(nil)

type Hub struct {
	clients map[string]*Client
	groups  map[string]map[string]struct{}
	lock    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.clients[c.id] = c
}

// Unregister forgets the client, drops it from every group and stops its
// write pump.
func (h *Hub) Unregister(connID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	for code, members := range h.groups {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.groups, code)
		}
	}
	c.close()
}

func (h *Hub) Emit(connID, event string, payload any) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if !c.enqueue(event, payload) {
		log.Warn().Str("conn-id", connID).Str("event", event).Msg("Dropping message for slow client")
	}
}

func (h *Hub) EmitRoom(code, event string, payload any) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for connID := range h.groups[code] {
		c, ok := h.clients[connID]
		if !ok {
			continue
		}
		if !c.enqueue(event, payload) {
			log.Warn().Str("conn-id", connID).Str("room-code", code).Str("event", event).Msg("Dropping message for slow client")
		}
	}
}

// Join adds a registered client to the group of code. Joining twice is a
// no-op.
func (h *Hub) Join(connID, code string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.clients[connID]; !ok {
		return
	}
	members, ok := h.groups[code]
	if !ok {
		members = make(map[string]struct{})
		h.groups[code] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) Leave(connID, code string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	members, ok := h.groups[code]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, code)
	}
}

func (h *Hub) Occupancy(code string) int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.groups[code])
}

func (h *Hub) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// Greet tells a freshly registered client its connection id.
func (h *Hub) Greet(connID string) {
	h.Emit(connID, game.EventConnected, connectedMessage{ID: connID})
}
