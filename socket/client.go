package socket

import (
	"encoding/json"
	"net"
	"sync"

	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"anagram-duel/game"
)

const sendBufferSize = 32

// Client is one websocket peer. Frames are written only by WritePump.
type Client struct {
	id        string
	conn      net.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewClient(conn net.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) ID() string {
	return c.id
}

// WritePump writes queued frames until the client is closed or a write fails.
func (c *Client) WritePump() {
	for msg := range c.send {
		if err := wsutil.WriteServerText(c.conn, msg); err != nil {
			log.Debug().Err(err).Str("conn-id", c.id).Msg("Write failed")
			c.conn.Close()
			return
		}
	}
}

// ReadEvent blocks for the next inbound frame. Unknown message types return
// ErrUndefinedType and the connection stays usable.
func (c *Client) ReadEvent() (game.Event, error) {
	msg, err := wsutil.ReadClientText(c.conn)
	if err != nil {
		return nil, err
	}
	return DecodeEvent(c.id, msg)
}

func (c *Client) enqueue(event string, payload any) bool {
	encoded, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Could not encode message")
		return false
	}
	select {
	case c.send <- encoded:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
