package game

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultWordLength  = 6
	DefaultGracePeriod = 2 * time.Minute
)

var ErrStopped = errors.New("coordinator stopped")

type Options struct {
	WordLength int
	// NotifyOpponentLeft sends opponentLeft to the remaining player on
	// leave and disconnect.
	NotifyOpponentLeft bool
	// GracePeriod is how long an empty room survives a sweep.
	GracePeriod time.Duration
	// Keys issues rejoin keys after a successful join, none when nil.
	Keys   KeyIssuer
	Logger *zerolog.Logger
	Now    func() time.Time
}

// DefaultOptions returns the options used by the server.
func DefaultOptions() Options {
	return Options{
		WordLength:         DefaultWordLength,
		NotifyOpponentLeft: true,
		GracePeriod:        DefaultGracePeriod,
	}
}

type state struct {
	rooms *Registry
	conns *ConnIndex
}

// Coordinator owns every room, session and connection assignment. All of
// them are mutated by the single goroutine started with Run.
type Coordinator struct {
	inbox     chan Event
	done      chan struct{}
	state     *state
	transport Transport
	words     WordSource
	opts      Options
	log       zerolog.Logger
}

func NewCoordinator(transport Transport, words WordSource, registry *Registry, opts Options) *Coordinator {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	if opts.WordLength <= 0 {
		opts.WordLength = DefaultWordLength
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Coordinator{
		inbox:     make(chan Event, 256),
		done:      make(chan struct{}),
		state:     &state{rooms: registry, conns: NewConnIndex()},
		transport: transport,
		words:     words,
		opts:      opts,
		log:       logger,
	}
}

// Run processes events until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) error {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.inbox:
			c.handle(ctx, ev)
		}
	}
}

// Dispatch queues ev for the loop. It blocks while the inbox is full.
func (c *Coordinator) Dispatch(ctx context.Context, ev Event) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.inbox <- ev:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect queues a Disconnecting event and returns once the loop has
// handled it, so the caller can drop the connection from the transport.
func (c *Coordinator) Disconnect(ctx context.Context, connID, reason string) error {
	if err := c.Dispatch(ctx, Disconnecting{ConnID: connID, Reason: reason}); err != nil {
		return err
	}
	return c.inspect(ctx, func(*state) {})
}

// Sweep posts a Sweep event every interval until ctx is cancelled.
func (c *Coordinator) Sweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Dispatch(ctx, Sweep{Now: c.opts.Now()}); err != nil {
				if errors.Is(err, ErrStopped) || errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

func (c *Coordinator) inspect(ctx context.Context, fn func(s *state)) error {
	done := make(chan struct{})
	if err := c.Dispatch(ctx, inspect{fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RoomExists reports whether code names a live room.
func (c *Coordinator) RoomExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := c.inspect(ctx, func(s *state) {
		exists = s.rooms.Exists(normalizeCode(code))
	})
	return exists, err
}

type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

func (c *Coordinator) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.inspect(ctx, func(s *state) {
		stats = Stats{Rooms: s.rooms.Len(), Connections: s.conns.Len()}
	})
	return stats, err
}

func (c *Coordinator) handle(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case Connect:
		c.state.conns.Connect(e.ConnID)
	case RequestRoom:
		c.requestRoom(e.ConnID)
	case RequestToJoin:
		c.requestToJoin(e.ConnID, normalizeCode(e.Code))
	case CheckRoom:
		exists := c.state.rooms.Exists(normalizeCode(e.Code))
		c.transport.Emit(e.ConnID, EventCheckRoomResult, CheckRoomResult{Exists: exists})
	case PlayerReady:
		c.playerReady(ctx, e.ConnID, normalizeCode(e.Code))
	case LetsPlayAgain:
		c.letsPlayAgain(ctx, e.ConnID, normalizeCode(e.Code))
	case ScoreUpdate:
		c.scoreUpdate(e.ConnID, e.Points, e.Words)
	case LeaveRoom:
		c.leaveRoom(e.ConnID, normalizeCode(e.Code))
	case Disconnecting:
		c.disconnecting(e.ConnID, e.Reason)
	case PingServer:
		c.transport.Emit(e.ConnID, EventPingFromServer, Pong{Timestamp: e.Timestamp})
	case Sweep:
		c.sweep(e.Now)
	case roundFetched:
		c.roundFetched(e)
	case inspect:
		e.fn(c.state)
		close(e.done)
	}
}

func (c *Coordinator) roomLog(code, connID string) roomLogger {
	return newRoomLogger(c.log, code, connID)
}

func (c *Coordinator) sweep(now time.Time) {
	for _, code := range c.state.rooms.Prune(now, c.opts.GracePeriod, c.transport.Occupancy) {
		c.roomLog(code, "").Pruned()
	}
}
