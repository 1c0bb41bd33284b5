package game

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	To        string
	Event     string
	Payload   any
	Broadcast bool
}

// fakeTransport records every emitted message per receiving connection.
type fakeTransport struct {
	mu     sync.Mutex
	groups map[string]map[string]bool
	sent   []sentMessage
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{groups: make(map[string]map[string]bool)}
}

func (f *fakeTransport) Emit(connID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{To: connID, Event: event, Payload: payload})
}

func (f *fakeTransport) EmitRoom(code, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for connID := range f.groups[code] {
		f.sent = append(f.sent, sentMessage{To: connID, Event: event, Payload: payload, Broadcast: true})
	}
}

func (f *fakeTransport) Join(connID, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.groups[code] == nil {
		f.groups[code] = make(map[string]bool)
	}
	f.groups[code][connID] = true
}

func (f *fakeTransport) Leave(connID, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.groups[code], connID)
}

func (f *fakeTransport) Occupancy(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.groups[code])
}

func (f *fakeTransport) received(connID, event string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payloads []any
	for _, m := range f.sent {
		if m.To == connID && m.Event == event {
			payloads = append(payloads, m.Payload)
		}
	}
	return payloads
}

func (f *fakeTransport) last(connID, event string) any {
	payloads := f.received(connID, event)
	if len(payloads) == 0 {
		return nil
	}
	return payloads[len(payloads)-1]
}

type fakeWords struct {
	mu        sync.Mutex
	words     []string
	solutions []string
	err       error
	// gate blocks FetchWords until it is closed.
	gate  chan struct{}
	asked []string
}

func (f *fakeWords) FetchWords(ctx context.Context, length int) ([]string, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.words, f.err
}

func (f *fakeWords) FetchAnagramSolutions(ctx context.Context, letters string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, letters)
	return f.solutions, nil
}

type fakeKeys struct{}

func (fakeKeys) Issue(roomCode string) (string, error) {
	return "key-" + roomCode, nil
}

// sequentialCodes hands out AAAA, BBBB, CCCC, ...
func sequentialCodes() func() (string, error) {
	next := 0
	return func() (string, error) {
		if next >= 26 {
			return "", fmt.Errorf("out of codes")
		}
		letter := string(rune('A' + next))
		next++
		return letter + letter + letter + letter, nil
	}
}

type harness struct {
	t         *testing.T
	ctx       context.Context
	c         *Coordinator
	transport *fakeTransport
	words     *fakeWords
}

func newHarness(t *testing.T, configure func(o *Options)) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := zerolog.Nop()
	opts := DefaultOptions()
	opts.Logger = &logger
	if configure != nil {
		configure(&opts)
	}
	h := &harness{
		t:         t,
		ctx:       ctx,
		transport: newFakeTransport(),
		words: &fakeWords{
			words:     []string{"planet"},
			solutions: []string{"plan", "plane", "planet", "lent"},
		},
	}
	h.c = NewCoordinator(h.transport, h.words, NewRegistry(sequentialCodes()), opts)
	go h.c.Run(ctx)
	return h
}

func (h *harness) send(events ...Event) {
	h.t.Helper()
	for _, ev := range events {
		require.NoError(h.t, h.c.Dispatch(h.ctx, ev))
	}
	h.flush()
}

// flush waits until every queued event has been handled.
func (h *harness) flush() {
	h.t.Helper()
	require.NoError(h.t, h.c.inspect(h.ctx, func(*state) {}))
}

func (h *harness) session(code string) *Session {
	h.t.Helper()
	var session *Session
	require.NoError(h.t, h.c.inspect(h.ctx, func(s *state) {
		session, _ = s.rooms.Get(code)
	}))
	return session
}

func (h *harness) connect(ids ...string) {
	h.t.Helper()
	for _, id := range ids {
		h.send(Connect{ConnID: id})
	}
}

// pair puts a and b into the same room and returns its code.
func (h *harness) pair(a, b string) string {
	h.t.Helper()
	h.connect(a, b)
	h.send(RequestRoom{ConnID: a})
	code := h.transport.last(a, EventRequestRoomResponse).(CodePayload).Code
	h.send(RequestToJoin{ConnID: b, Code: code})
	return code
}

func (h *harness) requireInvariants() {
	h.t.Helper()
	require.NoError(h.t, h.c.inspect(h.ctx, func(s *state) {
		for _, code := range s.rooms.Codes() {
			session, _ := s.rooms.Get(code)
			require.LessOrEqual(h.t, len(session.players), MaxPlayers, "room %s", code)
			for connID := range session.ready {
				require.True(h.t, session.HasPlayer(connID), "ready %s not a player of %s", connID, code)
			}
		}
	}))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
