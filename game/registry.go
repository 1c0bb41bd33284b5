package game

import (
	"errors"
	"slices"
	"time"

	"anagram-duel/code"
)

const maxAllocateAttempts = 1000

var ErrCodeSpaceExhausted = errors.New("could not find a free room code")

// Registry holds every live room and its session, in allocation order.
type Registry struct {
	sessions map[string]*Session
	order    []string
	generate func() (string, error)
}

// NewRegistry uses generate to draw candidate codes, code.GenerateRandom
// when nil.
func NewRegistry(generate func() (string, error)) *Registry {
	if generate == nil {
		generate = code.GenerateRandom
	}
	return &Registry{
		sessions: make(map[string]*Session),
		order:    make([]string, 0),
		generate: generate,
	}
}

// Allocate draws codes until one is not taken and registers a fresh session
// under it.
func (r *Registry) Allocate() (string, *Session, error) {
	for i := 0; i < maxAllocateAttempts; i++ {
		c, err := r.generate()
		if err != nil {
			return "", nil, err
		}
		if r.Exists(c) {
			continue
		}
		s := NewSession()
		r.sessions[c] = s
		r.order = append(r.order, c)
		return c, s, nil
	}
	return "", nil, ErrCodeSpaceExhausted
}

func (r *Registry) Exists(code string) bool {
	_, ok := r.sessions[code]
	return ok
}

func (r *Registry) Get(code string) (*Session, bool) {
	s, ok := r.sessions[code]
	return s, ok
}

func (r *Registry) Remove(code string) {
	if _, ok := r.sessions[code]; !ok {
		return
	}
	delete(r.sessions, code)
	if i := slices.Index(r.order, code); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Codes returns the live room codes in allocation order.
func (r *Registry) Codes() []string {
	return slices.Clone(r.order)
}

func (r *Registry) Len() int {
	return len(r.sessions)
}

// Prune removes rooms that have had neither players nor group members for at
// least grace. It returns the removed codes.
func (r *Registry) Prune(now time.Time, grace time.Duration, occupancy func(code string) int) []string {
	var removed []string
	for _, c := range r.Codes() {
		s := r.sessions[c]
		if !s.IsEmpty() || occupancy(c) > 0 {
			s.emptySince = time.Time{}
			continue
		}
		if s.emptySince.IsZero() {
			s.emptySince = now
		}
		if now.Sub(s.emptySince) >= grace {
			r.Remove(c)
			removed = append(removed, c)
		}
	}
	return removed
}
