package game

import "time"

// Event is an inbound message handled by the coordinator loop.
type Event interface{ isEvent() }

type Connect struct{ ConnID string }

type RequestRoom struct{ ConnID string }

type RequestToJoin struct {
	ConnID string
	Code   string
}

type CheckRoom struct {
	ConnID string
	Code   string
}

type PlayerReady struct {
	ConnID string
	Code   string
}

type LetsPlayAgain struct {
	ConnID string
	Code   string
}

type ScoreUpdate struct {
	ConnID string
	Points int
	Words  []string
}

type LeaveRoom struct {
	ConnID string
	Code   string
}

// Disconnecting is posted by the transport before the connection is gone.
type Disconnecting struct {
	ConnID string
	Reason string
}

type PingServer struct {
	ConnID    string
	Timestamp float64
}

// Sweep prunes rooms that stayed empty for longer than the grace period.
type Sweep struct{ Now time.Time }

// roundFetched carries a finished puzzle fetch back into the loop.
type roundFetched struct {
	code  string
	round int
	data  RoundData
	err   error
}

// inspect runs fn on the loop goroutine, used for read queries.
type inspect struct {
	fn   func(s *state)
	done chan struct{}
}

func (Connect) isEvent()       {}
func (RequestRoom) isEvent()   {}
func (RequestToJoin) isEvent() {}
func (CheckRoom) isEvent()     {}
func (PlayerReady) isEvent()   {}
func (LetsPlayAgain) isEvent() {}
func (ScoreUpdate) isEvent()   {}
func (LeaveRoom) isEvent()     {}
func (Disconnecting) isEvent() {}
func (PingServer) isEvent()    {}
func (Sweep) isEvent()         {}
func (roundFetched) isEvent()  {}
func (inspect) isEvent()       {}
