package game

import "github.com/rs/zerolog"

type roomLogger struct {
	zerolog zerolog.Logger
}

func newRoomLogger(l zerolog.Logger, roomCode, connID string) roomLogger {
	ctx := l.With()
	if roomCode != "" {
		ctx = ctx.Str("room-code", roomCode)
	}
	if connID != "" {
		ctx = ctx.Str("conn-id", connID)
	}
	return roomLogger{ctx.Logger()}
}

func (l roomLogger) CreatedRoom() {
	l.zerolog.Info().Msg("Created room")
}

func (l roomLogger) ReusedRoom() {
	l.zerolog.Info().Msg("Reusing empty room")
}

func (l roomLogger) JoinedRoom() {
	l.zerolog.Info().Msg("Joined room")
}

func (l roomLogger) LeftRoom() {
	l.zerolog.Info().Msg("Left room")
}

func (l roomLogger) JoinRejected(reason string) {
	l.zerolog.Debug().Str("reason", reason).Msg("Join rejected")
}

func (l roomLogger) Ready(count int) {
	l.zerolog.Debug().Int("ready", count).Msg("Player ready")
}

func (l roomLogger) DispatchingRound(round int) {
	l.zerolog.Debug().Int("round", round).Msg("Fetching puzzle")
}

func (l roomLogger) RoundReady(data RoundData) {
	l.zerolog.Debug().Strs("letters", data.Letters).Int("solutions", len(data.Solutions)).Msg("Puzzle dispatched")
}

func (l roomLogger) RoundDropped(reason string) {
	l.zerolog.Info().Str("reason", reason).Msg("Dropping puzzle")
}

func (l roomLogger) RoundFailed(err error) {
	l.zerolog.Error().Err(err).Msg("Could not fetch puzzle")
}

func (l roomLogger) Ignored(event, reason string) {
	l.zerolog.Warn().Str("event", event).Str("reason", reason).Msg("Ignoring event")
}

func (l roomLogger) Pruned() {
	l.zerolog.Info().Msg("Removing empty room")
}
