package game

import "context"

func (c *Coordinator) playerReady(ctx context.Context, connID, code string) {
	logger := c.roomLog(code, connID)
	session, ok := c.state.rooms.Get(code)
	if !ok || session.MarkReady(connID) != nil {
		logger.Ignored("playerReady", "not a player of this room")
		c.transport.Emit(connID, EventPlayerReadyResponse, ReadyResult{OK: false})
		return
	}
	session.SetScore(connID, 0)
	session.SetWords(connID, nil)
	c.transport.Emit(connID, EventPlayerReadyResponse, ReadyResult{OK: true})
	logger.Ready(session.ReadyCount())

	other, found := session.OtherPlayer(connID)
	if !found {
		return
	}
	c.transport.Emit(other, EventOpponentReady, nil)
	if session.ReadyCount() == MaxPlayers {
		c.startRound(ctx, code, session)
	}
}

func (c *Coordinator) letsPlayAgain(ctx context.Context, connID, code string) {
	logger := c.roomLog(code, connID)
	session, ok := c.state.rooms.Get(code)
	if !ok || session.MarkReady(connID) != nil {
		logger.Ignored("letsPlayAgain", "not a player of this room")
		return
	}
	session.SetScore(connID, 0)
	session.SetWords(connID, nil)
	logger.Ready(session.ReadyCount())

	if session.ReadyCount() == MaxPlayers {
		if session.dispatching {
			return
		}
		c.transport.EmitRoom(code, EventResetAndGetReady, nil)
		c.startRound(ctx, code, session)
		return
	}
	if other, found := session.OtherPlayer(connID); found {
		c.transport.Emit(other, EventOpponentWantsToPlayAgain, nil)
	}
}

// startRound fetches the next puzzle off the loop. The result comes back as
// a roundFetched event.
func (c *Coordinator) startRound(ctx context.Context, code string, session *Session) {
	if session.dispatching {
		return
	}
	session.dispatching = true
	session.round++
	round := session.round
	c.roomLog(code, "").DispatchingRound(round)

	go func() {
		data, err := buildRound(ctx, c.words, c.opts.WordLength)
		ev := roundFetched{code: code, round: round, data: data, err: err}
		select {
		case c.inbox <- ev:
		case <-c.done:
		case <-ctx.Done():
		}
	}()
}

func (c *Coordinator) roundFetched(e roundFetched) {
	logger := c.roomLog(e.code, "")
	session, ok := c.state.rooms.Get(e.code)
	if !ok {
		logger.RoundDropped("room was removed")
		return
	}
	if !session.dispatching || session.round != e.round {
		logger.RoundDropped("stale round")
		return
	}
	session.dispatching = false
	session.ResetReady()

	if c.transport.Occupancy(e.code) == 0 {
		logger.RoundDropped("room is empty")
		return
	}
	if e.err != nil {
		logger.RoundFailed(e.err)
		c.transport.EmitRoom(e.code, EventDataFailed, nil)
		return
	}
	c.transport.EmitRoom(e.code, EventDataReady, e.data)
	logger.RoundReady(e.data)
}

func (c *Coordinator) scoreUpdate(connID string, points int, words []string) {
	code, ok := c.state.conns.RoomOf(connID)
	if !ok {
		c.roomLog("", connID).Ignored("scoreUpdate", "connection has no room")
		return
	}
	session, ok := c.state.rooms.Get(code)
	if !ok || !session.HasPlayer(connID) {
		c.roomLog(code, connID).Ignored("scoreUpdate", "not a player of this room")
		return
	}
	session.SetScore(connID, points)
	session.SetWords(connID, words)

	other, found := session.OtherPlayer(connID)
	mine, theirs := session.Score(connID), session.Score(other)
	myWords, theirWords := session.Words(connID), session.Words(other)

	c.transport.Emit(connID, EventScoreboardUpdate, Scoreboard{
		Scores: ScorePair{You: mine, Opponent: theirs},
		Words:  WordsPair{You: myWords, Opponent: theirWords},
	})
	if found {
		c.transport.Emit(other, EventScoreboardUpdate, Scoreboard{
			Scores: ScorePair{You: theirs, Opponent: mine},
			Words:  WordsPair{You: theirWords, Opponent: myWords},
		})
	}
}
