package game

import "strings"

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Coordinator) requestRoom(connID string) {
	if current, ok := c.state.conns.RoomOf(connID); ok {
		c.leave(connID, current)
	}

	code, session, reused := c.findEmptyRoom()
	if !reused {
		var err error
		code, session, err = c.state.rooms.Allocate()
		if err != nil {
			c.log.Error().Err(err).Str("conn-id", connID).Msg("Could not allocate room")
			return
		}
		c.roomLog(code, connID).CreatedRoom()
	} else {
		c.roomLog(code, connID).ReusedRoom()
	}

	if err := c.join(connID, code, session); err != nil {
		c.roomLog(code, connID).JoinRejected(err.Error())
		return
	}
	c.transport.Emit(connID, EventRequestRoomResponse, CodePayload{Code: code})
	c.issueRejoinKey(connID, code)
}

// findEmptyRoom returns the oldest room whose group has no members left.
func (c *Coordinator) findEmptyRoom() (string, *Session, bool) {
	for _, code := range c.state.rooms.Codes() {
		if c.transport.Occupancy(code) > 0 {
			continue
		}
		session, _ := c.state.rooms.Get(code)
		session.Recycle()
		return code, session, true
	}
	return "", nil, false
}

func (c *Coordinator) requestToJoin(connID, code string) {
	logger := c.roomLog(code, connID)
	current, assigned := c.state.conns.RoomOf(connID)
	session, exists := c.state.rooms.Get(code)

	switch {
	case assigned && current == code && exists:
		if err := c.join(connID, code, session); err != nil {
			logger.JoinRejected(err.Error())
			c.transport.Emit(connID, EventResponseRequestToJoin, JoinResult{OK: false})
			return
		}
	case !exists:
		logger.JoinRejected("room does not exist")
		c.transport.Emit(connID, EventResponseRequestToJoin, JoinResult{OK: false})
		return
	case c.transport.Occupancy(code) >= MaxPlayers:
		logger.JoinRejected("room is full")
		c.transport.Emit(connID, EventResponseRequestToJoin, JoinResult{OK: false})
		return
	default:
		if assigned {
			c.leave(connID, current)
		}
		if err := c.join(connID, code, session); err != nil {
			logger.JoinRejected(err.Error())
			c.transport.Emit(connID, EventResponseRequestToJoin, JoinResult{OK: false})
			return
		}
	}

	c.transport.Emit(connID, EventResponseRequestToJoin, JoinResult{OK: true})
	c.issueRejoinKey(connID, code)
	if c.transport.Occupancy(code) == MaxPlayers {
		c.transport.EmitRoom(code, EventGameReady, nil)
	}
}

// join makes connID a player of code. Joining a room twice is a no-op.
func (c *Coordinator) join(connID, code string, session *Session) error {
	if err := session.AddPlayer(connID); err != nil {
		return err
	}
	c.transport.Join(connID, code)
	c.state.conns.Assign(connID, code)
	c.roomLog(code, connID).JoinedRoom()
	return nil
}

func (c *Coordinator) leaveRoom(connID, code string) {
	if !c.state.rooms.Exists(code) {
		c.roomLog(code, connID).Ignored("leaveRoom", "room does not exist")
		return
	}
	c.leave(connID, code)
}

func (c *Coordinator) disconnecting(connID, reason string) {
	if code, ok := c.state.conns.RoomOf(connID); ok {
		c.leave(connID, code)
	}
	c.state.conns.Disconnect(connID)
	c.log.Info().Str("conn-id", connID).Str("reason", reason).Msg("Disconnected")
}

// leave removes connID from the room and its group. The room itself stays
// registered until a sweep finds it empty for long enough.
func (c *Coordinator) leave(connID, code string) {
	session, ok := c.state.rooms.Get(code)
	if ok {
		if session.HasPlayer(connID) && c.opts.NotifyOpponentLeft {
			if other, found := session.OtherPlayer(connID); found {
				c.transport.Emit(other, EventOpponentLeft, nil)
			}
		}
		session.RemovePlayer(connID)
	}
	c.transport.Leave(connID, code)
	if current, assigned := c.state.conns.RoomOf(connID); assigned && current == code {
		c.state.conns.Unassign(connID)
	}
	if ok && session.IsEmpty() && c.transport.Occupancy(code) == 0 {
		session.emptySince = c.opts.Now()
	}
	c.roomLog(code, connID).LeftRoom()
}

func (c *Coordinator) issueRejoinKey(connID, code string) {
	if c.opts.Keys == nil {
		return
	}
	key, err := c.opts.Keys.Issue(code)
	if err != nil {
		c.log.Error().Err(err).Str("room-code", code).Msg("Could not issue rejoin key")
		return
	}
	c.transport.Emit(connID, EventRejoinKey, RejoinKeyPayload{RejoinKey: key})
}
