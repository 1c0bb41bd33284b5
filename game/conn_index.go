package game

// ConnIndex maps live connections to the room they currently occupy. An
// empty room code means the connection is known but unassigned.
type ConnIndex struct {
	rooms map[string]string
}

func NewConnIndex() *ConnIndex {
	return &ConnIndex{rooms: make(map[string]string)}
}

func (c *ConnIndex) Connect(connID string) {
	if _, ok := c.rooms[connID]; !ok {
		c.rooms[connID] = ""
	}
}

func (c *ConnIndex) Disconnect(connID string) {
	delete(c.rooms, connID)
}

func (c *ConnIndex) IsConnected(connID string) bool {
	_, ok := c.rooms[connID]
	return ok
}

func (c *ConnIndex) Assign(connID, code string) {
	c.rooms[connID] = code
}

func (c *ConnIndex) RoomOf(connID string) (string, bool) {
	code := c.rooms[connID]
	return code, code != ""
}

func (c *ConnIndex) Unassign(connID string) {
	if _, ok := c.rooms[connID]; ok {
		c.rooms[connID] = ""
	}
}

// Len counts connected peers, assigned or not.
func (c *ConnIndex) Len() int {
	return len(c.rooms)
}
