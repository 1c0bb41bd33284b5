package game

import "context"

// Transport is the pub/sub-with-groups facility the coordinator drives. Group
// membership and occupancy live in the transport, not in the sessions.
type Transport interface {
	Emit(connID, event string, payload any)
	EmitRoom(code, event string, payload any)
	Join(connID, code string)
	Leave(connID, code string)
	Occupancy(code string) int
}

// WordSource produces puzzle words and their solutions.
type WordSource interface {
	FetchWords(ctx context.Context, length int) ([]string, error)
	FetchAnagramSolutions(ctx context.Context, letters string) ([]string, error)
}

// KeyIssuer signs rejoin keys for a room code.
type KeyIssuer interface {
	Issue(roomCode string) (string, error)
}

// Outbound events.
const (
	EventRequestRoomResponse      = "requestRoomResponse"
	EventResponseRequestToJoin    = "responseRequestToJoin"
	EventCheckRoomResult          = "checkRoomResult"
	EventPlayerReadyResponse      = "playerReadyResponse"
	EventOpponentReady            = "opponentReady"
	EventOpponentWantsToPlayAgain = "opponentWantsToPlayAgain"
	EventResetAndGetReady         = "resetAndGetReady"
	EventDataReady                = "dataReady"
	EventDataFailed               = "dataFailed"
	EventGameReady                = "gameReady"
	EventOpponentLeft             = "opponentLeft"
	EventScoreboardUpdate         = "scoreboardUpdate"
	EventPingFromServer           = "pingFromServer"
	EventRejoinKey                = "rejoinKey"
	EventConnected                = "connected"
)

type CodePayload struct {
	Code string `json:"code"`
}

type JoinResult struct {
	OK bool `json:"ok"`
}

type CheckRoomResult struct {
	Exists bool `json:"exists"`
}

type ReadyResult struct {
	OK bool `json:"ok"`
}

// RoundData is the puzzle of one round: the shuffled letters of the picked
// word and every word that can be built from them.
type RoundData struct {
	Letters   []string `json:"letters"`
	Solutions []string `json:"solutions"`
}

type ScorePair struct {
	You      int `json:"you"`
	Opponent int `json:"opponent"`
}

type WordsPair struct {
	You      []string `json:"you"`
	Opponent []string `json:"opponent"`
}

// Scoreboard is always labeled from the receiving player's point of view.
type Scoreboard struct {
	Scores ScorePair `json:"scores"`
	Words  WordsPair `json:"words"`
}

type Pong struct {
	Timestamp float64 `json:"timestamp"`
}

type RejoinKeyPayload struct {
	RejoinKey string `json:"rejoinKey"`
}
