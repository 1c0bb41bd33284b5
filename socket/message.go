package socket

import (
	"encoding/json"
	"errors"
	"fmt"

	"anagram-duel/game"
)

var (
	ErrUndefinedType    = errors.New("incorrect type")
	ErrMalformedMessage = errors.New("malformed message")
)

func UnmarshalJSON[T any](data []byte) (T, error) {
	var parsed T
	if err := json.Unmarshal(data, &parsed); err != nil {
		return parsed, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return parsed, nil
}

// typeMessage is the inbound envelope. Fields are read from data, or from
// the frame itself when data is absent.
type typeMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func decodePayload[T any](message typeMessage, frame []byte) (T, error) {
	if len(message.Data) > 0 && string(message.Data) != "null" {
		return UnmarshalJSON[T](message.Data)
	}
	return UnmarshalJSON[T](frame)
}

type codeMessage struct {
	Code string `json:"code"`
}

type scoreUpdateMessage struct {
	Points int      `json:"points"`
	Words  []string `json:"words"`
}

type pingServerMessage struct {
	Timestamp float64 `json:"timestamp"`
}

// envelope is the shape of every outbound frame.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type connectedMessage struct {
	ID string `json:"id"`
}

// DecodeEvent turns an inbound frame from connID into a coordinator event.
func DecodeEvent(connID string, data []byte) (game.Event, error) {
	message, err := UnmarshalJSON[typeMessage](data)
	if err != nil {
		return nil, err
	}
	switch message.Type {
	case "requestRoom":
		return game.RequestRoom{ConnID: connID}, nil
	case "requestToJoin", "checkRoom", "playerReady", "letsPlayAgain", "leaveRoom":
		m, err := decodePayload[codeMessage](message, data)
		if err != nil {
			return nil, err
		}
		return codeEvent(message.Type, connID, m.Code), nil
	case "scoreUpdate":
		m, err := decodePayload[scoreUpdateMessage](message, data)
		if err != nil {
			return nil, err
		}
		return game.ScoreUpdate{ConnID: connID, Points: m.Points, Words: m.Words}, nil
	case "pingServer":
		m, err := decodePayload[pingServerMessage](message, data)
		if err != nil {
			return nil, err
		}
		return game.PingServer{ConnID: connID, Timestamp: m.Timestamp}, nil
	default:
		return nil, ErrUndefinedType
	}
}

func codeEvent(eventType, connID, code string) game.Event {
	switch eventType {
	case "requestToJoin":
		return game.RequestToJoin{ConnID: connID, Code: code}
	case "checkRoom":
		return game.CheckRoom{ConnID: connID, Code: code}
	case "playerReady":
		return game.PlayerReady{ConnID: connID, Code: code}
	case "letsPlayAgain":
		return game.LetsPlayAgain{ConnID: connID, Code: code}
	default:
		return game.LeaveRoom{ConnID: connID, Code: code}
	}
}
