package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidRejoinKey = errors.New("invalid rejoin key")

// RejoinJWT signs short lived keys carrying a room code, so a client whose
// connection dropped can ask to be put back into its room.
type RejoinJWT struct {
	secret []byte
	ttl    time.Duration
}

type rejoinClaims struct {
	RoomCode string `json:"roomCode"`
	jwt.RegisteredClaims
}

func NewRejoinJWT(secret string, ttl time.Duration) *RejoinJWT {
	return &RejoinJWT{secret: []byte(secret), ttl: ttl}
}

func (r *RejoinJWT) Issue(roomCode string) (string, error) {
	claims := rejoinClaims{
		RoomCode: roomCode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(r.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

func (r *RejoinJWT) RoomCode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &rejoinClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRejoinKey, err)
	}
	claims, ok := token.Claims.(*rejoinClaims)
	if !ok || !token.Valid || claims.RoomCode == "" {
		return "", ErrInvalidRejoinKey
	}
	return claims.RoomCode, nil
}
