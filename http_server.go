package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"anagram-duel/game"
	"anagram-duel/socket"
)

const (
	qrCodeSize = 256
	// disconnectTimeout bounds how long a closing socket waits for the
	// coordinator to handle its disconnect.
	disconnectTimeout = 5 * time.Second
)

type HTTPHandler struct {
	hub         *socket.Hub
	coordinator *game.Coordinator
	rejoin      *RejoinJWT
	clientURL   string
	log         zerolog.Logger
}

type roomResponse struct {
	Code      string `json:"code"`
	Occupancy int    `json:"occupancy"`
}

func NewHTTPServer(cfg *Config, hub *socket.Hub, coordinator *game.Coordinator, rejoin *RejoinJWT) http.Handler {
	httpHandler := HTTPHandler{
		hub:         hub,
		coordinator: coordinator,
		rejoin:      rejoin,
		clientURL:   cfg.ClientURL,
		log:         log.Logger,
	}
	return httpHandler.routes(cfg)
}

func (h HTTPHandler) routes(cfg *Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(cfg.RateLimitPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/"))

	r.Get("/ws", h.websocket())
	r.Get("/rooms/{roomCode}", h.getRoom())
	r.Get("/rooms/{roomCode}/qr", h.getRoomQRCode())
	r.Get("/stats", h.getStats())
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rejoinKey := r.URL.Query().Get("rejoinKey")
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		defer conn.Close()

		client := socket.NewClient(conn)
		connID := client.ID()
		logger := GetConnIPLogger(h.log, r.RemoteAddr, connID)
		ctx := r.Context()

		h.hub.Register(client)
		go client.WritePump()
		if err := h.coordinator.Dispatch(ctx, game.Connect{ConnID: connID}); err != nil {
			logger.DispatchFailed("connect", err)
			h.hub.Unregister(connID)
			return
		}
		h.hub.Greet(connID)
		logger.Connected()

		if rejoinKey != "" {
			roomCode, err := h.rejoin.RoomCode(rejoinKey)
			if err != nil {
				logger.RejoinRejected(err)
			} else {
				logger.Rejoining(roomCode)
				if err := h.coordinator.Dispatch(ctx, game.RequestToJoin{ConnID: connID, Code: roomCode}); err != nil {
					logger.DispatchFailed("requestToJoin", err)
				}
			}
		}

		for {
			event, err := client.ReadEvent()
			if err != nil {
				if errors.Is(err, socket.ErrUndefinedType) || errors.Is(err, socket.ErrMalformedMessage) {
					logger.SkippedMessage(err)
					continue
				}
				reason := disconnectReason(err)
				disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
				if err := h.coordinator.Disconnect(disconnectCtx, connID, reason); err != nil {
					logger.DispatchFailed("disconnecting", err)
				}
				cancel()
				h.hub.Unregister(connID)
				logger.Disconnected(reason)
				return
			}
			if err := h.coordinator.Dispatch(ctx, event); err != nil {
				logger.DispatchFailed(fmt.Sprintf("%T", event), err)
				h.hub.Unregister(connID)
				return
			}
		}
	}
}

func disconnectReason(err error) string {
	var closed wsutil.ClosedError
	if errors.As(err, &closed) {
		return "client closed"
	}
	return "transport error: " + err.Error()
}

func (h HTTPHandler) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, ok := h.existingRoom(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, roomResponse{Code: code, Occupancy: h.hub.Occupancy(code)})
	}
}

func (h HTTPHandler) getRoomQRCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, ok := h.existingRoom(w, r)
		if !ok {
			return
		}
		link := fmt.Sprintf("%s/?room=%s", h.clientURL, url.QueryEscape(code))
		png, err := qrcode.Encode(link, qrcode.Medium, qrCodeSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}

func (h HTTPHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.coordinator.Stats(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// existingRoom writes the error response itself when the room is missing.
func (h HTTPHandler) existingRoom(w http.ResponseWriter, r *http.Request) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "roomCode")))
	exists, err := h.coordinator.RoomExists(r.Context(), code)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return "", false
	}
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return "", false
	}
	return code, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
