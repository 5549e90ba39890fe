package ws

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vladkorolev/hoopshot/internal/middleware"
)

// SessionCreator starts a game session for one accepted connection.
type SessionCreator interface {
	StartSession(conn *Conn)
}

// HubStats holds live server metrics.
type HubStats struct {
	ActiveSessions   int64  `json:"activeSessions"`
	TotalConnections uint64 `json:"totalConnections"`
}

// Hub accepts websocket upgrades and hands each connection its own game
// session. Unlike a matchmaking lobby there is no pairing step: every AR
// client plays alone against its own hoop.
type Hub struct {
	creator SessionCreator
	log     *zap.Logger

	activeSessions   atomic.Int64
	totalConnections atomic.Uint64

	limiter        *middleware.IPRateLimiter
	originPatterns []string
	maxSessions    int64
}

func NewHub(creator SessionCreator, limiter *middleware.IPRateLimiter, originPatterns []string, maxSessions int64, log *zap.Logger) *Hub {
	return &Hub{
		creator:        creator,
		limiter:        limiter,
		originPatterns: originPatterns,
		maxSessions:    maxSessions,
		log:            log,
	}
}

// Stats returns a snapshot of current server metrics.
func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveSessions:   h.activeSessions.Load(),
		TotalConnections: h.totalConnections.Load(),
	}
}

// SessionEnded decrements the active session counter. Call when a
// session goroutine exits.
func (h *Hub) SessionEnded() {
	h.activeSessions.Add(-1)
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := middleware.RealIP(r)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		acceptOpts.OriginPatterns = h.originPatterns
	}

	wsc, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
		h.log.Warn("ws accept failed", zap.Error(err))
		return
	}

	// Frame messages are small; anything bigger is not ours.
	wsc.SetReadLimit(2048)

	if h.maxSessions > 0 && h.activeSessions.Load() >= h.maxSessions {
		h.log.Warn("session cap reached, rejecting", zap.String("ip", ip))
		wsc.Close(websocket.StatusTryAgainLater, "server full")
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
		return
	}

	h.totalConnections.Add(1)
	id := uuid.NewString()
	conn := NewConn(wsc, id, ip, h.limiter, h.log)
	h.log.Info("new connection",
		zap.String("conn", id),
		zap.String("ip", ip),
		zap.Uint64("total", h.totalConnections.Load()))

	// Background context so the connection outlives this handler's
	// request context semantics; the handler itself blocks below.
	go conn.WriteLoop(context.Background())

	go func() {
		<-conn.Done()
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
	}()

	h.activeSessions.Add(1)
	h.creator.StartSession(conn)

	// Block until the connection closes; keeps the underlying TCP
	// connection open for the websocket.
	<-conn.Done()
	h.log.Info("connection closed", zap.String("conn", id))
}
