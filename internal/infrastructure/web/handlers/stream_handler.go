package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"p2p-volume-tracker/internal/application/dto"
	"p2p-volume-tracker/internal/domain/interfaces"
	"p2p-volume-tracker/internal/infrastructure/logging"
	"p2p-volume-tracker/internal/infrastructure/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamHandler pushes merged snapshots to WebSocket clients
type StreamHandler struct {
	service  interfaces.AggregationService
	interval time.Duration
	upgrader websocket.Upgrader
	now      func() time.Time

	// base outlives single requests; cancelling it closes every open stream
	base context.Context
}

// NewStreamHandler creates a stream handler that refreshes every interval.
// Streams end when base is cancelled; a nil base never ends them.
func NewStreamHandler(base context.Context, service interfaces.AggregationService, interval time.Duration) *StreamHandler {
	if base == nil {
		base = context.Background()
	}
	return &StreamHandler{
		base:     base,
		service:  service,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Same permissive policy as the CORS middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// Stream godoc
// @Summary Merged snapshot stream
// @Description Upgrades to WebSocket and pushes a merged snapshot on connect and on every refresh interval.
// @Tags exchanges
// @Success 101 {object} dto.StreamMessage "Switching protocols"
// @Router /api/stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		logging.WarnWithError(r.Context(), "WebSocket upgrade failed", err, nil)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// Detach from the request so the server's write timeout cannot cut the stream,
	// but stop when the server shuts down
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()
	stopOnShutdown := context.AfterFunc(h.base, cancel)
	defer stopOnShutdown()

	metrics.UpdateStreamClients(1)
	defer metrics.UpdateStreamClients(-1)

	logging.Info(ctx, "Stream client connected", logging.Fields{
		logging.FieldRemoteIP: r.RemoteAddr,
		"interval_ms":         h.interval.Milliseconds(),
	})

	go h.readPump(conn, cancel)

	if err := h.push(ctx, conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			if h.base.Err() != nil {
				h.closeGoingAway(conn)
				logging.Info(ctx, "Stream closed for server shutdown", nil)
				return
			}
			logging.Info(ctx, "Stream client disconnected", nil)
			return
		case <-ticker.C:
			if err := h.push(ctx, conn); err != nil {
				return
			}
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) closeGoingAway(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// readPump drains client frames; any read error ends the stream
func (h *StreamHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn) error {
	msg := dto.StreamMessage{
		Type:      "snapshot",
		Timestamp: h.now().UTC(),
	}

	resp, err := h.service.Aggregate(ctx)
	if err != nil {
		msg.Type = "error"
		msg.Error = "Failed to fetch exchange data"
	} else {
		msg.Data = dto.ToAggregateData(resp)
	}

	payload, err := sonic.ConfigStd.Marshal(msg)
	if err != nil {
		metrics.RecordStreamMessage(false)
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		metrics.RecordStreamMessage(false)
		logging.WarnWithError(ctx, "Stream write failed", err, nil)
		return err
	}

	metrics.RecordStreamMessage(true)
	return nil
}
