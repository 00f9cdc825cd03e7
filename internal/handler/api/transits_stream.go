package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	xhttp "Stellium/pkg/http"
	xlogger "Stellium/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin checks are delegated to the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const streamWriteTimeout = 10 * time.Second

// TransitsStream pushes transit snapshots over a websocket. The first
// snapshot is sent immediately, then one per stream interval. Snapshots go
// through the same cache as the polling endpoint.
func (h *AstrologyEchoHandler) TransitsStream(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return xhttp.BadRequestResponse(c, "invalid profile id")
	}

	// Reject unknown profiles before upgrading.
	if _, err := h.svc.ChartFor(c.Request().Context(), id); err != nil {
		return h.domainError(c, "transit stream", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.metrics.StreamClientConnected(1)
	defer h.metrics.StreamClientConnected(-1)
	h.logger.Info("transit stream opened", xlogger.String("profile_id", id.String()))

	// Reader goroutine: drains control frames and signals close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	send := func() error {
		snap, err := h.svc.Transits(ctx, id, time.Now().UTC())
		if err != nil {
			h.logger.Warn("transit stream scan failed",
				xlogger.String("profile_id", id.String()),
				xlogger.Error(err),
			)
			return nil // transient; keep the stream open
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		return conn.WriteJSON(snap)
	}

	if err := send(); err != nil {
		return nil
	}
	for {
		select {
		case <-done:
			h.logger.Info("transit stream closed", xlogger.String("profile_id", id.String()))
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := send(); err != nil {
				return nil
			}
		}
	}
}
