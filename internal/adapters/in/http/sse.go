package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"servicedesk/internal/adapters/out/notify"

	"github.com/labstack/echo/v4"
)

const sseHeartbeat = 15 * time.Second

// StreamEvents handles GET /api/v1/events. It holds the connection open and
// writes each notification of the caller as a Server-Sent Event until the
// client disconnects or the hub closes the subscription.
func (s *Server) StreamEvents(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	sub := s.hub.Subscribe(actor.ID())
	defer sub.Close()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if _, err = fmt.Fprint(w, ": connected\n\n"); err != nil {
		return nil
	}
	w.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err = fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case e, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err = writeEvent(w, e); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeEvent(w *echo.Response, e notify.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Kind, data)
	return err
}
