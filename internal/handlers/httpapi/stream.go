package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/KirkDiggler/yachtie/internal/models"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/KirkDiggler/yachtie/internal/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// streamRoom pushes the caller's view of a room on every change until the
// client disconnects or the room is deleted.
func (h *Handler) streamRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	playerName := r.URL.Query().Get("player")

	handle, err := h.feed.Acquire(r.Context(), roomID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer handle.Release()

	waitCtx, cancel := context.WithTimeout(r.Context(), h.waitTimeout)
	room, err := handle.Wait(waitCtx)
	cancel()
	if err != nil {
		// not upgraded yet so a missing room is a plain 404
		h.writeError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("room_id", roomID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := h.log.With().Str("room_id", roomID).Str("player", playerName).Logger()
	log.Info().Msg("stream opened")
	defer log.Info().Msg("stream closed")

	// holds only the newest frame, a slow client skips intermediate states
	updates := make(chan streamFrame, 1)
	stop := handle.OnChange(func(room *models.Room, err error) {
		frame := h.frameFor(room, err, playerName)
		for {
			select {
			case updates <- frame:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer stop()

	// a delivery may have landed between Wait and OnChange
	if current := handle.Current(); current != nil && current.Version > room.Version {
		room = current
	}
	if err := h.writeFrame(conn, h.frameFor(room, nil, playerName)); err != nil {
		return
	}

	done := make(chan struct{})
	go h.readPump(conn, done)

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case frame := <-updates:
			if err := h.writeFrame(conn, frame); err != nil {
				log.Debug().Err(err).Msg("stream write failed")
				return
			}
			if frame.Kind == roomService.KindNotFound.String() {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "room deleted"),
					time.Now().Add(writeWait))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close messages are processed
func (h *Handler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	pongWait := 2 * h.pingInterval
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

func (h *Handler) frameFor(room *models.Room, err error, playerName string) streamFrame {
	if err != nil {
		return streamFrame{
			Type:  frameTypeError,
			Error: err.Error(),
			Kind:  roomService.KindOf(err).String(),
		}
	}
	return streamFrame{
		Type: frameTypeRoom,
		View: session.Bind(room, h.calculator, playerName),
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, frame streamFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
