package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 16

var errBadBody = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(kind roomService.Kind) int {
	switch kind {
	case roomService.KindNotFound:
		return http.StatusNotFound
	case roomService.KindConflict:
		return http.StatusConflict
	case roomService.KindInvalid:
		return http.StatusBadRequest
	case roomService.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := roomService.KindOf(err)
	status := statusFor(kind)

	event := h.log.Warn()
	if status >= http.StatusInternalServerError {
		event = h.log.Error()
	}
	event.Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Str("kind", kind.String()).
		Msg("request failed")

	msg := err.Error()
	if kind == roomService.KindInternal {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind.String()})
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Warn().Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("bad request")
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: err.Error(),
		Kind:  roomService.KindInvalid.String(),
	})
}

// decode reads a JSON body; an empty body leaves v untouched
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadBody
	}
	return nil
}
