package httpapi

import (
	"errors"
	"net/http"

	"github.com/KirkDiggler/yachtie/internal/scoring"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/go-chi/chi/v5"
)

var errMissingScore = errors.New("score is required")

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, r, err)
		return
	}

	out, err := h.rooms.CreateRoom(r.Context(), &roomService.CreateRoomInput{
		Name:          req.Name,
		ExtendedRules: req.ExtendedRules,
		CreatorName:   req.CreatorName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createRoomResponse{
		RoomID:   out.RoomID,
		PlayerID: out.PlayerID,
		Room:     out.Room,
	})
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.rooms.ListRooms(r.Context(), &roomService.ListRoomsInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listRoomsResponse{Rooms: out.Rooms})
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	out, err := h.rooms.GetRankings(r.Context(), &roomService.GetRankingsInput{
		RoomID: chi.URLParam(r, "roomID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roomDetailResponse{Room: out.Room, Leaderboard: out.Leaderboard})
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	_, err := h.rooms.DeleteRoom(r.Context(), &roomService.DeleteRoomInput{
		RoomID: chi.URLParam(r, "roomID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) joinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, r, err)
		return
	}

	out, err := h.rooms.JoinRoom(r.Context(), &roomService.JoinRoomInput{
		RoomID:     chi.URLParam(r, "roomID"),
		PlayerName: req.Name,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, joinRoomResponse{PlayerID: out.PlayerID, Room: out.Room})
}

func (h *Handler) startGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.rooms.StartGame(r.Context(), &roomService.StartGameInput{
		RoomID: chi.URLParam(r, "roomID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roomResponse{Room: out.Room})
}

func (h *Handler) submitScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, r, err)
		return
	}
	if req.Score == nil {
		h.writeBadRequest(w, r, errMissingScore)
		return
	}

	out, err := h.rooms.SubmitScore(r.Context(), &roomService.SubmitScoreInput{
		RoomID:   chi.URLParam(r, "roomID"),
		PlayerID: req.PlayerID,
		Category: req.Category,
		Score:    *req.Score,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitScoreResponse{
		Room:           out.Room,
		RoundCompleted: out.RoundCompleted,
		GameFinished:   out.GameFinished,
	})
}

func (h *Handler) correctScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, r, err)
		return
	}
	if req.Score == nil {
		h.writeBadRequest(w, r, errMissingScore)
		return
	}

	out, err := h.rooms.CorrectScore(r.Context(), &roomService.CorrectScoreInput{
		RoomID:   chi.URLParam(r, "roomID"),
		PlayerID: req.PlayerID,
		Category: req.Category,
		Score:    *req.Score,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := correctScoreResponse{Room: out.Room}
	if out.HadScore {
		previous := out.PreviousScore
		resp.PreviousScore = &previous
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) restartGame(w http.ResponseWriter, r *http.Request) {
	var req restartRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, r, err)
		return
	}

	out, err := h.rooms.RestartGame(r.Context(), &roomService.RestartGameInput{
		RoomID:        chi.URLParam(r, "roomID"),
		ExtendedRules: req.ExtendedRules,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roomResponse{Room: out.Room})
}

// scoreDice suggests the score of every open category for one hand
func (h *Handler) scoreDice(w http.ResponseWriter, r *http.Request) {
	var req scoreDiceRequest
	if err := decode(r, &req); err != nil {
		h.writeBadRequest(w, r, err)
		return
	}

	scores, err := scoring.Evaluate(req.Dice, req.ExtendedRules)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scoreDiceResponse{Scores: scores})
}
