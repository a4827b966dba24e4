package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/resp"
)

// HandleListRooms returns the configured rooms in order.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, "", map[string]any{
			"rooms": deps.Manager.Rooms(),
		})
	}
}

// HandleRoomMembers returns who is currently joined to a room.
func HandleRoomMembers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := chi.URLParam(r, "room")
		if unescaped, err := url.PathUnescape(room); err == nil {
			room = unescaped
		}
		room = strings.TrimSpace(room)

		if room == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if !deps.Manager.IsValidRoom(room) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		resp.RespondSuccess(w, r, "", map[string]any{
			"room":    room,
			"members": deps.Manager.Members(room),
		})
	}
}
