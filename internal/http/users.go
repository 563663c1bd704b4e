package http

import (
	"net/http"

	cl "albumviewer/pkg/catelog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// ListUsers renders the user list screen.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	_ = httputils.WriteJSON(w, r.URL.Query(), h.App.Users.View(), http.StatusOK)
}

// ToggleUser expands or collapses a user and fetches its albums. A failed
// fetch is reported inside the rendered screen.
func (h *Handler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	userID, err := parseID(r, "userId")
	if err != nil {
		h.Logger.Error("[ToggleUser] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.App.Users.SelectUser(ctx, userID)
	if errors.Is(err, cl.ErrNotFound) {
		h.Logger.Error("[ToggleUser] no user found",
			"request_id", reqID,
			"user_id", userID,
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error("[ToggleUser] error fetching albums",
			"request_id", reqID,
			"user_id", userID,
			"details", err.Error(),
		)
	}

	_ = httputils.WriteJSON(w, v, h.App.Users.View(), http.StatusOK)
}

// RemoveAlbum moves an album through its local removal phases.
func (h *Handler) RemoveAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	req, err := parseAlbumRequest(r)
	if err != nil {
		h.Logger.Error("[RemoveAlbum] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	users := h.App.Users
	switch mux.Vars(r)["action"] {
	case "delete":
		err = users.RequestDelete(req.UserID, req.AlbumID)
	case "confirm":
		err = users.ConfirmDelete(req.UserID, req.AlbumID)
	case "cancel":
		users.CancelDelete(req.UserID, req.AlbumID)
	case "complete":
		err = users.CompleteRemoval(req.UserID, req.AlbumID)
	}
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, cl.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, cl.ErrNoPendingRemoval):
			code = http.StatusConflict
		}
		h.Logger.Error("[RemoveAlbum] error removing album",
			"request_id", reqID,
			"user_id", req.UserID,
			"album_id", req.AlbumID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), code)
		return
	}

	_ = httputils.WriteJSON(w, v, users.View(), http.StatusOK)
}

// OpenAlbum navigates to the photos of an album and renders them.
func (h *Handler) OpenAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	req, err := parseAlbumRequest(r)
	if err != nil {
		h.Logger.Error("[OpenAlbum] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	screen, err := h.App.OpenAlbum(ctx, req.UserID, req.AlbumID)
	if errors.Is(err, cl.ErrNotFound) {
		h.Logger.Error("[OpenAlbum] no album found",
			"request_id", reqID,
			"user_id", req.UserID,
			"album_id", req.AlbumID,
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, cl.ErrNotOnRoute) {
		h.Logger.Error("[OpenAlbum] not on the user list",
			"request_id", reqID,
			"route", h.App.Nav.Current().Name,
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		h.Logger.Error("[OpenAlbum] error fetching photos",
			"request_id", reqID,
			"album_id", req.AlbumID,
			"details", err.Error(),
		)
	}

	_ = httputils.WriteJSON(w, v, screen.View(), http.StatusOK)
}
