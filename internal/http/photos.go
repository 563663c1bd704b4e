package http

import (
	"net/http"

	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// GetPhotos renders the current AlbumPhotos screen.
func (h *Handler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	screen, err := h.App.Photos()
	if err != nil {
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
		return
	}
	_ = httputils.WriteJSON(w, v, screen.View(), http.StatusOK)
}

// TogglePhotos switches the current screen between the album's photos and
// every photo.
func (h *Handler) TogglePhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	screen, err := h.App.Photos()
	if err != nil {
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
		return
	}
	if err := screen.ToggleShowAll(ctx); err != nil {
		h.Logger.Error("[TogglePhotos] error fetching photos",
			"request_id", requestid.Get(ctx),
			"details", err.Error(),
		)
	}
	_ = httputils.WriteJSON(w, v, screen.View(), http.StatusOK)
}

func (h *Handler) PressPhoto(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()

	photoID, err := parseID(r, "photoId")
	if err != nil {
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}
	screen, err := h.App.Photos()
	if err != nil {
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
		return
	}
	screen.PressPhoto(photoID)
	_ = httputils.WriteJSON(w, v, screen.View(), http.StatusOK)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	_ = httputils.WriteJSON(w, r.URL.Query(), h.App.Nav.Current(), http.StatusOK)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	_ = httputils.WriteJSON(w, r.URL.Query(), h.App.Back(), http.StatusOK)
}
