package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(50, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.Methods("GET").Path("/users").Name("list_users").HandlerFunc(h.ListUsers)
	v1.Methods("POST").Path("/users/{userId}/toggle").Name("toggle_user").HandlerFunc(h.ToggleUser)
	v1.Methods("POST").Path("/users/{userId}/albums/{albumId}/{action:delete|confirm|cancel|complete}").
		Name("remove_album").HandlerFunc(h.RemoveAlbum)
	v1.Methods("POST").Path("/users/{userId}/albums/{albumId}/open").Name("open_album").HandlerFunc(h.OpenAlbum)

	v1.Methods("GET").Path("/photos").Name("get_photos").HandlerFunc(h.GetPhotos)
	v1.Methods("POST").Path("/photos/toggle").Name("toggle_photos").HandlerFunc(h.TogglePhotos)
	v1.Methods("POST").Path("/photos/{photoId}/press").Name("press_photo").HandlerFunc(h.PressPhoto)

	v1.Methods("GET").Path("/route").Name("get_route").HandlerFunc(h.GetRoute)
	v1.Methods("POST").Path("/back").Name("back").HandlerFunc(h.Back)
	h.router = r
	return r
}
