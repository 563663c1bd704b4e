package http

import (
	"albumviewer/internal/flow"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
)

type Handler struct {
	Version string
	AppName string
	router  *mux.Router
	Logger  tools.Logger
	App     *flow.App
}
