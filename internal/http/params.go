package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

type albumReq struct {
	UserID  int
	AlbumID int
}

func parseID(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	if raw == "" || raw == "-" {
		return 0, errors.Errorf("[parseID] %s must be provided", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("[parseID] %s must be an integer", name)
	}
	return id, nil
}

func parseAlbumRequest(r *http.Request) (albumReq, error) {
	var req albumReq
	userID, err := parseID(r, "userId")
	if err != nil {
		return req, err
	}
	albumID, err := parseID(r, "albumId")
	if err != nil {
		return req, err
	}
	req = albumReq{
		UserID:  userID,
		AlbumID: albumID,
	}
	return req, nil
}
