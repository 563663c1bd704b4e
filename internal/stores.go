package internal

import (
	cl "albumviewer/pkg/catelog"
	"context"
)

// Gateway is the read-only boundary to the remote JSON API.
type Gateway interface {
	ListUsers(ctx context.Context) ([]cl.User, error)
	ListAlbums(ctx context.Context, userID int) ([]cl.Album, error)
	ListAlbumPhotos(ctx context.Context, albumID int) ([]cl.AlbumPhoto, error)
	ListAllPhotos(ctx context.Context) ([]cl.AlbumPhoto, error)
}
