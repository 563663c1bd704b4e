package mock

import (
	"albumviewer/internal"
	cl "albumviewer/pkg/catelog"
	"context"
)

var _ internal.Gateway = (*Gateway)(nil)

// Gateway implements the internal Gateway interface for mocking purposes.
type Gateway struct {
	ListUsersFn       func(ctx context.Context) ([]cl.User, error)
	ListAlbumsFn      func(ctx context.Context, userID int) ([]cl.Album, error)
	ListAlbumPhotosFn func(ctx context.Context, albumID int) ([]cl.AlbumPhoto, error)
	ListAllPhotosFn   func(ctx context.Context) ([]cl.AlbumPhoto, error)
}

// ListUsers proxies the request to the ListUsersFn that's injected when
// the mock gateway is created.
func (g *Gateway) ListUsers(ctx context.Context) ([]cl.User, error) {
	return g.ListUsersFn(ctx)
}

// ListAlbums proxies the request to the ListAlbumsFn that's injected when
// the mock gateway is created.
func (g *Gateway) ListAlbums(ctx context.Context, userID int) ([]cl.Album, error) {
	return g.ListAlbumsFn(ctx, userID)
}

// ListAlbumPhotos proxies the request to the ListAlbumPhotosFn that's
// injected when the mock gateway is created.
func (g *Gateway) ListAlbumPhotos(ctx context.Context, albumID int) ([]cl.AlbumPhoto, error) {
	return g.ListAlbumPhotosFn(ctx, albumID)
}

// ListAllPhotos proxies the request to the ListAllPhotosFn that's injected
// when the mock gateway is created.
func (g *Gateway) ListAllPhotos(ctx context.Context) ([]cl.AlbumPhoto, error) {
	return g.ListAllPhotosFn(ctx)
}
