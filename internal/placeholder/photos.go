package placeholder

import (
	"context"
	"net/url"
	"strconv"

	cl "albumviewer/pkg/catelog"
)

const pathPhotos = "/photos"

// ListAlbumPhotos fetches the photos of a single album.
func (p *Placeholder) ListAlbumPhotos(ctx context.Context, albumID int) ([]cl.AlbumPhoto, error) {
	return p.listPhotos(ctx, "list album photos", albumID,
		p.endpoint(pathPhotos, url.Values{"albumId": {strconv.Itoa(albumID)}}))
}

// ListAllPhotos fetches every photo across all albums.
func (p *Placeholder) ListAllPhotos(ctx context.Context) ([]cl.AlbumPhoto, error) {
	return p.listPhotos(ctx, "list all photos", 0, p.endpoint(pathPhotos, nil))
}

func (p *Placeholder) listPhotos(ctx context.Context, op string, albumID int, endpoint string) ([]cl.AlbumPhoto, error) {
	var raw []rawPhoto
	if err := p.get(ctx, op, endpoint, &raw); err != nil {
		return nil, err
	}

	photos, err := toPhotos(op, albumID, raw)
	if err != nil {
		return nil, &cl.FetchError{Op: op, URL: endpoint, Err: err}
	}
	return photos, nil
}
