package placeholder

import (
	"context"
	"net/url"
	"strconv"

	cl "albumviewer/pkg/catelog"
)

const pathAlbums = "/albums"

// ListAlbums fetches the albums of a single user.
func (p *Placeholder) ListAlbums(ctx context.Context, userID int) ([]cl.Album, error) {
	const op = "list albums"
	endpoint := p.endpoint(pathAlbums, url.Values{"userId": {strconv.Itoa(userID)}})

	var raw []rawAlbum
	if err := p.get(ctx, op, endpoint, &raw); err != nil {
		return nil, err
	}

	albums, err := toAlbums(op, userID, raw)
	if err != nil {
		return nil, &cl.FetchError{Op: op, URL: endpoint, Err: err}
	}
	return albums, nil
}
