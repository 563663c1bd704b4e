package placeholder

import (
	"fmt"

	cl "albumviewer/pkg/catelog"
)

// The raw types mirror the API payloads with pointer fields so that missing
// values can be told apart from zero values.

type rawUser struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type rawAlbum struct {
	UserID       *int    `json:"userId"`
	ID           *int    `json:"id"`
	Title        *string `json:"title"`
	ThumbnailUrl *string `json:"thumbnailUrl"`
}

type rawPhoto struct {
	AlbumID      *int    `json:"albumId"`
	ID           *int    `json:"id"`
	Title        *string `json:"title"`
	ThumbnailUrl *string `json:"thumbnailUrl"`
}

func missing(op string, i int, field string) *cl.DecodeError {
	return &cl.DecodeError{Op: op, Index: i, Field: field, Msg: "missing required value"}
}

func toUsers(op string, raw []rawUser) ([]cl.User, error) {
	users := make([]cl.User, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.ID == nil:
			return nil, missing(op, i, "id")
		case r.Name == nil:
			return nil, missing(op, i, "name")
		}
		users = append(users, cl.User{
			ID:     *r.ID,
			Name:   *r.Name,
			Albums: []cl.Album{},
		})
	}
	return users, nil
}

func toAlbums(op string, userID int, raw []rawAlbum) ([]cl.Album, error) {
	albums := make([]cl.Album, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.UserID == nil:
			return nil, missing(op, i, "userId")
		case r.ID == nil:
			return nil, missing(op, i, "id")
		case r.Title == nil:
			return nil, missing(op, i, "title")
		}
		if *r.UserID != userID {
			return nil, &cl.DecodeError{
				Op:    op,
				Index: i,
				Field: "userId",
				Msg:   fmt.Sprintf("album belongs to user %d, requested %d", *r.UserID, userID),
			}
		}
		a := cl.Album{
			UserID: *r.UserID,
			ID:     *r.ID,
			Title:  *r.Title,
		}
		// Albums carry no thumbnail on the public API.
		if r.ThumbnailUrl != nil {
			a.ThumbnailUrl = *r.ThumbnailUrl
		}
		albums = append(albums, a)
	}
	return albums, nil
}

// toPhotos converts raw photos. albumID is 0 when the listing is unfiltered.
func toPhotos(op string, albumID int, raw []rawPhoto) ([]cl.AlbumPhoto, error) {
	photos := make([]cl.AlbumPhoto, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.ID == nil:
			return nil, missing(op, i, "id")
		case r.ThumbnailUrl == nil:
			return nil, missing(op, i, "thumbnailUrl")
		}
		p := cl.AlbumPhoto{
			ID:           *r.ID,
			ThumbnailUrl: *r.ThumbnailUrl,
		}
		if r.AlbumID != nil {
			p.AlbumID = *r.AlbumID
		}
		if albumID != 0 && r.AlbumID != nil && *r.AlbumID != albumID {
			return nil, &cl.DecodeError{
				Op:    op,
				Index: i,
				Field: "albumId",
				Msg:   fmt.Sprintf("photo belongs to album %d, requested %d", *r.AlbumID, albumID),
			}
		}
		if r.Title != nil {
			p.Title = *r.Title
		}
		photos = append(photos, p)
	}
	return photos, nil
}
