package catelog

// AlbumPhoto is a jsonplaceholder photo. Only the fields the photo grid needs
// are kept; the full-size url is dropped.
type AlbumPhoto struct {
	ID           int    `json:"id"`
	AlbumID      int    `json:"albumId,omitempty"`
	Title        string `json:"title,omitempty"`
	ThumbnailUrl string `json:"thumbnailUrl"`
}
