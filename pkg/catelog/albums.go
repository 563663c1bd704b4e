package catelog

type Album struct {
	UserID       int    `json:"userId"`
	ID           int    `json:"id"`
	Title        string `json:"title"`
	ThumbnailUrl string `json:"thumbnailUrl"`
}
