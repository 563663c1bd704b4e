package catelog

// User is a jsonplaceholder user, optionally enriched with the albums fetched
// for it.
type User struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Albums []Album `json:"albums"`
}

// FindAlbum returns the album with the given id, if the user has it.
func (u User) FindAlbum(albumID int) (Album, bool) {
	for _, a := range u.Albums {
		if a.ID == albumID {
			return a, true
		}
	}
	return Album{}, false
}
