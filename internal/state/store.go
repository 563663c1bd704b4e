// Package state holds the authoritative in-memory application state: the user
// list, the albums deleted locally per user and the album loading flag.
package state

import (
	"sync"

	cl "albumviewer/pkg/catelog"
)

// Snapshot is a read-only copy of the Store's state.
type Snapshot struct {
	Users         []cl.User
	DeletedAlbums map[int][]int
	LoadingAlbums bool
}

// User returns the user with the given id.
func (s Snapshot) User(id int) (cl.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return cl.User{}, false
}

// IsAlbumDeleted reports whether albumID was deleted for userID.
func (s Snapshot) IsAlbumDeleted(userID, albumID int) bool {
	for _, id := range s.DeletedAlbums[userID] {
		if id == albumID {
			return true
		}
	}
	return false
}

// VisibleAlbums returns the user's albums that were not deleted locally, in
// fetch order. It returns an empty slice for unknown users.
func (s Snapshot) VisibleAlbums(userID int) []cl.Album {
	visible := []cl.Album{}
	u, ok := s.User(userID)
	if !ok {
		return visible
	}
	for _, a := range u.Albums {
		if !s.IsAlbumDeleted(userID, a.ID) {
			visible = append(visible, a)
		}
	}
	return visible
}

// Store is an observable state container. Every mutation notifies the
// subscribers synchronously, in the mutating goroutine, after the lock is
// released.
type Store struct {
	mu      sync.Mutex
	users   []cl.User
	deleted map[int][]int
	loading bool

	// tokens holds the latest album fetch token issued per user.
	tokens map[int]uint64

	subs   map[int]func(Snapshot)
	nextID int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:   []cl.User{},
		deleted: map[int][]int{},
		tokens:  map[int]uint64{},
		subs:    map[int]func(Snapshot){},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	users := make([]cl.User, len(s.users))
	for i, u := range s.users {
		users[i] = cl.User{
			ID:     u.ID,
			Name:   u.Name,
			Albums: append([]cl.Album{}, u.Albums...),
		}
	}
	deleted := make(map[int][]int, len(s.deleted))
	for userID, ids := range s.deleted {
		deleted[userID] = append([]int(nil), ids...)
	}
	return Snapshot{
		Users:         users,
		DeletedAlbums: deleted,
		LoadingAlbums: s.loading,
	}
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn under the lock and, if fn reports a change, notifies the
// subscribers.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// ReplaceUsers overwrites the user list. Albums of users missing from users
// are not preserved.
func (s *Store) ReplaceUsers(users []cl.User) {
	cp := make([]cl.User, len(users))
	for i, u := range users {
		u.Albums = append([]cl.Album{}, u.Albums...)
		cp[i] = u
	}
	s.mutate(func() bool {
		s.users = cp
		return true
	})
}

// MarkAlbumDeleted records albumID as deleted for userID. Marking the same
// album twice has no further effect on visibility.
func (s *Store) MarkAlbumDeleted(userID, albumID int) {
	s.mutate(func() bool {
		s.deleted[userID] = append(s.deleted[userID], albumID)
		return true
	})
}

// SetAlbumsLoading overwrites the album loading flag.
func (s *Store) SetAlbumsLoading(loading bool) {
	s.mutate(func() bool {
		s.loading = loading
		return true
	})
}

// IssueAlbumsToken starts a new album fetch for userID and returns its token.
// Results of earlier fetches for the same user become stale.
func (s *Store) IssueAlbumsToken(userID int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID]++
	return s.tokens[userID]
}

// IsLatestAlbumsToken reports whether token is the latest issued for userID.
func (s *Store) IsLatestAlbumsToken(userID int, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[userID] == token
}

// ApplyAlbums replaces the albums of userID in the current user list if token
// is still the latest issued for that user. It reports whether the albums
// were applied.
func (s *Store) ApplyAlbums(userID int, token uint64, albums []cl.Album) bool {
	applied := false
	cp := append([]cl.Album{}, albums...)
	s.mutate(func() bool {
		if s.tokens[userID] != token {
			return false
		}
		users := make([]cl.User, len(s.users))
		for i, u := range s.users {
			if u.ID == userID {
				u.Albums = cp
				applied = true
			}
			users[i] = u
		}
		s.users = users
		return applied
	})
	return applied
}
