// Package flow drives the two screens of the viewer: the user list with its
// expandable albums, and the photo grid of an album.
package flow

import (
	"context"
	"fmt"
	"sync"

	"albumviewer/internal"
	"albumviewer/internal/state"
	cl "albumviewer/pkg/catelog"

	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
	"gopkg.in/guregu/null.v3"
)

const (
	MsgFetchUsersError = "Error fetching data"
	MsgNoUsers         = "No users found."
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// UserListView is what the user list screen renders.
type UserListView struct {
	Title          string    `json:"title"`
	Status         Status    `json:"status"`
	Error          string    `json:"error,omitempty"`
	Message        string    `json:"message,omitempty"`
	AlbumError     string    `json:"albumError,omitempty"`
	ExpandedUserID null.Int  `json:"expandedUserId"`
	Users          []UserRow `json:"users"`
}

type UserRow struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Expanded      bool       `json:"expanded"`
	Albums        []AlbumRow `json:"albums,omitempty"`
	AlbumsLoading bool       `json:"albumsLoading,omitempty"`
	EmptyMessage  string     `json:"emptyMessage,omitempty"`
}

type AlbumRow struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Phase         RemovalPhase `json:"phase,omitempty"`
	Prompt        string       `json:"prompt,omitempty"`
	RemovingSince null.Time    `json:"removingSince"`
}

type UserListConfig struct {
	Gateway   internal.Gateway
	Store     *state.Store
	Navigator *Navigator
	Logger    tools.Logger
	Clock     clock.Clock
}

// UserList is the master screen. It owns the expanded user and the removal
// phases of albums; users, albums and deletions live in the Store.
type UserList struct {
	gateway internal.Gateway
	store   *state.Store
	nav     *Navigator
	logger  tools.Logger
	clock   clock.Clock

	mu       sync.Mutex
	status   Status
	err      string
	albumErr string
	expanded null.Int
	removals map[albumKey]removal
}

func NewUserList(c UserListConfig) *UserList {
	if c.Clock == nil {
		c.Clock = &clock.Default{}
	}
	return &UserList{
		gateway:  c.Gateway,
		store:    c.Store,
		nav:      c.Navigator,
		logger:   c.Logger,
		clock:    c.Clock,
		status:   StatusLoading,
		removals: map[albumKey]removal{},
	}
}

// Mount fetches the user list.
func (l *UserList) Mount(ctx context.Context) error {
	l.mu.Lock()
	l.status = StatusLoading
	l.err = ""
	l.mu.Unlock()

	users, err := l.gateway.ListUsers(ctx)
	if err != nil {
		l.logger.Error("[Mount] error fetching users",
			"details", err.Error(),
		)
		l.mu.Lock()
		l.status = StatusFailed
		l.err = MsgFetchUsersError
		l.mu.Unlock()
		return err
	}

	l.store.ReplaceUsers(users)
	l.mu.Lock()
	l.status = StatusReady
	l.mu.Unlock()
	return nil
}

// ExpandedUserID returns the id of the expanded user, if any.
func (l *UserList) ExpandedUserID() null.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expanded
}

// SelectUser toggles the expansion of the user and fetches its albums. The
// albums are fetched even when the user gets collapsed.
func (l *UserList) SelectUser(ctx context.Context, userID int) error {
	user, ok := l.store.Snapshot().User(userID)
	if !ok {
		return cl.ErrNotFound
	}

	l.mu.Lock()
	if l.expanded.Valid && l.expanded.Int64 == int64(userID) {
		l.expanded = null.Int{}
	} else {
		l.expanded = null.IntFrom(int64(userID))
	}
	l.mu.Unlock()

	return l.fetchAlbums(ctx, user)
}

func (l *UserList) fetchAlbums(ctx context.Context, user cl.User) error {
	l.store.SetAlbumsLoading(true)
	defer l.store.SetAlbumsLoading(false)

	token := l.store.IssueAlbumsToken(user.ID)
	albums, err := l.gateway.ListAlbums(ctx, user.ID)
	if err != nil {
		l.logger.Error("[fetchAlbums] error fetching user albums",
			"user_id", user.ID,
			"details", err.Error(),
		)
		if !l.store.IsLatestAlbumsToken(user.ID, token) {
			return err
		}
		l.mu.Lock()
		l.albumErr = fmt.Sprintf("Error fetching user %s album", user.Name)
		l.mu.Unlock()
		return err
	}

	if !l.store.ApplyAlbums(user.ID, token, albums) {
		l.logger.Debug("[fetchAlbums] discarded stale albums",
			"user_id", user.ID,
			"token", token,
		)
		return nil
	}
	l.mu.Lock()
	l.albumErr = ""
	l.mu.Unlock()
	return nil
}

// RequestDelete opens the confirmation prompt for a visible album.
func (l *UserList) RequestDelete(userID, albumID int) error {
	if !l.isVisible(userID, albumID) {
		return cl.ErrNotFound
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := albumKey{userID, albumID}
	if l.removals[key].phase == PhaseRemoving {
		return nil
	}
	l.removals[key] = removal{phase: PhaseConfirming}
	return nil
}

// CancelDelete dismisses the confirmation prompt without any state change.
func (l *UserList) CancelDelete(userID, albumID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := albumKey{userID, albumID}
	if l.removals[key].phase == PhaseConfirming {
		delete(l.removals, key)
	}
}

// ConfirmDelete starts the removal of the album. The album stays in the Store
// until CompleteRemoval is called.
func (l *UserList) ConfirmDelete(userID, albumID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := albumKey{userID, albumID}
	if l.removals[key].phase != PhaseConfirming {
		return cl.ErrNoPendingRemoval
	}
	l.removals[key] = removal{phase: PhaseRemoving, startedAt: l.clock.Now()}
	return nil
}

// CompleteRemoval marks a removing album as deleted in the Store.
func (l *UserList) CompleteRemoval(userID, albumID int) error {
	key := albumKey{userID, albumID}
	l.mu.Lock()
	if l.removals[key].phase != PhaseRemoving {
		l.mu.Unlock()
		return cl.ErrNoPendingRemoval
	}
	delete(l.removals, key)
	l.mu.Unlock()

	l.store.MarkAlbumDeleted(userID, albumID)
	l.logger.Info("[CompleteRemoval] album deleted locally",
		"user_id", userID,
		"album_id", albumID,
	)
	return nil
}

// SelectAlbum navigates to the photos of a visible album. It is only allowed
// while the user list is the current route.
func (l *UserList) SelectAlbum(userID, albumID int) (Route, error) {
	snap := l.store.Snapshot()
	user, ok := snap.User(userID)
	if !ok {
		return Route{}, cl.ErrNotFound
	}
	album, ok := user.FindAlbum(albumID)
	if !ok || snap.IsAlbumDeleted(userID, albumID) {
		return Route{}, cl.ErrNotFound
	}

	r := Route{
		Name:  RouteAlbumPhotos,
		Title: album.Title,
		Params: &AlbumPhotosParams{
			UserID:     userID,
			AlbumID:    albumID,
			AlbumTitle: album.Title,
		},
	}
	if !l.nav.NavigateFrom(RouteUserList, r) {
		return Route{}, cl.ErrNotOnRoute
	}
	return r, nil
}

func (l *UserList) isVisible(userID, albumID int) bool {
	for _, a := range l.store.Snapshot().VisibleAlbums(userID) {
		if a.ID == albumID {
			return true
		}
	}
	return false
}

// View builds the screen from the Store's current snapshot.
func (l *UserList) View() UserListView {
	snap := l.store.Snapshot()

	l.mu.Lock()
	defer l.mu.Unlock()

	v := UserListView{
		Title:          "Users",
		Status:         l.status,
		AlbumError:     l.albumErr,
		ExpandedUserID: l.expanded,
	}
	switch {
	case l.status == StatusLoading:
		return v
	case l.err != "":
		v.Error = l.err
		return v
	case len(snap.Users) == 0:
		v.Message = MsgNoUsers
		return v
	}

	v.Users = make([]UserRow, 0, len(snap.Users))
	for _, u := range snap.Users {
		row := UserRow{ID: u.ID, Name: u.Name}
		if l.expanded.Valid && l.expanded.Int64 == int64(u.ID) {
			row.Expanded = true
			l.fillAlbums(&row, snap)
		}
		v.Users = append(v.Users, row)
	}
	return v
}

func (l *UserList) fillAlbums(row *UserRow, snap state.Snapshot) {
	for _, a := range snap.VisibleAlbums(row.ID) {
		ar := AlbumRow{ID: a.ID, Title: a.Title}
		if r, ok := l.removals[albumKey{row.ID, a.ID}]; ok {
			ar.Phase = r.phase
			switch r.phase {
			case PhaseConfirming:
				ar.Prompt = MsgConfirmDelete
			case PhaseRemoving:
				ar.RemovingSince = null.TimeFrom(r.startedAt)
			}
		}
		row.Albums = append(row.Albums, ar)
	}
	if len(row.Albums) > 0 {
		return
	}
	if snap.LoadingAlbums {
		row.AlbumsLoading = true
		return
	}
	row.EmptyMessage = fmt.Sprintf("%s has no albums", row.Name)
}
