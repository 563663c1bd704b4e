package flow

import (
	"context"
	"sync"

	"albumviewer/internal"
	"albumviewer/internal/state"
	cl "albumviewer/pkg/catelog"

	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
)

type AppConfig struct {
	Gateway internal.Gateway
	Store   *state.Store
	Logger  tools.Logger
	Clock   clock.Clock
}

// App ties the screens to one Store and one Navigator.
type App struct {
	Store *state.Store
	Nav   *Navigator
	Users *UserList

	gateway internal.Gateway
	logger  tools.Logger

	mu     sync.Mutex
	photos *AlbumPhotos
}

func NewApp(c AppConfig) *App {
	if c.Store == nil {
		c.Store = state.New()
	}
	nav := NewNavigator()
	a := &App{
		Store: c.Store,
		Nav:   nav,
		Users: NewUserList(UserListConfig{
			Gateway:   c.Gateway,
			Store:     c.Store,
			Navigator: nav,
			Logger:    c.Logger,
			Clock:     c.Clock,
		}),
		gateway: c.Gateway,
		logger:  c.Logger,
	}
	c.Store.Subscribe(func(s state.Snapshot) {
		a.logger.Debug("[App] state changed",
			"users", len(s.Users),
			"loading_albums", s.LoadingAlbums,
		)
	})
	return a
}

// OpenAlbum navigates to the photos of an album and mounts the screen. The
// screen is returned even if loading its photos fails.
func (a *App) OpenAlbum(ctx context.Context, userID, albumID int) (*AlbumPhotos, error) {
	r, err := a.Users.SelectAlbum(userID, albumID)
	if err != nil {
		return nil, err
	}

	screen := NewAlbumPhotos(a.gateway, a.logger, *r.Params)
	a.mu.Lock()
	a.photos = screen
	a.mu.Unlock()

	return screen, screen.Mount(ctx)
}

// Photos returns the AlbumPhotos screen if it is the current route.
func (a *App) Photos() (*AlbumPhotos, error) {
	if a.Nav.Current().Name != RouteAlbumPhotos {
		return nil, cl.ErrNotOnRoute
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.photos == nil {
		return nil, cl.ErrNotOnRoute
	}
	return a.photos, nil
}

// Back leaves the current screen and returns the route now shown.
func (a *App) Back() Route {
	if a.Nav.Back() {
		a.mu.Lock()
		a.photos = nil
		a.mu.Unlock()
	}
	return a.Nav.Current()
}
