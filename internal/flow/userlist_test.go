package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"albumviewer/internal/mock"
	"albumviewer/internal/state"
	cl "albumviewer/pkg/catelog"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"
	"gopkg.in/guregu/null.v3"
)

var testNow = time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC)

func newTestUserList(g *mock.Gateway) (*UserList, *state.Store, *Navigator) {
	store := state.New()
	nav := NewNavigator()
	l := NewUserList(UserListConfig{
		Gateway:   g,
		Store:     store,
		Navigator: nav,
		Logger:    tm.NopLogger,
		Clock:     &tm.Clock{NowFn: func() time.Time { return testNow }},
	})
	return l, store, nav
}

func annGateway() *mock.Gateway {
	return &mock.Gateway{
		ListUsersFn: func(ctx context.Context) ([]cl.User, error) {
			return []cl.User{{ID: 1, Name: "Ann", Albums: []cl.Album{}}}, nil
		},
		ListAlbumsFn: func(ctx context.Context, userID int) ([]cl.Album, error) {
			return []cl.Album{{ID: 10, UserID: 1, Title: "Trip", ThumbnailUrl: "x"}}, nil
		},
	}
}

func TestMount(t *testing.T) {
	table := []struct {
		label       string
		listUsersFn func(ctx context.Context) ([]cl.User, error)
		expErr      bool
		expView     UserListView
	}{
		{
			label: "should show the error string if fetching users fails",
			listUsersFn: func(ctx context.Context) ([]cl.User, error) {
				return nil, &cl.FetchError{Op: "list users", Err: errors.New("connection refused")}
			},
			expErr: true,
			expView: UserListView{
				Title:  "Users",
				Status: StatusFailed,
				Error:  "Error fetching data",
			},
		},
		{
			label: "should show a message if there are no users",
			listUsersFn: func(ctx context.Context) ([]cl.User, error) {
				return []cl.User{}, nil
			},
			expView: UserListView{
				Title:   "Users",
				Status:  StatusReady,
				Message: "No users found.",
			},
		},
		{
			label: "should list the users collapsed",
			listUsersFn: func(ctx context.Context) ([]cl.User, error) {
				return []cl.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}}, nil
			},
			expView: UserListView{
				Title:  "Users",
				Status: StatusReady,
				Users: []UserRow{
					{ID: 1, Name: "Ann"},
					{ID: 2, Name: "Bob"},
				},
			},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			l, store, _ := newTestUserList(&mock.Gateway{ListUsersFn: ts.listUsersFn})

			err := l.Mount(context.Background())
			if (err != nil) != ts.expErr {
				t.Fatalf("unexpected error returned: %v", err)
			}
			if v := l.View(); !cmp.Equal(v, ts.expView) {
				t.Fatalf("unexpected view returned: %s", cmp.Diff(v, ts.expView))
			}
			if ts.expErr && len(store.Snapshot().Users) != 0 {
				t.Fatalf("user list should stay empty")
			}
		})
	}
}

func TestViewWhileMounting(t *testing.T) {
	var l *UserList
	var during UserListView
	l, _, _ = newTestUserList(&mock.Gateway{
		ListUsersFn: func(ctx context.Context) ([]cl.User, error) {
			during = l.View()
			return []cl.User{{ID: 1, Name: "Ann"}}, nil
		},
	})
	if err := l.Mount(context.Background()); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	exp := UserListView{Title: "Users", Status: StatusLoading}
	if !cmp.Equal(during, exp) {
		t.Fatalf("unexpected view while loading: %s", cmp.Diff(during, exp))
	}
}

func TestExpandAndDelete(t *testing.T) {
	ctx := context.Background()
	l, store, _ := newTestUserList(annGateway())
	if err := l.Mount(ctx); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	if err := l.SelectUser(ctx, 1); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}

	exp := UserListView{
		Title:          "Users",
		Status:         StatusReady,
		ExpandedUserID: null.IntFrom(1),
		Users: []UserRow{
			{ID: 1, Name: "Ann", Expanded: true, Albums: []AlbumRow{{ID: 10, Title: "Trip"}}},
		},
	}
	if v := l.View(); !cmp.Equal(v, exp) {
		t.Fatalf("unexpected view after expanding: %s", cmp.Diff(v, exp))
	}

	if err := l.RequestDelete(1, 10); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	exp.Users[0].Albums[0].Phase = PhaseConfirming
	exp.Users[0].Albums[0].Prompt = MsgConfirmDelete
	if v := l.View(); !cmp.Equal(v, exp) {
		t.Fatalf("unexpected view while confirming: %s", cmp.Diff(v, exp))
	}

	if err := l.ConfirmDelete(1, 10); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	exp.Users[0].Albums[0].Phase = PhaseRemoving
	exp.Users[0].Albums[0].Prompt = ""
	exp.Users[0].Albums[0].RemovingSince = null.TimeFrom(testNow)
	if v := l.View(); !cmp.Equal(v, exp) {
		t.Fatalf("unexpected view while removing: %s", cmp.Diff(v, exp))
	}
	if store.Snapshot().IsAlbumDeleted(1, 10) {
		t.Fatalf("album deleted before the removal completed")
	}

	if err := l.CompleteRemoval(1, 10); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	exp.Users[0].Albums = nil
	exp.Users[0].EmptyMessage = "Ann has no albums"
	if v := l.View(); !cmp.Equal(v, exp) {
		t.Fatalf("unexpected view after deleting: %s", cmp.Diff(v, exp))
	}
	if got := store.Snapshot().VisibleAlbums(1); len(got) != 0 {
		t.Fatalf("expected no visible albums, got: %+v", got)
	}
}

func TestRemovalPhases(t *testing.T) {
	ctx := context.Background()
	setup := func(t *testing.T) (*UserList, *state.Store) {
		l, store, _ := newTestUserList(annGateway())
		if err := l.Mount(ctx); err != nil {
			t.Fatalf("unexpected error returned: %s", err.Error())
		}
		if err := l.SelectUser(ctx, 1); err != nil {
			t.Fatalf("unexpected error returned: %s", err.Error())
		}
		return l, store
	}

	t.Run("should keep the album when cancelled", func(t *testing.T) {
		l, store := setup(t)
		_ = l.RequestDelete(1, 10)
		l.CancelDelete(1, 10)
		if err := l.ConfirmDelete(1, 10); !errors.Is(err, cl.ErrNoPendingRemoval) {
			t.Fatalf("expected ErrNoPendingRemoval, got: %v", err)
		}
		if len(store.Snapshot().VisibleAlbums(1)) != 1 {
			t.Fatalf("album should still be visible")
		}
		if row := l.View().Users[0].Albums[0]; row.Phase != PhaseIdle {
			t.Fatalf("unexpected phase: %q", row.Phase)
		}
	})

	t.Run("should not complete a removal that was not confirmed", func(t *testing.T) {
		l, store := setup(t)
		_ = l.RequestDelete(1, 10)
		if err := l.CompleteRemoval(1, 10); !errors.Is(err, cl.ErrNoPendingRemoval) {
			t.Fatalf("expected ErrNoPendingRemoval, got: %v", err)
		}
		if store.Snapshot().IsAlbumDeleted(1, 10) {
			t.Fatalf("album should not be deleted")
		}
	})

	t.Run("should not cancel a running removal", func(t *testing.T) {
		l, _ := setup(t)
		_ = l.RequestDelete(1, 10)
		_ = l.ConfirmDelete(1, 10)
		l.CancelDelete(1, 10)
		if err := l.CompleteRemoval(1, 10); err != nil {
			t.Fatalf("unexpected error returned: %s", err.Error())
		}
	})

	t.Run("should reject unknown albums", func(t *testing.T) {
		l, _ := setup(t)
		if err := l.RequestDelete(1, 99); !errors.Is(err, cl.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
		if err := l.RequestDelete(2, 10); !errors.Is(err, cl.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestSelectUserToggles(t *testing.T) {
	ctx := context.Background()
	g := annGateway()
	calls := 0
	g.ListAlbumsFn = func(ctx context.Context, userID int) ([]cl.Album, error) {
		calls++
		return []cl.Album{{ID: 10, UserID: 1, Title: "Trip"}}, nil
	}
	l, _, _ := newTestUserList(g)
	_ = l.Mount(ctx)

	before := l.ExpandedUserID()
	_ = l.SelectUser(ctx, 1)
	if got := l.ExpandedUserID(); !cmp.Equal(got, null.IntFrom(1)) {
		t.Fatalf("unexpected expanded user: %v", got)
	}
	_ = l.SelectUser(ctx, 1)
	if got := l.ExpandedUserID(); !cmp.Equal(got, before) {
		t.Fatalf("expanded user not restored: %v", got)
	}
	if calls != 2 {
		t.Fatalf("expected 2 album fetches, got %d", calls)
	}
	if err := l.SelectUser(ctx, 42); !errors.Is(err, cl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSelectUserSwitches(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newTestUserList(&mock.Gateway{
		ListUsersFn: func(ctx context.Context) ([]cl.User, error) {
			return []cl.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}}, nil
		},
		ListAlbumsFn: func(ctx context.Context, userID int) ([]cl.Album, error) {
			return []cl.Album{{ID: userID * 10, UserID: userID, Title: "t"}}, nil
		},
	})
	_ = l.Mount(ctx)
	_ = l.SelectUser(ctx, 1)
	_ = l.SelectUser(ctx, 2)

	v := l.View()
	if v.Users[0].Expanded || v.Users[0].Albums != nil {
		t.Fatalf("user 1 should be collapsed: %+v", v.Users[0])
	}
	if !v.Users[1].Expanded || len(v.Users[1].Albums) != 1 {
		t.Fatalf("user 2 should be expanded: %+v", v.Users[1])
	}
}

func TestSelectUserLoading(t *testing.T) {
	ctx := context.Background()
	var l *UserList
	var during UserRow
	g := annGateway()
	g.ListAlbumsFn = func(ctx context.Context, userID int) ([]cl.Album, error) {
		during = l.View().Users[0]
		return []cl.Album{}, nil
	}
	l, store, _ := newTestUserList(g)
	_ = l.Mount(ctx)
	_ = l.SelectUser(ctx, 1)

	exp := UserRow{ID: 1, Name: "Ann", Expanded: true, AlbumsLoading: true}
	if !cmp.Equal(during, exp) {
		t.Fatalf("unexpected row while loading: %s", cmp.Diff(during, exp))
	}
	if store.Snapshot().LoadingAlbums {
		t.Fatalf("loading flag not cleared")
	}
	exp = UserRow{ID: 1, Name: "Ann", Expanded: true, EmptyMessage: "Ann has no albums"}
	if got := l.View().Users[0]; !cmp.Equal(got, exp) {
		t.Fatalf("unexpected row after loading: %s", cmp.Diff(got, exp))
	}
}

func TestSelectUserFetchError(t *testing.T) {
	ctx := context.Background()
	fail := false
	g := annGateway()
	g.ListAlbumsFn = func(ctx context.Context, userID int) ([]cl.Album, error) {
		if fail {
			return nil, &cl.FetchError{Op: "list albums", Err: errors.New("timeout")}
		}
		return []cl.Album{{ID: 10, UserID: 1, Title: "Trip"}}, nil
	}
	l, store, _ := newTestUserList(g)
	_ = l.Mount(ctx)
	_ = l.SelectUser(ctx, 1)

	fail = true
	err := l.SelectUser(ctx, 1)
	var fe *cl.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a fetch error, got: %v", err)
	}

	v := l.View()
	if v.AlbumError != "Error fetching user Ann album" {
		t.Fatalf("unexpected album error: %q", v.AlbumError)
	}
	if got := store.Snapshot().VisibleAlbums(1); len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("previous albums not kept: %+v", got)
	}
	if store.Snapshot().LoadingAlbums {
		t.Fatalf("loading flag not cleared")
	}

	fail = false
	_ = l.SelectUser(ctx, 1)
	if v := l.View(); v.AlbumError != "" {
		t.Fatalf("album error not cleared: %q", v.AlbumError)
	}
}

func TestSelectAlbum(t *testing.T) {
	ctx := context.Background()
	l, store, nav := newTestUserList(annGateway())
	_ = l.Mount(ctx)

	if _, err := l.SelectAlbum(1, 10); !errors.Is(err, cl.ErrNotFound) {
		t.Fatalf("albums not fetched yet, expected ErrNotFound, got: %v", err)
	}

	_ = l.SelectUser(ctx, 1)
	r, err := l.SelectAlbum(1, 10)
	if err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	exp := Route{
		Name:   RouteAlbumPhotos,
		Title:  "Trip",
		Params: &AlbumPhotosParams{UserID: 1, AlbumID: 10, AlbumTitle: "Trip"},
	}
	if !cmp.Equal(r, exp) {
		t.Fatalf("unexpected route: %s", cmp.Diff(r, exp))
	}
	if !cmp.Equal(nav.Current(), exp) {
		t.Fatalf("navigator not on the album route: %s", cmp.Diff(nav.Current(), exp))
	}

	nav.Back()
	store.MarkAlbumDeleted(1, 10)
	if _, err := l.SelectAlbum(1, 10); !errors.Is(err, cl.ErrNotFound) {
		t.Fatalf("deleted album, expected ErrNotFound, got: %v", err)
	}
	if nav.Depth() != 1 {
		t.Fatalf("navigated to a deleted album")
	}
}

// blockingAlbums returns a ListAlbumsFn whose calls for a user block until the
// matching channel is closed.
func blockingAlbums(release map[int]chan struct{}, started chan<- int) func(ctx context.Context, userID int) ([]cl.Album, error) {
	var mu sync.Mutex
	calls := map[int]int{}
	return func(ctx context.Context, userID int) ([]cl.Album, error) {
		mu.Lock()
		calls[userID]++
		n := calls[userID]
		mu.Unlock()

		started <- userID
		if ch, ok := release[userID*10+n]; ok {
			<-ch
		}
		return []cl.Album{{ID: userID*100 + n, UserID: userID, Title: "t"}}, nil
	}
}

func TestAlbumFetchRace(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep users independent when responses arrive out of order", func(t *testing.T) {
		releaseA := make(chan struct{})
		started := make(chan int, 2)
		l, store, _ := newTestUserList(&mock.Gateway{
			ListUsersFn: func(ctx context.Context) ([]cl.User, error) {
				return []cl.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}}, nil
			},
			ListAlbumsFn: blockingAlbums(map[int]chan struct{}{11: releaseA}, started),
		})
		_ = l.Mount(ctx)

		done := make(chan struct{})
		go func() {
			_ = l.SelectUser(ctx, 1)
			close(done)
		}()
		<-started

		_ = l.SelectUser(ctx, 2)
		<-started
		close(releaseA)
		<-done

		snap := store.Snapshot()
		if got := snap.VisibleAlbums(1); len(got) != 1 || got[0].ID != 101 {
			t.Fatalf("unexpected albums for user 1: %+v", got)
		}
		if got := snap.VisibleAlbums(2); len(got) != 1 || got[0].ID != 201 {
			t.Fatalf("unexpected albums for user 2: %+v", got)
		}
	})

	t.Run("should discard a stale response for the same user", func(t *testing.T) {
		releaseFirst := make(chan struct{})
		started := make(chan int, 2)
		l, store, _ := newTestUserList(&mock.Gateway{
			ListUsersFn: func(ctx context.Context) ([]cl.User, error) {
				return []cl.User{{ID: 1, Name: "Ann"}}, nil
			},
			ListAlbumsFn: blockingAlbums(map[int]chan struct{}{11: releaseFirst}, started),
		})
		_ = l.Mount(ctx)

		done := make(chan struct{})
		go func() {
			_ = l.SelectUser(ctx, 1)
			close(done)
		}()
		<-started

		_ = l.SelectUser(ctx, 1)
		<-started
		close(releaseFirst)
		<-done

		if got := store.Snapshot().VisibleAlbums(1); len(got) != 1 || got[0].ID != 102 {
			t.Fatalf("stale albums applied: %+v", got)
		}
	})
}

func TestStaleAlbumFetchError(t *testing.T) {
	ctx := context.Background()
	releaseFirst := make(chan struct{})
	started := make(chan int, 2)

	var mu sync.Mutex
	calls := 0
	l, store, _ := newTestUserList(&mock.Gateway{
		ListUsersFn: func(ctx context.Context) ([]cl.User, error) {
			return []cl.User{{ID: 1, Name: "Ann"}}, nil
		},
		ListAlbumsFn: func(ctx context.Context, userID int) ([]cl.Album, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			started <- userID
			if n == 1 {
				<-releaseFirst
				return nil, &cl.FetchError{Op: "list albums", Err: errors.New("internal server error")}
			}
			return []cl.Album{{ID: 10, UserID: 1, Title: "Trip"}}, nil
		},
	})
	_ = l.Mount(ctx)

	errc := make(chan error, 1)
	go func() {
		errc <- l.SelectUser(ctx, 1)
	}()
	<-started

	if err := l.SelectUser(ctx, 1); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	<-started
	close(releaseFirst)
	if err := <-errc; err == nil {
		t.Fatalf("expected the first fetch to fail")
	}

	if v := l.View(); v.AlbumError != "" {
		t.Fatalf("stale failure reported: %q", v.AlbumError)
	}
	if got := store.Snapshot().VisibleAlbums(1); len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("unexpected albums: %+v", got)
	}
}
