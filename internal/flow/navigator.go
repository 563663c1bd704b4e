package flow

import "sync"

type RouteName string

const (
	RouteUserList    RouteName = "UserList"
	RouteAlbumPhotos RouteName = "AlbumPhotos"
)

// AlbumPhotosParams are the navigation params of the AlbumPhotos route.
// UserID is carried along but not read by the screen.
type AlbumPhotosParams struct {
	UserID     int    `json:"userId"`
	AlbumID    int    `json:"albumId"`
	AlbumTitle string `json:"albumTitle"`
}

type Route struct {
	Name   RouteName          `json:"name"`
	Title  string             `json:"title,omitempty"`
	Params *AlbumPhotosParams `json:"params,omitempty"`
}

// Navigator is a stack of routes rooted at the user list.
type Navigator struct {
	mu    sync.Mutex
	stack []Route
}

func NewNavigator() *Navigator {
	return &Navigator{
		stack: []Route{{Name: RouteUserList, Title: "Users"}},
	}
}

// Navigate pushes r on top of the stack.
func (n *Navigator) Navigate(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = append(n.stack, r)
}

// NavigateFrom pushes r only if the current route is named from. It reports
// whether r was pushed.
func (n *Navigator) NavigateFrom(from RouteName, r Route) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stack[len(n.stack)-1].Name != from {
		return false
	}
	n.stack = append(n.stack, r)
	return true
}

// Back pops the current route. The root route is never popped.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Current returns the route on top of the stack.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of routes on the stack.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}
