package flow

import (
	"context"
	"sync"

	"albumviewer/internal"
	cl "albumviewer/pkg/catelog"

	"github.com/twitsprout/tools"
)

// GridColumns is the number of thumbnails per grid row.
const GridColumns = 3

const TitleAllPhotos = "All Photos"

type AlbumPhotosView struct {
	Title   string            `json:"title"`
	ShowAll bool              `json:"showAll"`
	Loading bool              `json:"loading"`
	Count   int               `json:"count"`
	Rows    [][]cl.AlbumPhoto `json:"rows"`
}

// AlbumPhotos is the detail screen showing the photos of one album, or of
// every album once ShowAll is toggled on. Photos never reach the Store.
type AlbumPhotos struct {
	gateway internal.Gateway
	logger  tools.Logger
	params  AlbumPhotosParams

	mu      sync.Mutex
	showAll bool
	loading bool
	photos  []cl.AlbumPhoto
	token   uint64
}

func NewAlbumPhotos(gateway internal.Gateway, logger tools.Logger, params AlbumPhotosParams) *AlbumPhotos {
	return &AlbumPhotos{
		gateway: gateway,
		logger:  logger,
		params:  params,
		photos:  []cl.AlbumPhoto{},
	}
}

func (s *AlbumPhotos) Params() AlbumPhotosParams {
	return s.params
}

// Mount loads the photos for the current toggle state.
func (s *AlbumPhotos) Mount(ctx context.Context) error {
	return s.load(ctx)
}

// ToggleShowAll switches between the album's photos and every photo, and
// reloads.
func (s *AlbumPhotos) ToggleShowAll(ctx context.Context) error {
	s.mu.Lock()
	s.showAll = !s.showAll
	s.mu.Unlock()
	return s.load(ctx)
}

// load replaces the photo list with the result of the latest request. Results
// of earlier requests that arrive late are dropped.
func (s *AlbumPhotos) load(ctx context.Context) error {
	s.mu.Lock()
	s.token++
	token := s.token
	showAll := s.showAll
	s.loading = true
	s.mu.Unlock()

	var (
		photos []cl.AlbumPhoto
		err    error
	)
	if showAll {
		photos, err = s.gateway.ListAllPhotos(ctx)
	} else {
		photos, err = s.gateway.ListAlbumPhotos(ctx, s.params.AlbumID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		s.logger.Debug("[load] discarded stale photos",
			"album_id", s.params.AlbumID,
			"show_all", showAll,
		)
		return nil
	}
	s.loading = false
	if err != nil {
		s.logger.Error("[load] error fetching album photos",
			"album_id", s.params.AlbumID,
			"show_all", showAll,
			"details", err.Error(),
		)
		return err
	}
	s.photos = photos
	return nil
}

// PressPhoto has no action yet besides logging.
func (s *AlbumPhotos) PressPhoto(photoID int) {
	s.logger.Info("[PressPhoto] photo pressed",
		"album_id", s.params.AlbumID,
		"photo_id", photoID,
	)
}

func (s *AlbumPhotos) View() AlbumPhotosView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := AlbumPhotosView{
		Title:   s.params.AlbumTitle,
		ShowAll: s.showAll,
		Loading: s.loading,
		Rows:    [][]cl.AlbumPhoto{},
	}
	if s.showAll {
		v.Title = TitleAllPhotos
	}
	if s.loading {
		return v
	}
	v.Count = len(s.photos)
	for i := 0; i < len(s.photos); i += GridColumns {
		end := i + GridColumns
		if end > len(s.photos) {
			end = len(s.photos)
		}
		v.Rows = append(v.Rows, append([]cl.AlbumPhoto{}, s.photos[i:end]...))
	}
	return v
}
