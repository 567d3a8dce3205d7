package tasks

import (
	"context"

	"github.com/desertthunder/yap/internal/media"
	"github.com/desertthunder/yap/internal/models"
)

// SongStore is the song half of the catalog.
type SongStore interface {
	Create(song *models.Song) error
	Get(id string) (*models.Song, error)
	GetByName(name string) (*models.Song, error)
	Delete(id string) error
	List() ([]*models.Song, error)
}

// PlaylistStore is the playlist half of the catalog.
type PlaylistStore interface {
	Create(playlist *models.Playlist) error
	Get(name string) (*models.Playlist, error)
	Delete(name string) error
	List() ([]*models.Playlist, error)
}

// MembershipStore relates playlists to songs.
type MembershipStore interface {
	Add(playlistName, songID string) error
	Remove(playlistName, songID string) error
	ListSongs(playlistName string) ([]*models.Song, error)
}

// MediaCache owns one artifact per song identifier.
type MediaCache interface {
	Fetch(ctx context.Context, id, name string) (*media.FetchResult, error)
	Delete(id string) error
	DeleteThumbnail(name string) error
	MediaRef(id string) string
	IdentifierOf(ref string) string
}

// Session is one connection to the playback daemon.
type Session interface {
	Refresh() error
	Push(ref string) error
	Clear() error
	Play() error
	Pause(intent models.Intent) (bool, error)
	Shuffle(intent models.Intent) (bool, error)
	Repeat(intent models.Intent) (bool, error)
	Next() error
	Previous() error
	Seek(percent float64) error
	Remove(ref string) (int, error)
	ShuffleQueue() error
	Status() (models.DaemonStatus, error)
	Current() (string, error)
	Queue() ([]string, error)
	Close() error
}

// Dialer opens a fresh daemon session.
type Dialer func(ctx context.Context) (Session, error)

// Engine composes the catalog, media cache and daemon into yap's operations.
type Engine struct {
	songs       SongStore
	playlists   PlaylistStore
	memberships MembershipStore
	media       MediaCache
	dial        Dialer
}

// EngineOpts carries the collaborators of an [Engine].
type EngineOpts struct {
	Songs       SongStore
	Playlists   PlaylistStore
	Memberships MembershipStore
	Media       MediaCache
	Dial        Dialer
}

// NewEngine creates a new Engine with the provided stores.
func NewEngine(opts EngineOpts) *Engine {
	return &Engine{
		songs:       opts.Songs,
		playlists:   opts.Playlists,
		memberships: opts.Memberships,
		media:       opts.Media,
		dial:        opts.Dial,
	}
}

// withSession runs fn on a fresh daemon session and always closes it.
func (e *Engine) withSession(ctx context.Context, fn func(Session) error) error {
	session, err := e.dial(ctx)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}
