package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// RegisterResult describes a registration that reached the catalog and the media cache.
//
// RefreshErr and ThumbnailErr are warnings: the song is registered even when they are set.
type RegisterResult struct {
	Song         *models.Song
	Artifact     string
	Thumbnail    string
	RefreshErr   error
	ThumbnailErr error
}

// DeleteResult describes a deregistered song. RefreshErr is a warning.
type DeleteResult struct {
	Song       *models.Song
	RefreshErr error
}

// Register inserts a song, fetches its audio and asks the daemon to rescan.
//
// A failed fetch leaves the catalog row in place: the caller sees [shared.ErrArtifactFetchFailed]
// for a song that is registered but not playable until it is deleted and registered again.
func (e *Engine) Register(ctx context.Context, id, name, artist string) (*RegisterResult, error) {
	song := models.NewSong(id, name, artist)
	if err := e.songs.Create(song); err != nil {
		return nil, err
	}

	fetched, err := e.media.Fetch(ctx, song.ID, song.Name)
	if err != nil {
		return nil, fmt.Errorf("song %s is in the catalog without audio: %w", song.ID, err)
	}

	result := &RegisterResult{
		Song:         song,
		Artifact:     fetched.Path,
		Thumbnail:    fetched.ThumbnailPath,
		ThumbnailErr: fetched.ThumbnailErr,
	}
	result.RefreshErr = e.withSession(ctx, func(s Session) error { return s.Refresh() })
	return result, nil
}

// DeleteSong removes the artifact, then the catalog row, then asks the daemon to rescan.
//
// The artifact goes first so a catalog row never outlives its file: if the file cannot be removed
// the catalog is not touched. A song still referenced by a playlist keeps its row but loses its file.
func (e *Engine) DeleteSong(ctx context.Context, name string) (*DeleteResult, error) {
	song, err := e.songs.GetByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	if err := e.media.Delete(song.ID); err != nil {
		return nil, err
	}

	if err := e.songs.Delete(song.ID); err != nil {
		return nil, err
	}

	// The thumbnail is cosmetic; a leftover image does not break any invariant.
	_ = e.media.DeleteThumbnail(song.Name)

	result := &DeleteResult{Song: song}
	result.RefreshErr = e.withSession(ctx, func(s Session) error { return s.Refresh() })
	return result, nil
}

// ListSongs returns every song in registration order.
func (e *Engine) ListSongs() ([]*models.Song, error) {
	return e.songs.List()
}

// songIndex adapts a song slice to [fuzzy.Source].
type songIndex []*models.Song

func (s songIndex) String(i int) string {
	if s[i].Artist == "" {
		return s[i].Name
	}
	return s[i].Name + " " + s[i].Artist
}

func (s songIndex) Len() int { return len(s) }

// SearchSongs fuzzy-matches query against song names and artists, best match first.
func (e *Engine) SearchSongs(query string) ([]*models.Song, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrMissingArgument)
	}

	songs, err := e.songs.List()
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(query, songIndex(songs))
	found := make([]*models.Song, 0, len(matches))
	for _, m := range matches {
		found = append(found, songs[m.Index])
	}
	return found, nil
}
