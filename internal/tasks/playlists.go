package tasks

import (
	"strings"

	"github.com/desertthunder/yap/internal/models"
)

// CreatePlaylist inserts a playlist and then one membership per song name, in order.
//
// The first song that cannot be resolved or inserted stops the loop and is the error returned.
// Memberships inserted before it are kept, so the playlist exists holding a prefix of songNames.
func (e *Engine) CreatePlaylist(name string, songNames []string) (*models.Playlist, error) {
	playlist := &models.Playlist{Name: name}
	if err := e.playlists.Create(playlist); err != nil {
		return nil, err
	}

	for _, songName := range songNames {
		songName = strings.TrimSpace(songName)
		if songName == "" {
			continue
		}

		song, err := e.songs.GetByName(songName)
		if err != nil {
			return playlist, err
		}
		if err := e.memberships.Add(playlist.Name, song.ID); err != nil {
			return playlist, err
		}
	}
	return playlist, nil
}

// DeletePlaylist removes a playlist and, by cascade, its memberships.
func (e *Engine) DeletePlaylist(name string) error {
	playlist, err := e.playlists.Get(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	return e.playlists.Delete(playlist.Name)
}

// InsertIntoPlaylist adds a song to an existing playlist.
//
// A repeat is not pre-checked; the catalog rejects it with [shared.ErrDuplicateMembership].
func (e *Engine) InsertIntoPlaylist(playlistName, songName string) (*models.Song, error) {
	playlist, song, err := e.resolvePair(playlistName, songName)
	if err != nil {
		return nil, err
	}
	if err := e.memberships.Add(playlist.Name, song.ID); err != nil {
		return nil, err
	}
	return song, nil
}

// RemoveFromPlaylist removes one membership. A second call for the same pair reports [shared.ErrNotFound].
func (e *Engine) RemoveFromPlaylist(playlistName, songName string) (*models.Song, error) {
	playlist, song, err := e.resolvePair(playlistName, songName)
	if err != nil {
		return nil, err
	}
	if err := e.memberships.Remove(playlist.Name, song.ID); err != nil {
		return nil, err
	}
	return song, nil
}

// resolvePair looks the playlist up first, then the song.
func (e *Engine) resolvePair(playlistName, songName string) (*models.Playlist, *models.Song, error) {
	playlist, err := e.playlists.Get(strings.TrimSpace(playlistName))
	if err != nil {
		return nil, nil, err
	}
	song, err := e.songs.GetByName(strings.TrimSpace(songName))
	if err != nil {
		return nil, nil, err
	}
	return playlist, song, nil
}

func (e *Engine) ListPlaylists() ([]*models.Playlist, error) {
	return e.playlists.List()
}

// PlaylistSongs returns the members of a playlist in the order they were added.
func (e *Engine) PlaylistSongs(name string) ([]*models.Song, error) {
	playlist, err := e.playlists.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return e.memberships.ListSongs(playlist.Name)
}
