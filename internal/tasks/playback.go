package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// PlaySong replaces the queue with a single song and starts it.
//
// The queue is cleared before the name is resolved, so an unknown name leaves an empty, paused queue.
// No step is undone when a later one fails.
func (e *Engine) PlaySong(ctx context.Context, name string) (*models.Song, error) {
	var song *models.Song
	err := e.withSession(ctx, func(s Session) error {
		if err := resetQueue(s); err != nil {
			return err
		}

		var err error
		if song, err = e.songs.GetByName(strings.TrimSpace(name)); err != nil {
			return err
		}
		if err := s.Push(e.media.MediaRef(song.ID)); err != nil {
			return err
		}
		return s.Play()
	})
	return song, err
}

// PlayPlaylist replaces the queue with the members of a playlist, in catalog order, and starts it.
func (e *Engine) PlayPlaylist(ctx context.Context, name string) ([]*models.Song, error) {
	var songs []*models.Song
	err := e.withSession(ctx, func(s Session) error {
		if err := resetQueue(s); err != nil {
			return err
		}

		playlist, err := e.playlists.Get(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if songs, err = e.memberships.ListSongs(playlist.Name); err != nil {
			return err
		}
		if len(songs) == 0 {
			return fmt.Errorf("%w: playlist %s", shared.ErrEmptyPlaylist, playlist.Name)
		}

		for _, song := range songs {
			if err := s.Push(e.media.MediaRef(song.ID)); err != nil {
				return err
			}
		}
		return s.Play()
	})
	return songs, err
}

func resetQueue(s Session) error {
	if _, err := s.Pause(models.ForceOn); err != nil {
		return err
	}
	return s.Clear()
}

// Play starts the queue from its current position.
func (e *Engine) Play(ctx context.Context) error {
	return e.withSession(ctx, func(s Session) error { return s.Play() })
}

// Pause applies intent to the pause state and reports whether playback ended up paused.
func (e *Engine) Pause(ctx context.Context, intent models.Intent) (bool, error) {
	return e.flag(ctx, func(s Session) (bool, error) { return s.Pause(intent) })
}

// Shuffle applies intent to the daemon's random mode and reports the new value.
func (e *Engine) Shuffle(ctx context.Context, intent models.Intent) (bool, error) {
	return e.flag(ctx, func(s Session) (bool, error) { return s.Shuffle(intent) })
}

// Repeat applies intent to the daemon's repeat mode and reports the new value.
func (e *Engine) Repeat(ctx context.Context, intent models.Intent) (bool, error) {
	return e.flag(ctx, func(s Session) (bool, error) { return s.Repeat(intent) })
}

func (e *Engine) flag(ctx context.Context, fn func(Session) (bool, error)) (bool, error) {
	var value bool
	err := e.withSession(ctx, func(s Session) error {
		var err error
		value, err = fn(s)
		return err
	})
	return value, err
}

func (e *Engine) ClearQueue(ctx context.Context) error {
	return e.withSession(ctx, func(s Session) error { return s.Clear() })
}

// Next skips forward and resumes playback unless the queue ran out.
func (e *Engine) Next(ctx context.Context) error {
	return e.withSession(ctx, func(s Session) error { return resume(s, s.Next()) })
}

// Previous skips back and resumes playback.
func (e *Engine) Previous(ctx context.Context) error {
	return e.withSession(ctx, func(s Session) error { return resume(s, s.Previous()) })
}

// Seek jumps to percent of the current song and resumes playback.
func (e *Engine) Seek(ctx context.Context, percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: percentage must be between 0 and 100, got %v", shared.ErrInvalidArgument, percent)
	}
	return e.withSession(ctx, func(s Session) error { return resume(s, s.Seek(percent)) })
}

// resume un-pauses after a skip or seek. A stopped daemon stays stopped: skipping past the last
// entry ends playback rather than restarting the queue.
func resume(s Session, err error) error {
	if err != nil {
		return err
	}
	status, err := s.Status()
	if err != nil {
		return err
	}
	if status.State == models.StateStopped {
		return nil
	}
	_, err = s.Pause(models.ForceOff)
	return err
}

// QueueAdd appends a song to the end of the queue without touching playback.
func (e *Engine) QueueAdd(ctx context.Context, name string) (*models.Song, error) {
	song, err := e.songs.GetByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return song, e.withSession(ctx, func(s Session) error { return s.Push(e.media.MediaRef(song.ID)) })
}

// QueueRemove drops every queue entry of a song. A song absent from the queue is [shared.ErrNotFound].
func (e *Engine) QueueRemove(ctx context.Context, name string) (*models.Song, error) {
	song, err := e.songs.GetByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	err = e.withSession(ctx, func(s Session) error {
		removed, err := s.Remove(e.media.MediaRef(song.ID))
		if err != nil {
			return err
		}
		if removed == 0 {
			return fmt.Errorf("%w: song %s in queue", shared.ErrNotFound, song.Name)
		}
		return nil
	})
	return song, err
}

// QueueShuffle reorders the queue once.
func (e *Engine) QueueShuffle(ctx context.Context) error {
	return e.withSession(ctx, func(s Session) error { return s.ShuffleQueue() })
}

// Status reads the daemon's transport flags.
func (e *Engine) Status(ctx context.Context) (models.DaemonStatus, error) {
	var status models.DaemonStatus
	err := e.withSession(ctx, func(s Session) error {
		var err error
		status, err = s.Status()
		return err
	})
	return status, err
}

// Current resolves the daemon's current song against the catalog.
//
// A reference the catalog does not know is [shared.ErrNoSongInfo]; it is never reported as a song.
func (e *Engine) Current(ctx context.Context) (*models.NowPlaying, error) {
	var now *models.NowPlaying
	err := e.withSession(ctx, func(s Session) error {
		ref, err := s.Current()
		if err != nil {
			return err
		}
		if ref == "" {
			return fmt.Errorf("%w: no song currently playing", shared.ErrNoSongInfo)
		}

		song, err := e.songs.Get(e.media.IdentifierOf(ref))
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: %s is not in the library", shared.ErrNoSongInfo, ref)
		} else if err != nil {
			return err
		}

		status, err := s.Status()
		if err != nil {
			return err
		}
		now = &models.NowPlaying{Song: song, Status: status}
		return nil
	})
	return now, err
}

// Queue lists the queued songs in daemon order. Entries the catalog does not know are skipped.
func (e *Engine) Queue(ctx context.Context) ([]*models.Song, error) {
	var refs []string
	err := e.withSession(ctx, func(s Session) error {
		var err error
		refs, err = s.Queue()
		return err
	})
	if err != nil {
		return nil, err
	}

	songs := make([]*models.Song, 0, len(refs))
	for _, ref := range refs {
		song, err := e.songs.Get(e.media.IdentifierOf(ref))
		if errors.Is(err, shared.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}
