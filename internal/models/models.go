// package models defines the data model for the yap music library
package models

import (
	"fmt"
	"strings"
	"time"
)

// UnknownArtist is shown for songs registered without attribution.
const UnknownArtist = "Unknown"

// Song is a registered track.
type Song struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Artist    string    `json:"artist,omitempty"` // empty when no attribution was supplied
	CreatedAt time.Time `json:"created_at"`
}

// NewSong builds a [Song] with surrounding whitespace trimmed.
func NewSong(id, name, artist string) *Song {
	return &Song{
		ID:     strings.TrimSpace(id),
		Name:   strings.TrimSpace(name),
		Artist: strings.TrimSpace(artist),
	}
}

// Validate checks the fields required to register a song.
func (s *Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("song identifier is required")
	}
	if strings.ContainsAny(s.ID, `/\`) {
		return fmt.Errorf("song identifier %q must not contain path separators", s.ID)
	}
	if s.Name == "" {
		return fmt.Errorf("song name is required")
	}
	return nil
}

// Attribution returns the artist or [UnknownArtist].
func (s *Song) Attribution() string {
	if s.Artist == "" {
		return UnknownArtist
	}
	return s.Artist
}

// Playlist is a named, unordered-by-schema collection of songs.
type Playlist struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the playlist name.
func (p *Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}

// Membership joins one playlist to one song.
type Membership struct {
	PlaylistName string
	SongID       string
	CreatedAt    time.Time
}

// Intent is the requested change for a boolean transport flag (pause, shuffle, repeat).
type Intent int

const (
	Toggle Intent = iota // flip whatever the daemon currently reports
	ForceOn
	ForceOff
)

func (i Intent) String() string {
	switch i {
	case ForceOn:
		return "on"
	case ForceOff:
		return "off"
	default:
		return "toggle"
	}
}

// Resolve returns the flag value to write given the current one.
func (i Intent) Resolve(current bool) bool {
	switch i {
	case ForceOn:
		return true
	case ForceOff:
		return false
	default:
		return !current
	}
}

// IntentFrom maps a pair of --on/--off flags onto an [Intent].
func IntentFrom(on, off bool) (Intent, error) {
	switch {
	case on && off:
		return Toggle, fmt.Errorf("--on and --off are mutually exclusive")
	case on:
		return ForceOn, nil
	case off:
		return ForceOff, nil
	default:
		return Toggle, nil
	}
}

// PlayerState is the daemon transport state.
type PlayerState string

const (
	StateStopped PlayerState = "stop"
	StatePaused  PlayerState = "pause"
	StatePlaying PlayerState = "play"
)

// DaemonStatus is a snapshot of the daemon's transport flags.
type DaemonStatus struct {
	State   PlayerState   `json:"state"`
	Random  bool          `json:"random"`
	Repeat  bool          `json:"repeat"`
	Elapsed time.Duration `json:"elapsed"`
	Total   time.Duration `json:"total"`
}

// Paused reports whether playback is not running. A stopped daemon counts as paused.
func (s DaemonStatus) Paused() bool {
	return s.State != StatePlaying
}

// Percent returns elapsed as a whole percentage of total, 0 when total is unknown.
func (s DaemonStatus) Percent() int {
	if s.Total <= 0 {
		return 0
	}
	return int(s.Elapsed * 100 / s.Total)
}

// NowPlaying is the current queue entry resolved against the catalog.
type NowPlaying struct {
	Song   *Song
	Status DaemonStatus
}
