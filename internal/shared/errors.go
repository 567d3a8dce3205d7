package shared

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrNotFound            = fmt.Errorf("not found")
	ErrDuplicateIdentifier = fmt.Errorf("already exists")
	ErrDuplicateMembership = fmt.Errorf("song is already in playlist")
	ErrCatalogWriteFailed  = fmt.Errorf("catalog write failed")
	ErrCatalogDeleteFailed = fmt.Errorf("%w: delete rejected", ErrCatalogWriteFailed)
	ErrEmptyPlaylist       = fmt.Errorf("playlist doesn't contain any songs")

	// Media cache errors
	ErrArtifactFetchFailed  = fmt.Errorf("media fetch failed")
	ErrArtifactDeleteFailed = fmt.Errorf("media delete failed")

	// Playback daemon errors
	ErrDaemonUnavailable     = fmt.Errorf("playback daemon unavailable")
	ErrDaemonOperationFailed = fmt.Errorf("playback daemon operation failed")
	ErrNoSongInfo            = fmt.Errorf("no song info")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// kinds is checked in order, so ErrCatalogDeleteFailed precedes the write error it wraps.
var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, "NotFound"},
	{ErrDuplicateIdentifier, "DuplicateIdentifier"},
	{ErrDuplicateMembership, "DuplicateMembership"},
	{ErrCatalogDeleteFailed, "CatalogDeleteFailed"},
	{ErrCatalogWriteFailed, "CatalogWriteFailed"},
	{ErrEmptyPlaylist, "EmptyPlaylist"},
	{ErrArtifactFetchFailed, "ArtifactFetchFailed"},
	{ErrArtifactDeleteFailed, "ArtifactDeleteFailed"},
	{ErrDaemonUnavailable, "DaemonUnavailable"},
	{ErrDaemonOperationFailed, "DaemonOperationFailed"},
	{ErrNoSongInfo, "NoSongInfo"},
	{ErrInvalidConfig, "InvalidConfig"},
	{ErrMissingArgument, "MissingArgument"},
	{ErrInvalidArgument, "InvalidArgument"},
	{ErrInvalidInput, "InvalidInput"},
}

// Kind returns the stable name of the taxonomy entry err belongs to, or "Unknown".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
