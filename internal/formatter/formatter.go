// package formatter renders songs, playlists and daemon state as text, and exports song lists to files (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// Export formats accepted by [ExportSongs].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// SongLine renders "name - artist", with "Unknown" standing in for a missing artist.
func SongLine(song *models.Song) string {
	return fmt.Sprintf("%s - %s", song.Name, song.Attribution())
}

// NowPlaying renders the current song block printed by "mpd current".
func NowPlaying(now *models.NowPlaying) string {
	return fmt.Sprintf("Current song: %s\nArtist: %s\n%s/%s (%d%%)",
		now.Song.Name,
		now.Song.Attribution(),
		FormatDuration(now.Status.Elapsed),
		FormatDuration(now.Status.Total),
		now.Status.Percent(),
	)
}

// StatusLine renders the transport flags printed by "mpd status".
func StatusLine(status models.DaemonStatus) string {
	return fmt.Sprintf("Pause: %v\tRandom: %v\tRepeat: %v", status.Paused(), status.Random, status.Repeat)
}

// FormatDuration renders d as m:ss, or h:mm:ss past the hour. Fractions of a second are dropped.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// SongsToCSV writes "id,name,artist" rows under a header, the layout "song import" reads back.
func SongsToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"id", "name", "artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		if err := writer.Write([]string{song.ID, song.Name, song.Artist}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SongsToMarkdown converts a song list to a Markdown document titled title
func SongsToMarkdown(title string, songs []*models.Song) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(songs))

	for i, song := range songs {
		fmt.Fprintf(&buf, "%d. %s - %s (`%s`)\n", i+1, song.Attribution(), song.Name, song.ID)
	}

	return buf.Bytes()
}

// SongsToText converts a song list to plain text
func SongsToText(title string, songs []*models.Song) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", title)
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(songs))

	for i, song := range songs {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, SongLine(song))
	}

	return buf.Bytes()
}

// ExportSongs renders songs in format.
func ExportSongs(title string, songs []*models.Song, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return SongsToCSV(songs)
	case FormatMarkdown, "md":
		return SongsToMarkdown(title, songs), nil
	case FormatText, "text":
		return SongsToText(title, songs), nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q (use csv, markdown or txt)", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders songs and writes them to path.
//
// An empty path defaults to "<title>.<ext>" in the working directory.
func WriteExport(title string, songs []*models.Song, format, path string) (string, error) {
	data, err := ExportSongs(title, songs, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = exportName(title, format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func exportName(title, format string) string {
	ext := strings.ToLower(format)
	switch ext {
	case FormatMarkdown:
		ext = "md"
	case "text":
		ext = FormatText
	}

	base := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, strings.ToLower(strings.TrimSpace(title)))
	return base + "." + ext
}
