package formatter

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/tasks"
	th "github.com/desertthunder/yap/internal/testing"
)

var songs = []*models.Song{
	{ID: "abc", Name: "Song One", Artist: "Artist One"},
	{ID: "def", Name: "Song, Two"},
}

func TestLines(t *testing.T) {
	t.Run("SongLine", func(t *testing.T) {
		if got := SongLine(songs[0]); got != "Song One - Artist One" {
			t.Errorf("SongLine() = %q", got)
		}
		if got := SongLine(songs[1]); got != "Song, Two - Unknown" {
			t.Errorf("SongLine() = %q", got)
		}
	})

	t.Run("NowPlaying", func(t *testing.T) {
		now := &models.NowPlaying{
			Song:   songs[0],
			Status: models.DaemonStatus{State: models.StatePlaying, Elapsed: 65 * time.Second, Total: 260 * time.Second},
		}
		want := "Current song: Song One\nArtist: Artist One\n1:05/4:20 (25%)"
		if got := NowPlaying(now); got != want {
			t.Errorf("NowPlaying() = %q, want %q", got, want)
		}
	})

	t.Run("StatusLine", func(t *testing.T) {
		got := StatusLine(models.DaemonStatus{State: models.StatePaused, Repeat: true})
		if got != "Pause: true\tRandom: false\tRepeat: true" {
			t.Errorf("StatusLine() = %q", got)
		}
	})

	t.Run("FormatDuration", func(t *testing.T) {
		tests := []struct {
			d    time.Duration
			want string
		}{
			{0, "0:00"},
			{59*time.Second + 900*time.Millisecond, "0:59"},
			{61 * time.Second, "1:01"},
			{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
			{-time.Second, "0:00"},
		}
		for _, tt := range tests {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("CSV round trips through import", func(t *testing.T) {
		data, err := SongsToCSV(songs)
		if err != nil {
			t.Fatalf("SongsToCSV failed: %v", err)
		}
		if !strings.HasPrefix(string(data), "id,name,artist\n") {
			t.Errorf("CSV missing header, got: %s", data)
		}

		rows, err := tasks.ReadImportRows(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("ReadImportRows failed: %v", err)
		}
		if len(rows) != 2 || rows[1].Name != "Song, Two" || rows[0].Artist != "Artist One" {
			t.Errorf("rows = %+v", rows)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		output := string(SongsToMarkdown("Mix", songs))
		for _, want := range []string{"# Mix", "**Songs**: 2", "1. Artist One - Song One (`abc`)", "2. Unknown - Song, Two"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("Text", func(t *testing.T) {
		output := string(SongsToText("Library", songs))
		if !strings.Contains(output, "Songs: 2") || !strings.Contains(output, "2. Song, Two - Unknown") {
			t.Errorf("Text output = %s", output)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := ExportSongs("x", songs, "xml"); err == nil {
			t.Error("ExportSongs with xml should fail")
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "songs.csv")
		got, err := WriteExport("Library", songs, FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("path = %q", got)
		}
		if content := th.MustReadFile(t, path); !strings.Contains(content, "abc,Song One,Artist One") {
			t.Errorf("content = %s", content)
		}
	})

	t.Run("default name", func(t *testing.T) {
		if got := exportName("Road Trip", FormatMarkdown); got != "road_trip.md" {
			t.Errorf("exportName() = %q", got)
		}
		if got := exportName("a/b", "text"); got != "a_b.txt" {
			t.Errorf("exportName() = %q", got)
		}
	})
}
