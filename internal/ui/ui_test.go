package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

type fakeLibrary struct {
	songs     []*models.Song
	playlists []*models.Playlist
	members   map[string][]*models.Song
	played    []string
	paused    bool
	listErr   error
}

func (f *fakeLibrary) ListSongs() ([]*models.Song, error) { return f.songs, f.listErr }

func (f *fakeLibrary) ListPlaylists() ([]*models.Playlist, error) { return f.playlists, nil }

func (f *fakeLibrary) PlaylistSongs(name string) ([]*models.Song, error) {
	songs, ok := f.members[name]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return songs, nil
}

func (f *fakeLibrary) PlaySong(ctx context.Context, name string) (*models.Song, error) {
	for _, s := range f.songs {
		if s.Name == name {
			f.played = append(f.played, "song:"+name)
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLibrary) PlayPlaylist(ctx context.Context, name string) ([]*models.Song, error) {
	f.played = append(f.played, "playlist:"+name)
	return f.members[name], nil
}

func (f *fakeLibrary) Pause(ctx context.Context, intent models.Intent) (bool, error) {
	f.paused = intent.Resolve(f.paused)
	return f.paused, nil
}

func newTestModel(t *testing.T) (*Model, *fakeLibrary) {
	t.Helper()
	a := &models.Song{ID: "a", Name: "A", Artist: "Artist"}
	b := &models.Song{ID: "b", Name: "B"}
	lib := &fakeLibrary{
		songs:     []*models.Song{a, b},
		playlists: []*models.Playlist{{Name: "Mix"}},
		members:   map[string][]*models.Song{"Mix": {b, a}},
	}

	m := NewModel(context.Background(), lib)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	run(t, m, m.Init())
	return m, lib
}

// run executes cmd and feeds a resulting Msg back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(Msg); ok {
		m.Update(msg)
	}
}

func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestBrowsePlaysSong(t *testing.T) {
	m, lib := newTestModel(t)

	if !strings.Contains(m.View(), "A") {
		t.Errorf("view should list songs, got:\n%s", m.View())
	}

	run(t, m, press(m, "enter"))
	if len(lib.played) != 1 || lib.played[0] != "song:A" {
		t.Errorf("played = %v", lib.played)
	}
	if m.status != "Playing A" || m.err != nil {
		t.Errorf("status = %q, err = %v", m.status, m.err)
	}
}

func TestBrowsePlaylists(t *testing.T) {
	m, lib := newTestModel(t)

	press(m, "tab")
	if m.view != PlaylistListView {
		t.Fatalf("view = %v, want PlaylistListView", m.view)
	}

	run(t, m, press(m, "enter"))
	if m.view != PlaylistSongsView || m.opened != "Mix" {
		t.Fatalf("view = %v opened = %q", m.view, m.opened)
	}

	run(t, m, press(m, "enter"))
	if lib.played[len(lib.played)-1] != "song:B" {
		t.Errorf("enter in playlist should play its first member, played = %v", lib.played)
	}

	run(t, m, press(m, "p"))
	if lib.played[len(lib.played)-1] != "playlist:Mix" {
		t.Errorf("played = %v", lib.played)
	}

	press(m, "esc")
	if m.view != PlaylistListView {
		t.Errorf("esc should return to playlists, view = %v", m.view)
	}
}

func TestBrowsePause(t *testing.T) {
	m, lib := newTestModel(t)

	run(t, m, press(m, " "))
	if !lib.paused || m.status != "Pause: true" {
		t.Errorf("paused = %v status = %q", lib.paused, m.status)
	}
}

func TestBrowseLoadError(t *testing.T) {
	lib := &fakeLibrary{listErr: errors.New("database is locked")}
	m := NewModel(context.Background(), lib)

	_, cmd := m.Update(m.Init()())
	if cmd == nil {
		t.Fatal("a load failure should quit")
	}
	if m.Err() == nil || !strings.Contains(m.View(), "database is locked") {
		t.Errorf("Err() = %v, view = %q", m.Err(), m.View())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
