package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yap/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	PlaylistListView
	PlaylistSongsView
)

// Library is the subset of the engine the browser drives.
type Library interface {
	ListSongs() ([]*models.Song, error)
	ListPlaylists() ([]*models.Playlist, error)
	PlaylistSongs(name string) ([]*models.Song, error)
	PlaySong(ctx context.Context, name string) (*models.Song, error)
	PlayPlaylist(ctx context.Context, name string) ([]*models.Song, error)
	Pause(ctx context.Context, intent models.Intent) (bool, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	library Library
	view    ViewState
	width   int
	height  int
	songs   list.Model
	lists   list.Model
	members list.Model
	opened  string
	status  string
	err     error
	fatal   error
	loaded  bool
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model backed by library.
func NewModel(ctx context.Context, library Library) *Model {
	return &Model{
		ctx:     ctx,
		library: library,
		view:    SongListView,
		songs:   newList("Songs", nil),
		lists:   newList("Playlists", nil),
		members: newList("", nil),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error { return m.fatal }

// Init loads songs and playlists.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, l := range []*list.Model{&m.songs, &m.lists, &m.members} {
			l.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case tea.KeyMsg:
		if m.current().FilterState() == list.Filtering {
			return m.updateList(msg)
		}
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLibraryLoaded:
		data := msg.data.(libraryData)
		if data.err != nil {
			m.fatal = data.err
			return m, tea.Quit
		}
		m.loaded = true
		cmds := []tea.Cmd{
			m.songs.SetItems(songItems(data.songs)),
			m.lists.SetItems(playlistItems(data.playlists)),
		}
		return m, tea.Batch(cmds...)

	case MsgPlaylistOpened:
		data := msg.data.(playlistData)
		if data.err != nil {
			m.status, m.err = "", data.err
			return m, nil
		}
		m.opened = data.name
		m.members.Title = fmt.Sprintf("Playlist '%s'", data.name)
		m.members.ResetSelected()
		m.view = PlaylistSongsView
		return m, m.members.SetItems(songItems(data.songs))

	case MsgActionDone:
		data := msg.data.(actionData)
		m.status, m.err = data.status, data.err
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.tab):
		if m.view == SongListView {
			m.view = PlaylistListView
		} else {
			m.view = SongListView
		}
		return m, nil

	case key.Matches(msg, m.keys.back):
		if m.view == PlaylistSongsView {
			m.view = PlaylistListView
			return m, nil
		}

	case key.Matches(msg, m.keys.pause):
		return m, m.togglePause()

	case key.Matches(msg, m.keys.reload):
		return m, m.loadLibrary()

	case key.Matches(msg, m.keys.play):
		if name := m.selectedPlaylist(); name != "" {
			return m, m.playPlaylist(name)
		}

	case key.Matches(msg, m.keys.enter):
		switch m.view {
		case SongListView, PlaylistSongsView:
			if item, ok := m.current().SelectedItem().(songItem); ok {
				return m, m.playSong(item.song.Name)
			}
		case PlaylistListView:
			if name := m.selectedPlaylist(); name != "" {
				return m, m.openPlaylist(name)
			}
		}
		return m, nil
	}

	return m.updateList(msg)
}

// selectedPlaylist names the playlist under the cursor, or the one that is open.
func (m *Model) selectedPlaylist() string {
	switch m.view {
	case PlaylistListView:
		if item, ok := m.lists.SelectedItem().(playlistItem); ok {
			return item.playlist.Name
		}
	case PlaylistSongsView:
		return m.opened
	}
	return ""
}

func (m *Model) current() *list.Model {
	switch m.view {
	case PlaylistListView:
		return &m.lists
	case PlaylistSongsView:
		return &m.members
	default:
		return &m.songs
	}
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	l := m.current()
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.fatal != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.fatal))
	}
	if !m.loaded {
		return styles.title.Render("Loading library...")
	}

	var status string
	switch {
	case m.err != nil:
		status = Failure(m.err.Error())
	case m.status != "":
		status = Success(m.status)
	}

	return fmt.Sprintf("%s\n%s\n%s", m.current().View(), status, m.help.View(m.keys))
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.library.ListSongs()
		if err != nil {
			return libraryLoadedMsg(nil, nil, err)
		}
		playlists, err := m.library.ListPlaylists()
		return libraryLoadedMsg(songs, playlists, err)
	}
}

func (m *Model) openPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.library.PlaylistSongs(name)
		return playlistOpenedMsg(name, songs, err)
	}
}

func (m *Model) playSong(name string) tea.Cmd {
	return func() tea.Msg {
		song, err := m.library.PlaySong(m.ctx, name)
		if err != nil {
			return actionDoneMsg("", err)
		}
		return actionDoneMsg("Playing "+song.Name, nil)
	}
}

func (m *Model) playPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.library.PlayPlaylist(m.ctx, name)
		if err != nil {
			return actionDoneMsg("", err)
		}
		return actionDoneMsg(fmt.Sprintf("Playing playlist %s (%d songs)", name, len(songs)), nil)
	}
}

func (m *Model) togglePause() tea.Cmd {
	return func() tea.Msg {
		paused, err := m.library.Pause(m.ctx, models.Toggle)
		return actionDoneMsg(fmt.Sprintf("Pause: %v", paused), err)
	}
}
