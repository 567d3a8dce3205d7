package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yap/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLibraryLoaded MsgKind = iota
	MsgPlaylistOpened
	MsgActionDone
)

type libraryData struct {
	songs     []*models.Song
	playlists []*models.Playlist
	err       error
}

type playlistData struct {
	name  string
	songs []*models.Song
	err   error
}

type actionData struct {
	status string
	err    error
}

// libraryLoadedMsg is the constructor for [MsgLibraryLoaded]
func libraryLoadedMsg(songs []*models.Song, playlists []*models.Playlist, err error) Msg {
	return Msg{kind: MsgLibraryLoaded, data: libraryData{songs, playlists, err}}
}

// playlistOpenedMsg is the constructor for [MsgPlaylistOpened]
func playlistOpenedMsg(name string, songs []*models.Song, err error) Msg {
	return Msg{kind: MsgPlaylistOpened, data: playlistData{name, songs, err}}
}

// actionDoneMsg is the constructor for [MsgActionDone]
func actionDoneMsg(status string, err error) Msg {
	return Msg{kind: MsgActionDone, data: actionData{status, err}}
}
