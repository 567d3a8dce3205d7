// Package ui implements an interactive terminal browser using bubbletea's Elm architecture.
//
// The browser has three views:
//  1. [SongListView] : every song in the library; enter plays the selection
//  2. [PlaylistListView] : every playlist; enter opens it, p plays it
//  3. [PlaylistSongsView] : the members of one playlist; enter plays a single song
//
// Tab switches between songs and playlists, space toggles pause. Every action goes through the same
// [Library] operations as the command line, so a browser action and its CLI equivalent behave the same.
//
// The package also exports the palette used to mark command output ([Success], [Failure], [Warning]).
package ui
