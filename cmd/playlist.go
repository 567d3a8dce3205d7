package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/yap/internal/formatter"
	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/ui"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a playlist and adds the named songs to it.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	playlist, err := engine.CreatePlaylist(cmd.String("name"), splitNames(cmd.String("songs")))
	if playlist != nil {
		r.writePlain("%s\n", ui.Success(fmt.Sprintf("Playlist %s created", playlist.Name)))
	}
	return err
}

// splitNames parses a comma separated list, dropping blanks.
func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// PlaylistList prints every playlist.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	playlists, err := engine.ListPlaylists()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	if len(playlists) == 0 {
		r.writePlain("%s\n", ui.Hint("No playlists"))
		return nil
	}
	for _, playlist := range playlists {
		r.writePlain("%s\n", playlist.Name)
	}
	return nil
}

// PlaylistShow prints the songs of a playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	songs, err := engine.PlaylistSongs(cmd.String("name"))
	if err != nil {
		return err
	}
	return r.writeSongs(cmd, songs, "Playlist is empty")
}

// PlaylistDelete removes a playlist and its memberships.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("name")
	if err := engine.DeletePlaylist(name); err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Playlist %s deleted successfully", name)))
	return nil
}

// PlaylistInsert adds a song to a playlist.
func (r *Runner) PlaylistInsert(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("playlist-name")
	song, err := engine.InsertIntoPlaylist(name, cmd.String("song-name"))
	if err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Song %s successfully added to %s", song.Name, name)))
	return nil
}

// PlaylistRemove removes a song from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("playlist-name")
	song, err := engine.RemoveFromPlaylist(name, cmd.String("song-name"))
	if err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Song %s removed from %s", song.Name, name)))
	return nil
}

// PlaylistExport writes a playlist to a file.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("name")
	songs, err := engine.PlaylistSongs(name)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(name, songs, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Exported %d songs to %s", len(songs), path)))
	return nil
}

// writeSongs prints songs one per line, or as JSON with --json.
func (r *Runner) writeSongs(cmd *cli.Command, songs []*models.Song, empty string) error {
	if cmd.Bool("json") {
		if songs == nil {
			songs = []*models.Song{}
		}
		return r.writeJSON(songs, true)
	}

	if len(songs) == 0 {
		r.writePlain("%s\n", ui.Hint(empty))
		return nil
	}
	for _, song := range songs {
		r.writePlain("%s\n", formatter.SongLine(song))
	}
	return nil
}
