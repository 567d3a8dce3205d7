// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/yap/internal/shared"
	"github.com/urfave/cli/v3"
)

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:      "yap",
		Usage:     "Download songs, organize playlists and play them through MPD",
		Writer:    r.output,
		ErrWriter: r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Sources: cli.EnvVars(shared.ConfigEnv),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		downloadCommand, songCommand, playlistCommand, playCommand, mpdCommand, setupCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output JSON"}
}

func intentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "on", Usage: "Turn on instead of toggling"},
		&cli.BoolFlag{Name: "off", Usage: "Turn off instead of toggling"},
	}
}

// downloadCommand registers a song
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"register"},
		Usage:   "Download a song and add it to the library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Aliases:  []string{"i"},
				Usage:    "Video identifier of the song",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Display name",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Artist",
			},
		},
		Action: r.Download,
	}
}

// songCommand handles library operations
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Library operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every song",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SongList,
			},
			{
				Name:  "delete",
				Usage: "Delete a song and its audio file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Song name", Required: true},
				},
				Action: r.SongDelete,
			},
			{
				Name:      "search",
				Usage:     "Fuzzy search song names and artists",
				ArgsUsage: "<query>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.SongSearch,
			},
			{
				Name:  "import",
				Usage: "Download every song listed in a CSV file (id,name[,artist])",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "CSV file", Required: true},
					&cli.FloatFlag{Name: "rate", Usage: "Downloads per second (defaults to fetch.import_rate)"},
				},
				Action: r.SongImport,
			},
			{
				Name:  "export",
				Usage: "Export the library as csv, markdown or txt",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv, markdown or txt", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.SongExport,
			},
		},
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	nameFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Playlist name", Required: true}
	}
	pairFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "playlist-name", Aliases: []string{"p"}, Usage: "Playlist name", Required: true},
			&cli.StringFlag{Name: "song-name", Aliases: []string{"s"}, Usage: "Song name", Required: true},
		}
	}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a playlist, optionally with songs",
				Flags: []cli.Flag{
					nameFlag(),
					&cli.StringFlag{Name: "songs", Aliases: []string{"s"}, Usage: "Comma separated song names"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:   "list",
				Usage:  "List every playlist",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.PlaylistList,
			},
			{
				Name:   "show",
				Usage:  "List the songs of a playlist",
				Flags:  []cli.Flag{nameFlag(), jsonFlag()},
				Action: r.PlaylistShow,
			},
			{
				Name:   "delete",
				Usage:  "Delete a playlist",
				Flags:  []cli.Flag{nameFlag()},
				Action: r.PlaylistDelete,
			},
			{
				Name:   "insert",
				Usage:  "Add a song to a playlist",
				Flags:  pairFlags(),
				Action: r.PlaylistInsert,
			},
			{
				Name:   "remove",
				Usage:  "Remove a song from a playlist",
				Flags:  pairFlags(),
				Action: r.PlaylistRemove,
			},
			{
				Name:  "export",
				Usage: "Export a playlist as csv, markdown or txt",
				Flags: []cli.Flag{
					nameFlag(),
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv, markdown or txt", Value: "markdown"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// playCommand replaces the queue and starts playback
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Replace the queue with a song or playlist and play it",
		Commands: []*cli.Command{
			{
				Name:  "song",
				Usage: "Play a single song",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Song name", Required: true},
				},
				Action: r.PlaySong,
			},
			{
				Name:  "playlist",
				Usage: "Play every song of a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Playlist name", Required: true},
				},
				Action: r.PlayPlaylist,
			},
		},
	}
}

// mpdCommand handles transport and queue controls
func mpdCommand(r *Runner) *cli.Command {
	songFlag := func() []cli.Flag {
		return []cli.Flag{&cli.StringFlag{Name: "song-name", Aliases: []string{"s"}, Usage: "Song name", Required: true}}
	}

	return &cli.Command{
		Name:  "mpd",
		Usage: "Playback controls",
		Commands: []*cli.Command{
			{Name: "play", Usage: "Start playback", Action: r.MPDPlay},
			{Name: "pause", Usage: "Toggle pause", Flags: intentFlags(), Action: r.MPDPause},
			{Name: "shuffle", Usage: "Toggle random mode", Flags: intentFlags(), Action: r.MPDShuffle},
			{Name: "repeat", Usage: "Toggle repeat mode", Flags: intentFlags(), Action: r.MPDRepeat},
			{Name: "clear", Usage: "Clear the queue", Action: r.MPDClear},
			{Name: "next", Usage: "Skip to the next song", Action: r.MPDNext},
			{Name: "previous", Aliases: []string{"prev"}, Usage: "Go back to the previous song", Action: r.MPDPrevious},
			{
				Name:  "seek",
				Usage: "Jump to a percentage of the current song",
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "percentage", Aliases: []string{"p"}, Usage: "0 to 100", Required: true},
				},
				Action: r.MPDSeek,
			},
			{Name: "current", Usage: "Show the current song", Action: r.MPDCurrent},
			{Name: "status", Usage: "Show pause, random and repeat", Flags: []cli.Flag{jsonFlag()}, Action: r.MPDStatus},
			{Name: "queue", Usage: "List the queue", Flags: []cli.Flag{jsonFlag()}, Action: r.MPDQueue},
			{Name: "queue-add", Usage: "Append a song to the queue", Flags: songFlag(), Action: r.MPDQueueAdd},
			{Name: "queue-remove", Usage: "Remove a song from the queue", Flags: songFlag(), Action: r.MPDQueueRemove},
			{Name: "queue-shuffle", Usage: "Shuffle the queue once", Action: r.MPDQueueShuffle},
		},
	}
}

// setupCommand writes the config file and prepares the database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "print", Usage: "Print the default configuration instead of writing it"},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Create the database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "rollback", Usage: "Roll back the latest migration instead"},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// browseCommand launches the interactive browser
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Browse songs and playlists interactively",
		Action: r.Browse,
	}
}
