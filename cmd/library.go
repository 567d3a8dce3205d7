package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/yap/internal/formatter"
	"github.com/desertthunder/yap/internal/shared"
	"github.com/desertthunder/yap/internal/tasks"
	"github.com/desertthunder/yap/internal/ui"
	"github.com/urfave/cli/v3"
)

// Download fetches a song's audio and registers it in the catalog.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	id, name := cmd.String("id"), cmd.String("name")
	r.logger.Info("downloading song", "id", id, "name", name)

	result, err := engine.Register(ctx, id, name, cmd.String("artist"))
	if err != nil {
		return err
	}

	r.reportRegister(result)
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Song %s downloaded successfully", result.Song.Name)))
	return nil
}

func (r *Runner) reportRegister(result *tasks.RegisterResult) {
	if result.ThumbnailErr != nil {
		r.warn("thumbnail not saved", result.ThumbnailErr)
	}
	if result.RefreshErr != nil {
		r.warn("daemon library not refreshed", result.RefreshErr)
	}
}

// SongList prints every registered song.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	songs, err := engine.ListSongs()
	if err != nil {
		return err
	}
	return r.writeSongs(cmd, songs, "No songs in the library")
}

// SongDelete removes a song's audio, row and thumbnail.
func (r *Runner) SongDelete(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	result, err := engine.DeleteSong(ctx, cmd.String("name"))
	if err != nil {
		return err
	}

	if result.RefreshErr != nil {
		r.warn("daemon library not refreshed", result.RefreshErr)
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Song %s deleted successfully", result.Song.Name)))
	return nil
}

// SongSearch fuzzy matches the query against names and artists.
func (r *Runner) SongSearch(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	songs, err := engine.SearchSongs(strings.Join(cmd.Args().Slice(), " "))
	if err != nil {
		return err
	}
	return r.writeSongs(cmd, songs, "No matching songs")
}

// SongImport registers every row of a CSV file, paced by the configured rate.
func (r *Runner) SongImport(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	path := cmd.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	defer f.Close()

	rows, err := tasks.ReadImportRows(f)
	if err != nil {
		return err
	}

	perSecond := cmd.Float("rate")
	if perSecond == 0 && r.config != nil {
		perSecond = r.config.Fetch.ImportRate
	}
	r.logger.Info("importing songs", "file", path, "rows", len(rows), "rate", perSecond)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ReadImport, tasks.ImportDone:
				r.writePlain("%s\n", update.Message)
			case tasks.RegisterSong:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := engine.Import(ctx, rows, perSecond, progressCh)
	close(progressCh)
	<-done

	if result != nil {
		for _, registered := range result.Registered {
			r.reportRegister(registered)
		}
	}
	if err != nil {
		return err
	}

	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Imported %d/%d songs", len(result.Registered), result.Total)))
	return nil
}

// SongExport writes the library to a file.
func (r *Runner) SongExport(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	songs, err := engine.ListSongs()
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport("library", songs, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Exported %d songs to %s", len(songs), path)))
	return nil
}
