package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/yap/internal/formatter"
	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
	"github.com/desertthunder/yap/internal/ui"
	"github.com/urfave/cli/v3"
)

// PlaySong replaces the queue with one song and starts it.
func (r *Runner) PlaySong(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	song, err := engine.PlaySong(ctx, cmd.String("name"))
	if err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success("Playing "+formatter.SongLine(song)))
	return nil
}

// PlayPlaylist replaces the queue with a playlist and starts it.
func (r *Runner) PlayPlaylist(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("name")
	songs, err := engine.PlayPlaylist(ctx, name)
	if err != nil {
		return err
	}
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Playing %s (%d songs)", name, len(songs))))
	return nil
}

// MPDPlay starts or resumes playback.
func (r *Runner) MPDPlay(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	if err := engine.Play(ctx); err != nil {
		return err
	}
	r.writePlain("Playing\n")
	return nil
}

// MPDPause toggles or forces the pause state and prints the result.
func (r *Runner) MPDPause(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	return r.flag(ctx, cmd, "Pause", engine.Pause)
}

// MPDShuffle toggles or forces random mode.
func (r *Runner) MPDShuffle(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	return r.flag(ctx, cmd, "Random", engine.Shuffle)
}

// MPDRepeat toggles or forces repeat mode.
func (r *Runner) MPDRepeat(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	return r.flag(ctx, cmd, "Repeat", engine.Repeat)
}

// flag resolves --on/--off into an intent, applies it and prints the resulting value.
func (r *Runner) flag(ctx context.Context, cmd *cli.Command, label string, fn func(context.Context, models.Intent) (bool, error)) error {
	intent, err := models.IntentFrom(cmd.Bool("on"), cmd.Bool("off"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	value, err := fn(ctx, intent)
	if err != nil {
		return err
	}
	r.logger.Debug("flag written", "flag", label, "intent", intent, "value", value)
	r.writePlain("%s: %v\n", label, value)
	return nil
}

// MPDClear empties the queue.
func (r *Runner) MPDClear(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	if err := engine.ClearQueue(ctx); err != nil {
		return err
	}
	r.writePlain("Queue cleared\n")
	return nil
}

// MPDNext skips forward.
func (r *Runner) MPDNext(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	if err := engine.Next(ctx); err != nil {
		return err
	}
	r.writePlain("Skipping to next song in queue\n")
	return nil
}

// MPDPrevious skips back.
func (r *Runner) MPDPrevious(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	if err := engine.Previous(ctx); err != nil {
		return err
	}
	r.writePlain("Going back to previous song in queue\n")
	return nil
}

// MPDSeek jumps to a percentage of the current song.
func (r *Runner) MPDSeek(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	percent := cmd.Float("percentage")
	if err := engine.Seek(ctx, percent); err != nil {
		return err
	}
	r.writePlain("Seeked to %g%%\n", percent)
	return nil
}

// MPDCurrent shows the current song with its progress.
func (r *Runner) MPDCurrent(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	now, err := engine.Current(ctx)
	if err != nil {
		return err
	}
	r.writePlain("%s\n", formatter.NowPlaying(now))
	return nil
}

// MPDStatus prints the pause, random and repeat flags.
func (r *Runner) MPDStatus(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	status, err := engine.Status(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}
	r.writePlain("%s\n", formatter.StatusLine(status))
	return nil
}

// MPDQueue lists the queued songs known to the catalog.
func (r *Runner) MPDQueue(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	songs, err := engine.Queue(ctx)
	if err != nil {
		return err
	}
	return r.writeSongs(cmd, songs, "Queue is empty")
}

// MPDQueueAdd appends a song to the queue.
func (r *Runner) MPDQueueAdd(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	song, err := engine.QueueAdd(ctx, cmd.String("song-name"))
	if err != nil {
		return err
	}
	r.writePlain("Song %s added to queue\n", song.Name)
	return nil
}

// MPDQueueRemove drops every queue entry of a song.
func (r *Runner) MPDQueueRemove(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	song, err := engine.QueueRemove(ctx, cmd.String("song-name"))
	if err != nil {
		return err
	}
	r.writePlain("Song %s removed from queue\n", song.Name)
	return nil
}

// MPDQueueShuffle reorders the queue once.
func (r *Runner) MPDQueueShuffle(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}
	if err := engine.QueueShuffle(ctx); err != nil {
		return err
	}
	r.writePlain("Queue shuffled\n")
	return nil
}
