package daemon

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// Client locates the daemon. It is safe to copy.
type Client struct {
	Network  string
	Address  string
	Password string
}

// NewClient builds a Client from the [mpd] config section.
func NewClient(cfg shared.MPDConfig) *Client {
	return &Client{Network: cfg.Network, Address: cfg.Address, Password: cfg.Password}
}

// Conn is one connection to the daemon.
type Conn struct {
	mpd *mpd.Client
}

// Connect dials the daemon. gompd has no context support, so ctx is only checked before dialing.
func (c *Client) Connect(ctx context.Context) (*Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDaemonUnavailable, err)
	}

	network := c.Network
	if network == "" {
		network = "tcp"
	}

	client, err := mpd.DialAuthenticated(network, c.Address, c.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", shared.ErrDaemonUnavailable, network, c.Address, err)
	}
	return &Conn{mpd: client}, nil
}

// Close says goodbye to the daemon and drops the connection.
func (c *Conn) Close() error {
	return c.mpd.Close()
}

func failed(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrDaemonOperationFailed, op, err)
}

// Refresh asks the daemon to rescan its music directory.
func (c *Conn) Refresh() error {
	_, err := c.mpd.Update("")
	return failed("update", err)
}

// Push appends a media reference to the queue.
func (c *Conn) Push(ref string) error {
	return failed("add "+ref, c.mpd.Add(ref))
}

func (c *Conn) Clear() error {
	return failed("clear", c.mpd.Clear())
}

// Play starts playback from the current position of the queue.
func (c *Conn) Play() error {
	return failed("play", c.mpd.Play(-1))
}

func (c *Conn) Next() error {
	return failed("next", c.mpd.Next())
}

func (c *Conn) Previous() error {
	return failed("previous", c.mpd.Previous())
}

// ShuffleQueue reorders the whole queue once. It does not touch the random flag.
func (c *Conn) ShuffleQueue() error {
	return failed("shuffle", c.mpd.Shuffle(-1, -1))
}

// Pause applies intent to the pause state and reports whether playback is paused afterwards.
//
// A toggle reads the status first, so it is not atomic. Resuming a stopped daemon starts playback.
func (c *Conn) Pause(intent models.Intent) (bool, error) {
	status, err := c.Status()
	if err != nil {
		return false, err
	}

	if pause := intent.Resolve(status.Paused()); pause || status.State != models.StateStopped {
		if err := c.mpd.Pause(pause); err != nil {
			return false, failed("pause", err)
		}
	} else if err := c.Play(); err != nil {
		return false, err
	}

	status, err = c.Status()
	if err != nil {
		return false, err
	}
	return status.Paused(), nil
}

// Shuffle applies intent to the random flag and reports the new value.
func (c *Conn) Shuffle(intent models.Intent) (bool, error) {
	return c.flag(intent, "random", func(s models.DaemonStatus) bool { return s.Random }, c.mpd.Random)
}

// Repeat applies intent to the repeat flag and reports the new value.
func (c *Conn) Repeat(intent models.Intent) (bool, error) {
	return c.flag(intent, "repeat", func(s models.DaemonStatus) bool { return s.Repeat }, c.mpd.Repeat)
}

func (c *Conn) flag(intent models.Intent, op string, read func(models.DaemonStatus) bool, write func(bool) error) (bool, error) {
	var current bool
	if intent == models.Toggle {
		status, err := c.Status()
		if err != nil {
			return false, err
		}
		current = read(status)
	}

	if err := write(intent.Resolve(current)); err != nil {
		return false, failed(op, err)
	}

	status, err := c.Status()
	if err != nil {
		return false, err
	}
	return read(status), nil
}

// Seek moves to percent (0 to 100) of the current song's duration.
func (c *Conn) Seek(percent float64) error {
	if percent < 0 || percent > 100 || math.IsNaN(percent) {
		return fmt.Errorf("%w: seek percentage %v outside 0..100", shared.ErrInvalidArgument, percent)
	}

	status, err := c.Status()
	if err != nil {
		return err
	}
	if status.Total <= 0 {
		return fmt.Errorf("%w: seek: no song with a known duration", shared.ErrDaemonOperationFailed)
	}

	target := time.Duration(float64(status.Total) * percent / 100)
	return failed("seekcur", c.mpd.SeekCur(target, false))
}

// Remove deletes every queue entry for ref and returns how many there were.
func (c *Conn) Remove(ref string) (int, error) {
	entries, err := c.mpd.PlaylistInfo(-1, -1)
	if err != nil {
		return 0, failed("playlistinfo", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry["file"] != ref {
			continue
		}
		id, err := strconv.Atoi(entry["Id"])
		if err != nil {
			return removed, failed("playlistinfo", fmt.Errorf("bad song id %q", entry["Id"]))
		}
		if err := c.mpd.DeleteID(id); err != nil {
			return removed, failed("deleteid", err)
		}
		removed++
	}
	return removed, nil
}

// Status reads the transport flags and the position in the current song.
func (c *Conn) Status() (models.DaemonStatus, error) {
	attrs, err := c.mpd.Status()
	if err != nil {
		return models.DaemonStatus{}, failed("status", err)
	}
	return parseStatus(attrs), nil
}

// Current returns the media reference of the current song, "" when there is none.
func (c *Conn) Current() (string, error) {
	attrs, err := c.mpd.CurrentSong()
	if err != nil {
		return "", failed("currentsong", err)
	}
	return attrs["file"], nil
}

// Queue lists the media references in queue order.
func (c *Conn) Queue() ([]string, error) {
	entries, err := c.mpd.PlaylistInfo(-1, -1)
	if err != nil {
		return nil, failed("playlistinfo", err)
	}

	refs := make([]string, 0, len(entries))
	for _, entry := range entries {
		refs = append(refs, entry["file"])
	}
	return refs, nil
}

func parseStatus(attrs mpd.Attrs) models.DaemonStatus {
	status := models.DaemonStatus{
		State:  models.PlayerState(attrs["state"]),
		Random: attrs["random"] == "1",
		Repeat: attrs["repeat"] == "1",
	}
	if status.State == "" {
		status.State = models.StateStopped
	}

	status.Elapsed = seconds(attrs["elapsed"])
	status.Total = seconds(attrs["duration"])

	// Servers older than 0.20 only send "time: <elapsed>:<total>" in whole seconds.
	if elapsed, total, ok := strings.Cut(attrs["time"], ":"); ok {
		if status.Elapsed == 0 {
			status.Elapsed = seconds(elapsed)
		}
		if status.Total == 0 {
			status.Total = seconds(total)
		}
	}
	return status
}

func seconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
