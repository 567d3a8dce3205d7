package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/yap/internal/shared"
)

// Runner executes the extractor and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the extractor as a child process.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Options configures a [Cache].
type Options struct {
	MusicDir      string
	ThumbnailDir  string
	Thumbnails    bool   // fetch a cover image alongside the audio
	AudioFormat   string // file extension of artifacts, without the dot
	Command       string // extractor binary
	ThumbnailURL  string // fmt template taking the identifier
	ThumbnailSize int    // longest edge in pixels; 0 keeps the original
	Runner        Runner
	HTTPClient    *http.Client
}

// Cache stores one audio artifact per song identifier.
type Cache struct {
	opts   Options
	images *ImageService
}

// FetchResult describes what [Cache.Fetch] wrote.
type FetchResult struct {
	Path          string
	ThumbnailPath string // empty when thumbnails are disabled or failed
	ThumbnailErr  error
}

// NewCache creates a Cache, filling unset options with the defaults of the example config.
func NewCache(opts Options) *Cache {
	if opts.AudioFormat == "" {
		opts.AudioFormat = "opus"
	}
	if opts.Command == "" {
		opts.Command = "yt-dlp"
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Cache{opts: opts, images: NewImageService()}
}

// NewCacheFromConfig wires a Cache from the loaded configuration.
func NewCacheFromConfig(cfg *shared.Config) *Cache {
	return NewCache(Options{
		MusicDir:      cfg.General.MusicDirectory,
		ThumbnailDir:  cfg.General.MiniatureDirectory,
		Thumbnails:    cfg.General.DownloadMiniature,
		AudioFormat:   cfg.General.AudioFormat,
		Command:       cfg.Fetch.Command,
		ThumbnailURL:  cfg.Fetch.ThumbnailURL,
		ThumbnailSize: cfg.Fetch.ThumbnailSize,
	})
}

// MediaRef returns the daemon-facing reference of a song: "<id>.<format>".
func (c *Cache) MediaRef(id string) string {
	return id + "." + c.opts.AudioFormat
}

// IdentifierOf strips the fetch-format suffix from a media reference.
func (c *Cache) IdentifierOf(ref string) string {
	ref = filepath.Base(ref)
	if id, ok := strings.CutSuffix(ref, "."+c.opts.AudioFormat); ok {
		return id
	}
	return strings.TrimSuffix(ref, filepath.Ext(ref))
}

// Path returns where the artifact of id lives.
func (c *Cache) Path(id string) string {
	return filepath.Join(c.opts.MusicDir, c.MediaRef(id))
}

// ThumbnailPath returns where the cover image of a song named name lives.
func (c *Cache) ThumbnailPath(name string) string {
	return filepath.Join(c.opts.ThumbnailDir, sanitize(name)+".jpg")
}

// Exists reports whether the artifact of id is on disk.
func (c *Cache) Exists(id string) bool {
	info, err := os.Stat(c.Path(id))
	return err == nil && !info.IsDir()
}

// Fetch downloads the audio of id into the music directory.
//
// The extractor is asked to transcode to the configured format and to name the output after the
// identifier. Fetch succeeds only if that file exists afterwards.
func (c *Cache) Fetch(ctx context.Context, id, name string) (*FetchResult, error) {
	if err := os.MkdirAll(c.opts.MusicDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrArtifactFetchFailed, err)
	}

	args := []string{
		"--extract-audio",
		"--audio-format", c.opts.AudioFormat,
		"--no-playlist",
		"--output", filepath.Join(c.opts.MusicDir, id+".%(ext)s"),
		"--", id,
	}

	out, err := c.opts.Runner(ctx, c.opts.Command, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v%s", shared.ErrArtifactFetchFailed, c.opts.Command, id, err, tail(out))
	}

	result := &FetchResult{Path: c.Path(id)}
	if !c.Exists(id) {
		return nil, fmt.Errorf("%w: %s produced no %s%s", shared.ErrArtifactFetchFailed, c.opts.Command, result.Path, tail(out))
	}

	if c.opts.Thumbnails {
		result.ThumbnailPath, result.ThumbnailErr = c.fetchThumbnail(ctx, id, name)
	}

	return result, nil
}

// Delete removes the artifact of id. A missing file is an error too.
func (c *Cache) Delete(id string) error {
	if err := os.Remove(c.Path(id)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrArtifactDeleteFailed, err)
	}
	return nil
}

// DeleteThumbnail removes the cover image of a song, ignoring one that was never fetched.
func (c *Cache) DeleteThumbnail(name string) error {
	if !c.opts.Thumbnails {
		return nil
	}
	if err := os.Remove(c.ThumbnailPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: thumbnail %s: %v", shared.ErrArtifactDeleteFailed, name, err)
	}
	return nil
}

// tail keeps the last non-empty line of extractor output for error messages.
func tail(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	last := strings.TrimSpace(string(lines[len(lines)-1]))
	if last == "" {
		return ""
	}
	return " (" + last + ")"
}

// sanitize replaces characters that cannot appear in a file name.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}
