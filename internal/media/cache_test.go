package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/yap/internal/shared"
)

// fakeExtractor writes "<dir>/<id>.<format>" the way yt-dlp would.
func fakeExtractor(t *testing.T, calls *[][]string) Runner {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, append([]string{name}, args...))

		var template, format string
		for i, arg := range args {
			switch arg {
			case "--output":
				template = args[i+1]
			case "--audio-format":
				format = args[i+1]
			}
		}
		path := strings.Replace(template, "%(ext)s", format, 1)
		return []byte("[ExtractAudio] Destination: " + path), os.WriteFile(path, []byte("audio"), 0644)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestCacheReferences(t *testing.T) {
	cache := NewCache(Options{MusicDir: "/music", AudioFormat: "opus"})

	t.Run("MediaRef", func(t *testing.T) {
		if got := cache.MediaRef("dQw4w9WgXcQ"); got != "dQw4w9WgXcQ.opus" {
			t.Errorf("MediaRef() = %q", got)
		}
	})

	t.Run("Path", func(t *testing.T) {
		if got := cache.Path("abc"); got != filepath.Join("/music", "abc.opus") {
			t.Errorf("Path() = %q", got)
		}
	})

	t.Run("IdentifierOf round trip", func(t *testing.T) {
		for _, id := range []string{"abc", "a.b.c", "-leading-dash", "x_y"} {
			if got := cache.IdentifierOf(cache.MediaRef(id)); got != id {
				t.Errorf("IdentifierOf(MediaRef(%q)) = %q", id, got)
			}
		}
	})

	t.Run("IdentifierOf foreign extension", func(t *testing.T) {
		if got := cache.IdentifierOf("other.mp3"); got != "other" {
			t.Errorf("IdentifierOf() = %q, want other", got)
		}
	})
}

func TestCacheFetch(t *testing.T) {
	t.Run("writes artifact", func(t *testing.T) {
		dir := t.TempDir()
		var calls [][]string
		cache := NewCache(Options{MusicDir: dir, AudioFormat: "opus", Command: "yt-dlp", Runner: fakeExtractor(t, &calls)})

		result, err := cache.Fetch(context.Background(), "abc", "Song")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if result.Path != filepath.Join(dir, "abc.opus") {
			t.Errorf("Path = %q", result.Path)
		}
		if !cache.Exists("abc") {
			t.Error("artifact missing after Fetch")
		}
		if len(calls) != 1 || calls[0][0] != "yt-dlp" {
			t.Fatalf("calls = %v", calls)
		}
		if !slices.Contains(calls[0], "--extract-audio") || calls[0][len(calls[0])-1] != "abc" {
			t.Errorf("unexpected args %v", calls[0])
		}
		if result.ThumbnailPath != "" || result.ThumbnailErr != nil {
			t.Errorf("thumbnail should be skipped when disabled: %+v", result)
		}
	})

	t.Run("extractor failure", func(t *testing.T) {
		cache := NewCache(Options{
			MusicDir: t.TempDir(),
			Runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return []byte("ERROR: Video unavailable\n"), errors.New("exit status 1")
			},
		})

		_, err := cache.Fetch(context.Background(), "gone", "Gone")
		if !errors.Is(err, shared.ErrArtifactFetchFailed) {
			t.Fatalf("Fetch() error = %v, want ErrArtifactFetchFailed", err)
		}
		if !strings.Contains(err.Error(), "Video unavailable") {
			t.Errorf("error should carry extractor output: %v", err)
		}
	})

	t.Run("extractor succeeds without output file", func(t *testing.T) {
		cache := NewCache(Options{
			MusicDir: t.TempDir(),
			Runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return nil, nil
			},
		})

		if _, err := cache.Fetch(context.Background(), "abc", "Song"); !errors.Is(err, shared.ErrArtifactFetchFailed) {
			t.Fatalf("Fetch() error = %v, want ErrArtifactFetchFailed", err)
		}
	})

	t.Run("with thumbnail", func(t *testing.T) {
		cover := pngBytes(t, 64, 32)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/vi/abc/sddefault.jpg" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			w.Write(cover)
		}))
		defer server.Close()

		thumbs := t.TempDir()
		var calls [][]string
		cache := NewCache(Options{
			MusicDir:      t.TempDir(),
			ThumbnailDir:  thumbs,
			Thumbnails:    true,
			ThumbnailURL:  server.URL + "/vi/%s/sddefault.jpg",
			ThumbnailSize: 16,
			Runner:        fakeExtractor(t, &calls),
		})

		result, err := cache.Fetch(context.Background(), "abc", "My Song")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if result.ThumbnailErr != nil {
			t.Fatalf("ThumbnailErr = %v", result.ThumbnailErr)
		}
		if result.ThumbnailPath != filepath.Join(thumbs, "My Song.jpg") {
			t.Errorf("ThumbnailPath = %q", result.ThumbnailPath)
		}

		f, err := os.Open(result.ThumbnailPath)
		if err != nil {
			t.Fatalf("open thumbnail: %v", err)
		}
		defer f.Close()
		cfg, err := jpeg.DecodeConfig(f)
		if err != nil {
			t.Fatalf("thumbnail is not a jpeg: %v", err)
		}
		if cfg.Width != 16 || cfg.Height != 8 {
			t.Errorf("thumbnail is %dx%d, want 16x8", cfg.Width, cfg.Height)
		}
	})

	t.Run("thumbnail failure is not fatal", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		var calls [][]string
		cache := NewCache(Options{
			MusicDir:     t.TempDir(),
			ThumbnailDir: t.TempDir(),
			Thumbnails:   true,
			ThumbnailURL: server.URL + "/%s.jpg",
			Runner:       fakeExtractor(t, &calls),
		})

		result, err := cache.Fetch(context.Background(), "abc", "Song")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if result.ThumbnailErr == nil || result.ThumbnailPath != "" {
			t.Errorf("expected a thumbnail error, got %+v", result)
		}
	})
}

func TestCacheDelete(t *testing.T) {
	dir := t.TempDir()
	var calls [][]string
	cache := NewCache(Options{MusicDir: dir, Runner: fakeExtractor(t, &calls)})

	if _, err := cache.Fetch(context.Background(), "abc", "Song"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if err := cache.Delete("abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if cache.Exists("abc") {
		t.Error("artifact still present")
	}

	if err := cache.Delete("abc"); !errors.Is(err, shared.ErrArtifactDeleteFailed) {
		t.Errorf("second Delete() error = %v, want ErrArtifactDeleteFailed", err)
	}
}

func TestCacheDeleteThumbnail(t *testing.T) {
	thumbs := t.TempDir()
	cache := NewCache(Options{MusicDir: t.TempDir(), ThumbnailDir: thumbs, Thumbnails: true})

	if err := cache.DeleteThumbnail("never fetched"); err != nil {
		t.Errorf("missing thumbnail should be ignored, got %v", err)
	}

	path := cache.ThumbnailPath("a/b")
	if filepath.Dir(path) != thumbs {
		t.Fatalf("ThumbnailPath escaped the directory: %q", path)
	}
	if err := os.WriteFile(path, []byte("jpg"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cache.DeleteThumbnail("a/b"); err != nil {
		t.Fatalf("DeleteThumbnail() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("thumbnail still present")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h, size   int
		wantW, wantH int
	}{
		{"landscape", 640, 480, 320, 320, 240},
		{"portrait", 480, 640, 320, 240, 320},
		{"already small", 100, 50, 320, 100, 50},
		{"no limit", 640, 480, 0, 640, 480},
		{"degenerate", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fit(tt.w, tt.h, tt.size)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fit(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.size, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
