package shared

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestKind(t *testing.T) {
	tc := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "wrapped not found", err: fmt.Errorf("%w: song Ghost", ErrNotFound), want: "NotFound"},
		{name: "duplicate membership", err: ErrDuplicateMembership, want: "DuplicateMembership"},
		{name: "delete beats write", err: fmt.Errorf("%w: playlist rock", ErrCatalogDeleteFailed), want: "CatalogDeleteFailed"},
		{name: "plain write", err: fmt.Errorf("%w: boom", ErrCatalogWriteFailed), want: "CatalogWriteFailed"},
		{name: "daemon", err: fmt.Errorf("%w: dial tcp", ErrDaemonUnavailable), want: "DaemonUnavailable"},
		{name: "foreign", err: errors.New("disk on fire"), want: "Unknown"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("delete failure is a write failure", func(t *testing.T) {
		if !errors.Is(ErrCatalogDeleteFailed, ErrCatalogWriteFailed) {
			t.Error("expected ErrCatalogDeleteFailed to wrap ErrCatalogWriteFailed")
		}
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tc := []struct {
		in   string
		want string
	}{
		{in: "~/Music", want: filepath.Join(home, "Music")},
		{in: "~", want: home},
		{in: "/abs/path", want: "/abs/path"},
		{in: "rel/~/path", want: "rel/~/path"},
	}

	for _, tt := range tc {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger(t *testing.T) {
	t.Run("ConfigureLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		ConfigureLogger(logger, LoggingConfig{Level: "debug", Format: "json"})

		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", logger.GetLevel())
		}

		logger.Debug("hello", "song", "abc")
		if !strings.Contains(buf.String(), `"song":"abc"`) {
			t.Errorf("expected json output, got %s", buf.String())
		}
	})

	t.Run("GenerateID is unique", func(t *testing.T) {
		if GenerateID() == GenerateID() {
			t.Error("expected distinct ids")
		}
	})
}
