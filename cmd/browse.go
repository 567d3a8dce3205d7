package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yap/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive song and playlist browser.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.open(cmd)
	if err != nil {
		return err
	}

	// Logs would tear the alt screen, so they go to a file next to the database.
	if r.config != nil {
		logPath := filepath.Join(filepath.Dir(r.config.Database.Path), "yap-browse.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		r.logger.SetOutput(f)
	}

	model := ui.NewModel(ctx, engine)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return model.Err()
}
