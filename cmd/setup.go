package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/yap/internal/shared"
	"github.com/desertthunder/yap/internal/ui"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the default configuration file, or prints the defaults with --print.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("print") {
		return toml.NewEncoder(r.output).Encode(shared.DefaultConfig())
	}

	path := cmd.String("config")
	if path == "" {
		path = shared.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		r.writePlain("%s\n", ui.Hint("Config file already exists at "+path))
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	r.writePlain("%s\n", ui.Success("Config file written to "+path))
	return nil
}

// SetupDatabase creates the catalog and runs pending migrations, or rolls back the latest one.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.EnsureDirectories(); err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}

	if cmd.Bool("rollback") {
		if err := shared.RollbackMigration(db); err != nil {
			return err
		}
		r.writePlain("%s\n", ui.Success("Rolled back latest migration"))
		return nil
	}

	r.writePlain("%s\n", ui.Success("Database ready at "+config.Database.Path))
	return nil
}
