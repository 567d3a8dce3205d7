package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yap/internal/daemon"
	"github.com/desertthunder/yap/internal/media"
	"github.com/desertthunder/yap/internal/repositories"
	"github.com/desertthunder/yap/internal/shared"
	"github.com/desertthunder/yap/internal/tasks"
	"github.com/desertthunder/yap/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Config, database and engine are opened on first use so that "setup" works before any of them exist.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	engine *tasks.Engine
	db     *sql.DB
	runID  string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Engine *tasks.Engine
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	runID := shared.GenerateID()
	return &Runner{
		config: opts.Config,
		engine: opts.Engine,
		logger: shared.WithLogger(opts.Logger, "run", runID[:8]),
		output: opts.Output,
		runID:  runID,
	}
}

// Run executes the command line and returns the process exit status.
//
// Failures are printed as one line on the output and yield status 1.
func (r *Runner) Run(ctx context.Context, args []string) int {
	defer r.Close()

	if err := r.app().Run(ctx, args); err != nil {
		r.logger.Debug("command failed", "kind", shared.Kind(err), "error", err)
		r.writePlain("%s\n", ui.Failure("Error: "+err.Error()))
		return 1
	}
	return 0
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// before applies the global flags.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// loadConfig reads the config file named by --config, creating it from the template on first run.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	path := cmd.String("config")
	if path == "" {
		path = shared.DefaultConfigPath()
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			return nil, err
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if !cmd.Bool("verbose") {
		shared.ConfigureLogger(r.logger, config.Logging)
	}
	r.logger.Debug("loaded config", "path", path)
	r.config = config
	return config, nil
}

// openDatabase opens the catalog and brings its schema up to date.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	applied, err := shared.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		r.logger.Info("applied migrations", "count", applied, "path", config.Database.Path)
	}

	r.db = db
	return db, nil
}

// open returns the engine, wiring it from config on first use.
func (r *Runner) open(cmd *cli.Command) (*tasks.Engine, error) {
	if r.engine != nil {
		return r.engine, nil
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirectories(); err != nil {
		return nil, err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return nil, err
	}

	client := daemon.NewClient(config.MPD)
	r.engine = tasks.NewEngine(tasks.EngineOpts{
		Songs:       repositories.NewSongRepository(db),
		Playlists:   repositories.NewPlaylistRepository(db),
		Memberships: repositories.NewMembershipRepository(db),
		Media:       media.NewCacheFromConfig(config),
		Dial: func(ctx context.Context) (tasks.Session, error) {
			conn, err := client.Connect(ctx)
			if err != nil {
				return nil, err
			}
			r.logger.Debug("connected to mpd", "address", client.Address)
			return conn, nil
		},
	})
	return r.engine, nil
}

// warn reports a non-fatal failure on the log and the output.
func (r *Runner) warn(msg string, err error) {
	r.logger.Warn(msg, "kind", shared.Kind(err), "error", err)
	r.writePlain("%s\n", ui.Warning(fmt.Sprintf("%s: %v", msg, err)))
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
