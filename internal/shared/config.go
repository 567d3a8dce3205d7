package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

//go:embed config.example.toml
var exampleConf []byte

// ConfigEnv names the environment variable that overrides the config path.
const ConfigEnv = "YAP_CONFIG"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Database DatabaseConfig `toml:"database"`
	MPD      MPDConfig      `toml:"mpd"`
	Fetch    FetchConfig    `toml:"fetch"`
	Logging  LoggingConfig  `toml:"logging"`
}

// GeneralConfig holds the media cache locations.
type GeneralConfig struct {
	MusicDirectory     string `toml:"music_directory" validate:"required"`
	MiniatureDirectory string `toml:"miniature_directory" validate:"required_if=DownloadMiniature true"`
	DownloadMiniature  bool   `toml:"download_miniature"`
	AudioFormat        string `toml:"audio_format" validate:"required,alphanum"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" validate:"required"`
	MaxOpenConns int    `toml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `toml:"max_idle_conns" validate:"gte=0"`
}

// MPDConfig locates the playback daemon.
type MPDConfig struct {
	Network  string `toml:"network" validate:"oneof=tcp unix"`
	Address  string `toml:"address" validate:"required"`
	Password string `toml:"password"`
}

// FetchConfig controls how media artifacts are fetched.
type FetchConfig struct {
	Command       string  `toml:"command" validate:"required"`
	ThumbnailURL  string  `toml:"thumbnail_url" validate:"required"`
	ThumbnailSize int     `toml:"thumbnail_size" validate:"gte=0"`
	ImportRate    float64 `toml:"import_rate" validate:"gte=0"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `toml:"format" validate:"omitempty,oneof=text logfmt json"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.expandPaths()
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.expandPaths()
	return &config
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// EnsureDirectories creates the music and (when enabled) thumbnail directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.General.MusicDirectory}
	if c.General.DownloadMiniature {
		dirs = append(dirs, c.General.MiniatureDirectory)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) expandPaths() {
	c.General.MusicDirectory = ExpandHome(c.General.MusicDirectory)
	c.General.MiniatureDirectory = ExpandHome(c.General.MiniatureDirectory)
	c.Database.Path = ExpandHome(c.Database.Path)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// DefaultConfigPath resolves the config location: $YAP_CONFIG, then the user config dir.
func DefaultConfigPath() string {
	if path := os.Getenv(ConfigEnv); path != "" {
		return path
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "yap", "config.toml")
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
