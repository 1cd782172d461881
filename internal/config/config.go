package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitflow/internal/constants"
)

// Config holds the file-level habitflow configuration.
// Per-database settings such as the timezone live in the store instead.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	Backup  BackupConfig  `toml:"backup"`
}

type StorageConfig struct {
	// Path is a SQLite file, a .json file, or a PostgreSQL connection string
	// without embedded credentials. Empty means use the OS keyring or the default.
	Path string `toml:"path"`
	// Timezone overrides the timezone stored in the database settings
	Timezone string `toml:"timezone,omitempty"`
}

type LogConfig struct {
	Debug   bool `toml:"debug"`
	Console bool `toml:"console"`
}

type ServerConfig struct {
	Addr          string   `toml:"addr"`
	JWTSecret     string   `toml:"jwt_secret,omitempty"`
	TokenTTLHours int      `toml:"token_ttl_hours"`
	AllowOrigins  []string `toml:"allow_origins"`
}

type BackupConfig struct {
	// Enabled defaults to true when missing from the file
	Enabled  *bool  `toml:"enabled,omitempty"`
	Schedule string `toml:"schedule"`
	Keep     int    `toml:"keep"`
}

// IsEnabled treats a missing value as enabled.
func (b BackupConfig) IsEnabled() bool {
	if b.Enabled == nil {
		return true
	}
	return *b.Enabled
}

// Paths holds the XDG locations used by habitflow.
type Paths struct {
	ConfigDir  string
	ConfigFile string
	EnvFile    string
	DBFile     string
}

// GetPaths resolves paths, respecting XDG_CONFIG_HOME.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()
	base := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dir := filepath.Join(base, constants.AppName)

	return Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, constants.ConfigFileName),
		EnvFile:    filepath.Join(dir, ".env"),
		DBFile:     filepath.Join(dir, constants.AppName+".db"),
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          constants.DefaultServerAddr,
			TokenTTLHours: constants.DefaultTokenTTLHours,
			AllowOrigins:  []string{"*"},
		},
		Backup: BackupConfig{
			Schedule: constants.DefaultBackupSchedule,
			Keep:     constants.MaxBackups,
		},
	}
}

// Load reads path (the XDG config file when empty), then applies .env files
// and environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	paths := GetPaths()
	if path == "" {
		path = paths.ConfigFile
	}
	path = ExpandPath(path)

	loadEnvFiles(".env", paths.EnvFile)

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	return cfg, nil
}

// loadEnvFiles loads each existing file. Variables already set in the
// environment are never overwritten.
func loadEnvFiles(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.DBEnv); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(constants.TimezoneEnv); v != "" {
		c.Storage.Timezone = v
	}
	if v := os.Getenv(constants.JWTSecretEnv); v != "" {
		c.Server.JWTSecret = v
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.TokenTTLHours <= 0 {
		c.Server.TokenTTLHours = d.Server.TokenTTLHours
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = d.Server.AllowOrigins
	}
	if c.Backup.Schedule == "" {
		c.Backup.Schedule = d.Backup.Schedule
	}
	if c.Backup.Keep <= 0 {
		c.Backup.Keep = d.Backup.Keep
	}
}

// Save writes cfg to path, creating parent directories. Secrets are not written.
func Save(path string, cfg *Config) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *cfg
	out.Server.JWTSecret = ""

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
