// Package config loads snaplist settings from defaults, a TOML file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultAdapter  = "file"
	DefaultBucket   = "shared_prefs"
	DefaultKey      = "task_list"
	DefaultFormat   = "json"
	DefaultPhotoDir = "Pictures"
	DefaultLogLevel = "info"
	FileName        = "snaplist.toml"
)

// Config is the resolved configuration.
type Config struct {
	DataDir        string `toml:"data_dir"`
	Adapter        string `toml:"adapter"` // file, sqlite or memory
	Bucket         string `toml:"bucket"`
	Key            string `toml:"key"`
	Format         string `toml:"format"`
	PhotoDir       string `toml:"photo_dir"` // relative paths resolve against DataDir
	RecoverCorrupt bool   `toml:"recover_corrupt"`
	ReadOnly       bool   `toml:"read_only"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
	Journal        bool   `toml:"journal"`
	AllowCamera    bool   `toml:"allow_camera"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`

	photoRel string // PhotoDir as configured, when relative
}

// Load resolves configuration in priority order:
// 1. Defaults
// 2. Config file (explicit path, or snaplist.toml found from startDir upwards)
// 3. Environment variables
//
// dataDirFallback is used when neither the file nor the environment sets a data dir.
func Load(explicitPath, startDir, dataDirFallback string) (*Config, error) {
	cfg := Defaults()

	path := explicitPath
	if path == "" {
		path = findConfigFile(startDir)
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.Source = path
	}

	loadFromEnv(cfg)

	if cfg.DataDir == "" {
		cfg.DataDir = dataDirFallback
	}
	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	return &Config{
		Adapter:     DefaultAdapter,
		Bucket:      DefaultBucket,
		Key:         DefaultKey,
		Format:      DefaultFormat,
		PhotoDir:    DefaultPhotoDir,
		LogLevel:    DefaultLogLevel,
		AllowCamera: true,
	}
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	// Relative data dirs in a file are relative to the file.
	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(path), cfg.DataDir)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("SNAPLIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SNAPLIST_PHOTO_DIR"); v != "" {
		cfg.PhotoDir = v
	}
	if v := os.Getenv("SNAPLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SNAPLIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SNAPLIST_READ_ONLY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ReadOnly = b
		}
	}
}

func finalize(cfg *Config) error {
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.PhotoDir = expandPath(cfg.PhotoDir)
	if !filepath.IsAbs(cfg.PhotoDir) && cfg.DataDir != "" {
		cfg.photoRel = cfg.PhotoDir
		cfg.PhotoDir = filepath.Join(cfg.DataDir, cfg.PhotoDir)
	}

	switch cfg.Adapter {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid adapter %q (want file, sqlite or memory)", cfg.Adapter)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("invalid format %q (want json or yaml)", cfg.Format)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// SetDataDir overrides the data dir after loading, e.g. from a flag.
// A relative photo dir follows it.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = expandPath(dir)
	if c.photoRel != "" {
		c.PhotoDir = filepath.Join(c.DataDir, c.photoRel)
	}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// findConfigFile looks for snaplist.toml from dir upwards.
func findConfigFile(dir string) string {
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(abs, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
