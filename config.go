package cheesyblog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hypergopher/cheesyblog/bboltstore"
	"github.com/hypergopher/cheesyblog/sqlitestore"
)

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendBBolt  Backend = "bbolt"
	BackendSQLite Backend = "sqlite"
)

const (
	sqliteFile  = "cheesyblog.sqlite"
	sqliteTable = "kv"
)

// Config is a struct for configuring a Site.
type Config struct {
	Backend  Backend `yaml:"backend" toml:"backend"`   // Backend is the persistence backend. Default is memory.
	DataDir  string  `yaml:"dataDir" toml:"dataDir"`   // DataDir is where file backends keep their data. Required for bbolt and sqlite.
	SeedDir  string  `yaml:"seedDir" toml:"seedDir"`   // SeedDir is an optional directory of markdown seed posts.
	MenuFile string  `yaml:"menuFile" toml:"menuFile"` // MenuFile is an optional JSON menu document.
	LogLevel string  `yaml:"logLevel" toml:"logLevel"` // LogLevel is one of debug, info, warn, error. Default is info.
}

// KVStoreCloser is a KVStore that holds resources
type KVStoreCloser interface {
	KVStore
	io.Closer
}

// LoadConfig reads a TOML or YAML config file, chosen by extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode TOML config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}

	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return c
}

// Logger returns a text logger to stderr at the configured level.
func (c Config) Logger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.withDefaults().LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return newLogger(level), nil
}

// OpenKVStore opens the configured backend.
func (c Config) OpenKVStore(logger *slog.Logger) (KVStoreCloser, error) {
	c = c.withDefaults()

	switch c.Backend {
	case BackendMemory:
		return NewMemoryKVStore(), nil
	case BackendBBolt:
		if c.DataDir == "" {
			return nil, fmt.Errorf("dataDir is required for the %s backend", c.Backend)
		}

		store := bboltstore.New(c.DataDir, logger)
		if err := store.Init(); err != nil {
			return nil, err
		}
		return store, nil
	case BackendSQLite:
		if c.DataDir == "" {
			return nil, fmt.Errorf("dataDir is required for the %s backend", c.Backend)
		}

		if err := os.MkdirAll(c.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}

		dbPath := filepath.Join(c.DataDir, sqliteFile)
		db, err := sqlitestore.NewDB(dbPath)
		if err != nil {
			return nil, err
		}

		store := sqlitestore.NewSQLiteStore(db, dbPath, sqliteTable)
		if err := store.Init(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to init sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}
