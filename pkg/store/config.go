package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

// Backends understood by Open.
const (
	BackendMemory = "memory"
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// Config selects and configures the byte store.
type Config struct {
	Backend    string        `json:"backend"`
	Path       string        `json:"path"`
	Key        string        `json:"key"`
	SQLitePath string        `json:"sqlitePath"`
	S3         S3Config      `json:"s3"`
	Retries    int           `json:"retries"`
	RetryBase  time.Duration `json:"retryBase"`
	LogLevel   string        `json:"logLevel"`
	LogFormat  string        `json:"logFormat"`
}

// LoadConfig reads .symptoms.yaml from $SYMPTOMS_CONFIG_PATH, the working
// directory or $HOME, overlaid with SYMPTOMS_* environment variables
// (SYMPTOMS_S3_BUCKET sets s3.bucket).
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("path", "~/.symptoms.db")
	v.SetDefault("key", DefaultKey)
	v.SetDefault("sqlite.path", "~/.symptoms.sqlite")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.accesskey", "")
	v.SetDefault("s3.secretkey", "")
	v.SetDefault("retry.attempts", DefaultRetries)
	v.SetDefault("retry.base", DefaultRetryBase)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "cli")

	v.SetConfigName(".symptoms") // .yaml is implicit
	v.SetEnvPrefix("SYMPTOMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("SYMPTOMS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	sqlitePath, err := homedir.Expand(v.GetString("sqlite.path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand sqlite.path: %w", err)
	}

	return &Config{
		Backend:    strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		Path:       path,
		Key:        v.GetString("key"),
		SQLitePath: sqlitePath,
		S3: S3Config{
			Bucket:    v.GetString("s3.bucket"),
			Region:    v.GetString("s3.region"),
			Endpoint:  v.GetString("s3.endpoint"),
			Prefix:    v.GetString("s3.prefix"),
			AccessKey: v.GetString("s3.accesskey"),
			SecretKey: v.GetString("s3.secretkey"),
		},
		Retries:   v.GetInt("retry.attempts"),
		RetryBase: v.GetDuration("retry.base"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
	}, nil
}

// WatchDir is the directory to watch for outside changes. Only the diskv
// backend has one.
func (c *Config) WatchDir() (string, bool) {
	if c.Backend != BackendDiskv || c.Path == "" {
		return "", false
	}
	return c.Path, true
}

// OpenKV builds the configured byte store. Disk and remote stores are
// wrapped in Retrying.
func OpenKV(ctx context.Context, cfg *Config) (KV, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendDiskv, "":
		kv, err := NewDiskvKV(cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewRetrying(kv, cfg.Retries, cfg.RetryBase), nil
	case BackendSQLite:
		kv, err := NewSQLiteKV(cfg.SQLitePath, logger.Silent)
		if err != nil {
			return nil, err
		}
		return NewRetrying(kv, cfg.Retries, cfg.RetryBase), nil
	case BackendS3:
		kv, err := NewS3KV(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewRetrying(kv, cfg.Retries, cfg.RetryBase), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// Open builds the configured Persistence.
func Open(ctx context.Context, cfg *Config, opts ...Option) (*Persistence, error) {
	kv, err := OpenKV(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(kv, append([]Option{WithKey(cfg.Key)}, opts...)...), nil
}
