package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Video   VideoConfig   `mapstructure:"video"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type StorageConfig struct {
	Backend  string         `mapstructure:"backend"`
	Badger   BadgerConfig   `mapstructure:"badger"`
	Mongo    DatabaseConfig `mapstructure:"mongo"`
	SeedDemo bool           `mapstructure:"seed_demo"` // Fill an empty store with the demo set on start
}

type BadgerConfig struct {
	Path       string        `mapstructure:"path"`
	SyncWrites bool          `mapstructure:"sync_writes"`
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Stdout bool   `mapstructure:"stdout"`
	JSON   bool   `mapstructure:"json"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Trace exporters.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

// TracingConfig selects where OpenTelemetry spans go. Disabled tracing keeps the no-op provider.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"` // OTLP gRPC receiver
	Insecure bool   `mapstructure:"insecure"`
}

// VideoConfig points at the S3-compatible bucket holding exercise demonstration videos.
type VideoConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// LoadConfig reads configuration from file or environment variables.
// path is either a directory searched for config.{yaml,yml,toml,json} or a config file.
// Environment variables override file values: storage.badger.path -> FITLOG_STORAGE_BADGER_PATH.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	if path == "" {
		path = "."
	}
	if isDir(path) {
		v.AddConfigPath(path)
		v.SetConfigName("config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("fitlog")
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	v.AutomaticEnv()

	setDefaults(v)

	err = v.ReadInConfig()
	// A missing file is fine, defaults and env vars still apply.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	return config, config.Validate()
}

// isDir reports whether path names a config directory: an existing directory,
// or a missing path without a file extension.
func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return filepath.Ext(path) == ""
	}
	return info.IsDir()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1:8080")

	v.SetDefault("storage.backend", BackendBadger)
	v.SetDefault("storage.badger.path", "data/fitlog")
	v.SetDefault("storage.badger.sync_writes", true)
	v.SetDefault("storage.badger.gc_interval", "5m")
	v.SetDefault("storage.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo.name", "fitlog")
	v.SetDefault("storage.seed_demo", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdout", true)
	v.SetDefault("log.json", false)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("video.enabled", false)
	v.SetDefault("video.region", "us-east-1")
	v.SetDefault("video.use_ssl", true)
	v.SetDefault("video.url_expiry", "15m")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", ExporterOTLP)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.insecure", true)
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendBadger:
		if c.Storage.Badger.Path == "" {
			return errors.New("storage.badger.path is required for the badger backend")
		}
	case BackendMongo:
		if c.Storage.Mongo.URI == "" || c.Storage.Mongo.Name == "" {
			return errors.New("storage.mongo.uri and storage.mongo.name are required for the mongo backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	if c.Video.Enabled && c.Video.BucketName == "" {
		return errors.New("video.bucket_name is required when video storage is enabled")
	}

	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case ExporterOTLP, ExporterStdout:
		default:
			return fmt.Errorf("unknown tracing.exporter %q", c.Tracing.Exporter)
		}
	}
	return nil
}
