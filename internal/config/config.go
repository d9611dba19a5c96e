// Package config loads the kosuke configuration: defaults, then an optional
// YAML file, then KOSUKE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read from the working directory when present.
	DefaultFile = "kosuke.yaml"
	// EnvFile names an explicit configuration file.
	EnvFile = "KOSUKE_CONFIG"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "KOSUKE_"
)

// Storage backends for the progress record.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the resolved configuration.
type Config struct {
	ProgressPath      string       `mapstructure:"progress_path"`
	OutputDir         string       `mapstructure:"output_dir"`
	LocalEnvFile      string       `mapstructure:"local_env_file"`
	ProductionEnvFile string       `mapstructure:"production_env_file"`
	Backend           string       `mapstructure:"backend"`
	Redis             RedisConfig  `mapstructure:"redis"`
	EncryptionKey     string       `mapstructure:"encryption_key"`
	FallbackKeys      []string     `mapstructure:"fallback_keys"`
	RedactPatterns    []string     `mapstructure:"redact_patterns"`
	Debug             bool         `mapstructure:"debug"`
	MetricsAddr       string       `mapstructure:"metrics_addr"`
	Server            ServerConfig `mapstructure:"server"`
}

// RedisConfig selects the redis progress store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the engine HTTP service.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

func defaults() map[string]any {
	return map[string]any{
		"progress_path":       ".kosuke-setup-progress.json",
		"output_dir":          ".",
		"local_env_file":      ".env",
		"production_env_file": ".env.prod",
		"backend":             BackendFile,
		"redis": map[string]any{
			"addr":   "localhost:6379",
			"db":     0,
			"prefix": "kosuke:",
			"ttl":    "0s",
		},
		"redact_patterns": []string{"key", "secret", "token", "dsn"},
		"debug":           false,
		"server": map[string]any{
			"port": 8000,
		},
	}
}

// envKeys maps environment variables to dotted configuration keys.
var envKeys = map[string]string{
	"PROGRESS_PATH":       "progress_path",
	"OUTPUT_DIR":          "output_dir",
	"LOCAL_ENV_FILE":      "local_env_file",
	"PRODUCTION_ENV_FILE": "production_env_file",
	"BACKEND":             "backend",
	"REDIS_ADDR":          "redis.addr",
	"REDIS_PASSWORD":      "redis.password",
	"REDIS_DB":            "redis.db",
	"REDIS_PREFIX":        "redis.prefix",
	"REDIS_TTL":           "redis.ttl",
	"ENCRYPTION_KEY":      "encryption_key",
	"FALLBACK_KEYS":       "fallback_keys",
	"REDACT_PATTERNS":     "redact_patterns",
	"DEBUG":               "debug",
	"METRICS_ADDR":        "metrics_addr",
	"SERVER_PORT":         "server.port",
}

// Load resolves the configuration. path names a YAML file; when empty,
// $KOSUKE_CONFIG is used, then DefaultFile if it exists. An explicitly named
// file that does not exist is an error.
func Load(path string) (*Config, error) {
	raw := defaults()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvFile); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultFile
		}
	}

	if err := mergeFile(raw, path, explicit); err != nil {
		return nil, err
	}
	applyEnv(raw, os.Environ())

	cfg := &Config{}
	if err := decode(raw, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(raw map[string]any, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var file map[string]any
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	merge(raw, file)
	return nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

func applyEnv(raw map[string]any, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key, known := envKeys[strings.TrimPrefix(name, EnvPrefix)]
		if !known {
			continue
		}
		set(raw, strings.Split(key, "."), value)
	}
}

func set(raw map[string]any, path []string, value string) {
	if len(path) == 1 {
		raw[path[0]] = value
		return
	}
	sub, ok := raw[path[0]].(map[string]any)
	if !ok {
		sub = map[string]any{}
		raw[path[0]] = sub
	}
	set(sub, path[1:], value)
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks value ranges and backend requirements.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.ProgressPath == "" {
			return errors.New("invalid config: progress_path is required for the file backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("invalid config: redis.addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid config: unknown backend %q", c.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port)
	}
	if c.Redis.TTL < 0 {
		return errors.New("invalid config: redis.ttl must not be negative")
	}
	return nil
}
