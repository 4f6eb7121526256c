package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
)

// ErrLoad is wrapped by every error returned while reading configuration.
var ErrLoad = ferrors.New(ferrors.CodeInvalidConfig, "failed to load configuration")

// Load reads configuration from the YAML file at path, applies environment
// overrides and defaults, and validates the result. An empty path skips the
// file; a non-empty path that does not exist is an error.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-provided viper instance, which lets a CLI bind
// its flags before loading.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: config file %q does not exist", ErrLoad, path)
			}
			return nil, fmt.Errorf("%w: reading %q: %w", ErrLoad, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding: %w", ErrLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		TTL:       DefaultTTL,
		Ignore:    []string{},
		Delimiter: DefaultDelimiter,
		Cache:     DefaultCache,
		CacheDir:  DefaultCacheDir(),
		Namespace: DefaultNamespace,
		Redis: RedisConfig{
			Addr: DefaultRedisAddr,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("ttl", d.TTL)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("cache", d.Cache)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("namespace", d.Namespace)

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("client_config.region", "")
	v.SetDefault("client_config.endpoint", "")
	v.SetDefault("client_config.profile", "")
	v.SetDefault("client_config.max_attempts", 0)
	v.SetDefault("client_config.timeout", "0s")
	v.SetDefault("client_config.credentials.key", "")
	v.SetDefault("client_config.credentials.secret", "")
	v.SetDefault("client_config.credentials.token", "")
}
