// Package config loads the settings of the secret resolution pipeline.
//
// Configuration is read once at startup from an optional YAML file, then
// overridden by environment variables prefixed with AWS_SECRETS_ (nested keys
// are joined with underscores, so client_config.region becomes
// AWS_SECRETS_CLIENT_CONFIG_REGION).
//
// Example file:
//
//	ttl: 300
//	ignore:
//	  - optional/api-key
//	delimiter: ","
//	cache: filesystem
//	client_config:
//	  region: eu-west-1
//	  max_attempts: 5
//	  timeout: 5s
package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default values applied before the file and the environment are read.
const (
	DefaultTTL       = 60
	DefaultDelimiter = ","
	DefaultCache     = "memory"
	DefaultNamespace = "aws_secrets"
	DefaultRedisAddr = "localhost:6379"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AWS_SECRETS"

// Config is the complete pipeline configuration.
type Config struct {
	// TTL is the cache lifetime in seconds. Zero disables caching.
	TTL int `mapstructure:"ttl" yaml:"ttl"`

	// Ignore lists identifiers whose resolution failures yield an empty value.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Delimiter separates an identifier from a key in a reference.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Cache selects the cache backend: memory (alias array), filesystem or redis.
	Cache string `mapstructure:"cache" yaml:"cache"`

	// CacheDir is the root directory of the filesystem backend.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`

	// Namespace prefixes cache keys so several pipelines can share a store.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`

	Redis        RedisConfig  `mapstructure:"redis" yaml:"redis"`
	ClientConfig ClientConfig `mapstructure:"client_config" yaml:"client_config"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// ClientConfig is passed through to the AWS Secrets Manager client.
type ClientConfig struct {
	Region      string        `mapstructure:"region" yaml:"region"`
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	Profile     string        `mapstructure:"profile" yaml:"profile"`
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Credentials Credentials   `mapstructure:"credentials" yaml:"credentials"`
}

// Credentials are static AWS credentials. They are used only when both Key
// and Secret are set.
type Credentials struct {
	Key    string `mapstructure:"key" yaml:"key"`
	Secret string `mapstructure:"secret" yaml:"secret"`
	Token  string `mapstructure:"token" yaml:"token"`
}

// TTLDuration returns TTL as a time.Duration.
func (c *Config) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// Masked returns a copy of c with secrets replaced, suitable for display.
func (c *Config) Masked() *Config {
	out := *c
	out.Ignore = append([]string(nil), c.Ignore...)
	out.Redis.Password = mask(c.Redis.Password)
	out.ClientConfig.Credentials = Credentials{
		Key:    mask(c.ClientConfig.Credentials.Key),
		Secret: mask(c.ClientConfig.Credentials.Secret),
		Token:  mask(c.ClientConfig.Credentials.Token),
	}
	return &out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// DefaultCacheDir returns the default root of the filesystem backend, under
// the user's XDG cache directory.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "aws-secrets")
}
