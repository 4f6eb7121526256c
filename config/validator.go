package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/cache"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = ferrors.New(ferrors.CodeInvalidConfig, "invalid configuration")

// Validate checks every field and reports all violations at once.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalid)
	}

	var validationErrors []string

	if c.TTL < 0 {
		validationErrors = append(validationErrors, fmt.Sprintf("ttl must be >= 0, got %d", c.TTL))
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("delimiter must be exactly one character, got %q", c.Delimiter))
	}

	kind, err := cache.ParseKind(c.Cache)
	if err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	switch kind {
	case cache.KindFilesystem:
		if c.CacheDir == "" {
			validationErrors = append(validationErrors, "cache_dir is required for the filesystem cache")
		}
	case cache.KindRedis:
		if c.Redis.Addr == "" {
			validationErrors = append(validationErrors, "redis.addr is required for the redis cache")
		}
		if c.Redis.DB < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("redis.db must be >= 0, got %d", c.Redis.DB))
		}
	}

	for i, id := range c.Ignore {
		if strings.TrimSpace(id) == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("ignore[%d] is empty", i))
		}
	}

	cc := c.ClientConfig
	if cc.MaxAttempts < 0 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("client_config.max_attempts must be >= 0, got %d", cc.MaxAttempts))
	}
	if cc.Timeout < 0 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("client_config.timeout must be >= 0, got %s", cc.Timeout))
	}
	if (cc.Credentials.Key == "") != (cc.Credentials.Secret == "") {
		validationErrors = append(validationErrors,
			"client_config.credentials.key and client_config.credentials.secret must be set together")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(validationErrors, "; "))
	}

	return nil
}
