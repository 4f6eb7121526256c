package bootstrap

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/cache"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
	awssecrets "github.com/input-output-hk/catalyst-forge-libs/awssecrets/services/aws/secrets"
)

type options struct {
	logger     *slog.Logger
	api        awssecrets.ManagerAPI
	fetcher    secrets.Provider
	pool       cache.Pool
	filesystem billy.Filesystem
	redis      cache.RedisClient
}

// Option configures New.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger shared by every stage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithManagerAPI replaces the AWS Secrets Manager API, typically with a fake.
func WithManagerAPI(api awssecrets.ManagerAPI) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithFetcher replaces the AWS-backed leaf provider entirely.
func WithFetcher(p secrets.Provider) Option {
	return func(o *options) {
		o.fetcher = p
	}
}

// WithCachePool uses pool instead of the configured backend.
func WithCachePool(pool cache.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// WithFilesystem roots the filesystem backend in fs instead of cache_dir.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(o *options) {
		o.filesystem = fs
	}
}

// WithRedisClient uses client for the redis backend instead of dialing
// redis.addr. The caller keeps ownership of client.
func WithRedisClient(client cache.RedisClient) Option {
	return func(o *options) {
		o.redis = client
	}
}
