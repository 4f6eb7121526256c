// Package bootstrap builds the secret resolution pipeline from configuration.
//
// New is the composition root: it validates the configuration, creates the
// AWS client, selects the cache backend and wires the stages together.
//
//	cfg, err := config.Load("aws-secrets.yaml")
//	if err != nil {
//	    return err
//	}
//	c, err := bootstrap.New(ctx, cfg, bootstrap.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	password, err := c.Processor.GetEnv(ctx, "myapp/db,password")
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/cache"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/config"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/envvar"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
	awsprovider "github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets/providers/aws"
	awssecrets "github.com/input-output-hk/catalyst-forge-libs/awssecrets/services/aws/secrets"
)

// Container holds the wired pipeline. Fields are set by New and must not be
// modified afterwards.
type Container struct {
	Config *config.Config

	// Client is the AWS client. It is nil when a fetcher was injected with
	// WithFetcher.
	Client *awssecrets.Client

	// Fetcher is the leaf provider returning raw payloads.
	Fetcher secrets.Provider

	// Pool is the cache backend, or nil when caching is disabled.
	Pool cache.Pool

	Cached    *secrets.CachedProvider
	Resolver  *secrets.StructuredProvider
	Processor *envvar.Processor

	logger  *slog.Logger
	closers []func() error
}

// New builds a Container from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Container{
		Config: cfg,
		logger: o.logger,
	}

	if err := c.buildFetcher(ctx, o); err != nil {
		return nil, err
	}

	if err := c.buildPool(o); err != nil {
		_ = c.Close()
		return nil, err
	}

	stageOpts := []secrets.Option{secrets.WithLogger(o.logger)}
	c.Cached = secrets.NewCachedProvider(c.Fetcher, c.Pool, cfg.TTLDuration(), stageOpts...)
	c.Resolver = secrets.NewStructuredProvider(c.Cached, cfg.Delimiter, stageOpts...)
	c.Processor = envvar.NewProcessor(c.Resolver,
		envvar.WithIgnore(cfg.Ignore...),
		envvar.WithDelimiter(cfg.Delimiter),
		envvar.WithLogger(o.logger),
	)

	o.logger.DebugContext(ctx, "secret pipeline ready",
		"cache", cfg.Cache,
		"ttl", cfg.TTLDuration(),
		"ignored", len(cfg.Ignore))

	return c, nil
}

// ClientConfig converts the passthrough client settings.
func ClientConfig(cc config.ClientConfig) awssecrets.Config {
	return awssecrets.Config{
		Region:          cc.Region,
		Endpoint:        cc.Endpoint,
		Profile:         cc.Profile,
		MaxAttempts:     cc.MaxAttempts,
		Timeout:         cc.Timeout,
		AccessKeyID:     cc.Credentials.Key,
		SecretAccessKey: cc.Credentials.Secret,
		SessionToken:    cc.Credentials.Token,
	}
}

func (c *Container) buildFetcher(ctx context.Context, o *options) error {
	if o.fetcher != nil {
		c.Fetcher = o.fetcher
		return nil
	}

	clientOpts := []awssecrets.Option{awssecrets.WithLogger(o.logger)}

	var (
		client *awssecrets.Client
		err    error
	)
	if o.api != nil {
		client, err = awssecrets.NewClientWithAPI(o.api, clientOpts...)
	} else {
		client, err = awssecrets.NewClient(ctx, ClientConfig(c.Config.ClientConfig), clientOpts...)
	}
	if err != nil {
		return fmt.Errorf("creating secrets manager client: %w", err)
	}

	c.Client = client
	c.Fetcher = awsprovider.New(client)
	return nil
}

func (c *Container) buildPool(o *options) error {
	if c.Config.TTL <= 0 {
		return nil
	}
	if o.pool != nil {
		c.Pool = o.pool
		return nil
	}

	kind, err := cache.ParseKind(c.Config.Cache)
	if err != nil {
		return err
	}

	switch kind {
	case cache.KindFilesystem:
		var pool *cache.FilesystemPool
		if o.filesystem != nil {
			pool, err = cache.NewFilesystemPool(o.filesystem, c.Config.Namespace)
		} else {
			pool, err = cache.NewOSFilesystemPool(c.Config.CacheDir, c.Config.Namespace)
		}
		if err != nil {
			return fmt.Errorf("creating filesystem cache: %w", err)
		}
		c.Pool = pool

	case cache.KindRedis:
		client := o.redis
		if client == nil {
			rc := cache.NewRedisClient(cache.RedisOptions{
				Addr:     c.Config.Redis.Addr,
				Password: c.Config.Redis.Password,
				DB:       c.Config.Redis.DB,
			})
			c.closers = append(c.closers, rc.Close)
			client = rc
		}
		pool, err := cache.NewRedisPool(client, c.Config.Namespace)
		if err != nil {
			return fmt.Errorf("creating redis cache: %w", err)
		}
		c.Pool = pool

	default:
		c.Pool = cache.NewMemoryPool()
	}

	return nil
}

// Close releases connections opened by New.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
