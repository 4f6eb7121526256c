package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/cache"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/config"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/envvar"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets/providers/memory"
	awssecrets "github.com/input-output-hk/catalyst-forge-libs/awssecrets/services/aws/secrets"
)

// fakeAPI serves secrets from a map and counts GetSecretValue calls.
type fakeAPI struct {
	mu      sync.Mutex
	secrets map[string]string
	calls   int
}

func (f *fakeAPI) GetSecretValue(
	_ context.Context,
	params *secretsmanager.GetSecretValueInput,
	_ ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	value, ok := f.secrets[*params.SecretId]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: awssecrets.ResourceNotFoundException, Message: "not found"}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: &value}, nil
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{secrets: map[string]string{
		"db":           `{"password":"p@ss","user":"u"}`,
		"plain_secret": "raw_value",
	}}
}

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		_, err := New(ctx, nil)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Delimiter = "::"
		_, err := New(ctx, cfg, WithManagerAPI(newFakeAPI()))
		require.Error(t, err)
		assert.Equal(t, ferrors.CodeInvalidConfig, ferrors.CodeOf(err))
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // testing nil context handling
		_, err := New(nil, config.Default())
		assert.Error(t, err)
	})
}

func TestNew_MemoryCache(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()

	cfg := config.Default()
	cfg.Ignore = []string{"optional"}

	c, err := New(ctx, cfg, WithManagerAPI(api))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	require.NotNil(t, c.Client)
	require.IsType(t, &cache.MemoryPool{}, c.Pool)
	assert.True(t, c.Cached.Enabled())

	got, err := c.Processor.GetEnv(ctx, "db,password")
	require.NoError(t, err)
	assert.Equal(t, "p@ss", got)

	got, err = c.Resolver.Resolve(ctx, "db,user")
	require.NoError(t, err)
	assert.Equal(t, "u", got)
	assert.Equal(t, 1, api.count())

	got, err = c.Processor.GetEnv(ctx, "optional")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.Processor.GetEnv(ctx, "required")
	var cfgErr *envvar.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, awssecrets.ErrSecretNotFound)
}

func TestNew_ZeroTTL(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()

	cfg := config.Default()
	cfg.TTL = 0
	cfg.Cache = "redis"
	cfg.Redis.Addr = "127.0.0.1:1"

	c, err := New(ctx, cfg, WithManagerAPI(api))
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.False(t, c.Cached.Enabled())

	for range 2 {
		got, err := c.Resolver.Resolve(ctx, "plain_secret")
		require.NoError(t, err)
		assert.Equal(t, "raw_value", got)
	}
	assert.Equal(t, 2, api.count())
}

func TestNew_FilesystemCache(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()

	cfg := config.Default()
	cfg.Cache = "filesystem"

	first := newFakeAPI()
	c1, err := New(ctx, cfg, WithManagerAPI(first), WithFilesystem(fs))
	require.NoError(t, err)
	require.IsType(t, &cache.FilesystemPool{}, c1.Pool)

	got, err := c1.Resolver.Resolve(ctx, "db,password")
	require.NoError(t, err)
	assert.Equal(t, "p@ss", got)

	// a second container sharing the directory reads the cached payload
	second := newFakeAPI()
	c2, err := New(ctx, cfg, WithManagerAPI(second), WithFilesystem(fs))
	require.NoError(t, err)

	got, err = c2.Resolver.Resolve(ctx, "db,user")
	require.NoError(t, err)
	assert.Equal(t, "u", got)
	assert.Equal(t, 0, second.count())
}

func TestNew_OSFilesystemCache(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache = "filesystem"
	cfg.CacheDir = t.TempDir()

	c, err := New(ctx, cfg, WithManagerAPI(newFakeAPI()))
	require.NoError(t, err)

	got, err := c.Processor.GetEnv(ctx, "plain_secret")
	require.NoError(t, err)
	assert.Equal(t, "raw_value", got)

	ok, err := c.Pool.Has(ctx, "plain_secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew_RedisUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	api := newFakeAPI()

	cfg := config.Default()
	cfg.Cache = "redis"
	cfg.Redis.Addr = "127.0.0.1:1"

	c, err := New(ctx, cfg, WithManagerAPI(api))
	require.NoError(t, err)
	require.IsType(t, &cache.RedisPool{}, c.Pool)

	got, err := c.Resolver.Resolve(ctx, "plain_secret")
	require.NoError(t, err)
	assert.Equal(t, "raw_value", got)
	assert.Equal(t, 1, api.count())

	assert.NoError(t, c.Close())
}

func TestNew_InjectedFetcherAndPool(t *testing.T) {
	ctx := context.Background()
	pool := cache.NewMemoryPool()
	fetcher := memory.New(map[string]string{"db": `{"password":"p@ss"}`})

	cfg := config.Default()
	cfg.Delimiter = ":"

	c, err := New(ctx, cfg, WithFetcher(fetcher), WithCachePool(pool))
	require.NoError(t, err)

	assert.Nil(t, c.Client)
	assert.Same(t, pool, c.Pool)

	got, err := c.Processor.Expand(ctx, "pw=${aws:db:password}")
	require.NoError(t, err)
	assert.Equal(t, "pw=p@ss", got)
	assert.Equal(t, 1, pool.Len())
}

func TestClientConfig(t *testing.T) {
	got := ClientConfig(config.ClientConfig{
		Region:      "eu-west-1",
		Endpoint:    "http://localhost:4566",
		Profile:     "dev",
		MaxAttempts: 4,
		Timeout:     time.Second,
		Credentials: config.Credentials{Key: "AKIA", Secret: "s", Token: "t"},
	})

	assert.Equal(t, awssecrets.Config{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:4566",
		Profile:         "dev",
		MaxAttempts:     4,
		Timeout:         time.Second,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "s",
		SessionToken:    "t",
	}, got)
}

func TestContainer_Close(t *testing.T) {
	c := &Container{}
	calls := 0
	c.closers = []func() error{
		func() error { calls++; return nil },
		func() error { calls++; return errors.New("boom") },
	}
	err := c.Close()
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Close())
}
