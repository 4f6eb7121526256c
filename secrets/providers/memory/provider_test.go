package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
)

func TestProvider_Resolve(t *testing.T) {
	ctx := context.Background()
	seed := map[string]string{"db": `{"password":"p@ss"}`}
	p := New(seed)

	t.Run("existing", func(t *testing.T) {
		got, err := p.Resolve(ctx, "db")
		require.NoError(t, err)
		assert.Equal(t, `{"password":"p@ss"}`, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := p.Resolve(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, secrets.IsProviderError(err))
		assert.Equal(t, ferrors.CodeNotFound, ferrors.CodeOf(err))
	})

	t.Run("seed is copied", func(t *testing.T) {
		seed["db"] = "changed"
		got, err := p.Resolve(ctx, "db")
		require.NoError(t, err)
		assert.Equal(t, `{"password":"p@ss"}`, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := p.Resolve(cctx, "db")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProvider_SetDelete(t *testing.T) {
	ctx := context.Background()
	p := New(nil)
	assert.Equal(t, "memory", p.Name())

	p.Set("plain_secret", "raw_value")
	got, err := p.Resolve(ctx, "plain_secret")
	require.NoError(t, err)
	assert.Equal(t, "raw_value", got)

	p.Delete("plain_secret")
	_, err = p.Resolve(ctx, "plain_secret")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProvider_Concurrent(t *testing.T) {
	ctx := context.Background()
	p := New(nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("secret-%d", i)
			p.Set(id, id)
			got, err := p.Resolve(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, id, got)
		}(i)
	}
	wg.Wait()
}
