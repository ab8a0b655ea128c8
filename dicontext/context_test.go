package dicontext_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	di "github.com/sectrean/provider-kit"
	"github.com/sectrean/provider-kit/dicontext"
	"github.com/sectrean/provider-kit/internal/testtypes"
	"github.com/sectrean/provider-kit/internal/testutils"
)

func Test_WithScope(t *testing.T) {
	c := di.NewCollection()
	di.AddScoped(c, func(di.ServiceProvider) (testtypes.InterfaceA, error) {
		return &testtypes.StructA{}, nil
	})
	p := c.BuildProvider()

	scope, err := p.CreateScope()
	require.NoError(t, err)

	ctx := dicontext.WithScope(context.Background(), scope)
	assert.Same(t, scope, dicontext.Scope(ctx))
}

func Test_Scope_NotFound(t *testing.T) {
	assert.Nil(t, dicontext.Scope(context.Background()))
}

func Test_Resolve(t *testing.T) {
	t.Run("resolves from scope on context", func(t *testing.T) {
		c := di.NewCollection()
		di.AddScoped(c, func(di.ServiceProvider) (testtypes.InterfaceA, error) {
			return &testtypes.StructA{}, nil
		})
		p := c.BuildProvider()

		scope, err := p.CreateScope()
		require.NoError(t, err)
		ctx := dicontext.WithScope(context.Background(), scope)

		got, err := dicontext.Resolve[testtypes.InterfaceA](ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)

		again, err := dicontext.Resolve[testtypes.InterfaceA](ctx)
		require.NoError(t, err)
		assert.Same(t, got, again)
	})

	t.Run("no scope on context", func(t *testing.T) {
		got, err := dicontext.Resolve[testtypes.InterfaceA](context.Background())
		testutils.LogError(t, err)

		assert.Nil(t, got)
		assert.EqualError(t, err, "resolve testtypes.InterfaceA from context: scope not found on context")
	})
}

func Test_MustResolve(t *testing.T) {
	t.Run("panics without scope", func(t *testing.T) {
		assert.Panics(t, func() {
			dicontext.MustResolve[testtypes.InterfaceA](context.Background())
		})
	})

	t.Run("returns service", func(t *testing.T) {
		c := di.NewCollection()
		di.AddSingleton(c, func(di.ServiceProvider) (testtypes.InterfaceA, error) {
			return &testtypes.StructA{}, nil
		})
		p := c.BuildProvider()

		ctx := dicontext.WithScope(context.Background(), p.Root())
		got := dicontext.MustResolve[testtypes.InterfaceA](ctx)
		assert.NotNil(t, got)
	})
}
