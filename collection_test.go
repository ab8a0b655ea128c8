package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	di "github.com/sectrean/provider-kit"
	"github.com/sectrean/provider-kit/internal/testtypes"
	"github.com/sectrean/provider-kit/internal/testutils"
)

func newA(di.ServiceProvider) (testtypes.InterfaceA, error) {
	return &testtypes.StructA{}, nil
}

func newB(di.ServiceProvider) (testtypes.InterfaceB, error) {
	return &testtypes.StructB{}, nil
}

func Test_Collection_Add(t *testing.T) {
	c := di.NewCollection()
	assert.Equal(t, 0, c.Len())

	di.AddSingleton(c, newA)
	di.AddSingleton(c, newA)
	assert.Equal(t, 2, c.Len())

	c.Add(nil)
	assert.Equal(t, 2, c.Len())
}

func Test_Collection_TryAdd(t *testing.T) {
	t.Run("same requested type", func(t *testing.T) {
		c := di.NewCollection()
		c.TryAdd(di.Describe[testtypes.InterfaceA, *testtypes.StructA](di.Singleton,
			func(di.ServiceProvider) (*testtypes.StructA, error) { return &testtypes.StructA{}, nil },
		))
		assert.Equal(t, 1, c.Len())

		// Second TryAdd with the same requested type is a no-op.
		c.TryAdd(di.Describe[testtypes.InterfaceA, testtypes.InterfaceA](di.Scoped, newA))
		assert.Equal(t, 1, c.Len())

		assert.Equal(t, di.Singleton, c.Descriptors()[0].Lifetime())
	})

	t.Run("different requested type", func(t *testing.T) {
		c := di.NewCollection()
		c.TryAdd(di.Describe[testtypes.InterfaceA, testtypes.InterfaceA](di.Singleton, newA))
		c.TryAdd(di.Describe[testtypes.InterfaceB, testtypes.InterfaceB](di.Singleton, newB))
		assert.Equal(t, 2, c.Len())
	})
}

func Test_Collection_TryAddEnumerable(t *testing.T) {
	c := di.NewCollection()

	c.TryAddEnumerable(di.Describe[testtypes.InterfaceA, *testtypes.StructA](di.Transient,
		func(di.ServiceProvider) (*testtypes.StructA, error) { return &testtypes.StructA{}, nil },
	))
	assert.Equal(t, 1, c.Len())

	// Same (requested type, produced type) pair is a no-op.
	c.TryAddEnumerable(di.Describe[testtypes.InterfaceA, *testtypes.StructA](di.Transient,
		func(di.ServiceProvider) (*testtypes.StructA, error) { return &testtypes.StructA{}, nil },
	))
	assert.Equal(t, 1, c.Len())

	// A different produced type under the same requested type is additive.
	c.TryAddEnumerable(di.Describe[testtypes.InterfaceA, testtypes.InterfaceA](di.Transient, newA))
	assert.Equal(t, 2, c.Len())
}

func Test_Collection_Decorate(t *testing.T) {
	t.Run("replaces matching descriptors", func(t *testing.T) {
		c := di.NewCollection()
		di.AddScoped(c, newA)

		prebuilt := &testtypes.StructA{Tag: "decorated"}
		err := c.Decorate(testtypes.TypeInterfaceA, func(*di.ServiceDescriptor) *di.ServiceDescriptor {
			return di.DescribeValue[testtypes.InterfaceA](prebuilt)
		})
		require.NoError(t, err)

		p := c.BuildProvider()
		got, err := di.Resolve[testtypes.InterfaceA](p)
		require.NoError(t, err)
		assert.Same(t, prebuilt, got)

		assert.Equal(t, di.Singleton, c.Descriptors()[0].Lifetime())
	})

	t.Run("changing requested type", func(t *testing.T) {
		c := di.NewCollection()
		di.AddScoped(c, newA)
		before := c.Descriptors()

		err := c.Decorate(testtypes.TypeInterfaceA, func(*di.ServiceDescriptor) *di.ServiceDescriptor {
			return di.Describe[testtypes.InterfaceB, testtypes.InterfaceB](di.Scoped, newB)
		})
		testutils.LogError(t, err)

		assert.ErrorIs(t, err, di.ErrDescriptorType)
		assert.Equal(t, before, c.Descriptors())
	})

	t.Run("nil replacement", func(t *testing.T) {
		c := di.NewCollection()
		di.AddScoped(c, newA)
		before := c.Descriptors()

		err := c.Decorate(testtypes.TypeInterfaceA, func(*di.ServiceDescriptor) *di.ServiceDescriptor {
			return nil
		})
		testutils.LogError(t, err)

		assert.ErrorIs(t, err, di.ErrDescriptorType)
		assert.Equal(t, before, c.Descriptors())
	})

	t.Run("no match is a no-op", func(t *testing.T) {
		c := di.NewCollection()
		di.AddScoped(c, newA)

		err := c.Decorate(testtypes.TypeInterfaceB, func(d *di.ServiceDescriptor) *di.ServiceDescriptor {
			t.Fatal("decorate should not be called")
			return d
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})
}

func Test_Collection_Replace(t *testing.T) {
	t.Run("removes first match and appends", func(t *testing.T) {
		c := di.NewCollection()
		di.AddSingleton(c, newA)
		di.AddSingleton(c, newB)

		err := c.Replace(testtypes.TypeInterfaceA,
			di.DescribeValue[testtypes.InterfaceA](&testtypes.StructA{Tag: "replaced"}),
		)
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())

		ds := c.Descriptors()
		assert.Equal(t, testtypes.TypeInterfaceB, ds[0].Type())
		assert.Equal(t, testtypes.TypeInterfaceA, ds[1].Type())
	})

	t.Run("no existing match still appends", func(t *testing.T) {
		c := di.NewCollection()

		err := c.Replace(testtypes.TypeInterfaceA,
			di.DescribeValue[testtypes.InterfaceA](&testtypes.StructA{}),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("mismatched requested type", func(t *testing.T) {
		c := di.NewCollection()
		di.AddSingleton(c, newA)

		err := c.Replace(testtypes.TypeInterfaceB,
			di.DescribeValue[testtypes.InterfaceA](&testtypes.StructA{}),
		)
		testutils.LogError(t, err)

		assert.ErrorIs(t, err, di.ErrDescriptorType)
		assert.Equal(t, 1, c.Len())
	})
}

func Test_Collection_BuildProvider_Snapshot(t *testing.T) {
	c := di.NewCollection()
	di.AddSingleton(c, newA)

	p := c.BuildProvider()

	// Mutating the collection after the build has no effect on the provider.
	di.AddSingleton(c, newB)
	require.NoError(t, c.Replace(testtypes.TypeInterfaceA,
		di.DescribeValue[testtypes.InterfaceA](&testtypes.StructA{Tag: "late"}),
	))

	assert.True(t, di.Contains[testtypes.InterfaceA](p))
	assert.False(t, di.Contains[testtypes.InterfaceB](p))

	got, err := di.Resolve[testtypes.InterfaceA](p)
	require.NoError(t, err)
	assert.Nil(t, got.(*testtypes.StructA).Tag)
}

func Test_Collection_Apply(t *testing.T) {
	mod := di.Module{
		func(c *di.Collection) { di.AddSingleton(c, newA) },
		func(c *di.Collection) { di.AddScoped(c, newB) },
	}

	c := di.NewCollection()
	c.Apply(mod)

	assert.Equal(t, 2, c.Len())
}
