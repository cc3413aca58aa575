package params

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/deploykit/internal/testutil"
)

func TestCacheReturnsCamelCase(t *testing.T) {
	reg := testutil.ContainerRegistry()
	cache := NewCache(NewBuilder(reg))
	container, _ := reg.Lookup("Container")

	set, err := cache.Get(container)
	require.NoError(t, err)

	assert.True(t, set.Contains(NewSpec(PathOf("properties", "typeName"), []string{"str"}, true, false)))
	assert.False(t, set.HasPath(PathOf("properties", "type_name")))
}

func TestCacheMemoizes(t *testing.T) {
	reg := testutil.ContainerRegistry()
	cache := NewCache(NewBuilder(reg))
	container, _ := reg.Lookup("Container")

	first, err := cache.Get(container)
	require.NoError(t, err)
	first.Discard(NewSpec(PathOf("space"), []string{"str"}, true, false))

	second, err := cache.Get(container)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Len())
	assert.True(t, second.HasPath(PathOf("space")), "callers get independent copies")
}

func TestCacheRemembersErrors(t *testing.T) {
	reg := testutil.DeferredRegistry()
	cache := NewCache(NewBuilder(reg))
	odd, _ := reg.Lookup("Odd")

	_, err := cache.Get(odd)
	require.Error(t, err)
	_, err = cache.Get(odd)
	require.Error(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheConcurrentGet(t *testing.T) {
	reg := testutil.DeferredRegistry()
	cache := NewCache(NewBuilder(reg))
	report, _ := reg.Lookup("Report")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := cache.Get(report)
			assert.NoError(t, err)
			assert.Equal(t, 13, set.Len())
		}()
	}
	wg.Wait()
}
