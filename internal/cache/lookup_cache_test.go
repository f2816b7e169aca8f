package cache_test

import (
	"testing"
	"time"

	"github.com/mentorportal/mentor-portal-api/internal/cache"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func TestLookupCache_SetGet(t *testing.T) {
	lc := cache.NewLookupCache(300)

	lc.Set("students", "Jane Smith", []string{"a", "b"})

	value, found := lc.Get("students", "Jane Smith")
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, value)

	// Different operation, same argument, is a distinct entry
	_, found = lc.Get("deadlines", "Jane Smith")
	assert.False(t, found)
}

func TestLookupCache_EntriesExpire(t *testing.T) {
	lc := cache.NewLookupCache(1)

	lc.Set("students", "Jane Smith", "cached")

	_, found := lc.Get("students", "Jane Smith")
	require.True(t, found)

	time.Sleep(1100 * time.Millisecond)

	_, found = lc.Get("students", "Jane Smith")
	assert.False(t, found)
}

func TestLookupCache_FlushClearsEverything(t *testing.T) {
	lc := cache.NewLookupCache(300)

	lc.Set("students", "Jane Smith", "a")
	lc.Set("deadlines", "Rohan Patel", "b")
	lc.Set("mentor", "jane@x.org", "c")

	lc.Flush()

	for _, probe := range [][2]string{
		{"students", "Jane Smith"},
		{"deadlines", "Rohan Patel"},
		{"mentor", "jane@x.org"},
	} {
		_, found := lc.Get(probe[0], probe[1])
		assert.False(t, found, "entry %v must be gone after flush", probe)
	}
}
