package providers

import (
	"skinwatch/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledOrZeroSizeIsNoop(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		size    int
	}{
		{"disabled", false, 10},
		{"zero size", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCacheProvider(cacheConfig(tt.enabled, tt.size, time.Minute), &cacheTestLogger{})
			assert.IsType(t, &noopCache{}, c)

			c.Set("owner-email:u1", "a@example.com")
			_, ok := c.Get("owner-email:u1")
			assert.False(t, ok)
		})
	}
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{})

	c.Set("owner-email:u1", "a@example.com")
	val, ok := c.Get("owner-email:u1")
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", val)

	c.Del("owner-email:u1")
	_, ok = c.Get("owner-email:u1")
	assert.False(t, ok)
}

func TestCacheProvider_EmptyValueNotStored(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{})

	c.Set("owner-email:u1", "")
	_, ok := c.Get("owner-email:u1")
	assert.False(t, ok)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{})

	c.Set("owner-email:u1", "old@example.com")
	c.Set("owner-email:u1", "new@example.com")

	val, _ := c.Get("owner-email:u1")
	assert.Equal(t, "new@example.com", val)
}

func TestCacheProvider_ZeroTTLClampsToOneSecond(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})
	assert.Equal(t, 1, c.(*CacheProvider).ttl)
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})

	c.Set("owner-email:u1", "a@example.com")
	_, ok := c.Get("owner-email:u1")
	assert.True(t, ok)

	time.Sleep(2100 * time.Millisecond)

	_, ok = c.Get("owner-email:u1")
	assert.False(t, ok)
}
