package cache

import (
	"context"
	"testing"
	"time"

	"github.com/marlondridley/FarME/internal/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get returns the value", func(t *testing.T) {
		c := NewMemoryCache()
		point := domain.GeoPoint{Latitude: 34.05, Longitude: -118.24}

		if err := c.Set(ctx, "geocode:92501", point, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := c.Get(ctx, "geocode:92501")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.(domain.GeoPoint) != point {
			t.Errorf("Get() = %v, want %v", got, point)
		}
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		if _, err := c.Get(ctx, "nope"); err != domain.ErrCacheMiss {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", "v", -time.Second)

		if _, err := c.Get(ctx, "k"); err != domain.ErrCacheMiss {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
		if ok, _ := c.Exists(ctx, "k"); ok {
			t.Error("Exists() = true for expired key")
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", "v", time.Minute)
		c.Delete(ctx, "k")

		if ok, _ := c.Exists(ctx, "k"); ok {
			t.Error("Exists() = true after Delete")
		}
		if c.Size() != 0 {
			t.Errorf("Size() = %d, want 0", c.Size())
		}
	})
}
