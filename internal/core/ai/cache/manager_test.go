package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fridgechef/internal/infrastructure/config"
)

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestSetAndGet(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()
	ctx := context.Background()

	if _, err := m.Get(ctx, "prompt"); err == nil {
		t.Error("empty cache should miss")
	}
	if err := m.Set(ctx, "prompt", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "prompt")
	if err != nil {
		t.Fatalf("Get after Set: %v", err)
	}
	if got != "value" {
		t.Errorf("Get = %q, want value", got)
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	m := NewManager(cacheConfig(10, 10*time.Millisecond))
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "prompt", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := m.Get(ctx, "prompt"); err == nil {
		t.Error("expired entry should miss")
	}
}

func TestLRUEvictionWhenFull(t *testing.T) {
	m := NewManager(cacheConfig(3, time.Minute))
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := m.Set(ctx, fmt.Sprintf("prompt-%d", i), "v"); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	// Touch two entries so prompt-2 becomes the eviction candidate.
	m.Get(ctx, "prompt-0")
	m.Get(ctx, "prompt-1")

	if err := m.Set(ctx, "prompt-3", "v"); err != nil {
		t.Fatalf("Set over capacity: %v", err)
	}
	if _, err := m.Get(ctx, "prompt-2"); err == nil {
		t.Error("least-used entry should have been evicted")
	}
	if _, err := m.Get(ctx, "prompt-3"); err != nil {
		t.Error("new entry missing after eviction")
	}
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager
	ctx := context.Background()

	if err := m.Set(ctx, "p", "v"); err != nil {
		t.Errorf("nil Set = %v, want nil", err)
	}
	if _, err := m.Get(ctx, "p"); err == nil {
		t.Error("nil Get should miss")
	}
	if err := m.Close(); err != nil {
		t.Errorf("nil Close = %v", err)
	}
}

func TestDisabledConfigReturnsNil(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	if m := NewManager(cfg); m != nil {
		t.Error("disabled cache should return nil manager")
	}
}
