package cache

import (
	"testing"
	"time"
)

func TestCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	c := New(time.Second)
	c.now = func() time.Time { return now }

	c.Set("dev-1", "opayUser", "{}")

	if v, ok := c.Get("dev-1", "opayUser"); !ok || v != "{}" {
		t.Fatalf("expected fresh hit, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Second)

	if _, ok := c.Get("dev-1", "opayUser"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_DropNamespace(t *testing.T) {
	c := New(time.Minute)
	c.Set("dev-1", "a", "1")
	c.Set("dev-1", "b", "2")
	c.Set("dev-2", "a", "3")

	c.DropNamespace("dev-1")

	if _, ok := c.Get("dev-1", "a"); ok {
		t.Fatalf("dev-1/a should be gone")
	}
	if _, ok := c.Get("dev-1", "b"); ok {
		t.Fatalf("dev-1/b should be gone")
	}
	if v, ok := c.Get("dev-2", "a"); !ok || v != "3" {
		t.Fatalf("dev-2 must be untouched, got %q %v", v, ok)
	}
}

func TestCache_SetIfUnchangedLosesToRemoval(t *testing.T) {
	c := New(time.Minute)

	token := c.Token()
	c.DropNamespace("dev-1")

	if c.SetIfUnchanged("dev-1", "opayUser", "stale", token) {
		t.Fatalf("fill after a drop must be refused")
	}
	if _, ok := c.Get("dev-1", "opayUser"); ok {
		t.Fatalf("stale value was cached")
	}

	if !c.SetIfUnchanged("dev-1", "opayUser", "fresh", c.Token()) {
		t.Fatalf("fill with a current token should succeed")
	}
}

func TestCache_SweepsExpiredEntriesOnWrite(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	c := New(time.Second)
	c.now = func() time.Time { return now }

	for _, dev := range []string{"dev-1", "dev-2", "dev-3"} {
		c.Set(dev, "opayUser", "{}")
	}

	now = now.Add(2 * time.Second)
	c.Set("dev-4", "opayUser", "{}")

	if got := c.Len(); got != 1 {
		t.Fatalf("expired devices should be swept, %d entries left", got)
	}
}
