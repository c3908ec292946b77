package cache

import (
	"testing"
	"time"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := ResponseKey("bukhari-1")
	if err := c.Set(key, []byte(`{"ok":true}`), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found {
		t.Fatal("expected cache hit")
	}
	if string(val) != `{"ok":true}` {
		t.Errorf("unexpected value: %s", val)
	}
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := ResponseKey("muslim-2")
	if err := c.Set(key, []byte("x"), -time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, found := c.Get(key); found {
		t.Error("expired entry must miss")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Hour)

	key := ResponseKey("tirmidhi-3")
	if err := disk.Set(key, []byte("v"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Hour, dir, time.Hour)
	if _, found := layered.Get(key); !found {
		t.Fatal("expected disk hit through layered cache")
	}

	// Now present in memory too
	mem := layered.memory
	if _, found := mem.Get(key); !found {
		t.Error("expected promotion to memory")
	}
}

func TestResponseKey_Stable(t *testing.T) {
	if ResponseKey("a") != ResponseKey("a") {
		t.Error("key must be deterministic")
	}
	if ResponseKey("a") == ResponseKey("b") {
		t.Error("distinct records must not collide")
	}
}
