package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := GetInstance()
	key := "test-set-get"
	c.Set(key, "val", 0, nil)
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
	c.Delete(key)
}

func TestGet_Missing(t *testing.T) {
	c := GetInstance()
	_, ok := c.Get("nonexistent-key-xyz")
	if ok {
		t.Error("Get missing key: want false")
	}
}

func TestDelete(t *testing.T) {
	c := GetInstance()
	key := "test-delete"
	c.Set(key, "x", 0, nil)
	c.Delete(key)
	_, ok := c.Get(key)
	if ok {
		t.Error("Delete: key should be gone")
	}
}

func TestSet_TTLExpiry(t *testing.T) {
	c := NewCache()
	key := "test-ttl"
	c.Set(key, "short-lived", 1, nil)
	if _, ok := c.Get(key); !ok {
		t.Fatal("value should exist before expiry")
	}
	time.Sleep(1100 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Error("value should be expired")
	}
}

func TestSetN_GetN(t *testing.T) {
	c := GetInstance()
	c.SetN([]interface{}{"a", "b"}, "composite-val", 0, nil)
	got, ok := c.GetN("a", "b")
	if !ok || got != "composite-val" {
		t.Errorf("GetN = %v, %v; want composite-val, true", got, ok)
	}
	if _, ok := c.GetN("a", "c"); ok {
		t.Error("GetN different composite key should miss")
	}
	c.Delete(makeCompositeKey("a", "b"))
}

func TestTags(t *testing.T) {
	c := NewCache()
	c.Set("t1", 1, 0, []string{"reports"})
	c.Set("t2", 2, 0, []string{"reports", "other"})
	c.Set("t3", 3, 0, nil)

	keys := c.GetKeysByTag("reports")
	if len(keys) != 2 {
		t.Fatalf("GetKeysByTag = %d keys, want 2", len(keys))
	}

	c.DeleteByTag("reports")
	if _, ok := c.Get("t1"); ok {
		t.Error("t1 should be gone after DeleteByTag")
	}
	if _, ok := c.Get("t2"); ok {
		t.Error("t2 should be gone after DeleteByTag")
	}
	if _, ok := c.Get("t3"); !ok {
		t.Error("t3 should survive DeleteByTag")
	}
	if keys := c.GetKeysByTag("reports"); len(keys) != 0 {
		t.Errorf("tag index not cleared: %v", keys)
	}
}
