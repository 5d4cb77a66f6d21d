package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before set.
	if _, hit, _ := c.Get(ctx, "chart"); hit {
		t.Error("fresh cache should miss")
	}

	if err := c.Set(ctx, "chart", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "chart")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q, want payload", data)
	}

	if err := c.Delete(ctx, "chart"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "chart"); hit {
		t.Error("deleted key should miss")
	}
	// Deleting again is fine.
	if err := c.Delete(ctx, "chart"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestClearDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	for _, key := range []string{"result:a", "result:b", "render:a:svg"} {
		if err := c.Set(ctx, key, []byte("payload"), 0); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	// Unrelated files outside the shard layout must survive.
	keep := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keep, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	count, size, err := ClearDir(dir)
	if err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	if count != 3 {
		t.Errorf("cleared = %d, want 3", count)
	}
	if size <= 0 {
		t.Errorf("size = %d, want positive", size)
	}
	if _, hit, _ := c.Get(ctx, "result:a"); hit {
		t.Error("entry should be gone after clear")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}

	// Clearing again, and clearing a missing directory, both report empty.
	if count, _, err := ClearDir(dir); err != nil || count != 0 {
		t.Errorf("second clear = (%d, %v), want (0, nil)", count, err)
	}
	if count, _, err := ClearDir(filepath.Join(dir, "missing")); err != nil || count != 0 {
		t.Errorf("missing dir clear = (%d, %v), want (0, nil)", count, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()

	if err := c.Set(ctx, "ephemeral", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "ephemeral"); hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	type opts struct {
		A int
		B string
	}
	if HashJSON(opts{1, "x"}) != HashJSON(opts{1, "x"}) {
		t.Error("equal values should share a hash")
	}
	if HashJSON(opts{1, "x"}) == HashJSON(opts{2, "x"}) {
		t.Error("different values should not share a hash")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	rk1 := k.ResultKey("ds1", ResultKeyOpts{ConfigHash: "c1"})
	rk2 := k.ResultKey("ds1", ResultKeyOpts{ConfigHash: "c2"})
	if rk1 == rk2 {
		t.Error("Different ResultKeyOpts should produce different keys")
	}
	if rk1 != k.ResultKey("ds1", ResultKeyOpts{ConfigHash: "c1"}) {
		t.Error("ResultKey should be deterministic")
	}

	ak1 := k.RenderKey("hash123", RenderKeyOpts{Format: "svg", Width: 800})
	ak2 := k.RenderKey("hash123", RenderKeyOpts{Format: "png", Width: 800})
	if ak1 == ak2 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "user:123:")

	key := scoped.ResultKey("ds1", ResultKeyOpts{})
	if len(key) < 9 || key[:9] != "user:123:" {
		t.Errorf("ScopedKeyer ResultKey should be prefixed: %s", key)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.ResultKey("ds1", ResultKeyOpts{}) != "p:"+NewDefaultKeyer().ResultKey("ds1", ResultKeyOpts{}) {
		t.Error("nil inner should behave like the default keyer")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	base := errors.New("connection reset")
	wrapped := Retryable(base)
	if !IsRetryable(wrapped) {
		t.Error("wrapped error should be retryable")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the base error")
	}
	if IsRetryable(base) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Non-retryable errors fail immediately.
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("fatal")
	})
	if err == nil || calls != 1 {
		t.Errorf("non-retryable: calls=%d err=%v", calls, err)
	}

	// Success on a later attempt.
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: calls=%d err=%v", calls, err)
	}
}
