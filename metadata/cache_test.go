package metadata

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"zombiezen.com/go/sqlite/sqlitex"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), logger)
	if err != nil {
		t.Fatalf("Unable to open cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheRoundtrip(t *testing.T) {
	c := testCache(t)

	key := CacheKey("test-model", "文章内容")
	want := Meta{Title: "标题", Tags: []string{"读书", "成长"}, Quote: "金句"}
	c.Put(key, "test-model", want)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got.Title != want.Title || got.Quote != want.Quote || len(got.Tags) != 2 {
		t.Errorf("Cache returned %+v, want %+v", got, want)
	}
}

func TestCacheMiss(t *testing.T) {
	c := testCache(t)
	if _, ok := c.Get(CacheKey("test-model", "从未见过的内容")); ok {
		t.Fatal("Expected cache miss for unknown key")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := testCache(t)

	key := CacheKey("test-model", "文章内容")
	c.Put(key, "test-model", Meta{Title: "旧标题"})
	c.Put(key, "test-model", Meta{Title: "新标题"})

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got.Title != "新标题" {
		t.Errorf("Expected latest entry to win, got %q", got.Title)
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	c := testCache(t)

	key := CacheKey("test-model", "文章内容")
	c.Put(key, "test-model", Meta{Title: "标题"})

	err := sqlitex.Execute(c.conn, `UPDATE extractions SET meta = 'not json' WHERE key = ?`,
		&sqlitex.ExecOptions{Args: []any{key}})
	if err != nil {
		t.Fatalf("Unable to corrupt entry: %v", err)
	}

	if _, ok := c.Get(key); ok {
		t.Fatal("Expected corrupt entry to read as a miss")
	}
}

func TestCacheNil(t *testing.T) {
	var c *Cache
	if _, ok := c.Get("whatever"); ok {
		t.Fatal("Expected nil cache to always miss")
	}
	c.Put("whatever", "m", Meta{Title: "标题"}) // must not panic
	if err := c.Close(); err != nil {
		t.Fatalf("Expected nil cache Close to succeed, got %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("model-a", "相同内容")
	b := CacheKey("model-b", "相同内容")
	if a == b {
		t.Error("Expected different models to produce different keys")
	}
	if a != CacheKey("model-a", "相同内容") {
		t.Error("Expected key derivation to be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("Expected hex sha256 key, got %d characters", len(a))
	}
}

func TestCachePersists(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := OpenCache(path, logger)
	if err != nil {
		t.Fatalf("Unable to open cache: %v", err)
	}
	key := CacheKey("test-model", "文章内容")
	c.Put(key, "test-model", Meta{Title: "标题"})
	if err := c.Close(); err != nil {
		t.Fatalf("Unable to close cache: %v", err)
	}

	c, err = OpenCache(path, logger)
	if err != nil {
		t.Fatalf("Unable to reopen cache: %v", err)
	}
	defer c.Close()

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected entry to survive reopen")
	}
	if got.Title != "标题" {
		t.Errorf("Expected stored title, got %q", got.Title)
	}
}
