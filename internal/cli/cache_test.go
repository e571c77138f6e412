package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/isomers/internal/config"
	"github.com/matzehuels/isomers/pkg/cache"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Dir = t.TempDir()
	return c
}

func TestNewCacheFile(t *testing.T) {
	c := newTestCLI(t)

	store, keyer, err := c.newCache(context.Background(), false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer store.Close()

	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *cache.FileCache", store)
	}
	if fc.Dir() != c.Config.Cache.Dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), c.Config.Cache.Dir)
	}
	if keyer != nil {
		t.Errorf("file cache should use the default keyer, got %T", keyer)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := newTestCLI(t)

	store, _, err := c.newCache(context.Background(), true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", store)
	}

	c.Config.Cache.Backend = config.BackendNone
	store, _, _ = c.newCache(context.Background(), false)
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("backend none should give a NullCache, got %T", store)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c := newTestCLI(t)
	ctx := context.Background()

	store, _, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"count:v1:trees:10:4", "count:v1:trees:11:4"} {
		if err := store.Set(ctx, key, []byte(`"1"`), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	cmd := c.cacheClearCommand()
	cmd.SetContext(ctx)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	var files int
	_ = filepath.Walk(c.Config.Cache.Dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d cache files left after clear", files)
	}
}

func TestCachePathCommand(t *testing.T) {
	c := newTestCLI(t)

	var out bytes.Buffer
	cmd := c.cachePathCommand()
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != c.Config.Cache.Dir {
		t.Errorf("cache path = %q, want %q", got, c.Config.Cache.Dir)
	}
}
