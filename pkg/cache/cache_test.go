package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "trsplat"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("unexpected hit")
	}
	if err := c.Set(ctx, "a", []byte("plat"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "plat" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry was served")
	}

	bad := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(bad), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "bad"); hit {
		t.Error("corrupt entry was served")
	}

	if err := c.Set(ctx, "b", []byte("plat"), 0); err != nil {
		t.Fatal(err)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d entries, want 2", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	if HashParts([]byte("ab"), []byte("c")) == HashParts([]byte("a"), []byte("bc")) {
		t.Error("HashParts should depend on part boundaries")
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	png := k.ArtifactKey("h", ArtifactKeyOpts{Mode: "single", Format: "png"})
	pdf := k.ArtifactKey("h", ArtifactKeyOpts{Mode: "single", Format: "pdf"})
	if png == pdf {
		t.Error("different formats should produce different keys")
	}
	if !strings.HasPrefix(png, "artifact:") {
		t.Errorf("key = %s", png)
	}

	scoped := NewScopedKeyer(nil, "v1.2.0:")
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{Mode: "single", Format: "png"}); got != "v1.2.0:"+png {
		t.Errorf("scoped key = %s", got)
	}
}
