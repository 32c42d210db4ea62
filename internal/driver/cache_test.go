package driver

import (
	"path/filepath"
	"testing"

	"strcheck/internal/diag"
	"strcheck/internal/project"
	"strcheck/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := project.StringDigest("key")

	var out FilePayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache hit: %v %v", ok, err)
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("class A {}\n"))
	other := fs.AddVirtual("b.cs", []byte("class B {}\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.StrExplicitConversion, source.Span{File: id, Start: 6, End: 7}, "msg").
		WithNote(source.Span{File: other, Start: 6, End: 7}, "see B"))

	if err := cache.Put(key, toPayload(fs, fs.Get(id), bag)); err != nil {
		t.Fatal(err)
	}
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get after Put: %v %v", ok, err)
	}
	if out.Path != "a.cs" || out.Hash != fs.Get(id).Hash || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected payload: %+v", out)
	}

	restored := diag.NewBag(0)
	restorePayload(fs, fs.Get(id), &out, restored)
	got := restored.Items()
	if len(got) != 1 {
		t.Fatalf("restored %d diagnostics", len(got))
	}
	d := got[0]
	if d.Code != diag.StrExplicitConversion || d.Severity != diag.SevWarning || d.Primary.File != id || d.Primary.Start != 6 {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.File != other {
		t.Errorf("note not restored: %+v", d.Notes)
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(project.Digest{}, &FilePayload{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	if ok, err := cache.Get(project.Digest{}, &FilePayload{}); ok || err != nil {
		t.Errorf("nil Get: %v %v", ok, err)
	}
	if cache.Dir() != "" || cache.DropAll() != nil {
		t.Errorf("nil cache misbehaves")
	}
}

func TestDefaultCacheDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultCacheDir("strcheck")
	if err != nil || dir != filepath.Join("/tmp/xdg", "strcheck") {
		t.Errorf("DefaultCacheDir = %q, %v", dir, err)
	}
}
