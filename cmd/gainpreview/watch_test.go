package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justyntemme/simplegain/pkg/framework/debug"
)

func TestWatchBundleReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.js")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loaded := make(chan string, 4)
	first, err := watchBundle(ctx, path, debug.Discard(), func(s string) { loaded <- s })
	if err != nil {
		t.Fatalf("watchBundle: %v", err)
	}
	if first != "v1" {
		t.Errorf("initial script = %q, want v1", first)
	}

	// Unrelated files in the directory are ignored.
	os.WriteFile(filepath.Join(dir, "other.js"), []byte("x"), 0o644)
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-loaded:
			if s == "v2" {
				return
			}
		case <-deadline:
			t.Fatal("bundle change not picked up")
		}
	}
}

func TestWatchBundleMissingFile(t *testing.T) {
	_, err := watchBundle(context.Background(), filepath.Join(t.TempDir(), "nope.js"), debug.Discard(), func(string) {})
	if err == nil {
		t.Error("expected an error for a missing bundle")
	}
}
