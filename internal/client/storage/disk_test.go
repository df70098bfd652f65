package storageclient

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskAdapterPut(t *testing.T) {
	root := t.TempDir()
	a, err := NewDiskAdapter(root, "http://localhost:8080/")
	if err != nil {
		t.Fatalf("NewDiskAdapter: %v", err)
	}

	url, err := a.Put(context.Background(), "widget_profiles/abc.png", "image/png", []byte("png"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "http://localhost:8080/uploads/widget_profiles/abc.png" {
		t.Fatalf("unexpected url %q", url)
	}

	got, err := os.ReadFile(filepath.Join(root, "widget_profiles", "abc.png"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, []byte("png")) {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestDiskAdapterStaysInRoot(t *testing.T) {
	root := t.TempDir()
	a, _ := NewDiskAdapter(filepath.Join(root, "uploads"), "http://x")

	if _, err := a.Put(context.Background(), "../escape.png", "image/png", []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.png")); err == nil {
		t.Fatal("file escaped the upload root")
	}
	if _, err := os.Stat(filepath.Join(root, "uploads", "escape.png")); err != nil {
		t.Fatalf("expected file inside root: %v", err)
	}
}

func TestDiskAdapterRefusesOverwrite(t *testing.T) {
	a, _ := NewDiskAdapter(t.TempDir(), "http://x")
	ctx := context.Background()

	if _, err := a.Put(ctx, "a.png", "image/png", []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := a.Put(ctx, "a.png", "image/png", []byte("2")); err == nil {
		t.Fatal("expected error on overwrite")
	}
}

func TestBucketAdapterURL(t *testing.T) {
	a := &BucketAdapter{name: "acme-widgets"}
	want := "https://storage.googleapis.com/acme-widgets/widget_profiles/abc.webp"
	if got := a.URL("widget_profiles/abc.webp"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
