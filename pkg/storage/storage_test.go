package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), "http://localhost:8080/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestUploadAndReadBack(t *testing.T) {
	store := newTestStore(t)

	if err := store.Upload("brand-logos", "b1.png", strings.NewReader("png-bytes"), false); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "brand-logos", "b1.png"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected object contents: %q", data)
	}
}

func TestUploadWithoutOverwriteConflicts(t *testing.T) {
	store := newTestStore(t)

	if err := store.Upload("brand-logos", "b1.png", strings.NewReader("v1"), false); err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if err := store.Upload("brand-logos", "b1.png", strings.NewReader("v2"), false); !errors.Is(err, ErrObjectExists) {
		t.Errorf("expected ErrObjectExists, got %v", err)
	}
}

func TestUploadWithOverwriteReplaces(t *testing.T) {
	store := newTestStore(t)

	if err := store.Upload("brand-pdfs", "b1.pdf", strings.NewReader("v1"), false); err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if err := store.Upload("brand-pdfs", "b1.pdf", strings.NewReader("v2"), true); err != nil {
		t.Fatalf("overwrite Upload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "brand-pdfs", "b1.pdf"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("expected replaced contents, got %q", data)
	}
}

func TestUploadRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	err := store.Upload("brand-logos", "../../etc/passwd", strings.NewReader("x"), true)
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestUploadRejectsEmptyPath(t *testing.T) {
	store := newTestStore(t)

	if err := store.Upload("", "b1.png", strings.NewReader("x"), true); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("empty bucket: expected ErrInvalidPath, got %v", err)
	}
	if err := store.Upload("brand-logos", "", strings.NewReader("x"), true); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("empty path: expected ErrInvalidPath, got %v", err)
	}
}

func TestPublicURLTrimsBaseSlash(t *testing.T) {
	store := newTestStore(t)

	got := store.PublicURL("brand-logos", "/b1.png")
	want := "http://localhost:8080/public/brand-logos/b1.png"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
