package kvstore_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/kvstore"
)

type blob struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()
	store := kvstore.New(t.TempDir())

	in := blob{Name: "alpha", Count: 3}
	if err := store.Put("sample", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out blob
	if err := store.Get("sample", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()
	store := kvstore.New(t.TempDir())

	var out blob
	err := store.Get("absent", &out)
	if !errors.Is(err, apperrors.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestPutReplacesExistingBlob(t *testing.T) {
	t.Parallel()
	store := kvstore.New(t.TempDir())

	if err := store.Put("sample", blob{Name: "first"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put("sample", blob{Name: "second", Count: 2}); err != nil {
		t.Fatalf("put again: %v", err)
	}

	var out blob
	if err := store.Get("sample", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Name != "second" || out.Count != 2 {
		t.Fatalf("blob not replaced: %+v", out)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := kvstore.New(dir)

	if err := store.Put("sample", blob{Name: "gone"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete("sample"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sample.json")); !os.IsNotExist(err) {
		t.Fatalf("blob file still present: %v", err)
	}
	if err := store.Delete("sample"); err != nil {
		t.Fatalf("delete absent key: %v", err)
	}
}

func TestGetCorruptBlob(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := kvstore.New(dir)

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	var out blob
	err := store.Get("broken", &out)
	if err == nil || errors.Is(err, apperrors.ErrKeyNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
