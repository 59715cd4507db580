package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.str")
	err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "data_test\n")
		return err
	})
	if err != nil {
		t.Fatalf("Expected no error but got %s.", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data_test\n" {
		t.Fatalf("Expected 'data_test' but got '%s'.", got)
	}
}

func TestWriteFileErrors(t *testing.T) {
	failed := errors.New("write failed")
	path := filepath.Join(t.TempDir(), "out.str")
	err := writeFile(path, func(w io.Writer) error { return failed })
	if !errors.Is(err, failed) {
		t.Fatalf("Expected '%s' but got '%v'.", failed, err)
	}

	// The writer's file is closed once writeFile returns.
	var kept *os.File
	err = writeFile(path, func(w io.Writer) error {
		kept = w.(*os.File)
		return nil
	})
	if err != nil {
		t.Fatalf("Expected no error but got %s.", err)
	}
	if err := kept.Close(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("Expected a closed file but got %v.", err)
	}

	missing := filepath.Join(t.TempDir(), "missing", "out.str")
	if err := writeFile(missing, nil); err == nil {
		t.Fatalf("Expected an error for '%s' but got none.", missing)
	}
}
