package trace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iconforge/iconforge/internal/log"
)

func TestNewCommandTracer_RequiresCommand(t *testing.T) {
	if _, err := NewCommandTracer("", log.NewNop()); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestCommandTracer_MissingInput(t *testing.T) {
	tr, err := NewCommandTracer("vtracer", log.NewNop())
	if err != nil {
		t.Fatalf("NewCommandTracer() error: %v", err)
	}
	if _, err := tr.Trace(context.Background(), "/nonexistent.png"); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestCommandTracer_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "in.png")
	if err := os.WriteFile(png, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	tr, err := NewCommandTracer("iconforge-no-such-tracer", log.NewNop())
	if err != nil {
		t.Fatalf("NewCommandTracer() error: %v", err)
	}
	if _, err := tr.Trace(context.Background(), png); err == nil {
		t.Error("expected error for missing tracer binary")
	}
}
