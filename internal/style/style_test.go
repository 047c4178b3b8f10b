package style

import (
	"sort"
	"strings"
	"testing"
)

func TestGet_KnownStyle(t *testing.T) {
	cfg, ok := Get("black-white-flat")
	if !ok {
		t.Fatal("expected black-white-flat to exist")
	}
	if cfg.Name != "Black & White Flat" {
		t.Errorf("Name = %q, want %q", cfg.Name, "Black & White Flat")
	}
	if len(cfg.Examples) < 2 {
		t.Fatalf("expected at least 2 exemplars, got %d", len(cfg.Examples))
	}
	for i, ex := range cfg.Examples {
		if ex.Prompt == "" || ex.Description == "" {
			t.Errorf("exemplar %d has empty prompt or description", i)
		}
		if !strings.Contains(ex.SVG, "<svg") {
			t.Errorf("exemplar %d SVG does not contain <svg: %q", i, ex.SVG)
		}
		if !strings.Contains(ex.SVG, "viewBox") {
			t.Errorf("exemplar %d SVG missing viewBox", i)
		}
	}
}

func TestGet_UnknownStyle(t *testing.T) {
	if _, ok := Get("nonexistent-style"); ok {
		t.Error("expected absence for unknown style")
	}
	if _, ok := Get(""); ok {
		t.Error("expected absence for empty style name")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("catalog is empty")
	}
	found := false
	for _, n := range names {
		if n == "black-white-flat" {
			found = true
		}
	}
	if !found {
		t.Error("Names() missing black-white-flat")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() = %v, want sorted output", names)
	}
}
