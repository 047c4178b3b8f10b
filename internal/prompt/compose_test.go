package prompt

import (
	"strings"
	"testing"
)

func TestCompose_Deterministic(t *testing.T) {
	refs := []string{"<circle cx=\"12\" cy=\"12\" r=\"10\"/>"}
	first := Compose("a star icon", refs, "black-white-flat")
	for i := 0; i < 5; i++ {
		if got := Compose("a star icon", refs, "black-white-flat"); got != first {
			t.Fatal("Compose is not deterministic across repeated calls")
		}
	}
}

func TestCompose_BlockOrder(t *testing.T) {
	out := Compose("a star icon", []string{"<a/>", "<b/>"}, "black-white-flat")

	markers := []string{
		"You are an expert SVG icon designer",
		"STYLE: Black & White Flat",
		"Example 1:",
		"Reference SVG icons:",
		"Reference 1:",
		"Reference 2:",
		"User request: a star icon",
		"Respond with exactly two labeled fields:",
		"FILENAME: <kebab-case-name>",
		"SVG: <full SVG markup>",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		if idx < 0 {
			t.Fatalf("missing marker %q in output:\n%s", m, out)
		}
		if idx < last {
			t.Errorf("marker %q appears out of order", m)
		}
		last = idx
	}
}

func TestCompose_ReferenceOrdering(t *testing.T) {
	out := Compose("x", []string{"<a/>", "<b/>"}, "")
	r1 := strings.Index(out, "Reference 1:")
	r2 := strings.Index(out, "Reference 2:")
	if r1 < 0 || r2 < 0 || r1 > r2 {
		t.Errorf("reference labels out of order: %d, %d", r1, r2)
	}
	if a, b := strings.Index(out, "<a/>"), strings.Index(out, "<b/>"); a < 0 || b < 0 || a > b {
		t.Errorf("reference contents out of order: %d, %d", a, b)
	}
}

func TestCompose_NoReferencesOmitsBlock(t *testing.T) {
	out := Compose("x", nil, "")
	if strings.Contains(out, "Reference SVG icons:") {
		t.Error("empty reference list must omit the reference block")
	}
}

func TestCompose_UnknownStyleFallsBackSilently(t *testing.T) {
	withBogus := Compose("x", nil, "nonexistent-style")
	without := Compose("x", nil, "")
	if withBogus != without {
		t.Error("unresolvable style must produce output identical to no style")
	}
	if strings.Contains(withBogus, "STYLE:") {
		t.Error("unresolvable style must not emit a STYLE block")
	}
}

func TestCompose_StyleAddsEmphasis(t *testing.T) {
	styled := Compose("a database icon", nil, "black-white-flat")
	if !strings.Contains(styled, "CRITICALLY IMPORTANT: follow the exact style") {
		t.Error("styled prompt missing emphatic style requirement")
	}
	plain := Compose("a database icon", nil, "")
	if strings.Contains(plain, "CRITICALLY IMPORTANT") {
		t.Error("unstyled prompt must not carry the style emphasis")
	}
}

func TestCompose_UserRequestVerbatim(t *testing.T) {
	raw := "an icon with \"quotes\" & <angles>"
	out := Compose(raw, nil, "")
	if !strings.Contains(out, "User request: "+raw) {
		t.Error("user request must appear verbatim, not escaped")
	}
}

func TestSuggestFilename(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"please generate a minimalist dog silhouette icon with black and white flat design elements", "dog-silhouette"},
		{"user profile", "user-profile"},
		{"create a the and", "generated-icon"},
		{"Create a simple star icon", "star"},
		{"", "generated-icon"},
		{"Database-Backup!! (urgent)", "databasebackup-urgent"},
		{"шестерёнка settings", "шестерёнка-settings"},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			if got := SuggestFilename(tt.prompt); got != tt.want {
				t.Errorf("SuggestFilename(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestSuggestFilename_Stable(t *testing.T) {
	p := "a shopping cart icon"
	first := SuggestFilename(p)
	for i := 0; i < 3; i++ {
		if SuggestFilename(p) != first {
			t.Fatal("SuggestFilename is not stable")
		}
	}
}
