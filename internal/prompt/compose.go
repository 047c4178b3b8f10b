// Package prompt builds the expert generation prompt and the suggested
// output filename. Both are pure string functions: no I/O, deterministic
// output for identical input.
package prompt

import (
	"fmt"
	"strings"

	"github.com/iconforge/iconforge/internal/style"
)

// rolePreamble is the fixed role framing that opens every expert prompt.
const rolePreamble = "You are an expert SVG icon designer. Create a high-quality, production-ready SVG icon based on the request below."

// Compose assembles the expert prompt from the user request, the raw text of
// any SVG references (in input order), and an optional style name.
//
// Block order is fixed: role framing, style block, reference block, user
// request, output contract. Empty reference lists and unresolvable style
// names omit their blocks entirely; a typo'd style is a silent fallback, not
// an error. The user request is embedded verbatim; sanitization applies to
// the model's output SVG, never to the prompt.
func Compose(userPrompt string, svgReferences []string, styleName string) string {
	var b strings.Builder

	b.WriteString(rolePreamble)
	b.WriteString("\n\n")

	styled := false
	if styleName != "" {
		if cfg, ok := style.Get(styleName); ok {
			styled = true
			writeStyleBlock(&b, cfg)
		}
	}

	if len(svgReferences) > 0 {
		b.WriteString("Reference SVG icons:\n")
		for i, ref := range svgReferences {
			fmt.Fprintf(&b, "Reference %d:\n%s\n", i+1, ref)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User request: %s\n\n", userPrompt)

	b.WriteString("Respond with exactly two labeled fields:\n")
	b.WriteString("FILENAME: <kebab-case-name>\n")
	b.WriteString("SVG: <full SVG markup>\n\n")
	b.WriteString("Requirements:\n")
	b.WriteString("- The SVG must declare xmlns=\"http://www.w3.org/2000/svg\"\n")
	b.WriteString("- The SVG must include a viewBox attribute\n")
	b.WriteString("- No <script> elements or event handler attributes\n")
	b.WriteString("- The filename must be kebab-case, without extension\n")
	if styled {
		b.WriteString("- CRITICALLY IMPORTANT: follow the exact style shown in the STYLE section above, matching its shapes, fills, and level of detail\n")
	}

	return b.String()
}

func writeStyleBlock(b *strings.Builder, cfg style.Config) {
	fmt.Fprintf(b, "STYLE: %s\n%s\n\n", cfg.Name, cfg.Description)
	for i, ex := range cfg.Examples {
		fmt.Fprintf(b, "Example %d: Prompt %q\nDescription: %s\nSVG: %s\n", i+1, ex.Prompt, ex.Description, strings.TrimSpace(ex.SVG))
	}
	b.WriteString("Follow the same approach for the request below.\n\n")
}
