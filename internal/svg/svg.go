// Package svg handles the model-output side of the generation contract:
// extracting the FILENAME:/SVG: fields from a raw response and stripping
// known-dangerous constructs from the markup before it is persisted.
//
// Sanitization is deliberately narrow. The system does not guarantee the
// model's output is well-formed SVG; it only removes script execution
// vectors (CWE-79 style payloads) from whatever the model produced.
package svg

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoSVG is returned when a response carries no SVG block.
var ErrNoSVG = errors.New("invalid response format: SVG content not found")

// Response is the parsed form of a model reply.
type Response struct {
	// Filename is the model's suggested name, without extension. Empty when
	// the response omitted the FILENAME field; callers fall back to their
	// own suggestion.
	Filename string

	// Markup is the raw SVG text, unsanitized.
	Markup string
}

var (
	filenameRe = regexp.MustCompile(`(?m)^\s*FILENAME:\s*(.+)$`)
	svgLabelRe = regexp.MustCompile(`(?m)^\s*SVG:\s*`)
	fenceRe    = regexp.MustCompile("(?s)```(?:svg|xml)?\\s*(.*?)```")

	scriptRe  = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	handlerRe = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsHrefRe  = regexp.MustCompile(`(?i)(href|xlink:href)\s*=\s*(["']?)\s*javascript:[^"'\s>]*`)
)

// ParseResponse extracts the labeled FILENAME and SVG fields from raw model
// output. Markdown code fences around the SVG are tolerated and removed.
// A missing SVG block is a parse failure; a missing FILENAME is not.
func ParseResponse(raw string) (Response, error) {
	var resp Response

	if m := filenameRe.FindStringSubmatch(raw); m != nil {
		resp.Filename = strings.TrimSpace(m[1])
	}

	loc := svgLabelRe.FindStringIndex(raw)
	if loc == nil {
		return Response{}, ErrNoSVG
	}
	markup := raw[loc[1]:]

	if m := fenceRe.FindStringSubmatch(markup); m != nil {
		markup = m[1]
	}
	markup = strings.TrimSpace(markup)

	if !strings.Contains(markup, "<svg") {
		return Response{}, ErrNoSVG
	}
	return Response{Filename: resp.Filename, Markup: markup}, nil
}

// Sanitize strips script elements, inline event handlers and javascript:
// URLs from the markup. Everything else passes through unchanged.
func Sanitize(markup string) string {
	out := scriptRe.ReplaceAllString(markup, "")
	out = handlerRe.ReplaceAllString(out, "")
	out = jsHrefRe.ReplaceAllString(out, `$1=$2`)
	return out
}
