// Package style provides the icon style catalog.
//
// A style bundles few-shot exemplars (prompt/SVG/description triples) that
// condition generation toward a consistent visual vocabulary. The catalog is
// immutable after process start; adding a style is a data change here, not a
// code change anywhere else.
package style

import (
	_ "embed"
	"sort"
)

// FewShot is one worked prompt/output pair bundled under a style.
type FewShot struct {
	Prompt      string
	Description string
	SVG         string
}

// Config describes a named style and its exemplars.
type Config struct {
	Name        string
	Description string
	Examples    []FewShot
}

//go:embed exemplars/bwf-home.svg
var bwfHomeSVG string

//go:embed exemplars/bwf-search.svg
var bwfSearchSVG string

//go:embed exemplars/bwf-settings.svg
var bwfSettingsSVG string

// catalog maps style keys to their configuration. Keys are the identifiers
// callers pass in requests; Name is the display name rendered into prompts.
var catalog = map[string]Config{
	"black-white-flat": {
		Name:        "Black & White Flat",
		Description: "Minimalist flat icons using only black shapes on a transparent background. No gradients, no strokes thinner than 2 units, generous negative space, 24x24 viewBox.",
		Examples: []FewShot{
			{
				Prompt:      "home icon",
				Description: "A house silhouette built from a single filled path, flat roofline, centered door cutout.",
				SVG:         bwfHomeSVG,
			},
			{
				Prompt:      "search icon",
				Description: "A magnifying glass with a bold circular lens outline and a short diagonal handle.",
				SVG:         bwfSearchSVG,
			},
			{
				Prompt:      "settings icon",
				Description: "A gear with eight square teeth and a circular center cutout, fully filled.",
				SVG:         bwfSettingsSVG,
			},
		},
	},
}

// Get returns the style for name. Absence is not an error: callers treat a
// missing style as "no few-shot conditioning requested".
func Get(name string) (Config, bool) {
	cfg, ok := catalog[name]
	return cfg, ok
}

// Names returns the catalog's style keys in sorted order, for tool
// descriptions and help text.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
