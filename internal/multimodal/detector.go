// Package multimodal decides whether the calling model can accept image
// input. Detection is heuristic by nature, so it lives behind a small
// interface that alternate mechanisms (explicit capability negotiation,
// config overrides) can replace without touching the orchestrator.
package multimodal

import (
	"os"
	"strings"
)

// Detector reports whether the calling model can consume raster images.
type Detector interface {
	// Available returns true when image input is supported. Implementations
	// fail closed: any internal failure reads as "not available", because a
	// false negative costs the user an actionable error while a false
	// positive silently breaks generation downstream.
	Available() bool

	// Requirement returns human-readable remediation text surfaced verbatim
	// in error payloads when PNG references are rejected.
	Requirement() string
}

// modelEnvVars are environment variables that commonly carry the active
// model's name, checked in order.
var modelEnvVars = []string{
	"ICONFORGE_MODEL",
	"ANTHROPIC_MODEL",
	"CLAUDE_MODEL",
	"OPENAI_MODEL",
	"GEMINI_MODEL",
	"LLM_MODEL",
	"MODEL",
}

// visionFragments are case-insensitive substrings of model names known to
// accept image input.
var visionFragments = []string{
	"claude-3",
	"claude-4",
	"opus",
	"sonnet",
	"haiku",
	"gpt-4o",
	"gpt-4-turbo",
	"gpt-4-vision",
	"gemini",
	"pixtral",
	"llava",
	"vision",
}

// EnvDetector sniffs model names from environment variables and process
// arguments. The zero value is not useful; use NewEnvDetector.
type EnvDetector struct {
	getenv func(string) string
	args   []string

	// Force overrides detection entirely when non-nil (config escape hatch
	// for models the fragment list does not know about).
	force *bool
}

// Option configures an EnvDetector.
type Option func(*EnvDetector)

// WithGetenv replaces the environment lookup, for tests.
func WithGetenv(fn func(string) string) Option {
	return func(d *EnvDetector) { d.getenv = fn }
}

// WithArgs replaces the inspected process arguments, for tests.
func WithArgs(args []string) Option {
	return func(d *EnvDetector) { d.args = args }
}

// WithForce pins the result regardless of environment signals.
func WithForce(available bool) Option {
	return func(d *EnvDetector) { d.force = &available }
}

// NewEnvDetector creates a detector reading the real process environment.
func NewEnvDetector(opts ...Option) *EnvDetector {
	d := &EnvDetector{
		getenv: os.Getenv,
		args:   os.Args,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Available implements Detector.
func (d *EnvDetector) Available() bool {
	if d.force != nil {
		return *d.force
	}
	if d.getenv == nil {
		return false
	}

	var indicators []string
	for _, key := range modelEnvVars {
		if v := d.getenv(key); v != "" {
			indicators = append(indicators, v)
		}
	}
	indicators = append(indicators, d.args...)

	for _, indicator := range indicators {
		lower := strings.ToLower(indicator)
		for _, fragment := range visionFragments {
			if strings.Contains(lower, fragment) {
				return true
			}
		}
	}
	return false
}

// Requirement implements Detector.
func (d *EnvDetector) Requirement() string {
	return strings.Join([]string{
		"PNG reference images require a multimodal (vision-capable) model. Options:",
		"1. Use SVG reference files instead of PNG",
		"2. Generate from the text prompt alone, without reference images",
		"3. Convert the PNG to SVG externally (e.g. with a vector tracer) and pass the SVG",
		"4. Switch to a vision-capable model (e.g. set ICONFORGE_MODEL to one that accepts images)",
	}, "\n")
}
