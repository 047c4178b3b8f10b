// Package trace converts raster reference images to outline SVG through an
// external vector-tracing tool. The tool is a black box: the package shells
// out, reads the produced file, and cleans up.
package trace

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/iconforge/iconforge/internal/log"
)

// Tracer converts a PNG file into SVG text.
type Tracer interface {
	Trace(ctx context.Context, pngPath string) (string, error)
}

// CommandTracer wraps an external tracing binary such as vtracer or
// potrace. The binary is expected to accept `--input <png> --output <svg>`.
type CommandTracer struct {
	command string
	logger  log.Logger
}

// NewCommandTracer creates a tracer around the given binary.
func NewCommandTracer(command string, logger log.Logger) (*CommandTracer, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("tracer command is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &CommandTracer{command: command, logger: logger}, nil
}

// Trace implements Tracer.
func (t *CommandTracer) Trace(ctx context.Context, pngPath string) (string, error) {
	if _, err := os.Stat(pngPath); err != nil {
		return "", fmt.Errorf("tracing %s: %w", pngPath, err)
	}

	outDir, err := os.MkdirTemp("", "iconforge-trace-")
	if err != nil {
		return "", fmt.Errorf("creating trace workspace: %w", err)
	}
	defer os.RemoveAll(outDir)

	outPath := filepath.Join(outDir, "traced.svg")
	cmd := exec.CommandContext(ctx, t.command, "--input", pngPath, "--output", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tracer %s: %w: %s", t.command, err, strings.TrimSpace(string(out)))
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("reading traced output: %w", err)
	}

	t.logger.Debug("traced raster reference", "input", pngPath, "bytes", len(content))
	return string(content), nil
}
