// Package assistant invokes an external command-line AI assistant as a
// subprocess. The core never depends on this directly; it only produces
// prompt text and parses the labeled response; this adapter exists for the
// CLI generation mode.
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/iconforge/iconforge/internal/log"
)

// Generator produces a raw model response for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultTimeout bounds one assistant invocation.
const DefaultTimeout = 3 * time.Minute

// CLIGenerator runs a configured assistant binary with the prompt as the
// final argument, e.g. `claude -p "<prompt>"`.
type CLIGenerator struct {
	command string
	args    []string
	timeout time.Duration
	logger  log.Logger
}

// NewCLIGenerator creates a subprocess-backed generator. command must be
// non-empty; args are passed before the prompt.
func NewCLIGenerator(command string, args []string, logger log.Logger) (*CLIGenerator, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("assistant command is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &CLIGenerator{
		command: command,
		args:    args,
		timeout: DefaultTimeout,
		logger:  logger,
	}, nil
}

// Generate implements Generator. The assistant's stdout is returned as-is;
// retrying and rate limiting are the caller's concern.
func (g *CLIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	args := append(append([]string{}, g.args...), prompt)
	cmd := exec.CommandContext(ctx, g.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.logger.Debug("invoking assistant", "command", g.command, "prompt_bytes", len(prompt))

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("assistant %s: %w: %s", g.command, err, msg)
		}
		return "", fmt.Errorf("assistant %s: %w", g.command, err)
	}
	return stdout.String(), nil
}
