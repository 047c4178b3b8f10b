package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iconforge/iconforge/internal/log"
	"github.com/iconforge/iconforge/internal/multimodal"
	"github.com/iconforge/iconforge/internal/prompt"
)

// PhaseError is a terminal failure raised inside a phase. The first one
// stops the session; nothing is retried.
type PhaseError struct {
	Phase   Phase
	Message string
}

func (e *PhaseError) Error() string {
	return e.Message
}

// allowedExtensions is the reference file whitelist, matched
// case-insensitively.
var allowedExtensions = map[string]bool{
	".png": true,
	".svg": true,
}

// Pipeline drives sessions through the active phases: validation, analysis,
// context-building. It owns all session mutation; callers get a read-only
// view once Run returns.
type Pipeline struct {
	detector multimodal.Detector
	logger   log.Logger
}

// NewPipeline creates a pipeline using the given capability detector.
func NewPipeline(detector multimodal.Detector, logger log.Logger) *Pipeline {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Pipeline{detector: detector, logger: logger}
}

// Run executes the three active phases in order, then marks the reserved
// phases skipped. The first phase error is terminal: later phases do not
// run and no partial results are produced.
func (p *Pipeline) Run(sess *Session) error {
	if err := p.runValidation(sess); err != nil {
		return err
	}
	p.runAnalysis(sess)
	if err := p.runContextBuild(sess); err != nil {
		return err
	}

	sess.skip(PhaseRefinement, "reserved: no refinement in the create-prompt path")
	sess.skip(PhaseOutput, "reserved: saving is the caller's save step")

	p.logger.Debug("session pipeline completed",
		"session_id", sess.ID,
		"elapsed", sess.Elapsed(),
		"references", len(sess.Context.ValidatedFiles))
	return nil
}

// runValidation checks the prompt, reference file existence, the extension
// whitelist, and multimodal gating for PNG references.
func (p *Pipeline) runValidation(sess *Session) error {
	sess.enter(PhaseValidation, "Validating request")

	if strings.TrimSpace(sess.Request.Prompt) == "" {
		return p.failValidation(sess, "prompt is required and must be a non-empty string")
	}

	needsMultimodal := false
	for _, path := range sess.Request.ReferencePaths {
		if _, err := os.Stat(path); err != nil {
			return p.failValidation(sess, fmt.Sprintf("File not found: %s", path))
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !allowedExtensions[ext] {
			return p.failValidation(sess, fmt.Sprintf("Unsupported file format: %s. Only .png and .svg reference files are supported", path))
		}
		if ext == ".png" {
			needsMultimodal = true
		}
		sess.Context.ValidatedFiles = append(sess.Context.ValidatedFiles, path)
	}

	if needsMultimodal && !p.detector.Available() {
		return p.failValidation(sess, "PNG references require multimodal capability.\n"+p.detector.Requirement())
	}

	sess.complete(PhaseValidation, fmt.Sprintf("Validated %d reference file(s)", len(sess.Context.ValidatedFiles)))
	return nil
}

func (p *Pipeline) failValidation(sess *Session, message string) error {
	sess.fail(PhaseValidation, message)
	p.logger.Debug("validation failed", "session_id", sess.ID, "reason", message)
	return &PhaseError{Phase: PhaseValidation, Message: message}
}

// runAnalysis is purely descriptive bookkeeping; it cannot fail.
func (p *Pipeline) runAnalysis(sess *Session) {
	sess.enter(PhaseAnalysis, "Analyzing request")

	preview := sess.Request.Prompt
	if runes := []rune(preview); len(runes) > 60 {
		preview = string(runes[:60]) + "..."
	}
	summary := fmt.Sprintf("Request: %q, %d reference file(s)", preview, len(sess.Context.ValidatedFiles))
	if sess.Request.Style != "" {
		summary += fmt.Sprintf(", style %q", sess.Request.Style)
	}

	sess.complete(PhaseAnalysis, summary)
}

// runContextBuild reads SVG reference contents and derives the expert
// prompt and suggested filename. PNG references are not read here; a
// multimodal model consumes them directly by path.
func (p *Pipeline) runContextBuild(sess *Session) error {
	sess.enter(PhaseContextBuild, "Building generation context")

	for _, path := range sess.Context.ValidatedFiles {
		if strings.ToLower(filepath.Ext(path)) != ".svg" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			message := fmt.Sprintf("Context building failed: reading %s: %v", path, err)
			sess.fail(PhaseContextBuild, message)
			return &PhaseError{Phase: PhaseContextBuild, Message: message}
		}
		sess.Context.TextReferences = append(sess.Context.TextReferences, string(content))
	}

	sess.Context.ExpertPrompt = prompt.Compose(sess.Request.Prompt, sess.Context.TextReferences, sess.Request.Style)
	sess.Context.SuggestedFilename = prompt.SuggestFilename(sess.Request.Prompt)

	sess.complete(PhaseContextBuild, fmt.Sprintf("Composed expert prompt with %d SVG reference(s)", len(sess.Context.TextReferences)))
	return nil
}
