// Package icon is the tool façade: it translates the two external
// operations (create prompt, save icon) into session-pipeline runs and
// storage calls, normalizing every failure into a uniform response shape.
package icon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iconforge/iconforge/internal/log"
	"github.com/iconforge/iconforge/internal/session"
	"github.com/iconforge/iconforge/internal/storage"
	"github.com/iconforge/iconforge/internal/svg"
)

// Saver is the storage collaborator. Conflict resolution and path handling
// live behind it.
type Saver interface {
	Save(name, dir, content string) (string, error)
}

// Service wires the session store, the pipeline and the saver. One Service
// per server instance; no ambient globals.
type Service struct {
	sessions *session.Store
	pipeline *session.Pipeline
	saver    Saver
	logger   log.Logger
}

// NewService creates the façade.
func NewService(sessions *session.Store, pipeline *session.Pipeline, saver Saver, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Service{
		sessions: sessions,
		pipeline: pipeline,
		saver:    saver,
		logger:   logger,
	}
}

// parseCreate is the explicit shape-validation step: it admits work into
// the state machine only for well-shaped requests, with an error kind
// distinct from in-session validation failures.
func parseCreate(req CreateRequest) (session.Request, *ValidationError) {
	if strings.TrimSpace(req.Prompt) == "" {
		return session.Request{}, &ValidationError{
			Kind:    KindShape,
			Message: "prompt is required and must be a non-empty string",
		}
	}
	return session.Request{
		Prompt:         req.Prompt,
		ReferencePaths: req.ReferencePaths,
		Style:          req.Style,
	}, nil
}

// CreatePrompt validates the request shape, drives a session through the
// pipeline, and returns the expert prompt plus the suggested filename. On
// any failure the returned error is a *ValidationError carrying the
// uniform failure shape.
func (s *Service) CreatePrompt(req CreateRequest) (*CreateResult, error) {
	parsed, verr := parseCreate(req)
	if verr != nil {
		return nil, verr
	}

	sess := s.sessions.Create(parsed)
	// The response is built from a read-only view of the finished session;
	// nothing else references it afterwards.
	defer s.sessions.Delete(sess.ID)

	if err := s.pipeline.Run(sess); err != nil {
		var perr *session.PhaseError
		if errors.As(err, &perr) {
			return nil, &ValidationError{
				Kind:    KindPhase,
				Message: perr.Message,
				Detail:  fmt.Sprintf("phase %s: %s", perr.Phase, perr.Message),
			}
		}
		return nil, &ValidationError{
			Kind:    KindPhase,
			Message: "generation context could not be built",
			Detail:  err.Error(),
		}
	}

	s.logger.Info("expert prompt created",
		"session_id", sess.ID,
		"suggested_filename", sess.Context.SuggestedFilename,
		"references", len(sess.Context.ValidatedFiles),
		"elapsed", sess.Elapsed())

	return &CreateResult{
		Type:              "prompt_created",
		ExpertPrompt:      sess.Context.ExpertPrompt,
		SuggestedFilename: sess.Context.SuggestedFilename,
		NextAction: NextAction{
			Description:    "Generate the SVG with your model using expertPrompt, then call save_icon with the resulting markup.",
			ToolName:       "save_icon",
			RequiredParams: []string{"svg", "filename"},
			ExampleUsage: SaveExample{
				SVG:      "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 24 24\">...</svg>",
				Filename: sess.Context.SuggestedFilename,
			},
		},
	}, nil
}

// SaveIcon sanitizes the markup and hands it to the saver. It is stateless
// with respect to sessions.
func (s *Service) SaveIcon(req SaveRequest) (*SaveResult, error) {
	if strings.TrimSpace(req.SVG) == "" {
		return nil, &ValidationError{Kind: KindShape, Message: "svg is required and must be a non-empty string"}
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, &ValidationError{Kind: KindShape, Message: "filename is required and must be a non-empty string"}
	}

	name := req.OutputName
	if name == "" {
		name = req.Filename
	}

	path, err := s.saver.Save(name, req.OutputPath, svg.Sanitize(req.SVG))
	if err != nil {
		return nil, &ValidationError{
			Kind:    KindSave,
			Message: fmt.Sprintf("could not save icon %q", name),
			Detail:  err.Error(),
		}
	}

	s.logger.Info("icon saved", "path", path)

	return &SaveResult{
		Type:       "icon_saved",
		Success:    true,
		OutputPath: path,
		Message:    fmt.Sprintf("Icon saved to %s", path),
	}, nil
}

var _ Saver = (*storage.Store)(nil)
