// Package session owns the generation-context pipeline: one in-memory
// record per create-prompt request, driven through an ordered sequence of
// phases with auditable per-phase state.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Phase identifies a processing stage. The set is closed; decision points
// switch exhaustively over it so adding a phase is a compile-visible change.
type Phase string

const (
	PhaseValidation   Phase = "validation"
	PhaseAnalysis     Phase = "analysis"
	PhaseContextBuild Phase = "context_building"

	// PhaseRefinement and PhaseOutput are reserved slots: they appear in
	// every session's records for reporting symmetry but perform no work in
	// the create-prompt path. They are marked skipped at finalization.
	PhaseRefinement Phase = "refinement"
	PhaseOutput     Phase = "output"
)

// Phases returns the fixed phase order.
func Phases() []Phase {
	return []Phase{PhaseValidation, PhaseAnalysis, PhaseContextBuild, PhaseRefinement, PhaseOutput}
}

// Status is a phase record's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// Request is the validated input for one generation session.
type Request struct {
	Prompt         string
	ReferencePaths []string
	Style          string
}

// Context accumulates per-session artifacts across phases.
type Context struct {
	// ValidatedFiles holds the reference paths that passed format and
	// existence checks. Append-only during validation.
	ValidatedFiles []string

	// TextReferences holds raw SVG file contents, populated during
	// context-building in input order.
	TextReferences []string

	ExpertPrompt      string
	SuggestedFilename string

	// Errors is append-only, phase-tagged, and kept for diagnostics only;
	// control flow never reads it.
	Errors []string
}

// PhaseRecord tracks one phase's status for a single session.
type PhaseRecord struct {
	Phase     Phase
	Status    Status
	Message   string
	Timestamp time.Time
}

// Session is one create-prompt request's lifecycle. It is exclusively owned
// by the pipeline call driving it; no cross-session state is shared.
type Session struct {
	ID        string
	Request   Request
	Records   []*PhaseRecord
	Current   Phase
	StartTime time.Time
	Context   Context
}

// newSession allocates a session with all phase records pending.
func newSession(req Request) *Session {
	now := time.Now()
	records := make([]*PhaseRecord, 0, len(Phases()))
	for _, p := range Phases() {
		records = append(records, &PhaseRecord{Phase: p, Status: StatusPending, Timestamp: now})
	}
	return &Session{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Request:   req,
		Records:   records,
		Current:   PhaseValidation,
		StartTime: now,
	}
}

// Record returns the record for phase, or nil if the phase is unknown.
func (s *Session) Record(phase Phase) *PhaseRecord {
	for _, r := range s.Records {
		if r.Phase == phase {
			return r
		}
	}
	return nil
}

// Elapsed reports time since session creation.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}

// enter marks phase in progress and advances the session pointer. Entering a
// phase always precedes any work in it, so Current never points at a record
// still pending.
func (s *Session) enter(phase Phase, message string) {
	s.Current = phase
	s.set(phase, StatusInProgress, message)
}

// complete marks phase completed.
func (s *Session) complete(phase Phase, message string) {
	s.set(phase, StatusCompleted, message)
}

// fail marks phase failed and tags the error into the context.
func (s *Session) fail(phase Phase, message string) {
	s.set(phase, StatusFailed, message)
	s.Context.Errors = append(s.Context.Errors, fmt.Sprintf("[%s] %s", phase, message))
}

// skip marks phase skipped.
func (s *Session) skip(phase Phase, message string) {
	s.set(phase, StatusSkipped, message)
}

func (s *Session) set(phase Phase, status Status, message string) {
	if r := s.Record(phase); r != nil {
		r.Status = status
		r.Message = message
		r.Timestamp = time.Now()
	}
}
