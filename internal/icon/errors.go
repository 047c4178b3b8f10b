package icon

// ErrorKind tags where a failure originated. The response shape is uniform
// across kinds; the tag exists for logging and tests.
type ErrorKind string

const (
	// KindShape marks a malformed request caught before any session exists.
	KindShape ErrorKind = "shape"

	// KindPhase marks a terminal failure inside a session phase.
	KindPhase ErrorKind = "phase"

	// KindSave marks a failure from the save collaborator.
	KindSave ErrorKind = "save"
)

// ValidationError is the only error type the façade lets out. Every
// internal failure is normalized into one; nothing panics across the
// boundary.
type ValidationError struct {
	Kind    ErrorKind
	Message string // human-readable summary
	Detail  string // the underlying error text
}

func (e *ValidationError) Error() string {
	if e.Detail != "" && e.Detail != e.Message {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Failure renders the uniform validation_failed response shape.
func (e *ValidationError) Failure() Failure {
	detail := e.Detail
	if detail == "" {
		detail = e.Message
	}
	return Failure{
		Type:    "validation_failed",
		Success: false,
		Message: e.Message,
		Error:   detail,
	}
}
