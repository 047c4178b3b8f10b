package icon

import (
	"fmt"
	"strings"

	"github.com/iconforge/iconforge/internal/style"
)

// CreateRequest is the raw create-prompt input before shape validation.
type CreateRequest struct {
	Prompt         string   `json:"prompt"`
	ReferencePaths []string `json:"referencePaths,omitempty"`
	Style          string   `json:"style,omitempty"`
}

// SaveRequest is the raw save-icon input. The operation is stateless: it
// never touches the session store.
type SaveRequest struct {
	SVG        string `json:"svg"`
	Filename   string `json:"filename"`
	OutputName string `json:"outputName,omitempty"`
	OutputPath string `json:"outputPath,omitempty"`
}

// SaveExample shows a caller what a save-icon invocation looks like.
type SaveExample struct {
	SVG      string `json:"svg"`
	Filename string `json:"filename"`
}

// NextAction tells the caller which operation to invoke after receiving the
// expert prompt, and with what parameters.
type NextAction struct {
	Description    string      `json:"description"`
	ToolName       string      `json:"toolName"`
	RequiredParams []string    `json:"requiredParams"`
	ExampleUsage   SaveExample `json:"exampleUsage"`
}

// CreateResult is the success output of createPrompt.
type CreateResult struct {
	Type              string     `json:"type"`
	ExpertPrompt      string     `json:"expertPrompt"`
	SuggestedFilename string     `json:"suggestedFilename"`
	NextAction        NextAction `json:"nextAction"`
}

// SaveResult is the success output of saveIcon.
type SaveResult struct {
	Type       string `json:"type"`
	Success    bool   `json:"success"`
	OutputPath string `json:"outputPath"`
	Message    string `json:"message"`
}

// Failure is the uniform failure shape for both operations.
type Failure struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Operation describes one exposed operation: pure metadata consumed by
// whatever transport sits outside the core.
type Operation struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiredParams []string `json:"requiredParams"`
	OptionalParams []string `json:"optionalParams"`
}

// Operations lists the two exposed operations and their input constraints.
func Operations() []Operation {
	return []Operation{
		{
			Name:           "create_icon_prompt",
			Description:    fmt.Sprintf("Build an expert SVG generation prompt from a request, optional PNG/SVG references and an optional named style (available: %s). Returns the prompt, a suggested kebab-case filename, and the follow-up action.", strings.Join(style.Names(), ", ")),
			RequiredParams: []string{"prompt"},
			OptionalParams: []string{"referencePaths", "style"},
		},
		{
			Name:           "save_icon",
			Description:    "Sanitize SVG markup and write it to disk with conflict-safe naming.",
			RequiredParams: []string{"svg", "filename"},
			OptionalParams: []string{"outputName", "outputPath"},
		},
	}
}
