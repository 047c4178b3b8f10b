package mcp

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iconforge/iconforge/internal/icon"
	"github.com/iconforge/iconforge/internal/log"
	"github.com/iconforge/iconforge/internal/multimodal"
	"github.com/iconforge/iconforge/internal/session"
	"github.com/iconforge/iconforge/internal/storage"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	outDir := t.TempDir()

	sessions := session.NewStore(0, 0)
	detector := multimodal.NewEnvDetector(multimodal.WithForce(false))
	pipeline := session.NewPipeline(detector, log.NewNop())
	saver := storage.New(outDir, log.NewNop())
	service := icon.NewService(sessions, pipeline, saver, log.NewNop())

	srv, err := NewServer(Config{
		Name:    "iconforge",
		Version: "test",
		Service: service,
		Logger:  log.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	return srv, outDir
}

func textContent(t *testing.T, result *sdk.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := result.Content[0].(*sdk.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *TextContent", result.Content[0])
	}
	return tc.Text
}

func TestNewServer_Validation(t *testing.T) {
	if _, err := NewServer(Config{Version: "1", Service: &icon.Service{}}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := NewServer(Config{Name: "x", Service: &icon.Service{}}); err == nil {
		t.Error("expected error for missing version")
	}
	if _, err := NewServer(Config{Name: "x", Version: "1"}); err == nil {
		t.Error("expected error for missing service")
	}
}

func TestCreateIconPrompt_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	result, _, err := srv.CreateIconPrompt(context.Background(), nil, icon.CreateRequest{
		Prompt: "Create a simple star icon",
	})
	if err != nil {
		t.Fatalf("CreateIconPrompt() error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", textContent(t, result))
	}

	var out icon.CreateResult
	if err := json.Unmarshal([]byte(textContent(t, result)), &out); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if out.Type != "prompt_created" {
		t.Errorf("Type = %q, want prompt_created", out.Type)
	}
	if !strings.Contains(out.ExpertPrompt, "FILENAME:") {
		t.Error("expert prompt missing output contract")
	}
}

func TestCreateIconPrompt_ValidationFailure(t *testing.T) {
	srv, _ := newTestServer(t)

	result, _, err := srv.CreateIconPrompt(context.Background(), nil, icon.CreateRequest{Prompt: ""})
	if err != nil {
		t.Fatalf("validation failures must not be protocol errors, got: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError result")
	}

	var failure icon.Failure
	if err := json.Unmarshal([]byte(textContent(t, result)), &failure); err != nil {
		t.Fatalf("decoding failure: %v", err)
	}
	if failure.Type != "validation_failed" || failure.Success {
		t.Errorf("failure = %+v, want validation_failed", failure)
	}
	if !strings.Contains(failure.Error, "prompt is required") {
		t.Errorf("failure.Error = %q, want 'prompt is required'", failure.Error)
	}
}

func TestCreateIconPrompt_MultimodalGate(t *testing.T) {
	srv, outDir := newTestServer(t)

	png := outDir + "/ref.png"
	if err := writeTestFile(png, "png bytes"); err != nil {
		t.Fatal(err)
	}

	result, _, err := srv.CreateIconPrompt(context.Background(), nil, icon.CreateRequest{
		Prompt:         "a cat icon",
		ReferencePaths: []string{png},
	})
	if err != nil {
		t.Fatalf("CreateIconPrompt() error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError result for PNG without multimodal capability")
	}
	if !strings.Contains(textContent(t, result), "multimodal") {
		t.Error("failure payload missing multimodal remediation")
	}
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestSaveIcon_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	result, _, err := srv.SaveIcon(context.Background(), nil, icon.SaveRequest{
		SVG:      `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"/>`,
		Filename: "cat-pillow",
	})
	if err != nil {
		t.Fatalf("SaveIcon() error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", textContent(t, result))
	}

	var out icon.SaveResult
	if err := json.Unmarshal([]byte(textContent(t, result)), &out); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if !out.Success || !strings.Contains(out.OutputPath, "cat-pillow") {
		t.Errorf("result = %+v, want success with cat-pillow path", out)
	}
}
