package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iconforge/iconforge/internal/assistant"
	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/icon"
	"github.com/iconforge/iconforge/internal/log"
	"github.com/iconforge/iconforge/internal/search"
	"github.com/iconforge/iconforge/internal/svg"
	"github.com/iconforge/iconforge/internal/trace"
)

var generateFlags struct {
	style        string
	refs         []string
	search       string
	output       string
	name         string
	traceCommand string
}

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate and save an icon via the configured CLI assistant",
	Long: `generate runs the full two-step loop in one command: it builds the
expert prompt, hands it to the configured external assistant, parses the
FILENAME:/SVG: response, sanitizes the markup, and saves it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0])
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateFlags.style, "style", "", "named few-shot style (e.g. black-white-flat)")
	generateCmd.Flags().StringArrayVar(&generateFlags.refs, "ref", nil, "reference file (.png or .svg), repeatable")
	generateCmd.Flags().StringVar(&generateFlags.search, "search", "", "download reference images for this keyword first")
	generateCmd.Flags().StringVar(&generateFlags.output, "output", "", "output directory (default from config)")
	generateCmd.Flags().StringVar(&generateFlags.name, "name", "", "output filename, without extension")
	generateCmd.Flags().StringVar(&generateFlags.traceCommand, "trace-command", "", "external vector tracer; .png references are pre-converted to SVG with it")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, userPrompt string) error {
	cfg, service, logger, err := setup()
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	ctx := cmd.Context()

	refs := append([]string{}, generateFlags.refs...)
	if generateFlags.search != "" {
		searcher := search.NewWebSearcher(search.Options{
			UserAgent:   cfg.SearchUserAgent,
			MaxResults:  cfg.SearchMaxResults,
			PerSecond:   cfg.SearchPerSecond,
			DownloadDir: cfg.SearchDownloadDir,
		}, logger.With("component", "search"))

		found, err := searcher.Search(ctx, generateFlags.search)
		if err != nil {
			return fmt.Errorf("searching reference images: %w", err)
		}
		refs = append(refs, found...)
	}

	if generateFlags.traceCommand != "" {
		tracer, err := trace.NewCommandTracer(generateFlags.traceCommand, logger.With("component", "trace"))
		if err != nil {
			return err
		}
		refs, err = traceRasterRefs(ctx, tracer, refs)
		if err != nil {
			return fmt.Errorf("tracing reference images: %w", err)
		}
	}

	created, err := service.CreatePrompt(icon.CreateRequest{
		Prompt:         userPrompt,
		ReferencePaths: refs,
		Style:          generateFlags.style,
	})
	if err != nil {
		return err
	}

	gen, err := assistantFromConfig(cfg, logger.With("component", "assistant"))
	if err != nil {
		return err
	}

	logger.Info("generating icon", "assistant", cfg.AssistantCommand, "suggested_filename", created.SuggestedFilename)

	raw, err := gen.Generate(ctx, created.ExpertPrompt)
	if err != nil {
		return fmt.Errorf("generating icon: %w", err)
	}

	parsed, err := svg.ParseResponse(raw)
	if err != nil {
		return fmt.Errorf("parsing assistant response: %w", err)
	}

	name := generateFlags.name
	if name == "" {
		name = parsed.Filename
	}
	if strings.TrimSpace(name) == "" {
		name = created.SuggestedFilename
	}

	saved, err := service.SaveIcon(icon.SaveRequest{
		SVG:        parsed.Markup,
		Filename:   created.SuggestedFilename,
		OutputName: name,
		OutputPath: generateFlags.output,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), saved.OutputPath)
	return nil
}

// assistantFromConfig builds the external-assistant generator. Generation is
// the only path that needs one, so a blank command is rejected here rather
// than at config load.
func assistantFromConfig(cfg *config.Config, logger log.Logger) (assistant.Generator, error) {
	if strings.TrimSpace(cfg.AssistantCommand) == "" {
		return nil, fmt.Errorf("%w: set assistant_command in the configuration", config.ErrMissingAssistantCommand)
	}
	return assistant.NewCLIGenerator(cfg.AssistantCommand, cfg.AssistantArgs, logger)
}

// traceRasterRefs replaces each .png reference with a traced SVG written to
// a temp directory. Non-raster references pass through untouched, in order.
func traceRasterRefs(ctx context.Context, tracer trace.Tracer, refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	dir := ""
	traced := 0
	for _, ref := range refs {
		if strings.ToLower(filepath.Ext(ref)) != ".png" {
			out = append(out, ref)
			continue
		}

		markup, err := tracer.Trace(ctx, ref)
		if err != nil {
			return nil, err
		}

		if dir == "" {
			var mkErr error
			dir, mkErr = os.MkdirTemp("", "iconforge-traced-")
			if mkErr != nil {
				return nil, fmt.Errorf("creating traced-reference directory: %w", mkErr)
			}
		}
		traced++
		stem := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
		path := filepath.Join(dir, fmt.Sprintf("%s-%d.svg", stem, traced))
		if err := os.WriteFile(path, []byte(markup), 0o600); err != nil {
			return nil, fmt.Errorf("writing traced reference %s: %w", path, err)
		}
		out = append(out, path)
	}
	return out, nil
}
