// Package cmd contains the iconforge CLI entry points.
package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/icon"
	"github.com/iconforge/iconforge/internal/log"
	"github.com/iconforge/iconforge/internal/multimodal"
	"github.com/iconforge/iconforge/internal/session"
	"github.com/iconforge/iconforge/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "iconforge",
	Short: "AI-assisted SVG icon generation",
	Long: `iconforge builds expert SVG generation prompts from plain requests,
optionally conditioned on reference images and a named few-shot style, and
saves the resulting icons with conflict-safe naming.

Run "iconforge serve" to expose the tools over MCP on stdio, or
"iconforge generate" to drive an external assistant directly.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and wires the façade with its collaborators.
func setup() (*config.Config, *icon.Service, log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.New(log.Config{Level: cfg.Level(), JSON: cfg.LogJSON})
	slog.SetDefault(logger)

	var opts []multimodal.Option
	if cfg.Model != "" {
		model := cfg.Model
		opts = append(opts, multimodal.WithGetenv(func(key string) string {
			if key == "ICONFORGE_MODEL" {
				return model
			}
			return os.Getenv(key)
		}))
	}
	if cfg.ForceMultimodal != nil {
		opts = append(opts, multimodal.WithForce(*cfg.ForceMultimodal))
	}
	detector := multimodal.NewEnvDetector(opts...)

	sessions := session.NewStore(cfg.SessionCapacity, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	pipeline := session.NewPipeline(detector, logger.With("component", "pipeline"))
	saver := storage.New(cfg.OutputDir, logger.With("component", "storage"))
	service := icon.NewService(sessions, pipeline, saver, logger.With("component", "icon"))

	return cfg, service, logger, nil
}
