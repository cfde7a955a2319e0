package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"datesift/internal/config"
	"datesift/internal/label"
	"datesift/internal/logging"
	"datesift/internal/pipeline"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var dryRun bool
	var removeDuplicates bool
	var includeLabel bool
	var threads int

	cmd := &cobra.Command{
		Use:   "organize <source>",
		Short: "Move files under <source> into a YYYY/MM tree named by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			dest, err := resolveDestination(outputFlag, cfg, source)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("threads") {
				threads = cfg.Organize.Threads
			}
			if threads < 1 {
				return fmt.Errorf("threads must be at least 1")
			}
			if !cmd.Flags().Changed("remove-duplicates") {
				removeDuplicates = cfg.Organize.RemoveDuplicates
			}
			if !cmd.Flags().Changed("include-label") {
				includeLabel = cfg.Organize.IncludeLabel
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			var extractor label.Extractor
			if includeLabel {
				extractor = label.NewCameraMake()
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			organizer := pipeline.New(pipeline.Options{
				Source:           source,
				Destination:      dest,
				DryRun:           dryRun,
				RemoveDuplicates: removeDuplicates,
				Threads:          threads,
				Extractor:        extractor,
				Logger:           logger,
			})
			runReport, err := organizer.Run(signalCtx)
			if runReport != nil {
				renderRunReport(cmd.OutOrStdout(), runReport)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination root (defaults to <source>/"+config.OrganizedDirName+")")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Plan and report without touching any file")
	cmd.Flags().BoolVar(&removeDuplicates, "remove-duplicates", false, "Remove content-identical duplicates within each month after organizing")
	cmd.Flags().BoolVar(&includeLabel, "include-label", false, "Prefix names with the camera make read from file metadata")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "Worker pool size (defaults to the configured value)")
	return cmd
}

// resolveDestination applies the flag, then the configured output root, then
// the organized subdirectory of the source.
func resolveDestination(flagValue string, cfg *config.Config, source string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		return expanded, nil
	}
	if cfg.Paths.OutputRoot != "" {
		return cfg.Paths.OutputRoot, nil
	}
	return filepath.Join(source, config.OrganizedDirName), nil
}
