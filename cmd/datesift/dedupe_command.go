package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"datesift/internal/config"
	"datesift/internal/dedup"
	"datesift/internal/logging"
	"datesift/internal/preflight"
	"datesift/internal/report"
	"datesift/internal/scan"
	"datesift/internal/services"
)

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var threads int

	cmd := &cobra.Command{
		Use:   "dedupe <dir>",
		Short: "Remove content-identical duplicates anywhere under <dir>, keeping the oldest copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			root, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if check := preflight.CheckSource(root); !check.Passed {
				return services.Wrap(services.ErrPrecondition, "dedupe", "check directory", check.Detail, nil)
			}
			if !cmd.Flags().Changed("threads") {
				threads = cfg.Organize.Threads
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			files, scanErrors := scan.Walk(signalCtx, root, logger)
			summary := dedup.New(threads, dryRun, logger).Run(signalCtx, files)

			out := cmd.OutOrStdout()
			verb := "removed"
			if summary.Preview {
				verb = "would remove"
			}
			fmt.Fprintf(out, "Scanned %d file(s) (%d unreadable) under %s\n", len(files), scanErrors, root)
			fmt.Fprintf(out, "Duplicates: %d group(s), %s %d file(s), %s reclaimable\n",
				summary.Groups, verb, summary.Removed, report.FormatBytes(summary.BytesReclaimed))
			return signalCtx.Err()
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report duplicates without deleting anything")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "Worker pool size (defaults to the configured value)")
	return cmd
}
