package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/instapersona/dmcorpus/internal/api"
	"github.com/instapersona/dmcorpus/internal/archive"
	"github.com/instapersona/dmcorpus/internal/config"
	"github.com/instapersona/dmcorpus/internal/events"
	"github.com/instapersona/dmcorpus/internal/runner"
	"github.com/instapersona/dmcorpus/internal/stats"
	"github.com/instapersona/dmcorpus/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	root := &cobra.Command{
		Use:           "dmcorpus",
		Short:         "Build persona training datasets from DM archive exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildCmd(cfg), statsCmd(cfg), serveCmd(cfg))

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func buildCmd(cfg config.Config) *cobra.Command {
	rcfg := runner.Config{
		ArchiveDir:  cfg.ArchiveDir,
		OutDir:      cfg.OutDir,
		Target:      cfg.Target,
		ContextSize: cfg.ContextSize,
		Seed:        cfg.Seed,
	}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Ingest an archive and write the response, timing and reply-probability artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			var db *store.Store
			if cfg.DatabaseURL != "" {
				var err error
				db, err = store.New(ctx, cfg.DatabaseURL)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer db.Close()
				slog.Info("database connected")
			}

			var ev *events.Client
			if cfg.NatsURL != "" {
				var err error
				ev, err = events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
				if err != nil {
					return fmt.Errorf("connect to NATS: %w", err)
				}
				defer ev.Close()
				slog.Info("NATS connected", "url", cfg.NatsURL)
			}

			r := runner.New(rcfg, db, ev, slog.Default())
			manifest, err := r.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n=== Build Summary ===\n")
			fmt.Printf("Run:               %s\n", manifest.RunID)
			fmt.Printf("Target:            %s\n", manifest.Target)
			fmt.Printf("Conversations:     %d (%d with target)\n", manifest.Conversations, manifest.TargetConvos)
			fmt.Printf("Messages:          %d\n", manifest.Messages)
			fmt.Printf("Response examples: %d\n", manifest.ResponseExamples)
			fmt.Printf("Timing examples:   %d\n", manifest.TimingExamples)
			for _, w := range manifest.Warnings {
				fmt.Printf("Warning:           %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rcfg.ArchiveDir, "archive", rcfg.ArchiveDir, "archive root (one sub-directory per conversation)")
	cmd.Flags().StringVar(&rcfg.OutDir, "out", rcfg.OutDir, "artifact output directory")
	cmd.Flags().StringVar(&rcfg.Target, "target", rcfg.Target, "target participant name")
	cmd.Flags().IntVar(&rcfg.ContextSize, "context-size", rcfg.ContextSize, "context window size in messages")
	cmd.Flags().Int64Var(&rcfg.Seed, "seed", rcfg.Seed, "seed for negative sampling")
	cmd.Flags().BoolVar(&rcfg.RelativeTime, "relative-time", false, "render elapsed seconds instead of absolute timestamps")
	return cmd
}

func statsCmd(cfg config.Config) *cobra.Command {
	archiveDir := cfg.ArchiveDir
	target := cfg.Target

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print hour-of-day activity and reply-probability summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				return fmt.Errorf("target participant is required")
			}

			inbox, err := archive.LoadInbox(archiveDir, archive.Options{})
			if err != nil {
				return fmt.Errorf("load archive: %w", err)
			}

			active := stats.ActiveHours(inbox, target)
			probs := stats.ReplyProbabilityByHour(inbox, target)

			fmt.Printf("Hour  Messages  ReplyProb\n")
			for h := 0; h < 24; h++ {
				fmt.Printf("%02d    %-8d  %.3f\n", h, active[h], probs[h])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&archiveDir, "archive", archiveDir, "archive root (one sub-directory per conversation)")
	cmd.Flags().StringVar(&target, "target", target, "target participant name")
	return cmd
}

func serveCmd(cfg config.Config) *cobra.Command {
	port := cfg.Port
	dir := cfg.OutDir

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve built artifacts over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := api.NewServer(port, dir)
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", port, "listen port")
	cmd.Flags().StringVar(&dir, "artifacts", dir, "artifact directory to serve")
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
