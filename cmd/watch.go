package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nickmilo/gravity-index/internal/config"
	"github.com/nickmilo/gravity-index/internal/report"
	"github.com/nickmilo/gravity-index/internal/vault"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis whenever a note in the vault changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("output", "", "report file path")
	watchCmd.Flags().Int("top", 0, "number of ranked notes in the report")
	watchCmd.Flags().Int("iterations", 0, "PageRank iteration budget")
	watchCmd.Flags().Float64("damping", 0, "PageRank damping factor")
	watchCmd.Flags().Float64("epsilon", 0, "PageRank convergence threshold; 0 runs every iteration")
	watchCmd.Flags().String("rules", "", "category rules TOML file")
	watchCmd.Flags().String("telemetry", "", "JSONL telemetry file")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)
	printer := report.New()

	emitter, err := openTelemetry(cfg.TelemetryFile)
	if err != nil {
		return err
	}
	defer emitter.Close()

	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	// Each pass rebuilds the graph from scratch; the watch loop never
	// records history to avoid flooding the run log on every keystroke.
	if err := runAnalysis(ctx, cfg, printer, emitter, false); err != nil {
		return err
	}

	watcher, err := vault.NewWatcher(cfg.VaultPath)
	if err != nil {
		return fmt.Errorf("watching vault: %w", err)
	}
	// The report this loop writes lands inside the vault; seeing our own
	// write as a note change would re-run the analysis forever.
	watcher.Ignore(resolveInVault(cfg.VaultPath, cfg.OutputFile))
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("watching vault: %w", err)
	}
	defer watcher.Stop()

	printer.Info(fmt.Sprintf("watching %s for note changes (ctrl-c to stop)", cfg.VaultPath))
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			printer.Info(fmt.Sprintf("note %q changed, re-running analysis", change.Note))
			if err := runAnalysis(ctx, cfg, printer, emitter, false); err != nil {
				// Keep watching; a transient failure on one pass is not fatal.
				printer.Error(err.Error())
			}
		}
	}
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *report.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		printer.Info("\nshutting down...")
		cancel()
	}()
	return ctx, cancel
}
