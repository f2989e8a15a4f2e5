package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nickmilo/gravity-index/internal/config"
	"github.com/nickmilo/gravity-index/internal/graph"
	"github.com/nickmilo/gravity-index/internal/history"
	"github.com/nickmilo/gravity-index/internal/report"
	"github.com/nickmilo/gravity-index/internal/rules"
	"github.com/nickmilo/gravity-index/internal/telemetry"
	"github.com/nickmilo/gravity-index/internal/vault"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan the vault and write the gravity index report",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("output", "", "report file path")
	analyzeCmd.Flags().Int("top", 0, "number of ranked notes in the report")
	analyzeCmd.Flags().Int("iterations", 0, "PageRank iteration budget")
	analyzeCmd.Flags().Float64("damping", 0, "PageRank damping factor")
	analyzeCmd.Flags().Float64("epsilon", 0, "PageRank convergence threshold; 0 runs every iteration")
	analyzeCmd.Flags().String("rules", "", "category rules TOML file")
	analyzeCmd.Flags().String("telemetry", "", "JSONL telemetry file")
	analyzeCmd.Flags().Bool("no-history", false, "skip recording this run in the history database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	saveHistory := true
	if skip, _ := cmd.Flags().GetBool("no-history"); skip || cfg.HistoryDB == "" {
		saveHistory = false
	}

	return runAnalysis(cmd.Context(), cfg, printer, emitter, saveHistory)
}

// applyFlagOverrides applies CLI flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("vault"); v != "" {
		cfg.VaultPath = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputFile = v
	}
	if v, _ := cmd.Flags().GetInt("top"); v > 0 {
		cfg.TopN = v
	}
	if v, _ := cmd.Flags().GetInt("iterations"); v > 0 {
		cfg.Iterations = v
	}
	if v, _ := cmd.Flags().GetFloat64("damping"); v > 0 {
		cfg.Damping = v
	}
	if v, _ := cmd.Flags().GetFloat64("epsilon"); v > 0 {
		cfg.Epsilon = v
	}
	if v, _ := cmd.Flags().GetString("rules"); v != "" {
		cfg.RulesFile = v
	}
	if v, _ := cmd.Flags().GetString("telemetry"); v != "" {
		cfg.TelemetryFile = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
}

func openTelemetry(path string) (*telemetry.Emitter, error) {
	if path == "" {
		return nil, nil // nil emitter is a valid no-op
	}
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry file: %w", err)
	}
	return em, nil
}

// runAnalysis executes one full pass: scan → graph → PageRank → scores →
// report, with optional telemetry and history recording. It is shared by
// the analyze and watch commands.
func runAnalysis(ctx context.Context, cfg config.Config, printer *report.Printer, emitter *telemetry.Emitter, saveHistory bool) error {
	start := time.Now()
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindScanStart, Vault: cfg.VaultPath})

	scanner := &vault.Scanner{VaultPath: cfg.VaultPath}
	res, err := scanner.Scan()
	if err != nil {
		_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindRunFailed, Vault: cfg.VaultPath, Data: err.Error()})
		return err
	}
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindScanDone, Vault: cfg.VaultPath,
		Data: map[string]int{"files": res.FileCount, "edges": len(res.Edges), "read_errors": len(res.Errors)}})

	if cfg.Verbose {
		printer.Info(fmt.Sprintf("scanned %d files, %d links", res.FileCount, len(res.Edges)))
	}
	for _, readErr := range res.Errors {
		printer.Error(readErr.Error())
	}

	g := vault.BuildGraph(res)
	if g.Len() == 0 {
		printer.Info("no markdown notes found in vault")
		return nil
	}

	ranks := g.PageRank(graph.PageRankOptions{
		Damping:    cfg.Damping,
		Iterations: cfg.Iterations,
		Epsilon:    cfg.Epsilon,
	})
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindPageRankDone, Vault: cfg.VaultPath,
		Data: map[string]int{"notes": g.Len(), "iterations": cfg.Iterations}})

	scores := g.GravityScores(ranks)
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindScoreDone, Vault: cfg.VaultPath,
		Data: map[string]int{"scored": len(scores)}})

	if len(scores) == 0 {
		printer.Info("no notes with connections found")
		return nil
	}

	categoryRules, err := rules.Load(resolveInVault(cfg.VaultPath, cfg.RulesFile))
	if err != nil {
		return err
	}

	md := report.Generate(scores, report.Options{TopN: cfg.TopN, Rules: categoryRules})
	outPath := resolveInVault(cfg.VaultPath, cfg.OutputFile)
	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindReportWritten, Vault: cfg.VaultPath, Data: outPath})

	printer.TopNotes(scores, 5)
	printer.Success(fmt.Sprintf("analyzed %d notes in %s, report: %s",
		len(scores), time.Since(start).Round(time.Millisecond), outPath))

	if saveHistory {
		if err := recordRun(ctx, cfg, res, scores); err != nil {
			// History failure does not invalidate the analysis.
			printer.Error(fmt.Sprintf("recording run history: %v", err))
		}
	}
	return nil
}

func recordRun(ctx context.Context, cfg config.Config, res *vault.ScanResult, scores []graph.Score) error {
	dbPath := resolveInVault(cfg.VaultPath, cfg.HistoryDB)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}
	store, err := history.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(ctx, history.RunSummary{
		RanAt:         time.Now(),
		VaultPath:     cfg.VaultPath,
		NotesAnalyzed: len(scores),
		Materialized:  res.FileCount,
		TopNote:       scores[0].Note,
		TopScore:      scores[0].Total,
		Iterations:    cfg.Iterations,
	})
	return err
}

// resolveInVault anchors a relative path at the vault root; absolute
// paths pass through unchanged.
func resolveInVault(vaultPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(vaultPath, path)
}
