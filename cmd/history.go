package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nickmilo/gravity-index/internal/config"
	"github.com/nickmilo/gravity-index/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous analysis runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("vault"); v != "" {
		cfg.VaultPath = v
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("history database disabled (history_db is empty)")
	}

	dbPath := resolveInVault(cfg.VaultPath, cfg.HistoryDB)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("no runs recorded yet")
		return nil
	}

	store, err := history.Open(cmd.Context(), dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RAN AT\tNOTES\tMATERIALIZED\tTOP NOTE\tSCORE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.1f\n",
			run.RanAt.Local().Format("2006-01-02 15:04"),
			run.NotesAnalyzed, run.Materialized, run.TopNote, run.TopScore)
	}
	return w.Flush()
}
