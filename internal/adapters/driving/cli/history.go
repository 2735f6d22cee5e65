package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent chunking runs",
	Long: `Show recent chunking runs recorded in the run journal, or one run by ID.

Runs hold statistics only (document type, chunk count, average quality),
never document text. Recording is off by default; enable it with:
  legalchunk config set history.enabled true`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of runs")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil || !historyService.Enabled() {
		cmd.Println("Run history is disabled.")
		cmd.Println("Enable it with 'legalchunk config set history.enabled true'.")
		return nil
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	ctx := commandContext(cmd)

	if len(args) == 1 {
		run, err := historyService.Get(ctx, args[0])
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}
		if asJSON {
			return printJSON(cmd, run)
		}
		printRun(cmd, run)
		return nil
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}
	runs, err := historyService.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if asJSON {
		return printJSON(cmd, runs)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Printf("%-36s  %-19s  %-24s  %6s  %7s\n", "ID", "WHEN", "TYPE", "CHUNKS", "QUALITY")
	for i := range runs {
		r := &runs[i]
		cmd.Printf("%-36s  %-19s  %-24s  %6d  %7.3f\n",
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			r.DocumentType,
			r.TotalChunks,
			r.AvgQuality)
	}
	return nil
}

func printRun(cmd *cobra.Command, r *domain.RunSummary) {
	cmd.Printf("Run:        %s\n", r.ID)
	cmd.Printf("When:       %s\n", r.CreatedAt.Local().Format(time.DateTime))
	cmd.Printf("Document:   %s\n", r.DocumentID)
	cmd.Printf("Type:       %s (confidence %.2f)\n", r.DocumentType, r.Confidence)
	cmd.Printf("User:       %s\n", r.UserID)
	cmd.Printf("Project:    %s\n", r.ProjectID)
	cmd.Printf("Words:      %d\n", r.WordCount)
	cmd.Printf("Chunks:     %d\n", r.TotalChunks)
	cmd.Printf("Quality:    %.3f (%d high, %d medium, %d low)\n",
		r.AvgQuality, r.Distribution.High, r.Distribution.Medium, r.Distribution.Low)
	cmd.Printf("Duration:   %s\n", r.Duration.Round(time.Microsecond))
}
