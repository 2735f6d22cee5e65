package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive chunk browser.

Open a document, browse its chunks with their quality scores and content
types, and inspect the entities and metadata of each chunk.

Controls:
  ↑/k, ↓/j - Navigate chunks
  Enter    - Chunk file / View chunk
  n, p     - Next / previous chunk
  o        - Open another file
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("user", "u", "local", "user id stamped on every chunk")
	tuiCmd.Flags().StringP("project", "p", "default", "project id stamped on every chunk")
	tuiCmd.Flags().Int("target", 0, "target chunk size in words (default: per document type)")
	tuiCmd.Flags().Int("overlap", 0, "overlap between chunks in words (default: from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}
	req, err := chunkRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := tui.Options{
		UserID:          req.UserID,
		ProjectID:       req.ProjectID,
		TargetChunkSize: req.TargetChunkSize,
		OverlapSize:     req.OverlapSize,
		Settings:        currentSettings().Chunking,
	}
	if len(args) == 1 {
		opts.Path = args[0]
	}

	app, err := tui.NewApp(&tui.Ports{Chunking: chunkingService, Loader: documentLoader}, opts)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(commandContext(cmd)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
