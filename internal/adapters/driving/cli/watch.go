package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Chunk documents as they appear in a directory",
	Long: `Watch a directory and chunk every document written to it.

Each document gets a sibling <file>.chunks.json holding the result.
Result files, hidden files and editor temporaries are ignored. A file is
chunked once it has been quiet for the debounce delay.

Example:
  legalchunk watch ./inbox --user u-42 --project p-7 --initial`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("user", "u", "", "user id stamped on every chunk (required)")
	watchCmd.Flags().StringP("project", "p", "", "project id stamped on every chunk (required)")
	watchCmd.Flags().Int("target", 0, "target chunk size in words (default: per document type)")
	watchCmd.Flags().Int("overlap", 0, "overlap between chunks in words (default: from config)")
	watchCmd.Flags().Bool("initial", false, "chunk files already in the directory")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a file is chunked")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}
	if documentLoader == nil {
		return errors.New("document loader not configured")
	}

	req, err := chunkRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	initial, _ := cmd.Flags().GetBool("initial")
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("getting debounce flag: %w", err)
	}

	w, err := watch.New(
		&watch.Ports{Chunking: chunkingService, Loader: documentLoader},
		watch.Config{
			Dir:             args[0],
			UserID:          req.UserID,
			ProjectID:       req.ProjectID,
			TargetChunkSize: req.TargetChunkSize,
			OverlapSize:     req.OverlapSize,
			Debounce:        debounce,
			Initial:         initial,
			OnProcessed: func(path string, err error) {
				if err != nil {
					cmd.PrintErrf("✗ %s: %v\n", path, err)
					return
				}
				cmd.Printf("✓ %s\n", watch.OutputPath(path))
			},
		},
	)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return w.Run(commandContext(cmd))
}
