package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// Output formats.
const (
	formatAuto    = "auto"
	formatJSON    = "json"
	formatSummary = "summary"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk [file|-]",
	Short: "Chunk a document",
	Long: `Chunk a document and print the result.

The document is read from a file (plain text, Markdown, HTML or DOCX) or
from stdin when the argument is "-" or omitted. The result is printed as
JSON when stdout is not a terminal, otherwise as a summary.

Examples:
  legalchunk chunk contrat.docx --user u-42 --project p-7
  pdftotext cctp.pdf - | legalchunk chunk --user u-42 --project p-7 -o cctp.json
  legalchunk chunk bail.txt -u u-42 -p p-7 --target 120 --overlap 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().StringP("user", "u", "", "user id stamped on every chunk (required)")
	chunkCmd.Flags().StringP("project", "p", "", "project id stamped on every chunk (required)")
	chunkCmd.Flags().Int("target", 0, "target chunk size in words (default: per document type)")
	chunkCmd.Flags().Int("overlap", 0, "overlap between chunks in words (default: from config)")
	chunkCmd.Flags().StringP("format", "f", formatAuto, "output format: auto, json or summary")
	chunkCmd.Flags().StringP("output", "o", "", "write the JSON result to a file")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}

	req, err := chunkRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	req.Text, err = readInput(cmd, args)
	if err != nil {
		return err
	}

	result, err := chunkingService.Chunk(commandContext(cmd), req)
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		if err := writeJSONFile(out, result); err != nil {
			return err
		}
		cmd.Printf("Wrote %d chunks to %s\n", result.DocumentStats.TotalChunks, out)
		return nil
	}

	if format == formatSummary || (format == formatAuto && isTerminal(cmd.OutOrStdout())) {
		cmd.Print(renderResult(result, currentSettings().Chunking))
		return nil
	}
	return printJSON(cmd, result)
}

func chunkRequestFromFlags(cmd *cobra.Command) (domain.ChunkRequest, error) {
	user, err := cmd.Flags().GetString("user")
	if err != nil {
		return domain.ChunkRequest{}, fmt.Errorf("getting user flag: %w", err)
	}
	project, err := cmd.Flags().GetString("project")
	if err != nil {
		return domain.ChunkRequest{}, fmt.Errorf("getting project flag: %w", err)
	}
	target, err := intFlag(cmd, "target")
	if err != nil {
		return domain.ChunkRequest{}, err
	}
	overlap, err := intFlag(cmd, "overlap")
	if err != nil {
		return domain.ChunkRequest{}, err
	}
	return domain.ChunkRequest{
		UserID:          user,
		ProjectID:       project,
		TargetChunkSize: target,
		OverlapSize:     overlap,
	}, nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("getting format flag: %w", err)
	}
	switch format {
	case formatAuto, formatJSON, formatSummary:
		return format, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
