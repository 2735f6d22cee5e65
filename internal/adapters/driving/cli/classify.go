package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Detect the type of a document",
	Long: `Detect the type of a document without chunking it.

Prints the winning type, its confidence, the lexicon terms that matched
and the score of every candidate type.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the known document types",
	Long:  `List every document type with its adaptive chunk size band and party roles.`,
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

func init() {
	classifyCmd.Flags().Bool("json", false, "output as JSON")
	typesCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(typesCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	c, err := chunkingService.Classify(commandContext(cmd), text)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, c)
	}
	cmd.Print(renderClassification(c))
	return nil
}

func runTypes(cmd *cobra.Command, _ []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}

	types := chunkingService.DocumentTypes()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, types)
	}
	cmd.Print(renderTypes(types))
	return nil
}
