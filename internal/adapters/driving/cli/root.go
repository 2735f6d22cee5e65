// Package cli implements the legalchunk command line. Commands are
// registered on rootCmd in their init functions and reach the core through
// the driving ports set with SetServices.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
	"github.com/custodia-labs/legalchunk/internal/logger"
)

var (
	version = "dev"
	verbose bool

	chunkingService driving.ChunkingService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	documentLoader  driving.DocumentLoader
	configPath      string
)

// Services holds the driving ports the commands use.
type Services struct {
	Chunking   driving.ChunkingService
	Settings   driving.SettingsService
	History    driving.HistoryService
	Loader     driving.DocumentLoader
	ConfigPath string
}

var rootCmd = &cobra.Command{
	Use:   "legalchunk",
	Short: "Chunk French legal and construction documents for retrieval",
	Long: `legalchunk splits French legal and construction documents (VEFA
reservation contracts, CCTP, notarial deeds, leases, building permits,
quotes) into retrieval-ready chunks.

Each chunk carries its word count, a quality score, its dominant content
type, the entities it mentions and the document-level metadata (title,
date, parties, project, source reference).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages to stderr")
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	chunkingService = s.Chunking
	settingsService = s.Settings
	historyService = s.History
	documentLoader = s.Loader
	configPath = s.ConfigPath
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context that long-running
// commands (serve, watch, mcp serve) stop on.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// intFlag returns a pointer to an int flag's value when it was set.
func intFlag(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, fmt.Errorf("getting %s flag: %w", name, err)
	}
	return &v, nil
}

// readInput returns the text of a file argument, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	if documentLoader == nil {
		return "", fmt.Errorf("%w: document loader not configured", domain.ErrUnsupportedType)
	}
	text, err := documentLoader.Load(commandContext(cmd), args[0])
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	return text, nil
}

// currentSettings returns the stored settings, or the defaults.
func currentSettings() domain.AppSettings {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s != nil {
			return *s
		}
	}
	return domain.DefaultAppSettings()
}
