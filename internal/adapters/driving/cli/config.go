package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.legalchunk/config.toml.

Keys use dot notation, e.g. "chunking.default_overlap" or
"processors.quality.density" for per-processor options.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Set a setting by its dotted key. Lists are comma separated.

Examples:
  legalchunk config set chunking.default_overlap 20
  legalchunk config set chunking.processors segmenter,entities,quality
  legalchunk config set history.enabled true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Prompt for the main settings one by one. Press enter to keep the current value.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Default overlap: %d words\n", settings.Chunking.DefaultOverlap)
	cmd.Printf("  High quality:    >= %.2f\n", settings.Chunking.HighQuality)
	cmd.Printf("  Low quality:     < %.2f\n", settings.Chunking.LowQualityFloor)
	cmd.Printf("  Processors:      %s\n", strings.Join(settings.Pipeline.Processors, ", "))
	for _, name := range sortedProcessorNames(settings.Pipeline.ProcessorConfigs) {
		opts := settings.Pipeline.ProcessorConfigs[name]
		keys := make([]string, 0, len(opts))
		for k := range opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("    %s.%s = %v\n", name, k, opts[k])
		}
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address:         %s\n", settings.Server.Addr)
	cmd.Printf("  Rate limit:      %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	cmd.Printf("  Max body:        %d bytes\n", settings.Server.MaxBodyBytes)
	cmd.Println()

	cmd.Println("[History]")
	if settings.History.Enabled {
		cmd.Printf("  Enabled: yes (keep %d runs)\n", settings.History.Keep)
	} else {
		cmd.Println("  Enabled: no")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			cmd.Println("Run 'legalchunk config keys' to list the known keys.")
		}
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return errors.New("config file not configured")
	}
	cmd.Println(configPath)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

// wizardPrompt is one question of the setup wizard.
type wizardPrompt struct {
	key     string
	label   string
	current func(domain.AppSettings) string
}

var wizardPrompts = []wizardPrompt{
	{"chunking.default_overlap", "Default overlap in words", func(s domain.AppSettings) string {
		return fmt.Sprint(s.Chunking.DefaultOverlap)
	}},
	{"chunking.high_quality", "High quality threshold", func(s domain.AppSettings) string {
		return fmt.Sprint(s.Chunking.HighQuality)
	}},
	{"chunking.low_quality_floor", "Low quality floor", func(s domain.AppSettings) string {
		return fmt.Sprint(s.Chunking.LowQualityFloor)
	}},
	{"server.addr", "HTTP listen address", func(s domain.AppSettings) string {
		return s.Server.Addr
	}},
	{"history.enabled", "Record run history (true/false)", func(s domain.AppSettings) string {
		return fmt.Sprint(s.History.Enabled)
	}},
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("legalchunk Settings Wizard")
	cmd.Println("==========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	changed := 0
	for _, p := range wizardPrompts {
		current := p.current(*settings)
		cmd.Printf("%s [%s]: ", p.label, current)
		input, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
		if input == "" || input == current {
			continue
		}
		if err := settingsService.Set(p.key, input); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.key, err)
		}
		changed++
	}

	cmd.Println()
	cmd.Printf("Saved %d change(s).\n", changed)
	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	return strings.TrimSpace(input), err
}

func sortedProcessorNames(configs map[string]map[string]any) []string {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
