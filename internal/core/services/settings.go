package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultOverlap  = "chunking.default_overlap"
	keyHighQuality     = "chunking.high_quality"
	keyLowQualityFloor = "chunking.low_quality_floor"
	keyProcessors      = "chunking.processors"
	keyServerAddr      = "server.addr"
	keyRateLimit       = "server.rate_limit"
	keyBurst           = "server.burst"
	keyMaxBodyBytes    = "server.max_body_bytes"
	keyHistoryEnabled  = "history.enabled"
	keyHistoryKeep     = "history.keep"

	// processorPrefix introduces per-processor options,
	// e.g. "processors.quality.density".
	processorPrefix = "processors."
)

// settingKind is the value type of a setting key.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

var settingKinds = map[string]settingKind{
	keyDefaultOverlap:  kindInt,
	keyHighQuality:     kindFloat,
	keyLowQualityFloor: kindFloat,
	keyProcessors:      kindList,
	keyServerAddr:      kindString,
	keyRateLimit:       kindFloat,
	keyBurst:           kindInt,
	keyMaxBodyBytes:    kindInt,
	keyHistoryEnabled:  kindBool,
	keyHistoryKeep:     kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			DefaultOverlap:  s.getNonNegativeInt(keyDefaultOverlap, defaults.Chunking.DefaultOverlap),
			HighQuality:     s.getUnitFloat(keyHighQuality, defaults.Chunking.HighQuality),
			LowQualityFloor: s.getUnitFloat(keyLowQualityFloor, defaults.Chunking.LowQualityFloor),
		},
		Server: domain.ServerSettings{
			Addr:         s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit:    s.getNonNegativeFloat(keyRateLimit, defaults.Server.RateLimit),
			Burst:        s.getNonNegativeInt(keyBurst, defaults.Server.Burst),
			MaxBodyBytes: int64(s.getNonNegativeInt(keyMaxBodyBytes, int(defaults.Server.MaxBodyBytes))),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Keep:    s.getNonNegativeInt(keyHistoryKeep, defaults.History.Keep),
		},
		Pipeline: s.pipelineConfig(defaults.Pipeline),
	}

	if settings.Chunking.LowQualityFloor > settings.Chunking.HighQuality {
		settings.Chunking.LowQualityFloor = defaults.Chunking.LowQualityFloor
		settings.Chunking.HighQuality = defaults.Chunking.HighQuality
	}

	return settings, nil
}

// Set parses and stores a single setting by its dotted key.
// Per-processor options ("processors.<name>.<option>") take numbers.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		if !isProcessorKey(key) {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
		kind = kindFloat
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every known setting key, processor options included.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	for _, k := range s.configStore.Keys() {
		if isProcessorKey(k) {
			keys = append(keys, k)
		}
	}
	return sortedUnique(keys)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// pipelineConfig reads the processor list and per-processor options.
// Stored options override the defaults of the same processor key by key.
func (s *SettingsService) pipelineConfig(defaults domain.PipelineConfig) domain.PipelineConfig {
	cfg := domain.PipelineConfig{
		Processors:       defaults.Processors,
		ProcessorConfigs: make(map[string]map[string]any, len(defaults.ProcessorConfigs)),
	}
	if names := s.configStore.GetStringSlice(keyProcessors); len(names) > 0 {
		cfg.Processors = names
	}

	for name, opts := range defaults.ProcessorConfigs {
		copied := make(map[string]any, len(opts))
		for k, v := range opts {
			copied[k] = v
		}
		cfg.ProcessorConfigs[name] = copied
	}

	for _, key := range s.configStore.Keys() {
		if !isProcessorKey(key) {
			continue
		}
		name, option, _ := strings.Cut(strings.TrimPrefix(key, processorPrefix), ".")
		value, _ := s.configStore.Get(key)
		if cfg.ProcessorConfigs[name] == nil {
			cfg.ProcessorConfigs[name] = make(map[string]any)
		}
		cfg.ProcessorConfigs[name][option] = value
	}
	return cfg
}

func isProcessorKey(key string) bool {
	rest, ok := strings.CutPrefix(key, processorPrefix)
	if !ok {
		return false
	}
	name, option, found := strings.Cut(rest, ".")
	return found && name != "" && option != "" && !strings.Contains(option, ".")
}

func parseSetting(kind settingKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("empty list")
		}
		return items, nil
	default:
		if value == "" {
			return nil, fmt.Errorf("empty value")
		}
		return value, nil
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if val := s.configStore.GetInt(key); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getNonNegativeFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if val := s.configStore.GetFloat(key); val >= 0 {
		return val
	}
	return defaultVal
}

// getUnitFloat reads a value that must lie in [0, 1].
func (s *SettingsService) getUnitFloat(key string, defaultVal float64) float64 {
	val := s.getNonNegativeFloat(key, defaultVal)
	if val > 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func sortedUnique(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
