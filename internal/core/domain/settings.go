package domain

// ChunkingSettings holds defaults applied to chunking calls.
type ChunkingSettings struct {
	// DefaultOverlap is the overlap in words used when a call does not set one.
	DefaultOverlap int

	// HighQuality is the score at or above which a chunk counts as high quality.
	HighQuality float64

	// LowQualityFloor is the score below which a chunk counts as low quality.
	LowQualityFloor float64
}

// Level buckets a score with these thresholds.
func (c ChunkingSettings) Level(score float64) QualityLevel {
	switch {
	case score >= c.HighQuality:
		return QualityHigh
	case score >= c.LowQualityFloor:
		return QualityMedium
	default:
		return QualityLow
	}
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address (e.g. ":8000").
	Addr string

	// RateLimit is the sustained number of requests per second. Zero disables limiting.
	RateLimit float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int

	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes int64
}

// HistorySettings holds run journal configuration.
type HistorySettings struct {
	// Enabled turns the journal on. Only statistics are stored, never text.
	Enabled bool

	// Keep is how many runs to retain. Older runs are pruned on save.
	Keep int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Chunking holds chunking defaults.
	Chunking ChunkingSettings

	// Server holds HTTP API settings.
	Server ServerSettings

	// History holds run journal settings.
	History HistorySettings

	// Pipeline holds post-processor pipeline settings.
	Pipeline PipelineConfig
}

// DefaultAppSettings returns settings with sensible defaults.
// The run journal is off until explicitly enabled.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			DefaultOverlap:  15,
			HighQuality:     0.8,
			LowQualityFloor: 0.5,
		},
		Server: ServerSettings{
			Addr:         ":8000",
			RateLimit:    20,
			Burst:        40,
			MaxBodyBytes: 10 << 20,
		},
		History: HistorySettings{
			Enabled: false,
			Keep:    500,
		},
		Pipeline: DefaultPipelineConfig(),
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration:
// segmentation, then entity extraction, then quality scoring.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"segmenter", "entities", "quality"},
		ProcessorConfigs: map[string]map[string]any{
			"quality": {
				"completeness": 0.25,
				"coherence":    0.15,
				"density":      0.25,
				"length":       0.20,
				"entities":     0.15,
			},
		},
	}
}
