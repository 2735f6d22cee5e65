package postprocessors

import (
	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
	"github.com/custodia-labs/legalchunk/internal/extractor"
	"github.com/custodia-labs/legalchunk/internal/lexicon"
	"github.com/custodia-labs/legalchunk/internal/postprocessors/entities"
	"github.com/custodia-labs/legalchunk/internal/postprocessors/quality"
	"github.com/custodia-labs/legalchunk/internal/postprocessors/segmenter"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry, lex *lexicon.Lexicon) {
	r.Register("segmenter", func(cfg map[string]any) (driven.PostProcessor, error) {
		return buildSegmenter(lex, cfg), nil
	})
	r.Register("entities", func(_ map[string]any) (driven.PostProcessor, error) {
		return entities.New(extractor.New(lex)), nil
	})
	r.Register("quality", func(cfg map[string]any) (driven.PostProcessor, error) {
		return buildQuality(lex, cfg), nil
	})
}

// buildSegmenter creates a segmenter processor from generic config.
// The band and overlap only apply to documents without adaptive parameters.
// Supported config keys:
//   - min_words, target_words, max_words (int): fallback band (default: 40/60/80)
//   - overlap (int): fallback overlap in words (default: 15)
func buildSegmenter(lex *lexicon.Lexicon, cfg map[string]any) driven.PostProcessor {
	var opts []segmenter.Option

	if cfg != nil {
		band := domain.Band{
			Min:    getIntFromConfig(cfg, "min_words"),
			Target: getIntFromConfig(cfg, "target_words"),
			Max:    getIntFromConfig(cfg, "max_words"),
		}
		if band.Valid() {
			opts = append(opts, segmenter.WithBand(band))
		}
		if _, ok := cfg["overlap"]; ok {
			opts = append(opts, segmenter.WithOverlap(getIntFromConfig(cfg, "overlap")))
		}
	}

	return segmenter.New(lex, opts...)
}

// buildQuality creates a quality processor from generic config.
// Supported config keys (float, normalised to sum to 1):
//   - completeness, coherence, density, length, entities
func buildQuality(lex *lexicon.Lexicon, cfg map[string]any) driven.PostProcessor {
	weights := quality.DefaultWeights

	if len(cfg) > 0 {
		weights = quality.Weights{
			Completeness:   getFloatFromConfig(cfg, "completeness", quality.DefaultWeights.Completeness),
			Coherence:      getFloatFromConfig(cfg, "coherence", quality.DefaultWeights.Coherence),
			Density:        getFloatFromConfig(cfg, "density", quality.DefaultWeights.Density),
			LengthAdequacy: getFloatFromConfig(cfg, "length", quality.DefaultWeights.LengthAdequacy),
			EntityRichness: getFloatFromConfig(cfg, "entities", quality.DefaultWeights.EntityRichness),
		}
	}

	return quality.New(quality.NewScorer(lex, weights))
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// getFloatFromConfig extracts a non-negative float, falling back to def.
func getFloatFromConfig(cfg map[string]any, key string, def float64) float64 {
	val, ok := cfg[key]
	if !ok {
		return def
	}

	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return def
	}
	if f < 0 {
		return def
	}
	return f
}
