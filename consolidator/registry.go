// Package consolidator implements the financial data consolidation
// pipeline: it pulls raw data from the upstream restaurant modules through
// the integration gateway, normalizes each source into a canonical
// aggregate, merges them into a consolidated summary with derived KPIs,
// and scores the result for completeness and consistency.
package consolidator

import (
	"time"

	"app/config"
	"app/models"
)

// NormalizerFunc converts a raw upstream payload into the source's
// canonical aggregate. Normalizers are pure and total: malformed or empty
// payloads yield a valid zero-valued aggregate, never an error.
type NormalizerFunc func(raw []byte) models.Aggregate

// SourceDescriptor identifies one upstream data source and how to fetch
// and normalize it. Immutable after ConfigureSources.
type SourceDescriptor struct {
	Name      string
	Module    string
	Endpoint  string
	TTL       time.Duration
	Normalize NormalizerFunc
}

// RequiredSources are the sources the quality evaluator expects on every
// consolidation; marketing is optional.
var RequiredSources = []string{"sales", "expenses", "inventory", "staff"}

// builtinSources returns the default source registry. Fresh descriptors on
// every call so callers can never mutate shared state.
func builtinSources() map[string]SourceDescriptor {
	return map[string]SourceDescriptor{
		"sales": {
			Name:      "sales",
			Module:    "pos",
			Endpoint:  "/sales/transactions",
			TTL:       15 * time.Minute,
			Normalize: NormalizeSales,
		},
		"expenses": {
			Name:      "expenses",
			Module:    "purchasing",
			Endpoint:  "/expenses",
			TTL:       30 * time.Minute,
			Normalize: NormalizeExpenses,
		},
		"inventory": {
			Name:      "inventory",
			Module:    "inventory",
			Endpoint:  "/valuation",
			TTL:       60 * time.Minute,
			Normalize: NormalizeInventory,
		},
		"staff": {
			Name:      "staff",
			Module:    "hr",
			Endpoint:  "/shifts",
			TTL:       30 * time.Minute,
			Normalize: NormalizeStaff,
		},
		"marketing": {
			Name:      "marketing",
			Module:    "marketing",
			Endpoint:  "/campaigns",
			TTL:       60 * time.Minute,
			Normalize: NormalizeMarketing,
		},
	}
}

// ConfigureSources merges the built-in source descriptors with externally
// supplied overrides. Override fields win when set; unknown source names
// in the overrides are ignored (the registry is a fixed set of feeds, new
// ones require a normalizer).
func ConfigureSources(overrides map[string]config.SourceOverride) map[string]SourceDescriptor {
	sources := builtinSources()
	for name, ov := range overrides {
		desc, ok := sources[name]
		if !ok {
			continue
		}
		if ov.Module != "" {
			desc.Module = ov.Module
		}
		if ov.Endpoint != "" {
			desc.Endpoint = ov.Endpoint
		}
		if ov.TTLMinutes > 0 {
			desc.TTL = time.Duration(ov.TTLMinutes) * time.Minute
		}
		sources[name] = desc
	}
	return sources
}
