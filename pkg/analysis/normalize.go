package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Clinical mid-range defaults substituted for missing or unparseable values.
// Classification proceeds on the default rather than failing the analysis.
const (
	defaultWBC         = 7.5
	defaultRBC         = 4.7
	defaultHemoglobin  = 14.0
	defaultHematocrit  = 42.0
	defaultPlatelets   = 250.0
	defaultNeutrophils = 0.60
	defaultLymphocytes = 0.30
	defaultMonocytes   = 0.05
	defaultEosinophils = 0.02
	defaultBasophils   = 0.005

	defaultCholesterol   = 180.0
	defaultLDL           = 100.0
	defaultHDL           = 55.0
	defaultTriglycerides = 140.0

	defaultUrinePH       = 6.5
	defaultUrineSG       = 1.015
	adequatePlateletsVal = 250.0
)

// rawValue returns the first value present under any of the given keys.
func rawValue(values map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := values[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// parseNumber converts the usual JSON value shapes to a float.
func parseNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// numberOrDefault resolves a numeric parameter, substituting the clinical
// default when the key is absent or the value does not parse.
func numberOrDefault(values map[string]interface{}, def float64, keys ...string) float64 {
	raw, ok := rawValue(values, keys...)
	if !ok {
		return def
	}
	if f, ok := parseNumber(raw); ok {
		return f
	}
	return def
}

// looseNumberOrDefault additionally decodes the textual sentinels the
// upstream extraction step may emit: positive/trace map to 1, negative to 0.
func looseNumberOrDefault(values map[string]interface{}, def float64, keys ...string) float64 {
	raw, ok := rawValue(values, keys...)
	if !ok {
		return def
	}
	if f, ok := parseNumber(raw); ok {
		return f
	}
	if s, ok := raw.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "positive", "trace":
			return 1
		case "negative", "none", "nil":
			return 0
		}
	}
	return def
}

// textOrDefault resolves a categorical parameter as a lowercase token.
func textOrDefault(values map[string]interface{}, def string, keys ...string) string {
	raw, ok := rawValue(values, keys...)
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return strings.ToLower(trimmed)
		}
		return def
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", v)))
	}
}

// displayValue preserves the caller-supplied representation for the finding
// while classification runs on the normalized number. Missing values show
// the substituted default.
func displayValue(values map[string]interface{}, normalized float64, keys ...string) string {
	raw, ok := rawValue(values, keys...)
	if !ok {
		return formatNumber(normalized)
	}
	switch v := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
		return formatNumber(normalized)
	default:
		if f, ok := parseNumber(raw); ok {
			return formatNumber(f)
		}
		return formatNumber(normalized)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
