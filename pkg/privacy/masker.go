package privacy

import "regexp"

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// Masker strips direct patient identifiers out of report text and payloads.
// Analysis only needs the measured values, so everything a rule matches is
// replaced before the data leaves the intake path.
type Masker struct {
	rules []compiledRule
}

func NewMasker(cfg RulesConfig) (*Masker, error) {
	var compiled []compiledRule
	for _, rule := range cfg.Rules {
		if !rule.Enabled {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{rule: rule, re: re})
	}
	return &Masker{rules: compiled}, nil
}

// Mask applies every enabled rule to the text.
func (m *Masker) Mask(text string) string {
	if m == nil {
		return text
	}
	masked := text
	for _, rule := range m.rules {
		masked = rule.re.ReplaceAllString(masked, rule.rule.Mask)
	}
	return masked
}

// MaskMap returns a copy of the payload with every string value masked.
// Nested maps and slices are walked; non-string values pass through.
func (m *Masker) MaskMap(data map[string]interface{}) map[string]interface{} {
	if m == nil {
		return data
	}
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		out[key] = m.maskValue(value)
	}
	return out
}

func (m *Masker) maskValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return m.Mask(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, nested := range v {
			out[k] = m.maskValue(nested)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, nested := range v {
			out[i] = m.maskValue(nested)
		}
		return out
	default:
		return value
	}
}
