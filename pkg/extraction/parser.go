package extraction

import (
	"regexp"
	"strings"
)

// Patterns for the values printed on scanned lab reports. Matching runs on
// the uppercased text so casing on the report does not matter.
var numericPatterns = map[string]*regexp.Regexp{
	"wbc":              regexp.MustCompile(`(?:WBC|WHITE BLOOD CELL)[^0-9]*([0-9.]+)`),
	"rbc":              regexp.MustCompile(`(?:RBC|RED BLOOD CELL)[^0-9]*([0-9.]+)`),
	"hemoglobin":       regexp.MustCompile(`(?:HEMOGLOBIN|HGB)[^0-9]*([0-9.]+)`),
	"hematocrit":       regexp.MustCompile(`(?:HEMATOCRIT|HCT)[^0-9]*([0-9.]+)`),
	"platelets":        regexp.MustCompile(`PLATELET[^0-9]*([0-9.]+)`),
	"neutrophils":      regexp.MustCompile(`(?:NEUTROPHIL|SEGMENTER)S?[^0-9]*([0-9.]+)`),
	"lymphocytes":      regexp.MustCompile(`LYMPHOCYTES?[^0-9]*([0-9.]+)`),
	"monocytes":        regexp.MustCompile(`MONOCYTES?[^0-9]*([0-9.]+)`),
	"eosinophils":      regexp.MustCompile(`EOSINOPHILS?[^0-9]*([0-9.]+)`),
	"basophils":        regexp.MustCompile(`BASOPHILS?[^0-9]*([0-9.]+)`),
	"cholesterol":      regexp.MustCompile(`(?:TOTAL )?CHOLESTEROL[^0-9]*([0-9.]+)`),
	"ldl":              regexp.MustCompile(`LDL[^0-9]*([0-9.]+)`),
	"hdl":              regexp.MustCompile(`HDL[^0-9]*([0-9.]+)`),
	"triglycerides":    regexp.MustCompile(`TRIGLYCERIDES?[^0-9]*([0-9.]+)`),
	"ph":               regexp.MustCompile(`\bPH[^0-9]*([0-9.]+)`),
	"specific_gravity": regexp.MustCompile(`SPECIFIC GRAVITY[^0-9]*([0-9.]+)`),
	"pus_cells":        regexp.MustCompile(`PUS CELLS?[^0-9]*([0-9]+)`),
	"red_cells":        regexp.MustCompile(`(?:RED CELLS?|RBC/HPF)[^0-9]*([0-9]+)`),
}

var textPatterns = map[string]*regexp.Regexp{
	"color":    regexp.MustCompile(`COLOR[:\s]+([A-Z ]+)`),
	"clarity":  regexp.MustCompile(`(?:CLARITY|TRANSPARENCY)[:\s]+([A-Z ]+)`),
	"protein":  regexp.MustCompile(`(?:PROTEIN|ALBUMIN)[:\s]+([A-Z+ ]+)`),
	"glucose":  regexp.MustCompile(`(?:GLUCOSE|SUGAR)[:\s]+([A-Z+ ]+)`),
	"bacteria": regexp.MustCompile(`BACTERIA[:\s]+([A-Z ]+)`),
}

// panelHints recognize the report header when the explicit lab type is
// missing. Order matters: urinalysis before the generic urine token.
var panelHints = []struct {
	token string
	panel string
}{
	{"COMPLETE BLOOD COUNT", "cbc"},
	{"CBC", "cbc"},
	{"URINALYSIS", "urinalysis"},
	{"URINE", "urinalysis"},
	{"LIPID", "lipid"},
}

// ParseReport extracts lab values from raw report text with pattern
// matching. It is the fallback when the language-model extractor is
// unavailable, and covers the common formats of printed CBC, lipid, and
// urinalysis reports.
func ParseReport(text string) (labType string, values map[string]interface{}) {
	clean := strings.ToUpper(text)
	values = make(map[string]interface{})

	for _, hint := range panelHints {
		if strings.Contains(clean, hint.token) {
			labType = hint.panel
			break
		}
	}

	for key, re := range numericPatterns {
		if match := re.FindStringSubmatch(clean); len(match) >= 2 {
			values[key] = strings.TrimSpace(match[1])
		}
	}
	for key, re := range textPatterns {
		if match := re.FindStringSubmatch(clean); len(match) >= 2 {
			token := strings.ToLower(strings.TrimSpace(match[1]))
			if token != "" {
				values[key] = token
			}
		}
	}

	// Lipid panels reuse the cholesterol token inside HDL/LDL lines; keep
	// only the total when the specific fractions were already captured.
	if _, ok := values["ldl"]; ok {
		labType = pickLabType(labType, "lipid")
	}
	return labType, values
}

func pickLabType(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}
