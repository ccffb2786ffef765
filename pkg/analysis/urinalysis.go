package analysis

import (
	"strings"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

func classifyUrinalysis(values map[string]interface{}) *evaluation {
	eval := newEvaluation()

	color := textOrDefault(values, "yellow", "color", "colour")
	// Color alone is weak evidence and never drives the status; the reading
	// is echoed back as a normal finding.
	eval.add(models.ParameterFinding{
		Parameter:      "Color",
		Value:          strings.Title(color),
		NormalRange:    "Yellow",
		Status:         models.StatusNormal,
		Interpretation: "Urine color noted. Color varies with hydration and diet.",
	})

	clarity := textOrDefault(values, "clear", "clarity", "transparency", "appearance")
	finding := models.ParameterFinding{
		Parameter:   "Clarity",
		Value:       strings.Title(clarity),
		NormalRange: "Clear",
	}
	switch {
	case strings.Contains(clarity, "turbid"):
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Turbid urine, which can indicate infection, crystals, or cellular debris."
	case strings.Contains(clarity, "hazy") || strings.Contains(clarity, "cloudy"):
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Slightly cloudy urine; often benign but worth rechecking."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Urine is clear."
	}
	eval.add(finding)

	ph := numberOrDefault(values, defaultUrinePH, "ph")
	finding = models.ParameterFinding{
		Parameter:   "pH",
		Value:       displayValue(values, ph, "ph"),
		NormalRange: "5.5 - 7.5",
	}
	switch {
	case ph < 4.5 || ph > 8.0:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Urine pH is markedly outside the expected range."
	case ph < 5.5 || ph > 7.5:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Urine pH is slightly outside the expected range, commonly diet related."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Urine pH is within the normal range."
	}
	eval.add(finding)

	sg := numberOrDefault(values, defaultUrineSG, "specific_gravity", "specificGravity", "sg")
	finding = models.ParameterFinding{
		Parameter:   "Specific Gravity",
		Value:       displayValue(values, sg, "specific_gravity", "specificGravity", "sg"),
		NormalRange: "1.005 - 1.030",
	}
	switch {
	case sg < 1.005 || sg > 1.030:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Urine concentration is outside the expected range, which may reflect hydration extremes or kidney concentrating issues."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Urine concentration is within the normal range."
	}
	eval.add(finding)

	protein := proteinCategory(values)
	finding = models.ParameterFinding{
		Parameter:   "Protein",
		Value:       strings.Title(protein),
		NormalRange: "Negative",
	}
	switch protein {
	case "positive":
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Protein detected in urine (proteinuria), an indicator of kidney stress."
		eval.referrals.add("Nephrologist", "Protein detected in urine", models.UrgencySoon)
	case "trace":
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Trace protein in urine; can follow exercise, fever, or dehydration."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "No protein detected in urine."
	}
	eval.add(finding)

	glucose := looseNumberOrDefault(values, 0, "glucose", "sugar")
	finding = models.ParameterFinding{
		Parameter:   "Glucose",
		Value:       displayValue(values, glucose, "glucose", "sugar"),
		NormalRange: "Negative",
	}
	if glucose > 0 {
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Glucose detected in urine, which can accompany elevated blood sugar."
		eval.referrals.add("Endocrinologist", "Glucose detected in urine", models.UrgencySoon)
	} else {
		finding.Status = models.StatusNormal
		finding.Interpretation = "No glucose detected in urine."
	}
	eval.add(finding)

	pus := looseNumberOrDefault(values, 0, "pus_cells", "pusCells", "wbc_hpf")
	finding = models.ParameterFinding{
		Parameter:   "Pus Cells",
		Value:       displayValue(values, pus, "pus_cells", "pusCells", "wbc_hpf"),
		NormalRange: "0 - 5 /HPF",
	}
	switch {
	case pus > 15:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Markedly elevated pus cells, strongly suggesting a urinary tract infection."
		eval.referrals.add("Urologist", "Markedly elevated pus cells in urine", models.UrgencyUrgent)
	case pus > 5:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Mildly elevated pus cells; possible early or resolving infection."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Pus cells are within the normal range."
	}
	eval.add(finding)

	rbc := looseNumberOrDefault(values, 0, "red_cells", "redCells", "rbc_hpf")
	finding = models.ParameterFinding{
		Parameter:   "Red Cells",
		Value:       displayValue(values, rbc, "red_cells", "redCells", "rbc_hpf"),
		NormalRange: "0 - 3 /HPF",
	}
	switch {
	case rbc > 15:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Marked blood in urine (hematuria). This needs prompt evaluation."
		eval.referrals.add("Urologist", "Marked blood in urine", models.UrgencyUrgent)
	case rbc > 3:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Mildly elevated red cells in urine."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Red cells are within the normal range."
	}
	eval.add(finding)

	bacteria := textOrDefault(values, "none", "bacteria")
	finding = models.ParameterFinding{
		Parameter:   "Bacteria",
		Value:       strings.Title(bacteria),
		NormalRange: "None",
	}
	switch {
	case strings.Contains(bacteria, "moderate") || strings.Contains(bacteria, "many"):
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Significant bacteria in urine, consistent with a urinary tract infection."
	case strings.Contains(bacteria, "few") || strings.Contains(bacteria, "occasional"):
		finding.Status = models.StatusBorderline
		finding.Interpretation = "A few bacteria seen; may be contamination or early infection."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "No significant bacteria seen."
	}
	eval.add(finding)

	return eval
}

// proteinCategory folds numeric and textual protein readings into the
// negative/trace/positive vocabulary.
func proteinCategory(values map[string]interface{}) string {
	raw, ok := rawValue(values, "protein", "albumin")
	if !ok {
		return "negative"
	}
	if f, isNum := parseNumber(raw); isNum {
		if f > 0 {
			return "positive"
		}
		return "negative"
	}
	s, isStr := raw.(string)
	if !isStr {
		return "negative"
	}
	token := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(token, "trace"):
		return "trace"
	case strings.Contains(token, "+") || strings.Contains(token, "positive"):
		return "positive"
	default:
		return "negative"
	}
}
