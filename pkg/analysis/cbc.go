package analysis

import (
	"strings"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

// Extreme derangements flagged for an urgent hematology consult during
// classification. These feed the urgent referral count of risk fusion.
const (
	criticalWBCLow       = 2.0
	criticalWBCHigh      = 30.0
	criticalHemoglobin   = 7.0
	criticalPlateletsLow = 50.0
)

func classifyCBC(values map[string]interface{}) *evaluation {
	eval := newEvaluation()

	wbc := numberOrDefault(values, defaultWBC, "wbc", "white_blood_cells", "whiteBloodCells")
	finding := models.ParameterFinding{
		Parameter:   "WBC",
		Value:       displayValue(values, wbc, "wbc", "white_blood_cells", "whiteBloodCells"),
		NormalRange: "4.5 - 11.0 K/uL",
	}
	switch {
	case wbc < 4.5:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Low white blood cell count (leukopenia). This can weaken the body's defense against infection."
	case wbc > 11.0:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated white blood cell count (leukocytosis), often seen with infection or inflammation."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "White blood cell count is within the normal range."
	}
	eval.add(finding)
	if wbc < criticalWBCLow || wbc > criticalWBCHigh {
		eval.referrals.add("Hematologist", "Critically abnormal white blood cell count", models.UrgencyUrgent)
	}

	rbc := numberOrDefault(values, defaultRBC, "rbc", "red_blood_cells", "redBloodCells")
	finding = models.ParameterFinding{
		Parameter:   "RBC",
		Value:       displayValue(values, rbc, "rbc", "red_blood_cells", "redBloodCells"),
		NormalRange: "4.2 - 5.9 M/uL",
	}
	switch {
	case rbc < 4.2:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Low red blood cell count, which may indicate anemia or blood loss."
	case rbc > 5.9:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated red blood cell count, which may indicate dehydration or polycythemia."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Red blood cell count is within the normal range."
	}
	eval.add(finding)

	hgb := numberOrDefault(values, defaultHemoglobin, "hemoglobin", "hgb")
	finding = models.ParameterFinding{
		Parameter:   "Hemoglobin",
		Value:       displayValue(values, hgb, "hemoglobin", "hgb"),
		NormalRange: "12.0 - 17.5 g/dL",
	}
	switch {
	case hgb < 12.0:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Low hemoglobin suggests anemia. Iron, B12, or folate deficiency are common causes."
	case hgb > 17.5:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated hemoglobin, which may reflect dehydration or a red cell disorder."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Hemoglobin is within the normal range."
	}
	eval.add(finding)
	if hgb < criticalHemoglobin {
		eval.referrals.add("Hematologist", "Severely low hemoglobin", models.UrgencyUrgent)
	}

	hct := numberOrDefault(values, defaultHematocrit, "hematocrit", "hct")
	finding = models.ParameterFinding{
		Parameter:   "Hematocrit",
		Value:       displayValue(values, hct, "hematocrit", "hct"),
		NormalRange: "36 - 50 %",
	}
	switch {
	case hct < 36:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Low hematocrit, consistent with anemia or overhydration."
	case hct > 50:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated hematocrit, consistent with dehydration or polycythemia."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Hematocrit is within the normal range."
	}
	eval.add(finding)

	eval.add(classifyPlatelets(values))
	plt := plateletCount(values)
	if plt < criticalPlateletsLow {
		eval.referrals.add("Hematologist", "Critically low platelet count", models.UrgencyUrgent)
	}

	// Differential counts arrive as fractions of 1.
	neut := numberOrDefault(values, defaultNeutrophils, "neutrophils", "segmenters")
	finding = models.ParameterFinding{
		Parameter:   "Neutrophils",
		Value:       displayValue(values, neut, "neutrophils", "segmenters"),
		NormalRange: "0.54 - 0.70",
	}
	switch {
	case neut < 0.40 || neut > 0.75:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Markedly abnormal neutrophil fraction. Infection, inflammation, or a marrow disorder should be considered."
	case neut < 0.54 || neut > 0.70:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Neutrophil fraction is slightly outside the reference range; often transient."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Neutrophil fraction is within the normal range."
	}
	eval.add(finding)

	lymph := numberOrDefault(values, defaultLymphocytes, "lymphocytes")
	finding = models.ParameterFinding{
		Parameter:   "Lymphocytes",
		Value:       displayValue(values, lymph, "lymphocytes"),
		NormalRange: "0.20 - 0.40",
	}
	switch {
	case lymph < 0.15 || lymph > 0.45:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Markedly abnormal lymphocyte fraction. Viral infection or an immune condition may be responsible."
	case lymph < 0.20 || lymph > 0.40:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Lymphocyte fraction is slightly outside the reference range; often transient."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Lymphocyte fraction is within the normal range."
	}
	eval.add(finding)

	mono := numberOrDefault(values, defaultMonocytes, "monocytes")
	finding = models.ParameterFinding{
		Parameter:   "Monocytes",
		Value:       displayValue(values, mono, "monocytes"),
		NormalRange: "0.02 - 0.08",
	}
	switch {
	case mono > 0.12:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated monocyte fraction, which can accompany chronic infection or inflammation."
	case mono == 0:
		// Zero is deliberately borderline rather than normal or abnormal.
		finding.Status = models.StatusBorderline
		finding.Interpretation = "No monocytes were detected. This is usually benign but worth rechecking."
	case mono < 0.02 || mono > 0.08:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Monocyte fraction is slightly outside the reference range."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Monocyte fraction is within the normal range."
	}
	eval.add(finding)

	eos := numberOrDefault(values, defaultEosinophils, "eosinophils")
	finding = models.ParameterFinding{
		Parameter:   "Eosinophils",
		Value:       displayValue(values, eos, "eosinophils"),
		NormalRange: "0 - 0.05",
	}
	switch {
	case eos > 0.08:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated eosinophil fraction, often related to allergy or parasitic infection."
	case eos > 0.05:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Mildly elevated eosinophil fraction; allergies are a common cause."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Eosinophil fraction is within the normal range."
	}
	eval.add(finding)

	baso := numberOrDefault(values, defaultBasophils, "basophils")
	finding = models.ParameterFinding{
		Parameter:   "Basophils",
		Value:       displayValue(values, baso, "basophils"),
		NormalRange: "0 - 0.01",
	}
	switch {
	case baso > 0.02:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated basophil fraction; uncommon and worth a clinical review."
	case baso > 0.01:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Mildly elevated basophil fraction."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Basophil fraction is within the normal range."
	}
	eval.add(finding)

	// Stab (band) cells are only evaluated when the report provides a
	// nonzero reading.
	if stab := numberOrDefault(values, 0, "stab_cells", "stabCells", "stabs", "bands"); stab > 0 {
		finding = models.ParameterFinding{
			Parameter:   "Stab Cells",
			Value:       displayValue(values, stab, "stab_cells", "stabCells", "stabs", "bands"),
			NormalRange: "0 - 0.05",
		}
		switch {
		case stab > 0.10:
			finding.Status = models.StatusAbnormal
			finding.Interpretation = "Markedly elevated band cells (left shift), suggesting an active infection."
		case stab > 0.05:
			finding.Status = models.StatusBorderline
			finding.Interpretation = "Mildly elevated band cells, which can accompany early infection."
		default:
			finding.Status = models.StatusNormal
			finding.Interpretation = "Band cell fraction is within the normal range."
		}
		eval.add(finding)
	}

	return eval
}

// classifyPlatelets handles the textual "adequate" sentinel: the reading is
// treated as a normal representative count while the original text is kept
// for display.
func classifyPlatelets(values map[string]interface{}) models.ParameterFinding {
	plt := plateletCount(values)
	display := displayValue(values, plt, "platelets", "platelet_count", "plateletCount")
	if isAdequatePlatelets(values) {
		if raw, ok := rawValue(values, "platelets", "platelet_count", "plateletCount"); ok {
			if s, ok := raw.(string); ok {
				display = strings.TrimSpace(s)
			}
		}
	}

	finding := models.ParameterFinding{
		Parameter:   "Platelets",
		Value:       display,
		NormalRange: "150 - 400 K/uL",
	}
	switch {
	case plt < 150:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Low platelet count (thrombocytopenia), which can increase bleeding risk."
	case plt > 400:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Elevated platelet count (thrombocytosis)."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Platelet count is within the normal range."
	}
	return finding
}

func plateletCount(values map[string]interface{}) float64 {
	if isAdequatePlatelets(values) {
		return adequatePlateletsVal
	}
	return numberOrDefault(values, defaultPlatelets, "platelets", "platelet_count", "plateletCount")
}

func isAdequatePlatelets(values map[string]interface{}) bool {
	raw, ok := rawValue(values, "platelets", "platelet_count", "plateletCount")
	if !ok {
		return false
	}
	s, ok := raw.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), "adequate")
}
