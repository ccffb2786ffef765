package analysis

import "github.com/mijsu/LabVioUltimatum/pkg/common/models"

func classifyLipid(values map[string]interface{}) *evaluation {
	eval := newEvaluation()

	chol := numberOrDefault(values, defaultCholesterol, "cholesterol", "total_cholesterol", "totalCholesterol")
	finding := models.ParameterFinding{
		Parameter:   "Total Cholesterol",
		Value:       displayValue(values, chol, "cholesterol", "total_cholesterol", "totalCholesterol"),
		NormalRange: "< 200 mg/dL",
	}
	switch {
	case chol >= 240:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "High total cholesterol, associated with increased cardiovascular risk."
	case chol >= 200:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Borderline-high total cholesterol. Diet and activity changes are usually effective at this stage."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Total cholesterol is at a desirable level."
	}
	eval.add(finding)

	ldl := numberOrDefault(values, defaultLDL, "ldl", "ldl_cholesterol", "ldlCholesterol")
	finding = models.ParameterFinding{
		Parameter:   "LDL",
		Value:       displayValue(values, ldl, "ldl", "ldl_cholesterol", "ldlCholesterol"),
		NormalRange: "< 130 mg/dL",
	}
	switch {
	case ldl >= 160:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "High LDL cholesterol, a primary driver of arterial plaque buildup."
	case ldl >= 130:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Borderline-high LDL cholesterol."
	case ldl >= 100:
		finding.Status = models.StatusNormal
		finding.Interpretation = "LDL cholesterol is near optimal."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "LDL cholesterol is optimal."
	}
	eval.add(finding)

	hdl := numberOrDefault(values, defaultHDL, "hdl", "hdl_cholesterol", "hdlCholesterol")
	finding = models.ParameterFinding{
		Parameter:   "HDL",
		Value:       displayValue(values, hdl, "hdl", "hdl_cholesterol", "hdlCholesterol"),
		NormalRange: ">= 40 mg/dL",
	}
	switch {
	case hdl < 40:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "Low HDL (protective) cholesterol, which raises cardiovascular risk."
	case hdl >= 60:
		finding.Status = models.StatusNormal
		finding.Interpretation = "HDL cholesterol is at an optimal, protective level."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "HDL cholesterol is acceptable."
	}
	eval.add(finding)

	trig := numberOrDefault(values, defaultTriglycerides, "triglycerides")
	finding = models.ParameterFinding{
		Parameter:   "Triglycerides",
		Value:       displayValue(values, trig, "triglycerides"),
		NormalRange: "< 150 mg/dL",
	}
	switch {
	case trig >= 200:
		finding.Status = models.StatusAbnormal
		finding.Interpretation = "High triglycerides, often related to diet, alcohol intake, or metabolic conditions."
	case trig >= 150:
		finding.Status = models.StatusBorderline
		finding.Interpretation = "Borderline-high triglycerides."
	default:
		finding.Status = models.StatusNormal
		finding.Interpretation = "Triglycerides are at a desirable level."
	}
	eval.add(finding)

	return eval
}
