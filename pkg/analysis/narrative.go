package analysis

import (
	"fmt"
	"strings"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

// composeNarrative renders the summary paragraph. Branches on the outcome:
// all-normal, partially abnormal, or the urinalysis-specific preventive
// framing for borderline-only results with a low statistical risk.
func composeNarrative(kind PanelKind, eval *evaluation, fusedLevel string, external models.RiskAssessment, referrals []models.SpecialistReferral) string {
	if eval.abnormal == 0 && eval.borderline == 0 {
		return allNormalNarrative(eval)
	}

	if kind == PanelUrinalysis && eval.abnormal == 0 && models.RiskRank(external.RiskLevel) == 0 {
		return preventiveUrinalysisNarrative(eval)
	}

	return attentionNarrative(eval, fusedLevel, referrals)
}

func allNormalNarrative(eval *evaluation) string {
	parts := make([]string, 0, len(eval.findings))
	for _, f := range eval.findings {
		parts = append(parts, fmt.Sprintf("%s %s", f.Parameter, f.Value))
	}
	return fmt.Sprintf(
		"Good news: all %d measured parameters are within their normal ranges (%s). Keep up your current health habits and continue with routine checkups.",
		len(eval.findings), strings.Join(parts, ", "))
}

func attentionNarrative(eval *evaluation, fusedLevel string, referrals []models.SpecialistReferral) string {
	var abnormalNames, borderlineNames []string
	for _, f := range eval.findings {
		switch f.Status {
		case models.StatusAbnormal:
			abnormalNames = append(abnormalNames, f.Parameter)
		case models.StatusBorderline:
			borderlineNames = append(borderlineNames, f.Parameter)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d measured parameters need attention.",
		eval.abnormal+eval.borderline, len(eval.findings))
	if len(abnormalNames) > 0 {
		fmt.Fprintf(&b, " Abnormal: %s.", strings.Join(abnormalNames, ", "))
	}
	if len(borderlineNames) > 0 {
		fmt.Fprintf(&b, " Borderline: %s.", strings.Join(borderlineNames, ", "))
	}
	fmt.Fprintf(&b, " The overall risk is assessed as %s.", fusedLevel)
	if len(referrals) > 0 {
		fmt.Fprintf(&b, " We recommend consulting a %s (%s).",
			referrals[0].Specialist, strings.ToLower(referrals[0].Reason))
	}
	return b.String()
}

func preventiveUrinalysisNarrative(eval *evaluation) string {
	var borderlineNames []string
	for _, f := range eval.findings {
		if f.Status == models.StatusBorderline {
			borderlineNames = append(borderlineNames, f.Parameter)
		}
	}
	return fmt.Sprintf(
		"Your urinalysis shows mildly out-of-range results (%s) without any clearly abnormal findings. This pattern is usually not a cause for concern. Maintain good hydration and hygiene, and recheck at your next routine visit.",
		strings.Join(borderlineNames, ", "))
}

func genericNarrative(external models.RiskAssessment) string {
	return fmt.Sprintf(
		"This report type could not be matched to a structured reference panel, so the values were recorded as provided without threshold evaluation. The statistical assessment places the overall risk at %s (score %.0f). Please review the results with your healthcare provider.",
		external.RiskLevel, external.RiskScore)
}
