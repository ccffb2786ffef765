package analysis

import (
	"strings"
	"testing"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

func TestComposeNarrativeAllNormal(t *testing.T) {
	eval := classifyLipid(map[string]interface{}{})
	summary := composeNarrative(PanelLipid, eval, models.RiskLow,
		models.RiskAssessment{RiskLevel: models.RiskLow, RiskScore: 10}, nil)

	if !strings.HasPrefix(summary, "Good news: all 4 measured parameters") {
		t.Fatalf("unexpected all-normal summary: %q", summary)
	}
	if !strings.Contains(summary, "Total Cholesterol 180") {
		t.Fatalf("summary should enumerate parameter values: %q", summary)
	}
}

func TestComposeNarrativeAttention(t *testing.T) {
	eval := classifyCBC(map[string]interface{}{
		"wbc":       15.0,
		"monocytes": 0.10,
	})
	referrals := []models.SpecialistReferral{
		{Specialist: "Hematologist", Reason: "Abnormal blood count values", Urgency: models.UrgencySoon},
	}
	summary := composeNarrative(PanelCBC, eval, models.RiskModerate,
		models.RiskAssessment{RiskLevel: models.RiskLow, RiskScore: 10}, referrals)

	if !strings.Contains(summary, "2 of 10 measured parameters need attention.") {
		t.Fatalf("attention count wrong: %q", summary)
	}
	if !strings.Contains(summary, "Abnormal: WBC.") {
		t.Fatalf("abnormal list missing: %q", summary)
	}
	if !strings.Contains(summary, "Borderline: Monocytes.") {
		t.Fatalf("borderline list missing: %q", summary)
	}
	if !strings.Contains(summary, "The overall risk is assessed as moderate.") {
		t.Fatalf("fused level missing: %q", summary)
	}
	if !strings.Contains(summary, "consulting a Hematologist (abnormal blood count values)") {
		t.Fatalf("referral sentence missing: %q", summary)
	}
}

func TestComposeNarrativePreventiveUrinalysis(t *testing.T) {
	eval := classifyUrinalysis(map[string]interface{}{"ph": 5.0})
	external := models.RiskAssessment{RiskLevel: models.RiskLow, RiskScore: 10}

	summary := composeNarrative(PanelUrinalysis, eval, models.RiskLow, external, nil)
	if !strings.Contains(summary, "mildly out-of-range results (pH)") {
		t.Fatalf("preventive framing missing: %q", summary)
	}

	// Same findings with an elevated statistical risk fall back to the
	// standard attention narrative.
	external.RiskLevel = models.RiskModerate
	summary = composeNarrative(PanelUrinalysis, eval, models.RiskModerate, external, nil)
	if !strings.Contains(summary, "need attention") {
		t.Fatalf("expected attention narrative at moderate external risk: %q", summary)
	}
}

func TestGenericNarrative(t *testing.T) {
	summary := genericNarrative(models.RiskAssessment{RiskLevel: models.RiskModerate, RiskScore: 61.4})
	if !strings.Contains(summary, "overall risk at moderate (score 61)") {
		t.Fatalf("unexpected generic summary: %q", summary)
	}
}
