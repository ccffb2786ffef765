package analysis

import (
	"math"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

// ClinicalCounts are the rule-side inputs to risk fusion, derived from one
// classification pass.
type ClinicalCounts struct {
	Abnormal        int
	Borderline      int
	UrgentReferrals int
	SoonReferrals   int
}

// clinicalRisk evaluates the deterministic severity rules in order and
// returns the first match.
func clinicalRisk(c ClinicalCounts) (rank int, score float64) {
	switch {
	case c.UrgentReferrals > 0 || c.Abnormal >= 3:
		return 2, math.Min(100, 75+5*float64(c.Abnormal)+10*float64(c.UrgentReferrals))
	case c.SoonReferrals > 0 || c.Abnormal >= 2:
		return 1, math.Min(100, 50+5*float64(c.Abnormal)+5*float64(c.SoonReferrals))
	case c.Abnormal >= 1 || c.Borderline >= 2:
		return 1, math.Min(100, 40+3*float64(c.Abnormal)+2*float64(c.Borderline))
	case c.Borderline >= 1:
		return 0, 25 + 2*float64(c.Borderline)
	default:
		return 0, 15
	}
}

// FuseRisk combines the statistical assessment with the clinical rule
// outcome. The statistical side may escalate but never downgrade what the
// rules determined: fused rank and score are the max of both sides, the
// score clamped to 100.
func FuseRisk(external models.RiskAssessment, counts ClinicalCounts) (string, float64) {
	externalRank := models.RiskRank(external.RiskLevel)
	ruleRank, ruleScore := clinicalRisk(counts)

	fusedRank := externalRank
	if ruleRank > fusedRank {
		fusedRank = ruleRank
	}

	fusedScore := math.Min(100, math.Max(external.RiskScore, ruleScore))
	return models.RiskLevelForRank(fusedRank), fusedScore
}
