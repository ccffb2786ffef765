package analysis

import "github.com/mijsu/LabVioUltimatum/pkg/common/models"

// evaluation accumulates the classification pass for one panel: the ordered
// findings, the status counts feeding risk fusion, and the referrals the
// classifier itself attaches for severe findings.
type evaluation struct {
	findings   []models.ParameterFinding
	abnormal   int
	borderline int
	referrals  *referralList
}

func newEvaluation() *evaluation {
	return &evaluation{referrals: newReferralList()}
}

func (e *evaluation) add(f models.ParameterFinding) {
	e.findings = append(e.findings, f)
	switch f.Status {
	case models.StatusAbnormal:
		e.abnormal++
	case models.StatusBorderline:
		e.borderline++
	}
}

// counts snapshots the four inputs of risk fusion. Referral counts cover
// only classifier-attached referrals; referrals added later by the
// recommendation pass do not influence fusion.
func (e *evaluation) counts() ClinicalCounts {
	return ClinicalCounts{
		Abnormal:        e.abnormal,
		Borderline:      e.borderline,
		UrgentReferrals: e.referrals.countUrgency(models.UrgencyUrgent),
		SoonReferrals:   e.referrals.countUrgency(models.UrgencySoon),
	}
}

func (e *evaluation) statusOf(parameter string) string {
	for _, f := range e.findings {
		if f.Parameter == parameter {
			return f.Status
		}
	}
	return ""
}

func (e *evaluation) isAbnormal(parameter string) bool {
	return e.statusOf(parameter) == models.StatusAbnormal
}

// referralList is an ordered set keyed by specialist type. First wins;
// later additions for an already-referred specialist are suppressed.
type referralList struct {
	seen  map[string]struct{}
	items []models.SpecialistReferral
}

func newReferralList() *referralList {
	return &referralList{seen: make(map[string]struct{})}
}

func (l *referralList) add(specialist, reason, urgency string) bool {
	if _, ok := l.seen[specialist]; ok {
		return false
	}
	l.seen[specialist] = struct{}{}
	l.items = append(l.items, models.SpecialistReferral{
		Specialist: specialist,
		Reason:     reason,
		Urgency:    urgency,
	})
	return true
}

func (l *referralList) countUrgency(urgency string) int {
	count := 0
	for _, r := range l.items {
		if r.Urgency == urgency {
			count++
		}
	}
	return count
}

func (l *referralList) empty() bool {
	return len(l.items) == 0
}

// recommendationList is an ordered set keyed by category. Adding a category
// twice is suppressed; deliberately escalated categories get distinct names.
type recommendationList struct {
	seen  map[string]struct{}
	items []models.Recommendation
}

func newRecommendationList() *recommendationList {
	return &recommendationList{seen: make(map[string]struct{})}
}

func (l *recommendationList) add(category, text, reason string) bool {
	if _, ok := l.seen[category]; ok {
		return false
	}
	l.seen[category] = struct{}{}
	l.items = append(l.items, models.Recommendation{
		Category:       category,
		Recommendation: text,
		Reason:         reason,
	})
	return true
}
