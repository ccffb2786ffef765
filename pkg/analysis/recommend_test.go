package analysis

import (
	"testing"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

func categories(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Category)
	}
	return out
}

func hasCategory(recs []models.Recommendation, category string) bool {
	for _, r := range recs {
		if r.Category == category {
			return true
		}
	}
	return false
}

func TestBuildRecommendationsCBCCategoryDedup(t *testing.T) {
	// WBC and platelets both abnormal: Folate & B12 qualifies twice but the
	// category appears once.
	eval := classifyCBC(map[string]interface{}{
		"wbc":       15.0,
		"platelets": 100,
	})
	_, dietary := buildRecommendations(PanelCBC, eval)

	count := 0
	for _, r := range dietary {
		if r.Category == "Folate & B12" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Folate & B12 appears %d times, want 1: %v", count, categories(dietary))
	}
}

func TestBuildRecommendationsCBCTiers(t *testing.T) {
	eval := classifyCBC(map[string]interface{}{"hemoglobin": 10.0})
	lifestyle, dietary := buildRecommendations(PanelCBC, eval)
	if !hasCategory(lifestyle, "Stress Reduction") || !hasCategory(lifestyle, "Toxin Avoidance") {
		t.Fatalf("abnormal CBC lifestyle categories wrong: %v", categories(lifestyle))
	}
	if !hasCategory(dietary, "Iron-Rich Foods") {
		t.Fatalf("low hemoglobin should suggest iron-rich foods: %v", categories(dietary))
	}

	eval = classifyCBC(map[string]interface{}{"monocytes": 0.10})
	lifestyle, dietary = buildRecommendations(PanelCBC, eval)
	if !hasCategory(lifestyle, "Recheck Routine") {
		t.Fatalf("borderline CBC should suggest a recheck: %v", categories(lifestyle))
	}
	if !hasCategory(dietary, "Balanced Diet") {
		t.Fatalf("borderline CBC dietary fallback missing: %v", categories(dietary))
	}

	eval = classifyCBC(map[string]interface{}{})
	lifestyle, _ = buildRecommendations(PanelCBC, eval)
	if !hasCategory(lifestyle, "Maintenance") {
		t.Fatalf("normal CBC should suggest maintenance: %v", categories(lifestyle))
	}
}

func TestBuildRecommendationsHydrationEscalation(t *testing.T) {
	// Normal urinalysis keeps the baseline hydration advice only.
	eval := classifyUrinalysis(map[string]interface{}{})
	_, dietary := buildRecommendations(PanelUrinalysis, eval)
	if !hasCategory(dietary, "Hydration") {
		t.Fatalf("baseline hydration advice missing: %v", categories(dietary))
	}
	if hasCategory(dietary, "Hydration Enhancement") {
		t.Fatalf("normal urinalysis must not escalate hydration: %v", categories(dietary))
	}

	// Abnormal urinalysis carries both hydration categories.
	eval = classifyUrinalysis(map[string]interface{}{"pusCells": 20})
	_, dietary = buildRecommendations(PanelUrinalysis, eval)
	if !hasCategory(dietary, "Hydration") || !hasCategory(dietary, "Hydration Enhancement") {
		t.Fatalf("abnormal urinalysis should carry both hydration categories: %v", categories(dietary))
	}
	if !hasCategory(dietary, "Cranberry & Probiotics") {
		t.Fatalf("elevated pus cells should suggest cranberry and probiotics: %v", categories(dietary))
	}
}

func TestBuildRecommendationsGeneralPractitionerFallback(t *testing.T) {
	eval := classifyLipid(map[string]interface{}{})
	buildRecommendations(PanelLipid, eval)
	if len(eval.referrals.items) != 1 {
		t.Fatalf("expected only the fallback referral, got %v", eval.referrals.items)
	}
	ref := eval.referrals.items[0]
	if ref.Specialist != "General Practitioner" || ref.Urgency != models.UrgencyRoutine {
		t.Fatalf("fallback referral wrong: %+v", ref)
	}
}

func TestBuildRecommendationsReferralFirstWins(t *testing.T) {
	// The classifier attaches an urgent urologist for heavy pus cells; the
	// recommendation phase must not downgrade it to soon.
	eval := classifyUrinalysis(map[string]interface{}{"pusCells": 25})
	buildRecommendations(PanelUrinalysis, eval)

	var urologist *models.SpecialistReferral
	for i := range eval.referrals.items {
		if eval.referrals.items[i].Specialist == "Urologist" {
			if urologist != nil {
				t.Fatal("urologist referred twice")
			}
			urologist = &eval.referrals.items[i]
		}
	}
	if urologist == nil {
		t.Fatal("urologist referral missing")
	}
	if urologist.Urgency != models.UrgencyUrgent {
		t.Fatalf("urgent referral downgraded to %s", urologist.Urgency)
	}
}

func TestBuildRecommendationsLipidAbnormalReferral(t *testing.T) {
	eval := classifyLipid(map[string]interface{}{"ldl": 180})
	lifestyle, dietary := buildRecommendations(PanelLipid, eval)
	if !hasCategory(lifestyle, "Cardio Exercise") {
		t.Fatalf("abnormal lipid lifestyle wrong: %v", categories(lifestyle))
	}
	if !hasCategory(dietary, "Heart-Healthy Fats") || !hasCategory(dietary, "Soluble Fiber") {
		t.Fatalf("high LDL dietary advice wrong: %v", categories(dietary))
	}

	found := false
	for _, r := range eval.referrals.items {
		if r.Specialist == "Cardiologist" && r.Urgency == models.UrgencySoon {
			found = true
		}
	}
	if !found {
		t.Fatalf("abnormal lipid should refer to a cardiologist: %v", eval.referrals.items)
	}
}
