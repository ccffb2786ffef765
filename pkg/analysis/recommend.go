package analysis

import "github.com/mijsu/LabVioUltimatum/pkg/common/models"

// buildRecommendations derives lifestyle and dietary guidance from the
// classification outcome and appends the recommendation-phase referrals to
// the evaluation's referral list. Runs after risk fusion; referrals added
// here never alter the fused risk.
func buildRecommendations(kind PanelKind, eval *evaluation) (lifestyle, dietary []models.Recommendation) {
	life := newRecommendationList()
	diet := newRecommendationList()

	switch kind {
	case PanelCBC:
		recommendCBC(eval, life, diet)
	case PanelLipid:
		recommendLipid(eval, life, diet)
	case PanelUrinalysis:
		recommendUrinalysis(eval, life, diet)
	}

	// Hard invariant: an analysis never leaves the patient without a
	// referral target.
	if eval.referrals.empty() {
		eval.referrals.add("General Practitioner", "Routine review of laboratory results", models.UrgencyRoutine)
	}

	return life.items, diet.items
}

func recommendCBC(eval *evaluation, life, diet *recommendationList) {
	if eval.abnormal > 0 {
		life.add("Stress Reduction",
			"Prioritize sleep and build in daily wind-down time.",
			"Chronic stress and poor sleep can distort blood cell counts.")
		life.add("Toxin Avoidance",
			"Avoid tobacco smoke, excess alcohol, and unnecessary chemical exposure.",
			"These exposures suppress or irritate blood cell production.")
	} else if eval.borderline > 0 {
		life.add("Recheck Routine",
			"Maintain your usual routine and repeat the blood count at your next visit.",
			"Borderline counts frequently normalize on their own.")
	} else {
		life.add("Maintenance",
			"Keep up your current habits of balanced diet, activity, and regular checkups.",
			"All blood count values are within normal limits.")
	}

	if eval.isAbnormal("Hemoglobin") || eval.isAbnormal("RBC") || eval.isAbnormal("Hematocrit") {
		diet.add("Iron-Rich Foods",
			"Add lean red meat, beans, lentils, and dark leafy greens to your meals.",
			"Low red cell measures often respond to better iron intake.")
	}
	if eval.isAbnormal("WBC") {
		diet.add("Vitamin C",
			"Include citrus fruits, berries, and peppers daily.",
			"Vitamin C supports white blood cell function.")
		diet.add("Folate & B12",
			"Include eggs, dairy, fortified grains, and leafy greens.",
			"Folate and B12 are required for healthy blood cell production.")
	}
	if eval.isAbnormal("Platelets") {
		diet.add("Folate & B12",
			"Include eggs, dairy, fortified grains, and leafy greens.",
			"Folate and B12 are required for healthy blood cell production.")
	}
	if len(diet.items) == 0 {
		diet.add("Balanced Diet",
			"Continue a varied diet with adequate protein, fruits, and vegetables.",
			"No dietary correction is indicated by this blood count.")
	}

	if eval.abnormal > 0 {
		eval.referrals.add("Hematologist", "Abnormal blood count values", models.UrgencySoon)
	}
}

func recommendLipid(eval *evaluation, life, diet *recommendationList) {
	if eval.abnormal > 0 {
		life.add("Cardio Exercise",
			"Aim for at least 150 minutes of moderate aerobic exercise per week.",
			"Regular aerobic activity improves cholesterol balance.")
	} else if eval.borderline > 0 {
		life.add("Regular Activity",
			"Add brisk walking or similar activity most days of the week.",
			"Early activity changes prevent borderline lipids from progressing.")
	} else {
		life.add("Maintenance",
			"Keep up your current diet and activity pattern.",
			"Your lipid profile is at desirable levels.")
	}

	if eval.isAbnormal("LDL") || eval.isAbnormal("Total Cholesterol") ||
		eval.statusOf("LDL") == models.StatusBorderline || eval.statusOf("Total Cholesterol") == models.StatusBorderline {
		diet.add("Heart-Healthy Fats",
			"Replace saturated fats with olive oil, nuts, and fatty fish.",
			"Unsaturated fats lower LDL cholesterol.")
		diet.add("Soluble Fiber",
			"Add oats, beans, and fruit to daily meals.",
			"Soluble fiber binds cholesterol and lowers LDL.")
	}
	if eval.isAbnormal("Triglycerides") || eval.statusOf("Triglycerides") == models.StatusBorderline {
		diet.add("Limit Sugars & Alcohol",
			"Cut back on sweetened drinks, refined carbohydrates, and alcohol.",
			"These are the main dietary drivers of high triglycerides.")
	}
	if eval.isAbnormal("HDL") {
		diet.add("Omega-3 Intake",
			"Eat fatty fish twice a week or consider an omega-3 supplement.",
			"Omega-3 fats help raise protective HDL cholesterol.")
	}
	if len(diet.items) == 0 {
		diet.add("Balanced Diet",
			"Continue a varied diet low in saturated fat.",
			"No dietary correction is indicated by this lipid profile.")
	}

	if eval.abnormal > 0 {
		eval.referrals.add("Cardiologist", "Unfavorable lipid profile", models.UrgencySoon)
	}
}

func recommendUrinalysis(eval *evaluation, life, diet *recommendationList) {
	if eval.abnormal > 0 {
		life.add("Medical Follow-Up",
			"Arrange a follow-up visit and a repeat urinalysis promptly.",
			"Abnormal urine findings need confirmation and treatment when present.")
	} else if eval.borderline > 0 {
		life.add("Preventive Habits",
			"Practice good hygiene and avoid prolonged urine holding.",
			"Simple habits prevent most borderline urine findings from progressing.")
	} else {
		life.add("Maintenance",
			"Keep up your current hydration and hygiene habits.",
			"All urinalysis values are within normal limits.")
	}

	// Baseline hydration advice is always present; an abnormal result
	// escalates with a deliberately distinct category so both coexist.
	diet.add("Hydration",
		"Drink 6 to 8 glasses of water daily.",
		"Adequate hydration keeps urine dilute and flushes the urinary tract.")
	if eval.abnormal > 0 {
		diet.add("Hydration Enhancement",
			"Increase water intake further until findings normalize, unless fluid restricted.",
			"Extra fluid intake supports clearing of urinary tract irritation.")
	}
	if eval.isAbnormal("Pus Cells") || eval.isAbnormal("Bacteria") {
		diet.add("Cranberry & Probiotics",
			"Consider unsweetened cranberry products and probiotic foods.",
			"These may reduce bacterial adherence in the urinary tract.")
	}
	if eval.isAbnormal("Protein") {
		diet.add("Low-Sodium Diet",
			"Reduce added salt and processed foods.",
			"Lower sodium intake reduces kidney workload when protein is present in urine.")
	}
	if eval.isAbnormal("Glucose") {
		diet.add("Limit Sugars",
			"Cut back on sweetened drinks and refined carbohydrates.",
			"Urinary glucose usually reflects elevated blood sugar.")
	}

	if eval.abnormal > 0 {
		// Suppressed automatically when the classifier already attached an
		// urgent urology referral.
		eval.referrals.add("Urologist", "Abnormal urinalysis findings", models.UrgencySoon)
	}
}
