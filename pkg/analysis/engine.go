package analysis

import (
	"strings"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

// PanelKind enumerates the supported panel types. Unrecognized lab type
// strings route to PanelGeneric.
type PanelKind int

const (
	PanelGeneric PanelKind = iota
	PanelCBC
	PanelLipid
	PanelUrinalysis
)

func (k PanelKind) String() string {
	switch k {
	case PanelCBC:
		return "cbc"
	case PanelLipid:
		return "lipid"
	case PanelUrinalysis:
		return "urinalysis"
	default:
		return "generic"
	}
}

// panelAliases is matched by substring against the lowercased lab type, in
// order, mirroring how the upstream predictor maps lab type names.
var panelAliases = []struct {
	substr string
	kind   PanelKind
}{
	{"cbc", PanelCBC},
	{"complete blood", PanelCBC},
	{"urinalysis", PanelUrinalysis},
	{"urine", PanelUrinalysis},
	{"lipid", PanelLipid},
}

// DetectPanel resolves a free-form lab type tag to a panel kind.
func DetectPanel(labType string) PanelKind {
	needle := strings.ToLower(strings.TrimSpace(labType))
	for _, alias := range panelAliases {
		if strings.Contains(needle, alias.substr) {
			return alias.kind
		}
	}
	return PanelGeneric
}

type classifyFunc func(values map[string]interface{}) *evaluation

var classifiers = map[PanelKind]classifyFunc{
	PanelCBC:        classifyCBC,
	PanelLipid:      classifyLipid,
	PanelUrinalysis: classifyUrinalysis,
	PanelGeneric:    classifyGeneric,
}

// LogFunc receives side-channel engine events. It must never influence the
// result; the default is a no-op.
type LogFunc func(event string, fields map[string]interface{})

// Engine is the pure rule-evaluation and risk-fusion core. It holds no
// per-call state; any number of Analyze calls may run concurrently.
type Engine struct {
	log LogFunc
}

type Option func(*Engine)

// WithLogger installs a logging hook for engine events.
func WithLogger(fn LogFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.log = fn
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{log: func(string, map[string]interface{}) {}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze produces the structured clinical interpretation of one panel.
// Missing or malformed values degrade to clinical defaults rather than
// failing; the combined risk is never below either the statistical
// assessment or the clinical rule outcome.
func (e *Engine) Analyze(labType string, values map[string]interface{}, external models.RiskAssessment) models.AnalysisResult {
	kind := DetectPanel(labType)

	if kind == PanelGeneric {
		return e.analyzeGeneric(values, external)
	}

	eval := classifiers[kind](values)
	counts := eval.counts()
	fusedLevel, fusedScore := FuseRisk(external, counts)

	lifestyle, dietary := buildRecommendations(kind, eval)
	summary := composeNarrative(kind, eval, fusedLevel, external, eval.referrals.items)

	e.log("analysis completed", map[string]interface{}{
		"panel":            kind.String(),
		"abnormal_count":   counts.Abnormal,
		"borderline_count": counts.Borderline,
		"fused_risk_level": fusedLevel,
		"fused_risk_score": fusedScore,
	})

	return models.AnalysisResult{
		Summary:              summary,
		Findings:             eval.findings,
		Lifestyle:            lifestyle,
		Dietary:              dietary,
		SuggestedSpecialists: eval.referrals.items,
		CorrectedRiskLevel:   fusedLevel,
		CorrectedRiskScore:   fusedScore,
	}
}

// analyzeGeneric echoes the statistical assessment unchanged: with no
// clinical rules applied there is nothing to fuse against.
func (e *Engine) analyzeGeneric(values map[string]interface{}, external models.RiskAssessment) models.AnalysisResult {
	eval := classifyGeneric(values)

	referrals := newReferralList()
	referrals.add("General Practitioner", "Review of an unclassified laboratory report", models.UrgencyRoutine)

	e.log("analysis completed", map[string]interface{}{
		"panel":            PanelGeneric.String(),
		"finding_count":    len(eval.findings),
		"fused_risk_level": external.RiskLevel,
		"fused_risk_score": external.RiskScore,
	})

	return models.AnalysisResult{
		Summary:              genericNarrative(external),
		Findings:             eval.findings,
		Lifestyle:            []models.Recommendation{},
		Dietary:              []models.Recommendation{},
		SuggestedSpecialists: referrals.items,
		CorrectedRiskLevel:   external.RiskLevel,
		CorrectedRiskScore:   external.RiskScore,
	}
}
