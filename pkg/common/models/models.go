package models

import (
	"strings"
	"time"
)

// Risk levels shared by the statistical predictor and the clinical rules.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// Parameter statuses assigned by the threshold classifier.
const (
	StatusNormal     = "normal"
	StatusBorderline = "borderline"
	StatusAbnormal   = "abnormal"
)

// Referral urgencies.
const (
	UrgencyRoutine = "routine"
	UrgencySoon    = "soon"
	UrgencyUrgent  = "urgent"
)

// RiskAssessment is the contract consumed from the statistical predictor.
// It is treated as opaque input and never mutated.
type RiskAssessment struct {
	RiskLevel string  `json:"riskLevel"`
	RiskScore float64 `json:"riskScore"`
}

// Prediction is the full response of the predictor service. Only the
// level/score pair feeds the analysis engine.
type Prediction struct {
	RiskLevel     string             `json:"riskLevel"`
	RiskScore     float64            `json:"riskScore"`
	Confidence    float64            `json:"confidence"`
	Model         string             `json:"model,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

func (p Prediction) Assessment() RiskAssessment {
	return RiskAssessment{RiskLevel: p.RiskLevel, RiskScore: p.RiskScore}
}

// RiskRank maps a risk level to its numeric severity rank. Unrecognized
// levels rank lowest so the clinical rules still provide the floor.
func RiskRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case RiskHigh:
		return 2
	case RiskModerate:
		return 1
	default:
		return 0
	}
}

// RiskLevelForRank is the inverse of RiskRank.
func RiskLevelForRank(rank int) string {
	switch {
	case rank >= 2:
		return RiskHigh
	case rank == 1:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ParameterFinding is one classified measurement.
type ParameterFinding struct {
	Parameter      string `json:"parameter"`
	Value          string `json:"value"`
	NormalRange    string `json:"normalRange"`
	Status         string `json:"status"`
	Interpretation string `json:"interpretation"`
}

// Recommendation carries one lifestyle or dietary entry. Category is the
// deduplication key within its list.
type Recommendation struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
}

// SpecialistReferral suggests a specialist consult. A specialist type is
// referred at most once per analysis; the first occurrence wins.
type SpecialistReferral struct {
	Specialist string `json:"specialist"`
	Reason     string `json:"reason"`
	Urgency    string `json:"urgency"`
}

// AnalysisResult is the assembled clinical interpretation of one panel.
type AnalysisResult struct {
	Summary              string               `json:"summary"`
	Findings             []ParameterFinding   `json:"findings"`
	Lifestyle            []Recommendation     `json:"lifestyleRecommendations"`
	Dietary              []Recommendation     `json:"dietaryRecommendations"`
	SuggestedSpecialists []SpecialistReferral `json:"suggestedSpecialists"`
	CorrectedRiskLevel   string               `json:"correctedRiskLevel"`
	CorrectedRiskScore   float64              `json:"correctedRiskScore"`
}

// AnalyzeRequest is the synchronous API payload. When RiskAssessment is
// omitted the service obtains one from the predictor before analysis.
type AnalyzeRequest struct {
	LabType        string                 `json:"labType"`
	Values         map[string]interface{} `json:"values"`
	RiskAssessment *RiskAssessment        `json:"riskAssessment,omitempty"`
}

// SubmitReportRequest is the asynchronous intake payload. Raw report text,
// a base64 document scan, or an already-extracted values map may be supplied.
type SubmitReportRequest struct {
	Source   string                 `json:"source"`
	LabType  string                 `json:"labType"`
	Text     string                 `json:"text,omitempty"`
	Document string                 `json:"document,omitempty"`
	Values   map[string]interface{} `json:"values,omitempty"`
}

type SubmitReportResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Event bus models.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // report.accepted, report.analyzed, report.failed
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

const (
	EventReportAccepted = "report.accepted"
	EventReportAnalyzed = "report.analyzed"
	EventReportFailed   = "report.failed"
)
