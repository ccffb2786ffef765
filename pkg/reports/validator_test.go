package reports

import (
	"testing"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

func TestValidatorRequiresSource(t *testing.T) {
	v := NewValidator(nil)
	err := v.Validate(models.SubmitReportRequest{Text: "WBC 12.3"})
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
}

func TestValidatorAllowedSources(t *testing.T) {
	v := NewValidator([]string{"clinic-portal", "Mobile-App"})

	req := models.SubmitReportRequest{Source: "CLINIC-PORTAL", Text: "WBC 12.3"}
	if err := v.Validate(req); err != nil {
		t.Fatalf("case-insensitive source match should pass: %v", err)
	}

	req.Source = "unknown-lab"
	if err := v.Validate(req); err == nil {
		t.Fatal("expected error for unlisted source")
	}
}

func TestValidatorRequiresContent(t *testing.T) {
	v := NewValidator(nil)

	req := models.SubmitReportRequest{Source: "clinic-portal", Text: "   "}
	if err := v.Validate(req); err == nil {
		t.Fatal("expected error for blank text and no values")
	}

	req.Values = map[string]interface{}{"wbc": 7.2}
	if err := v.Validate(req); err != nil {
		t.Fatalf("values-only submission should pass: %v", err)
	}
}

func TestValidatorAcceptsAnyLabType(t *testing.T) {
	v := NewValidator(nil)
	req := models.SubmitReportRequest{
		Source:  "clinic-portal",
		LabType: "obscure future panel",
		Values:  map[string]interface{}{"x": 1},
	}
	if err := v.Validate(req); err != nil {
		t.Fatalf("unknown lab types must be accepted: %v", err)
	}
}
