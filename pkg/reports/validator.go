package reports

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

var (
	errInvalidSource = errors.New("invalid source")
	errEmptyReport   = errors.New("report text, document, or values required")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Validator checks intake submissions before they enter the pipeline. Lab
// type is deliberately unrestricted: unknown panels still get a pass-through
// analysis.
type Validator struct {
	allowedSources map[string]struct{}
}

func NewValidator(sources []string) *Validator {
	allowed := make(map[string]struct{})
	for _, src := range sources {
		if trimmed := strings.TrimSpace(strings.ToLower(src)); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return &Validator{allowedSources: allowed}
}

func (v *Validator) Validate(req models.SubmitReportRequest) error {
	if v == nil {
		return ValidationError{reason: errors.New("validator not initialised")}
	}

	source := strings.TrimSpace(strings.ToLower(req.Source))
	if source == "" {
		return ValidationError{reason: fmt.Errorf("source required: %w", errInvalidSource)}
	}
	if len(v.allowedSources) > 0 {
		if _, ok := v.allowedSources[source]; !ok {
			return ValidationError{reason: fmt.Errorf("source '%s' not allowed: %w", source, errInvalidSource)}
		}
	}

	if strings.TrimSpace(req.Text) == "" && req.Document == "" && len(req.Values) == 0 {
		return ValidationError{reason: errEmptyReport}
	}

	return nil
}
