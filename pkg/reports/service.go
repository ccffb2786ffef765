package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mijsu/LabVioUltimatum/pkg/common/kafka"
	"github.com/mijsu/LabVioUltimatum/pkg/common/logger"
	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
	"github.com/mijsu/LabVioUltimatum/pkg/privacy"
)

type Service struct {
	validator *Validator
	masker    *privacy.Masker
	repo      *Repository
	producer  *kafka.Producer
}

func NewService(validator *Validator, masker *privacy.Masker, repo *Repository, producer *kafka.Producer) *Service {
	return &Service{
		validator: validator,
		masker:    masker,
		repo:      repo,
		producer:  producer,
	}
}

// Submit validates and masks a report submission, records it, and hands it
// to the analysis worker over the event bus.
func (s *Service) Submit(ctx context.Context, req models.SubmitReportRequest) (*models.SubmitReportResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Identifiers are stripped before the payload is stored or published.
	maskedText := s.masker.Mask(req.Text)
	maskedValues := s.masker.MaskMap(req.Values)

	id := uuid.New().String()
	payload := map[string]interface{}{
		"report_id": id,
		"source":    req.Source,
		"lab_type":  req.LabType,
		"text":      maskedText,
		"values":    maskedValues,
	}
	if req.Document != "" {
		// Scanned documents are masked after OCR by the worker.
		payload["document"] = req.Document
	}

	record := &Record{
		ID:      id,
		Source:  req.Source,
		LabType: req.LabType,
		Payload: datatypes.JSONMap(payload),
		Status:  StatusAccepted,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persisting report submission: %w", err)
	}

	if err := s.producer.PublishEvent(ctx, models.EventReportAccepted, req.Source, payload); err != nil {
		logger.Log.WithError(err).Error("failed to publish report event")
		_ = s.repo.UpdateStatus(ctx, id, StatusFailed, err.Error())
		return nil, fmt.Errorf("publishing report event: %w", err)
	}

	return &models.SubmitReportResponse{
		ID:        id,
		Status:    StatusAccepted,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (s *Service) Status(ctx context.Context, id string) (*Record, error) {
	return s.repo.Get(ctx, id)
}

// MarkAnalyzed and MarkFailed are called by the analysis worker.
func (s *Service) MarkAnalyzed(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusAnalyzed, "")
}

func (s *Service) MarkFailed(ctx context.Context, id string, reason error) error {
	return s.repo.UpdateStatus(ctx, id, StatusFailed, reason.Error())
}
