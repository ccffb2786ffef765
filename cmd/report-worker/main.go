package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mijsu/LabVioUltimatum/pkg/analysis"
	"github.com/mijsu/LabVioUltimatum/pkg/common/config"
	"github.com/mijsu/LabVioUltimatum/pkg/common/database"
	"github.com/mijsu/LabVioUltimatum/pkg/common/kafka"
	"github.com/mijsu/LabVioUltimatum/pkg/common/logger"
	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
	"github.com/mijsu/LabVioUltimatum/pkg/extraction"
	"github.com/mijsu/LabVioUltimatum/pkg/predictor"
	"github.com/mijsu/LabVioUltimatum/pkg/privacy"
	"github.com/mijsu/LabVioUltimatum/pkg/reports"
)

// worker consumes accepted report events and runs the full pipeline:
// extract values, obtain a statistical assessment, analyze, publish.
type worker struct {
	engine    *analysis.Engine
	pipeline  *extraction.Pipeline
	predictor *predictor.Client
	masker    *privacy.Masker
	repo      *reports.Repository
	producer  *kafka.Producer
}

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	repo := reports.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate report tables")
	}

	rules, err := privacy.LoadRules(cfg.PrivacyRulesPath)
	if err != nil {
		logger.Log.WithError(err).Warn("Falling back to built-in masking rules")
	}
	masker, err := privacy.NewMasker(rules)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to compile masking rules")
	}

	w := &worker{
		engine: analysis.NewEngine(analysis.WithLogger(logger.Hook())),
		pipeline: &extraction.Pipeline{
			OCR: extraction.NewOCRClient(cfg.OCRBaseURL, cfg.OCRTimeout),
			LLM: extraction.NewLLMExtractor(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModelName),
		},
		predictor: predictor.NewClient(cfg.PredictorBaseURL, cfg.PredictorTimeout,
			predictor.WithRetries(cfg.PredictorRetries),
			predictor.WithCache(database.GetRedis(), cfg.PredictionCacheTTL)),
		masker:   masker,
		repo:     repo,
		producer: kafka.NewProducer(cfg.AnalyzedTopic),
	}
	defer w.producer.Close()

	consumer := kafka.NewConsumer(cfg.ReportTopic, cfg.KafkaGroupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())

	// Periodic retention sweep of old status records.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := repo.CleanupExpired(ctx, cfg.ReportStatusTTL); err != nil {
					logger.Log.WithError(err).Warn("status record cleanup failed")
				}
			}
		}
	}()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down Report Worker...")
		cancel()
	}()

	logger.Log.WithField("topic", cfg.ReportTopic).Info("Report Worker started")
	if err := consumer.Consume(ctx, w.handleEvent); err != nil && err != context.Canceled {
		logger.Log.WithError(err).Error("Consumer stopped")
	}

	database.ClosePostgres()
	database.CloseRedis()
	logger.Log.Info("Report Worker stopped")
}

func (w *worker) handleEvent(ctx context.Context, event models.Event) error {
	if event.Type != models.EventReportAccepted {
		return nil
	}

	reportID, _ := event.Data["report_id"].(string)
	if reportID == "" {
		logger.Log.WithField("event_id", event.ID).Warn("event without report_id, skipping")
		return nil
	}

	result, err := w.process(ctx, event)
	if err != nil {
		logger.Log.WithError(err).WithField("report_id", reportID).Error("report analysis failed")
		_ = w.repo.UpdateStatus(ctx, reportID, reports.StatusFailed, err.Error())
		// Publish the failure so submitters are not left polling forever.
		_ = w.producer.PublishEvent(ctx, models.EventReportFailed, event.Source, map[string]interface{}{
			"report_id": reportID,
			"error":     err.Error(),
		})
		return nil
	}

	payload := map[string]interface{}{
		"report_id": reportID,
		"result":    result,
	}
	if err := w.producer.PublishEvent(ctx, models.EventReportAnalyzed, event.Source, payload); err != nil {
		// Returning the error leaves the message uncommitted for retry.
		return err
	}

	return w.repo.UpdateStatus(ctx, reportID, reports.StatusAnalyzed, "")
}

func (w *worker) process(ctx context.Context, event models.Event) (models.AnalysisResult, error) {
	labType, _ := event.Data["lab_type"].(string)
	text, _ := event.Data["text"].(string)
	values, _ := event.Data["values"].(map[string]interface{})

	var document []byte
	if encoded, ok := event.Data["document"].(string); ok && encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return models.AnalysisResult{}, fmt.Errorf("decoding report document: %w", err)
		}
		document = decoded
	}

	// Values submitted directly skip extraction.
	if len(values) == 0 {
		if text == "" && len(document) > 0 {
			ocrText, err := w.pipeline.OCR.ExtractText(ctx, document)
			if err != nil {
				return models.AnalysisResult{}, err
			}
			text = ocrText
		}
		// OCR output can expose identifiers the intake masking did not see.
		text = w.masker.Mask(text)

		extractedType, extracted, err := w.pipeline.Extract(ctx, text, nil)
		if err != nil {
			return models.AnalysisResult{}, err
		}
		values = extracted
		if labType == "" {
			labType = extractedType
		}
	}

	prediction, err := w.predictor.Predict(ctx, labType, values)
	if err != nil {
		logger.Log.WithError(err).Warn("predictor unavailable, using fallback assessment")
		prediction = predictor.Fallback()
	}

	return w.engine.Analyze(labType, values, prediction.Assessment()), nil
}
