package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/mijsu/LabVioUltimatum/pkg/analysis"
	"github.com/mijsu/LabVioUltimatum/pkg/common/config"
	"github.com/mijsu/LabVioUltimatum/pkg/common/database"
	"github.com/mijsu/LabVioUltimatum/pkg/common/kafka"
	"github.com/mijsu/LabVioUltimatum/pkg/common/logger"
	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
	"github.com/mijsu/LabVioUltimatum/pkg/gateway/auth"
	"github.com/mijsu/LabVioUltimatum/pkg/gateway/middleware"
	"github.com/mijsu/LabVioUltimatum/pkg/predictor"
	"github.com/mijsu/LabVioUltimatum/pkg/privacy"
	"github.com/mijsu/LabVioUltimatum/pkg/reports"
)

type analyzerService struct {
	engine    *analysis.Engine
	predictor *predictor.Client
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

	producer := kafka.NewProducer(cfg.ReportTopic)
	defer producer.Close()

	validator := reports.NewValidator(nil)
	reportService := reports.NewService(validator, masker, repo, producer)

	service := &analyzerService{
		engine: analysis.NewEngine(analysis.WithLogger(logger.Hook())),
		predictor: predictor.NewClient(cfg.PredictorBaseURL, cfg.PredictorTimeout,
			predictor.WithRetries(cfg.PredictorRetries),
			predictor.WithCache(database.GetRedis(), cfg.PredictionCacheTTL)),
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", service.handleAnalyze).Methods(http.MethodPost)
	reports.NewHTTPHandler(reportService, cfg.MaxRequestBody).Register(api)

	if cfg.AuthRequired {
		authenticator, err := auth.NewOIDCAuthenticator(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to configure OIDC")
		}
		api.Use(middleware.Authenticate(authenticator))
	}
	router.Use(middleware.Recovery, middleware.Logging)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Analyzer Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Analyzer Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}
	database.ClosePostgres()
	database.CloseRedis()

	logger.Log.Info("Analyzer Service stopped")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (s *analyzerService) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Values) == 0 {
		http.Error(w, "values required", http.StatusBadRequest)
		return
	}

	// The caller may carry its own statistical assessment; otherwise ask
	// the predictor, degrading to the neutral fallback if it is down.
	external := models.RiskAssessment{}
	if req.RiskAssessment != nil {
		external = *req.RiskAssessment
	} else {
		prediction, err := s.predictor.Predict(r.Context(), req.LabType, req.Values)
		if err != nil {
			logger.Log.WithError(err).Warn("predictor unavailable, using fallback assessment")
			prediction = predictor.Fallback()
		}
		external = prediction.Assessment()
	}

	result := s.engine.Analyze(req.LabType, req.Values, external)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
