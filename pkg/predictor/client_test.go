package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

func TestPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if body["lab_type"] != "cbc" {
			t.Errorf("lab_type %v, want cbc", body["lab_type"])
		}
		// Lab values travel flat at the top level of the request body.
		if body["wbc"] != 12.0 {
			t.Errorf("top-level wbc %v, want 12", body["wbc"])
		}
		json.NewEncoder(w).Encode(models.Prediction{
			RiskLevel:  models.RiskModerate,
			RiskScore:  62,
			Confidence: 0.91,
			Model:      "gradient-boost-v2",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	prediction, err := client.Predict(context.Background(), "cbc", map[string]interface{}{"wbc": 12.0})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if prediction.RiskLevel != models.RiskModerate || prediction.RiskScore != 62 {
		t.Fatalf("unexpected prediction: %+v", prediction)
	}
}

func TestPredictRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(models.Prediction{RiskLevel: models.RiskLow, RiskScore: 12})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, WithRetries(3))
	prediction, err := client.Predict(context.Background(), "lipid", map[string]interface{}{"ldl": 110})
	if err != nil {
		t.Fatalf("Predict after retries: %v", err)
	}
	if prediction.RiskLevel != models.RiskLow {
		t.Fatalf("unexpected prediction: %+v", prediction)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("server called %d times, want 3", got)
	}
}

func TestPredictDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unknown lab type", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, WithRetries(3))
	if _, err := client.Predict(context.Background(), "cbc", nil); err == nil {
		t.Fatal("expected error for rejected request")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("client errors must not be retried, server called %d times", got)
	}
}

func TestPredictExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, WithRetries(2))
	if _, err := client.Predict(context.Background(), "cbc", nil); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestFallback(t *testing.T) {
	fb := Fallback()
	if fb.RiskLevel != models.RiskModerate || fb.RiskScore != 50 {
		t.Fatalf("unexpected fallback: %+v", fb)
	}
	if fb.Confidence != 0 {
		t.Fatalf("fallback confidence must be zero, got %v", fb.Confidence)
	}
}

func TestPredictPayloadFlat(t *testing.T) {
	payload := predictPayload("urinalysis", map[string]interface{}{
		"ph":        6.0,
		"pus_cells": 20,
	})
	if payload["lab_type"] != "urinalysis" {
		t.Fatalf("lab_type %v, want urinalysis", payload["lab_type"])
	}
	if payload["ph"] != 6.0 || payload["pus_cells"] != 20 {
		t.Fatalf("values must sit at the top level: %v", payload)
	}
	if _, ok := payload["values"]; ok {
		t.Fatal("payload must not nest values under a sub-key")
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := cacheKey("cbc", map[string]interface{}{"wbc": 12.0, "rbc": 4.5})
	b := cacheKey("cbc", map[string]interface{}{"rbc": 4.5, "wbc": 12.0})
	if a != b {
		t.Fatal("cache key must not depend on map iteration order")
	}
	c := cacheKey("lipid", map[string]interface{}{"wbc": 12.0, "rbc": 4.5})
	if a == c {
		t.Fatal("cache key must include the lab type")
	}
}
