package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mijsu/LabVioUltimatum/pkg/common/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

const sampleCBCReport = `
COMPLETE BLOOD COUNT

Hemoglobin: 10.2 g/dL
Hematocrit: 31 %
WBC: 12.8 K/uL
Platelet Count: 180
Neutrophils: 0.72
Lymphocytes: 0.20
`

const sampleUrinalysisReport = `
URINALYSIS

Color: Yellow
Transparency: Hazy
pH: 6.0
Specific Gravity: 1.020
Protein: Trace
Sugar: Negative
Pus Cells: 8
`

func TestParseReportCBC(t *testing.T) {
	labType, values := ParseReport(sampleCBCReport)
	if labType != "cbc" {
		t.Fatalf("lab type %q, want cbc", labType)
	}
	expected := map[string]string{
		"hemoglobin":  "10.2",
		"hematocrit":  "31",
		"wbc":         "12.8",
		"platelets":   "180",
		"neutrophils": "0.72",
		"lymphocytes": "0.20",
	}
	for key, want := range expected {
		got, ok := values[key]
		if !ok {
			t.Fatalf("key %s missing: %v", key, values)
		}
		if got != want {
			t.Fatalf("%s: got %v, want %s", key, got, want)
		}
	}
}

func TestParseReportUrinalysis(t *testing.T) {
	labType, values := ParseReport(sampleUrinalysisReport)
	if labType != "urinalysis" {
		t.Fatalf("lab type %q, want urinalysis", labType)
	}
	if values["clarity"] != "hazy" {
		t.Fatalf("clarity: got %v, want hazy", values["clarity"])
	}
	if values["protein"] != "trace" {
		t.Fatalf("protein: got %v, want trace", values["protein"])
	}
	if values["glucose"] != "negative" {
		t.Fatalf("glucose: got %v, want negative", values["glucose"])
	}
	if values["pus_cells"] != "8" {
		t.Fatalf("pus cells: got %v, want 8", values["pus_cells"])
	}
}

func TestParseReportLipidWithoutHeader(t *testing.T) {
	labType, values := ParseReport("LDL: 145 mg/dL\nHDL: 42 mg/dL\nTriglycerides: 180")
	if labType != "lipid" {
		t.Fatalf("lab type %q, want lipid inferred from fractions", labType)
	}
	if values["ldl"] != "145" || values["hdl"] != "42" || values["triglycerides"] != "180" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestParseReportUnrecognized(t *testing.T) {
	labType, values := ParseReport("THYROID PANEL\nTSH: 2.1")
	if labType != "" {
		t.Fatalf("lab type %q, want empty for unknown panel", labType)
	}
	if len(values) != 0 {
		t.Fatalf("expected no recognized values, got %v", values)
	}
}

func TestLLMExtractorDisabledWithoutKey(t *testing.T) {
	e := NewLLMExtractor("", "http://localhost", "gpt-4o-mini")
	if e.Enabled() {
		t.Fatal("extractor must be disabled without an API key")
	}
	var nilExtractor *LLMExtractor
	if nilExtractor.Enabled() {
		t.Fatal("nil extractor must report disabled")
	}
}

func TestLLMExtractorParsesFencedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header %q", got)
		}
		content := "```json\n{\"lab_type\":\"cbc\",\"values\":{\"wbc\":12.8,\"platelets\":\"adequate\"}}\n```"
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	defer server.Close()

	e := NewLLMExtractor("test-key", server.URL, "gpt-4o-mini")
	labType, values, err := e.ExtractFields(context.Background(), sampleCBCReport)
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if labType != "cbc" {
		t.Fatalf("lab type %q, want cbc", labType)
	}
	if values["wbc"] != 12.8 || values["platelets"] != "adequate" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestPipelineFallsBackToParser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	pipeline := &Pipeline{LLM: NewLLMExtractor("test-key", server.URL, "gpt-4o-mini")}
	labType, values, err := pipeline.Extract(context.Background(), sampleCBCReport, nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if labType != "cbc" {
		t.Fatalf("lab type %q, want cbc from fallback parser", labType)
	}
	if values["hemoglobin"] != "10.2" {
		t.Fatalf("fallback values wrong: %v", values)
	}
}

func TestPipelineRunsOCRForDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ocrRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding ocr request: %v", err)
		}
		if req.Image == "" {
			t.Error("expected base64 document in ocr request")
		}
		json.NewEncoder(w).Encode(ocrResponse{Text: sampleUrinalysisReport, Confidence: 0.93})
	}))
	defer server.Close()

	pipeline := &Pipeline{OCR: NewOCRClient(server.URL, 5*time.Second)}
	labType, values, err := pipeline.Extract(context.Background(), "", []byte("fake-scan-bytes"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if labType != "urinalysis" {
		t.Fatalf("lab type %q, want urinalysis", labType)
	}
	if values["clarity"] != "hazy" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestPipelineRejectsEmptySubmission(t *testing.T) {
	pipeline := &Pipeline{}
	if _, _, err := pipeline.Extract(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty submission")
	}
}
