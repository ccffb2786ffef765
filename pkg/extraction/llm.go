package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mijsu/LabVioUltimatum/pkg/common/httpclient"
	"github.com/mijsu/LabVioUltimatum/pkg/common/logger"
)

const extractionPrompt = `Extract the laboratory test values from the report text below.
Respond with JSON only, in the form:
{"lab_type": "<cbc|lipid|urinalysis|other>", "values": {"<parameter>": <value>, ...}}
Use lowercase snake_case parameter names. Keep textual readings (e.g. "trace", "turbid") as strings.

Report text:
%s`

// LLMExtractor asks a chat-completion model to pull structured values out of
// free-form report text. With no API key configured it is disabled and the
// pattern-matching parser takes over.
type LLMExtractor struct {
	apiKey    string
	baseURL   string
	modelName string
	http      *http.Client
}

func NewLLMExtractor(apiKey, baseURL, modelName string) *LLMExtractor {
	return &LLMExtractor{
		apiKey:    apiKey,
		baseURL:   baseURL,
		modelName: modelName,
		http:      httpclient.New(30 * time.Second),
	}
}

func (e *LLMExtractor) Enabled() bool {
	return e != nil && e.apiKey != ""
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type extractedFields struct {
	LabType string                 `json:"lab_type"`
	Values  map[string]interface{} `json:"values"`
}

// ExtractFields returns the lab type and value map the model identified.
func (e *LLMExtractor) ExtractFields(ctx context.Context, text string) (string, map[string]interface{}, error) {
	if !e.Enabled() {
		return "", nil, fmt.Errorf("llm extractor disabled")
	}

	payload := map[string]interface{}{
		"model": e.modelName,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(extractionPrompt, text)},
		},
		"temperature": 0.0,
	}
	headers := map[string]string{"Authorization": "Bearer " + e.apiKey}

	var resp chatResponse
	if err := httpclient.PostJSON(ctx, e.http, e.baseURL+"/chat/completions", headers, payload, &resp); err != nil {
		return "", nil, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("no response from llm")
	}

	var fields extractedFields
	content := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return "", nil, fmt.Errorf("llm returned unparseable extraction: %w", err)
	}
	if len(fields.Values) == 0 {
		return "", nil, fmt.Errorf("llm extracted no values")
	}
	return fields.LabType, fields.Values, nil
}

// Pipeline runs OCR when raw text is absent, then field extraction with the
// model, falling back to pattern matching.
type Pipeline struct {
	OCR *OCRClient
	LLM *LLMExtractor
}

// Extract resolves a report submission to (labType, values). Either rawText
// or document must be provided.
func (p *Pipeline) Extract(ctx context.Context, rawText string, document []byte) (string, map[string]interface{}, error) {
	text := rawText
	if text == "" {
		if p.OCR == nil || len(document) == 0 {
			return "", nil, fmt.Errorf("no report text or document provided")
		}
		ocrText, err := p.OCR.ExtractText(ctx, document)
		if err != nil {
			return "", nil, err
		}
		text = ocrText
	}

	if p.LLM.Enabled() {
		labType, values, err := p.LLM.ExtractFields(ctx, text)
		if err == nil {
			return labType, values, nil
		}
		logger.WithField("error", err.Error()).Warn("llm extraction failed, falling back to pattern matching")
	}

	labType, values := ParseReport(text)
	if len(values) == 0 {
		return "", nil, fmt.Errorf("no lab values recognized in report text")
	}
	return labType, values, nil
}

// stripCodeFence removes a markdown fence the model may wrap around JSON.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
