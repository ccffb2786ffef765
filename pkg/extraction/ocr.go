package extraction

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mijsu/LabVioUltimatum/pkg/common/httpclient"
)

// OCRClient calls the OCR sidecar that turns scanned report images into
// plain text.
type OCRClient struct {
	baseURL string
	http    *http.Client
}

func NewOCRClient(baseURL string, timeout time.Duration) *OCRClient {
	return &OCRClient{
		baseURL: baseURL,
		http:    httpclient.New(timeout),
	}
}

type ocrRequest struct {
	Image string `json:"image"`
}

type ocrResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ExtractText submits a scanned document and returns the recognized text.
func (c *OCRClient) ExtractText(ctx context.Context, document []byte) (string, error) {
	payload := ocrRequest{Image: base64.StdEncoding.EncodeToString(document)}

	var resp ocrResponse
	if err := httpclient.PostJSON(ctx, c.http, c.baseURL+"/ocr", nil, payload, &resp); err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("ocr returned no text")
	}
	return resp.Text, nil
}
