package predictor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mijsu/LabVioUltimatum/pkg/common/httpclient"
	"github.com/mijsu/LabVioUltimatum/pkg/common/logger"
	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

// Client calls the statistical risk predictor service. Responses are cached
// in Redis keyed by a digest of the request so repeated submissions of the
// same report do not re-run the model.
type Client struct {
	baseURL  string
	http     *http.Client
	retries  int
	cache    *redis.Client
	cacheTTL time.Duration
}

type Option func(*Client)

// WithCache enables response caching. A nil client disables it.
func WithCache(rdb *redis.Client, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = rdb
		c.cacheTTL = ttl
	}
}

func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    httpclient.New(timeout),
		retries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// predictPayload builds the request body. The predictor reads each lab
// value flat at the top level of the JSON object alongside lab_type, not
// nested under a sub-key.
func predictPayload(labType string, values map[string]interface{}) map[string]interface{} {
	payload := make(map[string]interface{}, len(values)+1)
	for k, v := range values {
		payload[k] = v
	}
	payload["lab_type"] = labType
	return payload
}

// Predict requests a risk assessment for the given report values.
func (c *Client) Predict(ctx context.Context, labType string, values map[string]interface{}) (models.Prediction, error) {
	key := cacheKey(labType, values)

	if cached, ok := c.cacheGet(ctx, key); ok {
		return cached, nil
	}

	var prediction models.Prediction
	url := c.baseURL + "/predict"
	payload := predictPayload(labType, values)

	err := httpclient.Retry(ctx, c.retries, 200*time.Millisecond, func() error {
		return httpclient.PostJSON(ctx, c.http, url, nil, payload, &prediction)
	})
	if err != nil {
		return models.Prediction{}, fmt.Errorf("predictor request failed: %w", err)
	}

	c.cacheSet(ctx, key, prediction)
	return prediction, nil
}

// Fallback is the assessment used when the predictor is unreachable. The
// mid-range level keeps the downstream safety fusion able to move in either
// direction, and the zero confidence marks the value as synthetic.
func Fallback() models.Prediction {
	return models.Prediction{
		RiskLevel:  models.RiskModerate,
		RiskScore:  50,
		Confidence: 0,
		Model:      "fallback",
	}
}

func (c *Client) cacheGet(ctx context.Context, key string) (models.Prediction, bool) {
	if c.cache == nil {
		return models.Prediction{}, false
	}
	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		return models.Prediction{}, false
	}
	var prediction models.Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return models.Prediction{}, false
	}
	return prediction, true
}

func (c *Client) cacheSet(ctx context.Context, key string, prediction models.Prediction) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(prediction)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		logger.WithField("error", err.Error()).Warn("prediction cache write failed")
	}
}

// cacheKey digests the lab type plus the report values in sorted key order,
// so logically identical maps produce the same key.
func cacheKey(labType string, values map[string]interface{}) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(labType))
	for _, k := range keys {
		raw, _ := json.Marshal(values[k])
		fmt.Fprintf(h, "|%s=%s", k, raw)
	}
	return "labvio:prediction:" + hex.EncodeToString(h.Sum(nil))
}
