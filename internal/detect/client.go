// Package detect は外部の物体検出API (Moondream) のHTTPクライアントです
package detect

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
)

const authHeader = "X-Moondream-Auth"

type detectRequest struct {
	ImageURL string `json:"image_url"`
	Object   string `json:"object"`
}

type detectResponse struct {
	Objects []model.DetectedObject `json:"objects"`
}

// Client は <endpoint>/detect を呼び出します
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled はAPIキーが設定されているかどうか
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Detect は画像中の object を探し、見つかった矩形を返します (0件なら空スライス)
func (c *Client) Detect(ctx context.Context, image []byte, mimeType, object string) ([]model.DetectedObject, error) {
	logger := middleware.GetLogger(ctx)

	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}
	payload, err := json.Marshal(detectRequest{
		ImageURL: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image),
		Object:   object,
	})
	if err != nil {
		return nil, fmt.Errorf("detect.Client.Detect: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/detect", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("detect.Client.Detect: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Detection API request failed", "error", err)
		return nil, fmt.Errorf("detect.Client.Detect: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("detect.Client.Detect: read response: %w", err)
	}
	logger.Debug("Detection API responded",
		"status", resp.StatusCode,
		"latency_ms", float64(time.Since(start).Nanoseconds())/1e6,
	)

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Detection API returned non-200 status", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("detect.Client.Detect: upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded detectResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("detect.Client.Detect: decode response: %w", err)
	}
	if decoded.Objects == nil {
		decoded.Objects = []model.DetectedObject{}
	}
	return decoded.Objects, nil
}
