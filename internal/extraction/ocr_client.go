package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteOCRTimeout bounds a single remote OCR call.
const DefaultRemoteOCRTimeout = 15 * time.Second

// RemoteOCRClient is an HTTP client for a hosted OCR service. It is the
// fallback engine when the local binary yields no text.
type RemoteOCRClient struct {
	baseURL    string
	apiKey     string
	language   string
	retry      RetryConfig
	httpClient *http.Client
}

// NewRemoteOCRClient creates a client for the service at baseURL. A zero
// timeout selects DefaultRemoteOCRTimeout.
func NewRemoteOCRClient(baseURL, apiKey string, timeout time.Duration) *RemoteOCRClient {
	if timeout <= 0 {
		timeout = DefaultRemoteOCRTimeout
	}
	return &RemoteOCRClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: "eng",
		retry:    DefaultOCRRetryConfig,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// RemoteOCRResponse covers both the plain {"text": ...} shape and the
// OCR.space ParsedResults shape.
type RemoteOCRResponse struct {
	Text          string              `json:"text"`
	ParsedResults []RemoteParsedResult `json:"ParsedResults"`
	IsErrored     bool                `json:"IsErroredOnProcessing"`
	ErrorMessage  any                 `json:"ErrorMessage,omitempty"`
}

// RemoteParsedResult is one page of an OCR.space style response.
type RemoteParsedResult struct {
	ParsedText string `json:"ParsedText"`
}

// GetText returns the recognized text from either response shape.
func (r *RemoteOCRResponse) GetText() string {
	if r.Text != "" {
		return r.Text
	}
	parts := make([]string, 0, len(r.ParsedResults))
	for _, p := range r.ParsedResults {
		if strings.TrimSpace(p.ParsedText) != "" {
			parts = append(parts, p.ParsedText)
		}
	}
	return strings.Join(parts, "\n")
}

// RemoteHealthResponse represents the health check response.
type RemoteHealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Name implements OCREngine.
func (c *RemoteOCRClient) Name() string { return "remote-ocr" }

// HealthCheck checks if the OCR service is reachable.
func (c *RemoteOCRClient) HealthCheck(ctx context.Context) (*RemoteHealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ExtractionError{
			Code:      ErrOCRUnavailable,
			Message:   "remote OCR service unreachable",
			Method:    c.Name(),
			Retryable: true,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ExtractionError{
			Code:      ErrOCRUnavailable,
			Message:   fmt.Sprintf("health check failed: status %d, body: %s", resp.StatusCode, string(body)),
			Method:    c.Name(),
			Retryable: resp.StatusCode >= 500,
		}
	}

	var health RemoteHealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &health, nil
}

// Recognize implements OCREngine. Transient failures are retried.
func (c *RemoteOCRClient) Recognize(ctx context.Context, image []byte) (string, error) {
	return WithRetry(ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.recognizeOnce(ctx, image)
	})
}

func (c *RemoteOCRClient) recognizeOnce(ctx context.Context, image []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "report.png")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("write file data: %w", err)
	}
	if err := writer.WriteField("language", c.language); err != nil {
		return "", fmt.Errorf("write language: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", &ExtractionError{
				Code:    ErrOCRTimeout,
				Message: "remote ocr cancelled",
				Method:  c.Name(),
				Cause:   ctx.Err(),
			}
		}
		return "", &ExtractionError{
			Code:      ErrOCRTimeout,
			Message:   "remote ocr request failed",
			Method:    c.Name(),
			Retryable: true,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPError(resp.StatusCode, body, c.Name())
	}

	var result RemoteOCRResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ExtractionError{
			Code:    ErrOCRUnavailable,
			Message: "decode response",
			Method:  c.Name(),
			Cause:   err,
		}
	}
	if result.IsErrored {
		return "", &ExtractionError{
			Code:    ErrOCRUnavailable,
			Message: fmt.Sprintf("remote ocr reported an error: %v", result.ErrorMessage),
			Method:  c.Name(),
		}
	}
	return result.GetText(), nil
}

// classifyHTTPError maps a status code onto a typed error. Rate limiting and
// server errors are retryable; client errors are not.
func classifyHTTPError(status int, body []byte, method string) *ExtractionError {
	msg := fmt.Sprintf("status %d: %s", status, strings.TrimSpace(string(body)))
	switch {
	case status == http.StatusTooManyRequests, status >= 500:
		return &ExtractionError{
			Code:      ErrOCRUnavailable,
			Message:   msg,
			Method:    method,
			Retryable: true,
		}
	default:
		return &ExtractionError{
			Code:    ErrInvalidDocument,
			Message: msg,
			Method:  method,
		}
	}
}
