package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// DefaultTimeout bounds a tool invocation's single network attempt when the
// caller does not configure one.
const DefaultTimeout = 600 * time.Second

// Executor issues one outbound HTTP call per tool invocation. There is no
// retry; a timeout is just another transport failure folded into the
// normalized error shape.
type Executor struct {
	client *http.Client
}

// NewExecutor returns an executor whose requests are bounded by timeout.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{client: &http.Client{Timeout: timeout}}
}

// Execute performs the HTTP call and returns the normalized response value.
// Transport-level failures are never raised; they come back as an error
// mapping the caller can inspect.
func (e *Executor) Execute(ctx context.Context, method, rawURL string, query url.Values, body any, headers map[string]string) any {
	req, err := e.newRequest(ctx, method, rawURL, query, body, headers)
	if err != nil {
		return transportError(err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("API request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("failed to read API response")
		return transportError(err)
	}

	log.Info().
		Str("method", strings.ToUpper(method)).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Msg("API request")

	return normalizeResponse(resp.StatusCode, text)
}

func (e *Executor) newRequest(ctx context.Context, method, rawURL string, query url.Values, body any, headers map[string]string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		merged := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				merged.Add(k, v)
			}
		}
		u.RawQuery = merged.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), u.String(), reader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// normalizeResponse maps an HTTP response onto the uniform result contract:
// 2xx JSON lists wrap as items, JSON objects pass through, non-JSON bodies
// wrap with their status code, and everything else becomes an error mapping.
func normalizeResponse(status int, body []byte) any {
	if status < 200 || status >= 300 {
		return map[string]any{
			"error":       fmt.Sprintf("API request failed with status %d", status),
			"status_code": status,
			"response":    string(body),
		}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return map[string]any{
			"result":      string(body),
			"status_code": status,
		}
	}
	if list, ok := decoded.([]any); ok {
		return map[string]any{"items": list}
	}
	return decoded
}

func transportError(err error) map[string]any {
	return map[string]any{"error": fmt.Sprintf("Failed to execute API request: %v", err)}
}
