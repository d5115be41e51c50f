package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://trackapi.nutritionix.com"

// UpstreamError carries the upstream status and body so callers can attach
// them to their own error responses.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("nutritionix returned status %d: %s", e.StatusCode, string(e.Body))
}

// Client calls the Nutritionix natural-language nutrition API.
type Client struct {
	AppID      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// AnalyzeQuery submits a natural-language food description (e.g. "two eggs
// and toast") and returns the raw nutrient breakdown.
func (c *Client) AnalyzeQuery(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(c.AppID) == "" || strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing Nutritionix credentials")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal nutritionix payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v2/natural/nutrients", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create nutritionix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.AppID)
	req.Header.Set("x-app-key", c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute nutritionix request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read nutritionix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
