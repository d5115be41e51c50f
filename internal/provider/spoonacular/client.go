package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.spoonacular.com"

// UpstreamError carries the upstream status and body so callers can attach
// them to their own error responses.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("spoonacular returned status %d: %s", e.StatusCode, string(e.Body))
}

// Client calls the Spoonacular recipe and ingredient APIs.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 12 * time.Second}
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute spoonacular request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read spoonacular response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// SearchRecipes runs a complex recipe search with nutrition data attached and
// returns the raw results array.
func (c *Client) SearchRecipes(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing Spoonacular API key")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("apiKey", c.APIKey)
	params.Set("number", "10")
	params.Set("addRecipeNutrition", "true")

	reqURL := fmt.Sprintf("%s/recipes/complexSearch?%s", c.baseURL(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create spoonacular request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode spoonacular response: %w", err)
	}
	if parsed.Results == nil {
		return json.RawMessage("[]"), nil
	}
	return parsed.Results, nil
}

// SearchIngredients searches the ingredient database and returns the raw
// results array.
func (c *Client) SearchIngredients(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing Spoonacular API key")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("apiKey", c.APIKey)
	params.Set("number", "10")

	reqURL := fmt.Sprintf("%s/food/ingredients/search?%s", c.baseURL(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create spoonacular request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode spoonacular response: %w", err)
	}
	if parsed.Results == nil {
		return json.RawMessage("[]"), nil
	}
	return parsed.Results, nil
}

// AnalyzeRecipe submits a custom meal's ingredient list for nutrition
// analysis and returns the raw analysis object.
func (c *Client) AnalyzeRecipe(ctx context.Context, ingredients []string) (json.RawMessage, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing Spoonacular API key")
	}

	reqBody := map[string]any{
		"title":       "Custom Meal",
		"ingredients": strings.Join(ingredients, "\n"),
		"servings":    1,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal spoonacular analyze payload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/recipes/analyze?apiKey=%s", c.baseURL(), url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("create spoonacular request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}
