package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchRecipes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/complexSearch" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "pasta" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("apiKey = %q", q.Get("apiKey"))
		}
		if q.Get("addRecipeNutrition") != "true" {
			t.Errorf("addRecipeNutrition = %q", q.Get("addRecipeNutrition"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"Pasta Primavera"}],"totalResults":1}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	results, err := client.SearchRecipes(context.Background(), "pasta")
	if err != nil {
		t.Fatalf("SearchRecipes: %v", err)
	}

	var recipes []map[string]any
	if err := json.Unmarshal(results, &recipes); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(recipes) != 1 || recipes[0]["title"] != "Pasta Primavera" {
		t.Fatalf("unexpected results: %s", results)
	}
}

func TestSearchRecipesMissingResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalResults":0}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	results, err := client.SearchRecipes(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchRecipes: %v", err)
	}
	if string(results) != "[]" {
		t.Fatalf("expected empty array, got %s", results)
	}
}

func TestSearchRecipesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"message":"quota exceeded"}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	_, err := client.SearchRecipes(context.Background(), "pasta")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("StatusCode = %d", upstreamErr.StatusCode)
	}
	if string(upstreamErr.Body) != `{"message":"quota exceeded"}` {
		t.Fatalf("Body = %s", upstreamErr.Body)
	}
}

func TestSearchRecipesMissingKey(t *testing.T) {
	client := &Client{}
	if _, err := client.SearchRecipes(context.Background(), "pasta"); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestSearchIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/ingredients/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"results":[{"id":9003,"name":"apple"}]}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	results, err := client.SearchIngredients(context.Background(), "apple")
	if err != nil {
		t.Fatalf("SearchIngredients: %v", err)
	}

	var ingredients []map[string]any
	if err := json.Unmarshal(results, &ingredients); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0]["name"] != "apple" {
		t.Fatalf("unexpected results: %s", results)
	}
}

func TestAnalyzeRecipe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/recipes/analyze" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Title       string `json:"title"`
			Ingredients string `json:"ingredients"`
			Servings    int    `json:"servings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Ingredients != "2 eggs\n1 slice of toast" {
			t.Errorf("ingredients = %q", payload.Ingredients)
		}
		if payload.Servings != 1 {
			t.Errorf("servings = %d", payload.Servings)
		}
		w.Write([]byte(`{"nutrition":{"calories":260}}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	result, err := client.AnalyzeRecipe(context.Background(), []string{"2 eggs", "1 slice of toast"})
	if err != nil {
		t.Fatalf("AnalyzeRecipe: %v", err)
	}
	if string(result) != `{"nutrition":{"calories":260}}` {
		t.Fatalf("unexpected result: %s", result)
	}
}
