package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aebalz/menulist-tracker/internal/config"
	"github.com/aebalz/menulist-tracker/internal/handler"
	"github.com/aebalz/menulist-tracker/internal/model"
	"github.com/aebalz/menulist-tracker/internal/repository"
	"github.com/aebalz/menulist-tracker/internal/service"
	fiberserver "github.com/aebalz/menulist-tracker/pkg/fiber"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Meal{},
		&model.Activity{},
		&model.Hydration{},
		&model.Fasting{},
		&model.Note{},
		&model.SearchEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.AppConfig{
		AppName:            "test",
		AppEnv:             "test",
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		ServerReadTimeout:  15 * time.Second,
		ServerWriteTimeout: 15 * time.Second,
		ServerIdleTimeout:  60 * time.Second,
		CorsAllowedOrigins: []string{"*"},
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}

	userRepo := repository.NewUserRepository(db)
	trackerRepo := repository.NewTrackerRepository(db)

	h := &handler.APIHandler{
		Auth:      handler.NewAuthHandler(service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)),
		Tracker:   handler.NewTrackerHandler(service.NewTrackerService(trackerRepo)),
		Nutrition: handler.NewNutritionHandler(nil, nil),
		Health:    handler.NewHealthHandler(db),
	}

	return fiberserver.NewFiberServer(cfg, h, zerolog.Nop())
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, raw
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret",
	})
	if status != http.StatusCreated {
		t.Fatalf("register = %d: %s", status, body)
	}
	status, body = doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": "s3cret",
	})
	if status != http.StatusOK {
		t.Fatalf("login = %d: %s", status, body)
	}
	var tok struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil || tok.Token == "" {
		t.Fatalf("no token in login response: %s", body)
	}
	return tok.Token
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal error body %q: %v", body, err)
	}
	return resp["error"]
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice",
		"password": "s3cret",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("missing email = %d: %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice",
		"email":    "not-an-email",
		"password": "s3cret",
	})
	if status != http.StatusBadRequest || errorMessage(t, body) != "Invalid email format" {
		t.Fatalf("bad email = %d: %s", status, body)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice",
		"email":    "alice2@example.com",
		"password": "s3cret",
	})
	if status != http.StatusBadRequest || errorMessage(t, body) != "Username already exists" {
		t.Fatalf("duplicate username = %d: %s", status, body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized || errorMessage(t, body) != "Invalid credentials" {
		t.Fatalf("wrong password = %d: %s", status, body)
	}
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/data/monday", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("missing token = %d, want 401", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/data/monday", "not-a-jwt", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("garbage token = %d, want 401", status)
	}
}

func TestDayRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice")

	payload := map[string]any{
		"meals": map[string]any{
			"breakfast": []map[string]any{
				{"text": "Oatmeal", "calories": 320, "timestamp": "2025-06-02T08:00:00Z"},
			},
			"lunch":  []map[string]any{},
			"dinner": []map[string]any{},
			"snacks": []map[string]any{},
		},
		"activities": []map[string]any{
			{"text": "Morning run", "duration": 30, "calories": 280, "completed": true},
		},
		"hydration": []map[string]any{{"amount": 500}},
		"fasting":   []map[string]any{},
		"notes":     "Good start to the week",
	}

	status, body := doJSON(t, app, http.MethodPost, "/api/data/monday", token, payload)
	if status != http.StatusCreated {
		t.Fatalf("save day = %d: %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/data/monday", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get day = %d: %s", status, body)
	}

	var day struct {
		Meals struct {
			Breakfast []model.Meal `json:"breakfast"`
			Lunch     []model.Meal `json:"lunch"`
		} `json:"meals"`
		Activities []model.Activity  `json:"activities"`
		Hydration  []model.Hydration `json:"hydration"`
		Notes      string            `json:"notes"`
	}
	if err := json.Unmarshal(body, &day); err != nil {
		t.Fatalf("unmarshal day: %v: %s", err, body)
	}
	if len(day.Meals.Breakfast) != 1 || day.Meals.Breakfast[0].Text != "Oatmeal" {
		t.Fatalf("breakfast mismatch: %s", body)
	}
	if day.Meals.Lunch == nil {
		t.Fatalf("empty bucket serialized as null: %s", body)
	}
	if len(day.Activities) != 1 || !day.Activities[0].Completed {
		t.Fatalf("activities mismatch: %s", body)
	}
	if day.Notes != "Good start to the week" {
		t.Fatalf("notes mismatch: %q", day.Notes)
	}

	status, _ = doJSON(t, app, http.MethodDelete, "/api/data/monday", token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete day = %d", status)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/data/monday", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get day after delete = %d", status)
	}
	if err := json.Unmarshal(body, &day); err != nil {
		t.Fatalf("unmarshal cleared day: %v", err)
	}
	if len(day.Meals.Breakfast) != 0 || len(day.Activities) != 0 || day.Notes != "" {
		t.Fatalf("day not cleared: %s", body)
	}
}

func TestDayValidation(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice")

	status, body := doJSON(t, app, http.MethodGet, "/api/data/someday", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("bad day = %d: %s", status, body)
	}

	// Date-keyed days are accepted alongside weekday names.
	status, _ = doJSON(t, app, http.MethodGet, "/api/data/2025-06-02", token, nil)
	if status != http.StatusOK {
		t.Fatalf("date day = %d", status)
	}
}

func TestMealLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/meals", token, map[string]any{
		"day": "monday", "category": "lunch", "text": "Chicken salad", "calories": 350,
	})
	if status != http.StatusCreated {
		t.Fatalf("create meal = %d: %s", status, body)
	}
	var meal model.Meal
	if err := json.Unmarshal(body, &meal); err != nil || meal.ID == 0 {
		t.Fatalf("bad create response: %s", body)
	}

	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/meals/%d", meal.ID), token, map[string]any{
		"day": "monday", "category": "lunch", "text": "Chicken wrap", "calories": 420,
	})
	if status != http.StatusOK {
		t.Fatalf("update meal = %d: %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/meals/%d", meal.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("get meal = %d", status)
	}
	if err := json.Unmarshal(body, &meal); err != nil || meal.Text != "Chicken wrap" {
		t.Fatalf("update not applied: %s", body)
	}

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/meals/%d", meal.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete meal = %d", status)
	}

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/meals/%d", meal.ID), token, nil)
	if status != http.StatusNotFound || errorMessage(t, body) != "Meal not found" {
		t.Fatalf("get deleted meal = %d: %s", status, body)
	}
}

func TestMealValidation(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/meals", token, map[string]any{
		"day": "monday", "category": "brunch", "text": "Waffles", "calories": 400,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("bad category = %d: %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/meals", token, map[string]any{
		"day": "monday", "category": "lunch", "text": "Soup", "calories": -10,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("negative calories = %d: %s", status, body)
	}
}

func TestEntriesAreUserScoped(t *testing.T) {
	app := newTestApp(t)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	status, body := doJSON(t, app, http.MethodPost, "/api/meals", aliceToken, map[string]any{
		"day": "monday", "category": "dinner", "text": "Steak", "calories": 700,
	})
	if status != http.StatusCreated {
		t.Fatalf("create meal = %d: %s", status, body)
	}
	var meal model.Meal
	if err := json.Unmarshal(body, &meal); err != nil {
		t.Fatalf("unmarshal meal: %v", err)
	}

	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/meals/%d", meal.ID), bobToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("cross-user read = %d, want 404", status)
	}
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/meals/%d", meal.ID), bobToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("cross-user delete = %d, want 404", status)
	}
}

func TestSearchAndHistory(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice")

	for _, m := range []map[string]any{
		{"day": "monday", "category": "lunch", "text": "Chicken sandwich", "calories": 400},
		{"day": "tuesday", "category": "dinner", "text": "Chicken curry", "calories": 550},
	} {
		if status, body := doJSON(t, app, http.MethodPost, "/api/meals", token, m); status != http.StatusCreated {
			t.Fatalf("seed meal = %d: %s", status, body)
		}
	}
	if status, body := doJSON(t, app, http.MethodPost, "/api/activities", token, map[string]any{
		"day": "monday", "text": "Chicken dance workout", "duration": 15, "calories": 90,
	}); status != http.StatusCreated {
		t.Fatalf("seed activity = %d: %s", status, body)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/search?query=chicken", token, nil)
	if status != http.StatusOK {
		t.Fatalf("search = %d: %s", status, body)
	}
	var results []repository.SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatalf("unmarshal results: %v: %s", err, body)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 hits, got %d: %s", len(results), body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/search?query=chicken&day=monday&category=lunch", token, nil)
	if status != http.StatusOK {
		t.Fatalf("filtered search = %d: %s", status, body)
	}
	if err := json.Unmarshal(body, &results); err != nil || len(results) != 1 {
		t.Fatalf("filtered hits: %s", body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/search", token, nil)
	if status != http.StatusBadRequest || errorMessage(t, body) != "Query parameter is required" {
		t.Fatalf("empty query = %d: %s", status, body)
	}

	if status, body = doJSON(t, app, http.MethodPost, "/api/search-history", token, map[string]string{"query": "chicken"}); status != http.StatusCreated {
		t.Fatalf("record search = %d: %s", status, body)
	}
	status, body = doJSON(t, app, http.MethodGet, "/api/search-history", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get history = %d: %s", status, body)
	}
	var history []model.SearchEntry
	if err := json.Unmarshal(body, &history); err != nil || len(history) != 1 || history[0].Query != "chicken" {
		t.Fatalf("unexpected history: %s", body)
	}
}

func TestFastingByDay(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/fasting", token, map[string]any{
		"start_time": "2025-06-02T20:00:00Z",
		"end_time":   "2025-06-03T12:00:00Z",
		"duration":   16,
	})
	if status != http.StatusCreated {
		t.Fatalf("create fasting = %d: %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/fasting/day/2025-06-02", token, nil)
	if status != http.StatusOK {
		t.Fatalf("fasting by day = %d: %s", status, body)
	}
	var windows []model.Fasting
	if err := json.Unmarshal(body, &windows); err != nil || len(windows) != 1 {
		t.Fatalf("unexpected windows: %s", body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/fasting/day/monday", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("non-date day filter = %d: %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/fasting", token, map[string]any{
		"start_time": "yesterday evening",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("bad start time = %d: %s", status, body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("health = %d: %s", status, body)
	}
}
