package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aebalz/menulist-tracker/internal/model"
	"github.com/aebalz/menulist-tracker/internal/repository"
)

func newTestService(t *testing.T) TrackerServiceInterface {
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
	return NewTrackerService(repository.NewTrackerRepository(db))
}

func TestFetchDayEmptyShape(t *testing.T) {
	svc := newTestService(t)

	data, err := svc.FetchDay(1, "monday")
	if err != nil {
		t.Fatalf("FetchDay: %v", err)
	}

	if data.Meals.Breakfast == nil || data.Meals.Lunch == nil || data.Meals.Dinner == nil || data.Meals.Snacks == nil {
		t.Fatal("meal buckets must never be nil")
	}
	if data.Activities == nil || data.Hydration == nil || data.Fasting == nil {
		t.Fatal("entry lists must never be nil")
	}
	if len(data.Activities) != 0 || len(data.Hydration) != 0 || len(data.Fasting) != 0 {
		t.Fatalf("expected empty day, got %+v", data)
	}
	if data.Notes != "" {
		t.Fatalf("expected empty notes, got %q", data.Notes)
	}
}

func TestSaveDayFetchDayRoundTrip(t *testing.T) {
	svc := newTestService(t)

	in := &DayData{
		Meals: MealsByCategory{
			Breakfast: []model.Meal{{Text: "Oatmeal", Calories: 320, Timestamp: "2025-06-02T08:00:00Z"}},
			Lunch:     []model.Meal{},
			Dinner: []model.Meal{
				{Text: "Grilled salmon", Calories: 450, Timestamp: "2025-06-02T19:00:00Z"},
				{Text: "Side salad", Calories: 120, Timestamp: "2025-06-02T19:05:00Z"},
			},
			Snacks: []model.Meal{},
		},
		Activities: []model.Activity{{Text: "Evening run", Duration: 30, Calories: 280, Completed: true}},
		Hydration:  []model.Hydration{{Amount: 500, Timestamp: "2025-06-02T12:00:00Z"}},
		Fasting:    []model.Fasting{{StartTime: "2025-06-02T20:00:00Z", EndTime: "2025-06-03T12:00:00Z", Duration: 16}},
		Notes:      "Solid day",
	}

	if err := svc.SaveDay(1, "monday", in); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}

	out, err := svc.FetchDay(1, "monday")
	if err != nil {
		t.Fatalf("FetchDay: %v", err)
	}

	if len(out.Meals.Breakfast) != 1 || out.Meals.Breakfast[0].Text != "Oatmeal" {
		t.Fatalf("breakfast mismatch: %+v", out.Meals.Breakfast)
	}
	if out.Meals.Breakfast[0].Category != model.CategoryBreakfast {
		t.Fatalf("bucket category not applied: %q", out.Meals.Breakfast[0].Category)
	}
	if len(out.Meals.Dinner) != 2 {
		t.Fatalf("dinner mismatch: %+v", out.Meals.Dinner)
	}
	if out.Meals.Dinner[0].Text != "Grilled salmon" || out.Meals.Dinner[1].Text != "Side salad" {
		t.Fatalf("dinner order not preserved: %+v", out.Meals.Dinner)
	}
	if len(out.Meals.Lunch) != 0 || len(out.Meals.Snacks) != 0 {
		t.Fatalf("empty buckets mismatch: %+v", out.Meals)
	}
	if len(out.Activities) != 1 || !out.Activities[0].Completed {
		t.Fatalf("activities mismatch: %+v", out.Activities)
	}
	if len(out.Hydration) != 1 || out.Hydration[0].Amount != 500 {
		t.Fatalf("hydration mismatch: %+v", out.Hydration)
	}
	if len(out.Fasting) != 1 || out.Fasting[0].StartTime != "2025-06-02T20:00:00Z" {
		t.Fatalf("fasting mismatch: %+v", out.Fasting)
	}
	if out.Notes != "Solid day" {
		t.Fatalf("notes mismatch: %q", out.Notes)
	}

	// Timestamps are stored verbatim, not reformatted.
	if out.Meals.Breakfast[0].Timestamp != "2025-06-02T08:00:00Z" {
		t.Fatalf("timestamp rewritten: %q", out.Meals.Breakfast[0].Timestamp)
	}
}

func TestSaveDayReplacesPrevious(t *testing.T) {
	svc := newTestService(t)

	first := &DayData{
		Meals: MealsByCategory{Lunch: []model.Meal{{Text: "Soup", Calories: 250}}},
		Notes: "before",
	}
	if err := svc.SaveDay(1, "tuesday", first); err != nil {
		t.Fatalf("SaveDay (first): %v", err)
	}

	second := &DayData{
		Meals: MealsByCategory{Snacks: []model.Meal{{Text: "Apple", Calories: 90}}},
	}
	if err := svc.SaveDay(1, "tuesday", second); err != nil {
		t.Fatalf("SaveDay (second): %v", err)
	}

	out, err := svc.FetchDay(1, "tuesday")
	if err != nil {
		t.Fatalf("FetchDay: %v", err)
	}
	if len(out.Meals.Lunch) != 0 {
		t.Fatalf("old lunch survived: %+v", out.Meals.Lunch)
	}
	if len(out.Meals.Snacks) != 1 || out.Meals.Snacks[0].Text != "Apple" {
		t.Fatalf("new snacks missing: %+v", out.Meals.Snacks)
	}
	if out.Notes != "" {
		t.Fatalf("old notes survived: %q", out.Notes)
	}
}

func TestDeleteDayClearsEverything(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SaveDay(1, "friday", &DayData{
		Meals:      MealsByCategory{Dinner: []model.Meal{{Text: "Pizza", Calories: 800}}},
		Activities: []model.Activity{{Text: "Walk", Duration: 20}},
		Notes:      "cheat day",
	}); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}

	if err := svc.DeleteDay(1, "friday"); err != nil {
		t.Fatalf("DeleteDay: %v", err)
	}

	out, err := svc.FetchDay(1, "friday")
	if err != nil {
		t.Fatalf("FetchDay: %v", err)
	}
	if len(out.Meals.Dinner) != 0 || len(out.Activities) != 0 || out.Notes != "" {
		t.Fatalf("day not cleared: %+v", out)
	}
}

func TestRecordSearchAndHistory(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.RecordSearch(1, "chicken"); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	if _, err := svc.RecordSearch(1, "pasta"); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}

	history, err := svc.SearchHistory(1)
	if err != nil {
		t.Fatalf("SearchHistory: %v", err)
	}
	if len(history) != 2 || history[0].Query != "chicken" || history[1].Query != "pasta" {
		t.Fatalf("unexpected history: %+v", history)
	}
	if history[0].Timestamp == "" {
		t.Fatal("expected recorded timestamp")
	}

	empty, err := svc.SearchHistory(2)
	if err != nil {
		t.Fatalf("SearchHistory (empty): %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil history, got %v", empty)
	}
}
