package service

import (
	"errors"
	"time"

	"github.com/aebalz/menulist-tracker/internal/model"
	"github.com/aebalz/menulist-tracker/internal/repository"
	"gorm.io/gorm"
)

// MealsByCategory buckets a day's meals into the four fixed categories.
// Buckets are always present, possibly empty, never null in JSON.
type MealsByCategory struct {
	Breakfast []model.Meal `json:"breakfast"`
	Lunch     []model.Meal `json:"lunch"`
	Dinner    []model.Meal `json:"dinner"`
	Snacks    []model.Meal `json:"snacks"`
}

// DayData is the aggregate of everything tracked for one day. Clients depend
// on every list being present even when empty.
type DayData struct {
	Meals      MealsByCategory   `json:"meals"`
	Activities []model.Activity  `json:"activities"`
	Hydration  []model.Hydration `json:"hydration"`
	Fasting    []model.Fasting   `json:"fasting"`
	Notes      string            `json:"notes"`
}

// TrackerServiceInterface defines the query/aggregation operations over the
// tracker store.
type TrackerServiceInterface interface {
	FetchDay(userID uint, day string) (*DayData, error)
	SaveDay(userID uint, day string, data *DayData) error
	DeleteDay(userID uint, day string) error
	Search(userID uint, query, day, category string) ([]repository.SearchResult, error)
	RecordSearch(userID uint, query string) (*model.SearchEntry, error)
	SearchHistory(userID uint) ([]model.SearchEntry, error)
	Repo() repository.TrackerRepositoryInterface
}

// TrackerService implements TrackerServiceInterface.
type TrackerService struct {
	TrackerRepo repository.TrackerRepositoryInterface
}

// NewTrackerService creates a new TrackerService.
func NewTrackerService(trackerRepo repository.TrackerRepositoryInterface) TrackerServiceInterface {
	return &TrackerService{TrackerRepo: trackerRepo}
}

// Repo exposes the underlying repository for the per-entity CRUD handlers.
func (s *TrackerService) Repo() repository.TrackerRepositoryInterface {
	return s.TrackerRepo
}

// FetchDay merges the five per-entity reads into the client's nested shape.
// A day with no rows yields empty lists and an empty notes string.
func (s *TrackerService) FetchDay(userID uint, day string) (*DayData, error) {
	data := &DayData{
		Meals: MealsByCategory{
			Breakfast: []model.Meal{},
			Lunch:     []model.Meal{},
			Dinner:    []model.Meal{},
			Snacks:    []model.Meal{},
		},
		Activities: []model.Activity{},
		Hydration:  []model.Hydration{},
		Fasting:    []model.Fasting{},
	}

	meals, err := s.TrackerRepo.GetMealsByDay(userID, day)
	if err != nil {
		return nil, err
	}
	for _, m := range meals {
		switch m.Category {
		case model.CategoryBreakfast:
			data.Meals.Breakfast = append(data.Meals.Breakfast, m)
		case model.CategoryLunch:
			data.Meals.Lunch = append(data.Meals.Lunch, m)
		case model.CategoryDinner:
			data.Meals.Dinner = append(data.Meals.Dinner, m)
		case model.CategorySnacks:
			data.Meals.Snacks = append(data.Meals.Snacks, m)
		}
	}

	if data.Activities, err = s.TrackerRepo.GetActivitiesByDay(userID, day); err != nil {
		return nil, err
	}
	if data.Activities == nil {
		data.Activities = []model.Activity{}
	}
	if data.Hydration, err = s.TrackerRepo.GetHydrationByDay(userID, day); err != nil {
		return nil, err
	}
	if data.Hydration == nil {
		data.Hydration = []model.Hydration{}
	}
	if data.Fasting, err = s.TrackerRepo.GetFastingByDay(userID, day); err != nil {
		return nil, err
	}
	if data.Fasting == nil {
		data.Fasting = []model.Fasting{}
	}

	note, err := s.TrackerRepo.GetNoteByDay(userID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		data.Notes = note.Content
	}

	return data, nil
}

// SaveDay replaces a day's stored entries with the given payload in one
// transaction. Meal categories are taken from the bucket the entry arrived in.
func (s *TrackerService) SaveDay(userID uint, day string, data *DayData) error {
	meals := make([]model.Meal, 0, len(data.Meals.Breakfast)+len(data.Meals.Lunch)+len(data.Meals.Dinner)+len(data.Meals.Snacks))
	for category, bucket := range map[string][]model.Meal{
		model.CategoryBreakfast: data.Meals.Breakfast,
		model.CategoryLunch:     data.Meals.Lunch,
		model.CategoryDinner:    data.Meals.Dinner,
		model.CategorySnacks:    data.Meals.Snacks,
	} {
		for _, m := range bucket {
			m.Category = category
			meals = append(meals, m)
		}
	}

	var note *model.Note
	if data.Notes != "" {
		note = &model.Note{
			Content:   data.Notes,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
	}

	return s.TrackerRepo.ReplaceDay(userID, day, meals, data.Activities, data.Hydration, data.Fasting, note)
}

// DeleteDay removes everything stored for one day.
func (s *TrackerService) DeleteDay(userID uint, day string) error {
	return s.TrackerRepo.DeleteDay(userID, day)
}

// Search runs the cross-entity substring search.
func (s *TrackerService) Search(userID uint, query, day, category string) ([]repository.SearchResult, error) {
	return s.TrackerRepo.Search(userID, query, day, category)
}

// RecordSearch appends a query to the bounded search history.
func (s *TrackerService) RecordSearch(userID uint, query string) (*model.SearchEntry, error) {
	entry := &model.SearchEntry{
		UserID:    userID,
		Query:     query,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return s.TrackerRepo.AddSearchEntry(entry)
}

// SearchHistory returns the stored recent queries, oldest first.
func (s *TrackerService) SearchHistory(userID uint) ([]model.SearchEntry, error) {
	entries, err := s.TrackerRepo.RecentSearches(userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.SearchEntry{}
	}
	return entries, nil
}
