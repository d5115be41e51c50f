package repository

import (
	"strings"

	"github.com/aebalz/menulist-tracker/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchHistoryLimit is the per-user retention of recent search queries.
// Oldest entries are evicted once the limit is exceeded.
const SearchHistoryLimit = 50

// SearchResult is one hit from the cross-entity search, tagged with the
// entity kind it came from and the category it belongs to.
type SearchResult struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`     // "meal" or "activity"
	Category  string `json:"category"` // meal category or "physical-activity"
	Day       string `json:"day"`
	Text      string `json:"text"`
	Calories  int    `json:"calories"`
	Duration  int    `json:"duration,omitempty"`
	Timestamp string `json:"timestamp"`
}

// TrackerRepositoryInterface defines the persistence operations for all
// day-keyed tracker entities. Every query is scoped to one owning user;
// the repository never joins across users.
type TrackerRepositoryInterface interface {
	// Meals
	CreateMeal(meal *model.Meal) (*model.Meal, error)
	GetMealByID(userID, id uint) (*model.Meal, error)
	GetMealsByDay(userID uint, day string) ([]model.Meal, error)
	UpdateMeal(userID, id uint, updated *model.Meal) (*model.Meal, error)
	DeleteMeal(userID, id uint) error

	// Activities
	CreateActivity(activity *model.Activity) (*model.Activity, error)
	GetActivityByID(userID, id uint) (*model.Activity, error)
	GetActivitiesByDay(userID uint, day string) ([]model.Activity, error)
	UpdateActivity(userID, id uint, updated *model.Activity) (*model.Activity, error)
	DeleteActivity(userID, id uint) error

	// Hydration
	CreateHydration(entry *model.Hydration) (*model.Hydration, error)
	GetHydrationByID(userID, id uint) (*model.Hydration, error)
	GetHydrationByDay(userID uint, day string) ([]model.Hydration, error)
	UpdateHydration(userID, id uint, updated *model.Hydration) (*model.Hydration, error)
	DeleteHydration(userID, id uint) error

	// Fasting
	CreateFasting(entry *model.Fasting) (*model.Fasting, error)
	GetFastingByID(userID, id uint) (*model.Fasting, error)
	GetFastingByDay(userID uint, day string) ([]model.Fasting, error)
	GetFastingByStartDate(userID uint, date string) ([]model.Fasting, error)
	UpdateFasting(userID, id uint, updated *model.Fasting) (*model.Fasting, error)
	DeleteFasting(userID, id uint) error

	// Notes
	UpsertNote(note *model.Note) (*model.Note, error)
	GetNoteByDay(userID uint, day string) (*model.Note, error)

	// Whole-day operations
	ReplaceDay(userID uint, day string, meals []model.Meal, activities []model.Activity,
		hydration []model.Hydration, fasting []model.Fasting, note *model.Note) error
	DeleteDay(userID uint, day string) error

	// Search
	Search(userID uint, query, day, category string) ([]SearchResult, error)
	AddSearchEntry(entry *model.SearchEntry) (*model.SearchEntry, error)
	RecentSearches(userID uint) ([]model.SearchEntry, error)
}

// TrackerRepository implements TrackerRepositoryInterface on GORM.
type TrackerRepository struct {
	DB *gorm.DB
}

// NewTrackerRepository creates a new TrackerRepository.
func NewTrackerRepository(db *gorm.DB) TrackerRepositoryInterface {
	return &TrackerRepository{DB: db}
}

// --- Meals ---

// CreateMeal inserts a meal and assigns its id.
func (r *TrackerRepository) CreateMeal(meal *model.Meal) (*model.Meal, error) {
	if result := r.DB.Create(meal); result.Error != nil {
		return nil, result.Error
	}
	return meal, nil
}

// GetMealByID retrieves one meal owned by userID.
func (r *TrackerRepository) GetMealByID(userID, id uint) (*model.Meal, error) {
	var meal model.Meal
	if result := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&meal); result.Error != nil {
		return nil, result.Error
	}
	return &meal, nil
}

// GetMealsByDay retrieves all meals for one day in storage order.
func (r *TrackerRepository) GetMealsByDay(userID uint, day string) ([]model.Meal, error) {
	var meals []model.Meal
	if result := r.DB.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&meals); result.Error != nil {
		return nil, result.Error
	}
	return meals, nil
}

// UpdateMeal overwrites a meal's fields, preserving id and creation time.
func (r *TrackerRepository) UpdateMeal(userID, id uint, updated *model.Meal) (*model.Meal, error) {
	var existing model.Meal
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		return nil, err
	}
	updated.ID = id
	updated.UserID = userID
	updated.CreatedAt = existing.CreatedAt
	if result := r.DB.Save(updated); result.Error != nil {
		return nil, result.Error
	}
	return updated, nil
}

// DeleteMeal removes one meal. Absent ids report gorm.ErrRecordNotFound.
func (r *TrackerRepository) DeleteMeal(userID, id uint) error {
	result := r.DB.Where("user_id = ?", userID).Delete(&model.Meal{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Activities ---

// CreateActivity inserts an activity and assigns its id.
func (r *TrackerRepository) CreateActivity(activity *model.Activity) (*model.Activity, error) {
	if result := r.DB.Create(activity); result.Error != nil {
		return nil, result.Error
	}
	return activity, nil
}

// GetActivityByID retrieves one activity owned by userID.
func (r *TrackerRepository) GetActivityByID(userID, id uint) (*model.Activity, error) {
	var activity model.Activity
	if result := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&activity); result.Error != nil {
		return nil, result.Error
	}
	return &activity, nil
}

// GetActivitiesByDay retrieves all activities for one day in storage order.
func (r *TrackerRepository) GetActivitiesByDay(userID uint, day string) ([]model.Activity, error) {
	var activities []model.Activity
	if result := r.DB.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&activities); result.Error != nil {
		return nil, result.Error
	}
	return activities, nil
}

// UpdateActivity overwrites an activity's fields, preserving id and creation time.
func (r *TrackerRepository) UpdateActivity(userID, id uint, updated *model.Activity) (*model.Activity, error) {
	var existing model.Activity
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		return nil, err
	}
	updated.ID = id
	updated.UserID = userID
	updated.CreatedAt = existing.CreatedAt
	if result := r.DB.Save(updated); result.Error != nil {
		return nil, result.Error
	}
	return updated, nil
}

// DeleteActivity removes one activity. Absent ids report gorm.ErrRecordNotFound.
func (r *TrackerRepository) DeleteActivity(userID, id uint) error {
	result := r.DB.Where("user_id = ?", userID).Delete(&model.Activity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Hydration ---

// CreateHydration inserts a hydration entry and assigns its id.
func (r *TrackerRepository) CreateHydration(entry *model.Hydration) (*model.Hydration, error) {
	if result := r.DB.Create(entry); result.Error != nil {
		return nil, result.Error
	}
	return entry, nil
}

// GetHydrationByID retrieves one hydration entry owned by userID.
func (r *TrackerRepository) GetHydrationByID(userID, id uint) (*model.Hydration, error) {
	var entry model.Hydration
	if result := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// GetHydrationByDay retrieves all hydration entries for one day in storage order.
func (r *TrackerRepository) GetHydrationByDay(userID uint, day string) ([]model.Hydration, error) {
	var entries []model.Hydration
	if result := r.DB.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// UpdateHydration overwrites a hydration entry's fields.
func (r *TrackerRepository) UpdateHydration(userID, id uint, updated *model.Hydration) (*model.Hydration, error) {
	var existing model.Hydration
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		return nil, err
	}
	updated.ID = id
	updated.UserID = userID
	updated.CreatedAt = existing.CreatedAt
	if result := r.DB.Save(updated); result.Error != nil {
		return nil, result.Error
	}
	return updated, nil
}

// DeleteHydration removes one hydration entry. Absent ids report gorm.ErrRecordNotFound.
func (r *TrackerRepository) DeleteHydration(userID, id uint) error {
	result := r.DB.Where("user_id = ?", userID).Delete(&model.Hydration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Fasting ---

// CreateFasting inserts a fasting window and assigns its id.
func (r *TrackerRepository) CreateFasting(entry *model.Fasting) (*model.Fasting, error) {
	if result := r.DB.Create(entry); result.Error != nil {
		return nil, result.Error
	}
	return entry, nil
}

// GetFastingByID retrieves one fasting window owned by userID.
func (r *TrackerRepository) GetFastingByID(userID, id uint) (*model.Fasting, error) {
	var entry model.Fasting
	if result := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// GetFastingByDay retrieves all fasting windows keyed to one day.
func (r *TrackerRepository) GetFastingByDay(userID uint, day string) ([]model.Fasting, error) {
	var entries []model.Fasting
	if result := r.DB.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// GetFastingByStartDate retrieves fasting windows whose start time falls on a
// calendar date, matching on the ISO timestamp's date prefix.
func (r *TrackerRepository) GetFastingByStartDate(userID uint, date string) ([]model.Fasting, error) {
	var entries []model.Fasting
	if result := r.DB.Where("user_id = ? AND start_time LIKE ?", userID, date+"%").Order("id ASC").Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// UpdateFasting overwrites a fasting window's fields.
func (r *TrackerRepository) UpdateFasting(userID, id uint, updated *model.Fasting) (*model.Fasting, error) {
	var existing model.Fasting
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		return nil, err
	}
	updated.ID = id
	updated.UserID = userID
	updated.CreatedAt = existing.CreatedAt
	if result := r.DB.Save(updated); result.Error != nil {
		return nil, result.Error
	}
	return updated, nil
}

// DeleteFasting removes one fasting window. Absent ids report gorm.ErrRecordNotFound.
func (r *TrackerRepository) DeleteFasting(userID, id uint) error {
	result := r.DB.Where("user_id = ?", userID).Delete(&model.Fasting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Notes ---

// UpsertNote writes the note for one day, last write wins.
func (r *TrackerRepository) UpsertNote(note *model.Note) (*model.Note, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "timestamp", "updated_at"}),
	}).Create(note)
	if result.Error != nil {
		return nil, result.Error
	}
	return note, nil
}

// GetNoteByDay retrieves the note for one day, if any.
func (r *TrackerRepository) GetNoteByDay(userID uint, day string) (*model.Note, error) {
	var note model.Note
	if result := r.DB.Where("user_id = ? AND day = ?", userID, day).First(&note); result.Error != nil {
		return nil, result.Error
	}
	return &note, nil
}

// --- Whole-day operations ---

// ReplaceDay atomically replaces everything stored for one day: existing rows
// are deleted and the new payload inserted inside a single transaction, so a
// crash mid-save cannot lose the day.
func (r *TrackerRepository) ReplaceDay(userID uint, day string, meals []model.Meal, activities []model.Activity,
	hydration []model.Hydration, fasting []model.Fasting, note *model.Note) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteDayRows(tx, userID, day); err != nil {
			return err
		}
		for i := range meals {
			meals[i].ID = 0
			meals[i].UserID = userID
			meals[i].Day = day
			if err := tx.Create(&meals[i]).Error; err != nil {
				return err
			}
		}
		for i := range activities {
			activities[i].ID = 0
			activities[i].UserID = userID
			activities[i].Day = day
			if err := tx.Create(&activities[i]).Error; err != nil {
				return err
			}
		}
		for i := range hydration {
			hydration[i].ID = 0
			hydration[i].UserID = userID
			hydration[i].Day = day
			if err := tx.Create(&hydration[i]).Error; err != nil {
				return err
			}
		}
		for i := range fasting {
			fasting[i].ID = 0
			fasting[i].UserID = userID
			fasting[i].Day = day
			if err := tx.Create(&fasting[i]).Error; err != nil {
				return err
			}
		}
		if note != nil && note.Content != "" {
			note.ID = 0
			note.UserID = userID
			note.Day = day
			if err := tx.Create(note).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteDay removes every row stored for one day, atomically.
func (r *TrackerRepository) DeleteDay(userID uint, day string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteDayRows(tx, userID, day)
	})
}

func deleteDayRows(tx *gorm.DB, userID uint, day string) error {
	for _, target := range []interface{}{&model.Meal{}, &model.Activity{}, &model.Hydration{}, &model.Fasting{}, &model.Note{}} {
		if err := tx.Where("user_id = ? AND day = ?", userID, day).Delete(target).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- Search ---

// Search runs a case-insensitive substring match of query against meal and
// activity text. day restricts to one day unless "all"; category restricts to
// one meal bucket, or to activities only for "physical-activity". Results are
// returned in storage order, meals first.
func (r *TrackerRepository) Search(userID uint, query, day, category string) ([]SearchResult, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	results := []SearchResult{}

	if category != "physical-activity" {
		mealQuery := r.DB.Model(&model.Meal{}).Where("user_id = ? AND LOWER(text) LIKE ?", userID, pattern)
		if day != "all" {
			mealQuery = mealQuery.Where("day = ?", day)
		}
		if category != "all" {
			mealQuery = mealQuery.Where("category = ?", category)
		}
		var meals []model.Meal
		if err := mealQuery.Order("id ASC").Find(&meals).Error; err != nil {
			return nil, err
		}
		for _, m := range meals {
			results = append(results, SearchResult{
				ID:        m.ID,
				Type:      "meal",
				Category:  m.Category,
				Day:       m.Day,
				Text:      m.Text,
				Calories:  m.Calories,
				Timestamp: m.Timestamp,
			})
		}
	}

	if category == "all" || category == "physical-activity" {
		activityQuery := r.DB.Model(&model.Activity{}).Where("user_id = ? AND LOWER(text) LIKE ?", userID, pattern)
		if day != "all" {
			activityQuery = activityQuery.Where("day = ?", day)
		}
		var activities []model.Activity
		if err := activityQuery.Order("id ASC").Find(&activities).Error; err != nil {
			return nil, err
		}
		for _, a := range activities {
			results = append(results, SearchResult{
				ID:        a.ID,
				Type:      "activity",
				Category:  "physical-activity",
				Day:       a.Day,
				Text:      a.Text,
				Calories:  a.Calories,
				Duration:  a.Duration,
				Timestamp: a.Timestamp,
			})
		}
	}

	return results, nil
}

// AddSearchEntry records a query and trims the per-user history to
// SearchHistoryLimit entries, evicting the oldest.
func (r *TrackerRepository) AddSearchEntry(entry *model.SearchEntry) (*model.SearchEntry, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.SearchEntry{}).Where("user_id = ?", entry.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count > SearchHistoryLimit {
			var cutoff model.SearchEntry
			if err := tx.Where("user_id = ?", entry.UserID).
				Order("id DESC").Offset(SearchHistoryLimit - 1).First(&cutoff).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ? AND id < ?", entry.UserID, cutoff.ID).
				Delete(&model.SearchEntry{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecentSearches returns the stored history, oldest first.
func (r *TrackerRepository) RecentSearches(userID uint) ([]model.SearchEntry, error) {
	var entries []model.SearchEntry
	if result := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}
