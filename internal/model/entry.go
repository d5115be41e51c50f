package model

import "time"

// Meal categories accepted by the tracker.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnacks    = "snacks"
)

// MealCategories lists the four meal buckets in display order.
var MealCategories = []string{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnacks}

// Meal is a single food entry for one day. Timestamp is the client-supplied
// ISO string and is stored verbatim so a saved day round-trips unchanged.
type Meal struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index:idx_meals_user_day;not null"`
	Day       string    `json:"day" gorm:"index:idx_meals_user_day;not null"`
	Category  string    `json:"category" gorm:"not null"`
	Text      string    `json:"text" gorm:"not null"`
	Calories  int       `json:"calories" gorm:"check:calories >= 0"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is a physical-activity entry for one day.
type Activity struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index:idx_activities_user_day;not null"`
	Day       string    `json:"day" gorm:"index:idx_activities_user_day;not null"`
	Text      string    `json:"text" gorm:"not null"`
	Duration  int       `json:"duration"` // minutes
	Calories  int       `json:"calories"`
	Completed bool      `json:"completed"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hydration is a single water intake entry.
type Hydration struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index:idx_hydration_user_day;not null"`
	Day       string    `json:"day" gorm:"index:idx_hydration_user_day;not null"`
	Amount    int       `json:"amount"` // milliliters
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fasting is one fasting window. StartTime/EndTime are ISO-8601 strings;
// EndTime is empty while the fast is still open.
type Fasting struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index:idx_fasting_user_day;not null"`
	Day       string    `json:"day" gorm:"index:idx_fasting_user_day;not null"`
	StartTime string    `json:"start_time" gorm:"not null"`
	EndTime   string    `json:"end_time"`
	Duration  int       `json:"duration"` // hours
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note holds the free-form notes for one day. One row per (user, day),
// last write wins.
type Note struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"uniqueIndex:idx_notes_user_day;not null"`
	Day       string    `json:"day" gorm:"uniqueIndex:idx_notes_user_day;not null"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchEntry records one search query for the recent-searches list.
type SearchEntry struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index;not null"`
	Query     string    `json:"query" gorm:"not null"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
