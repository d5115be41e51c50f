package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/menulist-tracker/internal/service"
	"github.com/aebalz/menulist-tracker/internal/validation"
)

// TrackerHandler handles day aggregation, per-entity CRUD, and search.
type TrackerHandler struct {
	Service service.TrackerServiceInterface
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(svc service.TrackerServiceInterface) *TrackerHandler {
	return &TrackerHandler{Service: svc}
}

func (h *TrackerHandler) fetchDay(userID uint, day string) (int, any) {
	if !validation.IsDay(day) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid day. Use a weekday name or YYYY-MM-DD"}
	}
	data, err := h.Service.FetchDay(userID, validation.NormalizeDay(day))
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to fetch data"}
	}
	return http.StatusOK, data
}

func (h *TrackerHandler) saveDay(userID uint, day string, data *service.DayData) (int, any) {
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	if !validation.IsDay(day) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid day. Use a weekday name or YYYY-MM-DD"}
	}
	for _, f := range data.Fasting {
		if f.StartTime != "" && !validation.IsISOTimestamp(f.StartTime) {
			return http.StatusBadRequest, map[string]string{"error": "Invalid fasting start time. Use ISO 8601 format (e.g., 2025-05-15T13:00:00Z)"}
		}
		if f.EndTime != "" && !validation.IsISOTimestamp(f.EndTime) {
			return http.StatusBadRequest, map[string]string{"error": "Invalid fasting end time. Use ISO 8601 format (e.g., 2025-05-15T13:00:00Z)"}
		}
	}
	if err := h.Service.SaveDay(userID, validation.NormalizeDay(day), data); err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to save data"}
	}
	return http.StatusCreated, map[string]string{"message": "Data saved successfully"}
}

func (h *TrackerHandler) deleteDay(userID uint, day string) (int, any) {
	if !validation.IsDay(day) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid day. Use a weekday name or YYYY-MM-DD"}
	}
	if err := h.Service.DeleteDay(userID, validation.NormalizeDay(day)); err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to delete data"}
	}
	return http.StatusOK, map[string]string{"message": "Data deleted successfully"}
}

func (h *TrackerHandler) search(userID uint, query, day, category string) (int, any) {
	if query == "" {
		return http.StatusBadRequest, map[string]string{"error": "Query parameter is required"}
	}
	if day == "" {
		day = "all"
	}
	if category == "" {
		category = "all"
	}
	if !validation.IsDayFilter(day) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid day filter"}
	}
	if !validation.IsCategory(category) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid category filter"}
	}

	results, err := h.Service.Search(userID, query, validation.NormalizeDay(day), validation.NormalizeDay(category))
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to search items"}
	}
	return http.StatusOK, results
}

// @Summary Fetch everything tracked for one day
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Param day path string true "Weekday name or YYYY-MM-DD"
// @Success 200 {object} service.DayData
// @Failure 400 {object} map[string]string
// @Router /api/data/{day} [get]
// GetDayFiber handles GET /api/data/:day.
func (h *TrackerHandler) GetDayFiber(c *fiber.Ctx) error {
	status, body := h.fetchDay(userIDFiber(c), c.Params("day"))
	return c.Status(status).JSON(body)
}

// GetDayGin handles GET /api/data/:day.
func (h *TrackerHandler) GetDayGin(c *gin.Context) {
	status, body := h.fetchDay(userIDGin(c), c.Param("day"))
	c.JSON(status, body)
}

// @Summary Save a whole day's data atomically
// @Description Replaces every entry stored for the day with the posted payload in one transaction.
// @Tags Data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param day path string false "Weekday name or YYYY-MM-DD; defaults to today"
// @Param body body service.DayData true "Day payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/data/{day} [post]
// SaveDayFiber handles POST /api/data and POST /api/data/:day.
func (h *TrackerHandler) SaveDayFiber(c *fiber.Ctx) error {
	var data service.DayData
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.saveDay(userIDFiber(c), c.Params("day"), &data)
	return c.Status(status).JSON(body)
}

// SaveDayGin handles POST /api/data and POST /api/data/:day.
func (h *TrackerHandler) SaveDayGin(c *gin.Context) {
	var data service.DayData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.saveDay(userIDGin(c), c.Param("day"), &data)
	c.JSON(status, body)
}

// @Summary Delete everything tracked for one day
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Param day path string true "Weekday name or YYYY-MM-DD"
// @Success 200 {object} map[string]string
// @Router /api/data/{day} [delete]
// DeleteDayFiber handles DELETE /api/data/:day.
func (h *TrackerHandler) DeleteDayFiber(c *fiber.Ctx) error {
	status, body := h.deleteDay(userIDFiber(c), c.Params("day"))
	return c.Status(status).JSON(body)
}

// DeleteDayGin handles DELETE /api/data/:day.
func (h *TrackerHandler) DeleteDayGin(c *gin.Context) {
	status, body := h.deleteDay(userIDGin(c), c.Param("day"))
	c.JSON(status, body)
}

// @Summary Search meals and activities
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param query query string true "Substring to match, case-insensitive"
// @Param day query string false "Day filter, 'all' by default"
// @Param category query string false "Category filter, 'all' by default"
// @Success 200 {array} repository.SearchResult
// @Failure 400 {object} map[string]string
// @Router /api/search [get]
// SearchFiber handles GET /api/search.
func (h *TrackerHandler) SearchFiber(c *fiber.Ctx) error {
	status, body := h.search(userIDFiber(c), c.Query("query"), c.Query("day"), c.Query("category"))
	return c.Status(status).JSON(body)
}

// SearchGin handles GET /api/search.
func (h *TrackerHandler) SearchGin(c *gin.Context) {
	status, body := h.search(userIDGin(c), c.Query("query"), c.Query("day"), c.Query("category"))
	c.JSON(status, body)
}

func (h *TrackerHandler) searchHistory(userID uint) (int, any) {
	entries, err := h.Service.SearchHistory(userID)
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to fetch search history"}
	}
	return http.StatusOK, entries
}

func (h *TrackerHandler) recordSearch(userID uint, query string) (int, any) {
	if query == "" {
		return http.StatusBadRequest, map[string]string{"error": "Invalid query in request body"}
	}
	if _, err := h.Service.RecordSearch(userID, query); err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to save search query"}
	}
	return http.StatusCreated, map[string]string{"message": "Search query saved successfully"}
}

// searchHistoryRequest is the POST /api/search-history payload.
type searchHistoryRequest struct {
	Query string `json:"query"`
}

// GetSearchHistoryFiber handles GET /api/search-history.
func (h *TrackerHandler) GetSearchHistoryFiber(c *fiber.Ctx) error {
	status, body := h.searchHistory(userIDFiber(c))
	return c.Status(status).JSON(body)
}

// GetSearchHistoryGin handles GET /api/search-history.
func (h *TrackerHandler) GetSearchHistoryGin(c *gin.Context) {
	status, body := h.searchHistory(userIDGin(c))
	c.JSON(status, body)
}

// AddSearchHistoryFiber handles POST /api/search-history.
func (h *TrackerHandler) AddSearchHistoryFiber(c *fiber.Ctx) error {
	var req searchHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query in request body"})
	}
	status, body := h.recordSearch(userIDFiber(c), req.Query)
	return c.Status(status).JSON(body)
}

// AddSearchHistoryGin handles POST /api/search-history.
func (h *TrackerHandler) AddSearchHistoryGin(c *gin.Context) {
	var req searchHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query in request body"})
		return
	}
	status, body := h.recordSearch(userIDGin(c), req.Query)
	c.JSON(status, body)
}
