package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aebalz/menulist-tracker/internal/model"
	"github.com/aebalz/menulist-tracker/internal/validation"
)

// Per-entity CRUD endpoints. Each entity gets a POST collection route plus
// GET/PUT/DELETE by id, with ownership enforced through the repository's
// user scoping. Missing ids are an error, uniformly.

// MealRequest is the meal create/update payload.
type MealRequest struct {
	Day       string `json:"day"`
	Category  string `json:"category"`
	Text      string `json:"text"`
	Calories  int    `json:"calories"`
	Timestamp string `json:"timestamp"`
}

// ActivityRequest is the activity create/update payload.
type ActivityRequest struct {
	Day       string `json:"day"`
	Text      string `json:"text"`
	Duration  int    `json:"duration"`
	Calories  int    `json:"calories"`
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp"`
}

// HydrationRequest is the hydration create/update payload.
type HydrationRequest struct {
	Day       string `json:"day"`
	Amount    int    `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// FastingRequest is the fasting create/update payload.
type FastingRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`
	Timestamp string `json:"timestamp"`
}

func storageError(err error, entity string) (int, any) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, map[string]string{"error": entity + " not found"}
	}
	return http.StatusInternalServerError, map[string]string{"error": "Storage failure"}
}

func (r *MealRequest) validate() string {
	if !validation.IsDay(r.Day) {
		return "Invalid day. Use a weekday name or YYYY-MM-DD"
	}
	if !validation.IsMealCategory(r.Category) {
		return "Invalid category. Use breakfast, lunch, dinner, or snacks"
	}
	if strings.TrimSpace(r.Text) == "" {
		return "Text is required"
	}
	if r.Calories < 0 {
		return "Calories must not be negative"
	}
	return ""
}

func (r *MealRequest) toModel(userID uint) *model.Meal {
	return &model.Meal{
		UserID:    userID,
		Day:       validation.NormalizeDay(r.Day),
		Category:  strings.ToLower(r.Category),
		Text:      r.Text,
		Calories:  r.Calories,
		Timestamp: r.Timestamp,
	}
}

func (r *ActivityRequest) validate() string {
	if !validation.IsDay(r.Day) {
		return "Invalid day. Use a weekday name or YYYY-MM-DD"
	}
	if strings.TrimSpace(r.Text) == "" {
		return "Text is required"
	}
	if r.Duration < 0 || r.Calories < 0 {
		return "Duration and calories must not be negative"
	}
	return ""
}

func (r *ActivityRequest) toModel(userID uint) *model.Activity {
	return &model.Activity{
		UserID:    userID,
		Day:       validation.NormalizeDay(r.Day),
		Text:      r.Text,
		Duration:  r.Duration,
		Calories:  r.Calories,
		Completed: r.Completed,
		Timestamp: r.Timestamp,
	}
}

func (r *HydrationRequest) validate() string {
	if !validation.IsDay(r.Day) {
		return "Invalid day. Use a weekday name or YYYY-MM-DD"
	}
	if r.Amount <= 0 {
		return "Amount must be positive"
	}
	return ""
}

func (r *HydrationRequest) toModel(userID uint) *model.Hydration {
	return &model.Hydration{
		UserID:    userID,
		Day:       validation.NormalizeDay(r.Day),
		Amount:    r.Amount,
		Timestamp: r.Timestamp,
	}
}

func (r *FastingRequest) validate() string {
	if r.StartTime == "" {
		return "Start time is required"
	}
	if !validation.IsISOTimestamp(r.StartTime) || (r.EndTime != "" && !validation.IsISOTimestamp(r.EndTime)) {
		return "Invalid date format. Use ISO 8601 format (e.g., 2025-05-15T13:00:00Z)"
	}
	if r.Day != "" && !validation.IsDay(r.Day) {
		return "Invalid day. Use a weekday name or YYYY-MM-DD"
	}
	return ""
}

func (r *FastingRequest) toModel(userID uint) *model.Fasting {
	day := r.Day
	if day == "" {
		// Key the window to its start date when no day was supplied.
		day = r.StartTime[:10]
	}
	return &model.Fasting{
		UserID:    userID,
		Day:       validation.NormalizeDay(day),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Duration:  r.Duration,
		Timestamp: r.Timestamp,
	}
}

// --- Meals ---

func (h *TrackerHandler) createMeal(userID uint, req MealRequest) (int, any) {
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	meal, err := h.Service.Repo().CreateMeal(req.toModel(userID))
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to save meal"}
	}
	return http.StatusCreated, meal
}

func (h *TrackerHandler) getMeal(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid meal ID"}
	}
	meal, err := h.Service.Repo().GetMealByID(userID, id)
	if err != nil {
		return storageError(err, "Meal")
	}
	return http.StatusOK, meal
}

func (h *TrackerHandler) updateMeal(userID uint, rawID string, req MealRequest) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid meal ID"}
	}
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	meal, err := h.Service.Repo().UpdateMeal(userID, id, req.toModel(userID))
	if err != nil {
		return storageError(err, "Meal")
	}
	return http.StatusOK, meal
}

func (h *TrackerHandler) deleteMeal(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid meal ID"}
	}
	if err := h.Service.Repo().DeleteMeal(userID, id); err != nil {
		return storageError(err, "Meal")
	}
	return http.StatusOK, map[string]string{"message": "Meal deleted successfully"}
}

// CreateMealFiber handles POST /api/meals.
func (h *TrackerHandler) CreateMealFiber(c *fiber.Ctx) error {
	var req MealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.createMeal(userIDFiber(c), req)
	return c.Status(status).JSON(body)
}

// GetMealFiber handles GET /api/meals/:id.
func (h *TrackerHandler) GetMealFiber(c *fiber.Ctx) error {
	status, body := h.getMeal(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// UpdateMealFiber handles PUT /api/meals/:id.
func (h *TrackerHandler) UpdateMealFiber(c *fiber.Ctx) error {
	var req MealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.updateMeal(userIDFiber(c), c.Params("id"), req)
	return c.Status(status).JSON(body)
}

// DeleteMealFiber handles DELETE /api/meals/:id.
func (h *TrackerHandler) DeleteMealFiber(c *fiber.Ctx) error {
	status, body := h.deleteMeal(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// CreateMealGin handles POST /api/meals.
func (h *TrackerHandler) CreateMealGin(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.createMeal(userIDGin(c), req)
	c.JSON(status, body)
}

// GetMealGin handles GET /api/meals/:id.
func (h *TrackerHandler) GetMealGin(c *gin.Context) {
	status, body := h.getMeal(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// UpdateMealGin handles PUT /api/meals/:id.
func (h *TrackerHandler) UpdateMealGin(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.updateMeal(userIDGin(c), c.Param("id"), req)
	c.JSON(status, body)
}

// DeleteMealGin handles DELETE /api/meals/:id.
func (h *TrackerHandler) DeleteMealGin(c *gin.Context) {
	status, body := h.deleteMeal(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// --- Activities ---

func (h *TrackerHandler) createActivity(userID uint, req ActivityRequest) (int, any) {
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	activity, err := h.Service.Repo().CreateActivity(req.toModel(userID))
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to save activity"}
	}
	return http.StatusCreated, activity
}

func (h *TrackerHandler) getActivity(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid activity ID"}
	}
	activity, err := h.Service.Repo().GetActivityByID(userID, id)
	if err != nil {
		return storageError(err, "Activity")
	}
	return http.StatusOK, activity
}

func (h *TrackerHandler) updateActivity(userID uint, rawID string, req ActivityRequest) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid activity ID"}
	}
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	activity, err := h.Service.Repo().UpdateActivity(userID, id, req.toModel(userID))
	if err != nil {
		return storageError(err, "Activity")
	}
	return http.StatusOK, activity
}

func (h *TrackerHandler) deleteActivity(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid activity ID"}
	}
	if err := h.Service.Repo().DeleteActivity(userID, id); err != nil {
		return storageError(err, "Activity")
	}
	return http.StatusOK, map[string]string{"message": "Activity deleted successfully"}
}

// CreateActivityFiber handles POST /api/activities.
func (h *TrackerHandler) CreateActivityFiber(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.createActivity(userIDFiber(c), req)
	return c.Status(status).JSON(body)
}

// GetActivityFiber handles GET /api/activities/:id.
func (h *TrackerHandler) GetActivityFiber(c *fiber.Ctx) error {
	status, body := h.getActivity(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// UpdateActivityFiber handles PUT /api/activities/:id.
func (h *TrackerHandler) UpdateActivityFiber(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.updateActivity(userIDFiber(c), c.Params("id"), req)
	return c.Status(status).JSON(body)
}

// DeleteActivityFiber handles DELETE /api/activities/:id.
func (h *TrackerHandler) DeleteActivityFiber(c *fiber.Ctx) error {
	status, body := h.deleteActivity(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// CreateActivityGin handles POST /api/activities.
func (h *TrackerHandler) CreateActivityGin(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.createActivity(userIDGin(c), req)
	c.JSON(status, body)
}

// GetActivityGin handles GET /api/activities/:id.
func (h *TrackerHandler) GetActivityGin(c *gin.Context) {
	status, body := h.getActivity(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// UpdateActivityGin handles PUT /api/activities/:id.
func (h *TrackerHandler) UpdateActivityGin(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.updateActivity(userIDGin(c), c.Param("id"), req)
	c.JSON(status, body)
}

// DeleteActivityGin handles DELETE /api/activities/:id.
func (h *TrackerHandler) DeleteActivityGin(c *gin.Context) {
	status, body := h.deleteActivity(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// --- Hydration ---

func (h *TrackerHandler) createHydration(userID uint, req HydrationRequest) (int, any) {
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	entry, err := h.Service.Repo().CreateHydration(req.toModel(userID))
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to save hydration entry"}
	}
	return http.StatusCreated, entry
}

func (h *TrackerHandler) getHydration(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid hydration ID"}
	}
	entry, err := h.Service.Repo().GetHydrationByID(userID, id)
	if err != nil {
		return storageError(err, "Hydration entry")
	}
	return http.StatusOK, entry
}

func (h *TrackerHandler) updateHydration(userID uint, rawID string, req HydrationRequest) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid hydration ID"}
	}
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	entry, err := h.Service.Repo().UpdateHydration(userID, id, req.toModel(userID))
	if err != nil {
		return storageError(err, "Hydration entry")
	}
	return http.StatusOK, entry
}

func (h *TrackerHandler) deleteHydration(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid hydration ID"}
	}
	if err := h.Service.Repo().DeleteHydration(userID, id); err != nil {
		return storageError(err, "Hydration entry")
	}
	return http.StatusOK, map[string]string{"message": "Hydration entry deleted successfully"}
}

// CreateHydrationFiber handles POST /api/hydration.
func (h *TrackerHandler) CreateHydrationFiber(c *fiber.Ctx) error {
	var req HydrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.createHydration(userIDFiber(c), req)
	return c.Status(status).JSON(body)
}

// GetHydrationFiber handles GET /api/hydration/:id.
func (h *TrackerHandler) GetHydrationFiber(c *fiber.Ctx) error {
	status, body := h.getHydration(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// UpdateHydrationFiber handles PUT /api/hydration/:id.
func (h *TrackerHandler) UpdateHydrationFiber(c *fiber.Ctx) error {
	var req HydrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.updateHydration(userIDFiber(c), c.Params("id"), req)
	return c.Status(status).JSON(body)
}

// DeleteHydrationFiber handles DELETE /api/hydration/:id.
func (h *TrackerHandler) DeleteHydrationFiber(c *fiber.Ctx) error {
	status, body := h.deleteHydration(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// CreateHydrationGin handles POST /api/hydration.
func (h *TrackerHandler) CreateHydrationGin(c *gin.Context) {
	var req HydrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.createHydration(userIDGin(c), req)
	c.JSON(status, body)
}

// GetHydrationGin handles GET /api/hydration/:id.
func (h *TrackerHandler) GetHydrationGin(c *gin.Context) {
	status, body := h.getHydration(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// UpdateHydrationGin handles PUT /api/hydration/:id.
func (h *TrackerHandler) UpdateHydrationGin(c *gin.Context) {
	var req HydrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.updateHydration(userIDGin(c), c.Param("id"), req)
	c.JSON(status, body)
}

// DeleteHydrationGin handles DELETE /api/hydration/:id.
func (h *TrackerHandler) DeleteHydrationGin(c *gin.Context) {
	status, body := h.deleteHydration(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// --- Fasting ---

func (h *TrackerHandler) createFasting(userID uint, req FastingRequest) (int, any) {
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	entry, err := h.Service.Repo().CreateFasting(req.toModel(userID))
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to save fasting record"}
	}
	return http.StatusCreated, entry
}

func (h *TrackerHandler) getFasting(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid fasting ID"}
	}
	entry, err := h.Service.Repo().GetFastingByID(userID, id)
	if err != nil {
		return storageError(err, "Fasting record")
	}
	return http.StatusOK, entry
}

func (h *TrackerHandler) updateFasting(userID uint, rawID string, req FastingRequest) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid fasting ID"}
	}
	if msg := req.validate(); msg != "" {
		return http.StatusBadRequest, map[string]string{"error": msg}
	}
	entry, err := h.Service.Repo().UpdateFasting(userID, id, req.toModel(userID))
	if err != nil {
		return storageError(err, "Fasting record")
	}
	return http.StatusOK, entry
}

func (h *TrackerHandler) deleteFasting(userID uint, rawID string) (int, any) {
	id, ok := parseID(rawID)
	if !ok {
		return http.StatusBadRequest, map[string]string{"error": "Invalid fasting ID"}
	}
	if err := h.Service.Repo().DeleteFasting(userID, id); err != nil {
		return storageError(err, "Fasting record")
	}
	return http.StatusOK, map[string]string{"message": "Fasting record deleted successfully"}
}

func (h *TrackerHandler) fastingByDate(userID uint, date string) (int, any) {
	if !validation.IsDate(date) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid date format. Use YYYY-MM-DD"}
	}
	entries, err := h.Service.Repo().GetFastingByStartDate(userID, date)
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": "Failed to fetch fasting records"}
	}
	if entries == nil {
		entries = []model.Fasting{}
	}
	return http.StatusOK, entries
}

// CreateFastingFiber handles POST /api/fasting.
func (h *TrackerHandler) CreateFastingFiber(c *fiber.Ctx) error {
	var req FastingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.createFasting(userIDFiber(c), req)
	return c.Status(status).JSON(body)
}

// GetFastingFiber handles GET /api/fasting/:id.
func (h *TrackerHandler) GetFastingFiber(c *fiber.Ctx) error {
	status, body := h.getFasting(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// UpdateFastingFiber handles PUT /api/fasting/:id.
func (h *TrackerHandler) UpdateFastingFiber(c *fiber.Ctx) error {
	var req FastingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.updateFasting(userIDFiber(c), c.Params("id"), req)
	return c.Status(status).JSON(body)
}

// DeleteFastingFiber handles DELETE /api/fasting/:id.
func (h *TrackerHandler) DeleteFastingFiber(c *fiber.Ctx) error {
	status, body := h.deleteFasting(userIDFiber(c), c.Params("id"))
	return c.Status(status).JSON(body)
}

// GetFastingByDateFiber handles GET /api/fasting/day/:day.
func (h *TrackerHandler) GetFastingByDateFiber(c *fiber.Ctx) error {
	status, body := h.fastingByDate(userIDFiber(c), c.Params("day"))
	return c.Status(status).JSON(body)
}

// CreateFastingGin handles POST /api/fasting.
func (h *TrackerHandler) CreateFastingGin(c *gin.Context) {
	var req FastingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.createFasting(userIDGin(c), req)
	c.JSON(status, body)
}

// GetFastingGin handles GET /api/fasting/:id.
func (h *TrackerHandler) GetFastingGin(c *gin.Context) {
	status, body := h.getFasting(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// UpdateFastingGin handles PUT /api/fasting/:id.
func (h *TrackerHandler) UpdateFastingGin(c *gin.Context) {
	var req FastingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.updateFasting(userIDGin(c), c.Param("id"), req)
	c.JSON(status, body)
}

// DeleteFastingGin handles DELETE /api/fasting/:id.
func (h *TrackerHandler) DeleteFastingGin(c *gin.Context) {
	status, body := h.deleteFasting(userIDGin(c), c.Param("id"))
	c.JSON(status, body)
}

// GetFastingByDateGin handles GET /api/fasting/day/:day.
func (h *TrackerHandler) GetFastingByDateGin(c *gin.Context) {
	status, body := h.fastingByDate(userIDGin(c), c.Param("day"))
	c.JSON(status, body)
}
