package handler

// APIHandler bundles every handler group so the server packages receive a
// single wiring point.
type APIHandler struct {
	Auth      *AuthHandler
	Tracker   *TrackerHandler
	Nutrition *NutritionHandler
	Health    *HealthHandler
}
