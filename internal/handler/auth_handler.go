package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/menulist-tracker/internal/service"
	"github.com/aebalz/menulist-tracker/internal/validation"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	Auth service.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload. Username and email are interchangeable.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) register(req RegisterRequest) (int, any) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return http.StatusBadRequest, map[string]string{"error": "Username, email, and password are required"}
	}
	if !validation.IsEmail(req.Email) {
		return http.StatusBadRequest, map[string]string{"error": "Invalid email format"}
	}

	if _, err := h.Auth.Register(req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			return http.StatusBadRequest, map[string]string{"error": "Username already exists"}
		case errors.Is(err, service.ErrEmailExists):
			return http.StatusBadRequest, map[string]string{"error": "Email already exists"}
		default:
			return http.StatusInternalServerError, map[string]string{"error": "User registration failed"}
		}
	}
	return http.StatusCreated, map[string]string{"message": "User registered successfully"}
}

func (h *AuthHandler) login(req LoginRequest) (int, any) {
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		return http.StatusBadRequest, map[string]string{"error": "Username or email and password are required"}
	}

	token, err := h.Auth.Login(identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"}
		}
		return http.StatusInternalServerError, map[string]string{"error": "Login failed"}
	}
	return http.StatusOK, TokenResponse{Token: token}
}

// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/register [post]
// RegisterFiber handles POST /api/register.
func (h *AuthHandler) RegisterFiber(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.register(req)
	return c.Status(status).JSON(body)
}

// RegisterGin handles POST /api/register.
func (h *AuthHandler) RegisterGin(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.register(req)
	c.JSON(status, body)
}

// @Summary Log in and receive a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login payload"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
// LoginFiber handles POST /api/login.
func (h *AuthHandler) LoginFiber(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status, body := h.login(req)
	return c.Status(status).JSON(body)
}

// LoginGin handles POST /api/login.
func (h *AuthHandler) LoginGin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, body := h.login(req)
	c.JSON(status, body)
}
