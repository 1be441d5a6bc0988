package handlers

import (
	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/middleware"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
	"dental-clinic-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Sessions *store.SessionStore
	Cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *store.SessionStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Cfg: cfg}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string               `json:"accessToken"`
	User        models.UserSanitized `json:"user"`
}

// Login checks the credentials against the fixed identity list. A failed
// match is always reported with the same generic message.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !h.Sessions.Login(req.Email, req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	user, _ := h.Sessions.Current()
	accessToken, err := utils.GenerateToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: accessToken,
		User:        user.Sanitize(),
	})
}

// Logout clears the current session. Clients drop their token; nothing is
// revoked server-side beyond the persisted session entry.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Logout()
	utils.Success(c, "Logout successful", nil)
}

// GetProfile returns the identity behind the presented token.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, ok := h.Sessions.UserByID(userID)
	if !ok {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}
