package handlers

import (
	"net/http"

	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   services.AuthService
	tokens *middleware.AuthMiddleware
}

func NewAuthHandler(auth services.AuthService, tokens *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens}
}

// Register creates a user with its customer or vendor profile
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(result.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registrasi berhasil",
		"access_token": token,
		"user": gin.H{
			"id":    result.User.ID,
			"name":  result.User.Name,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
		"profile": result.Profile,
	})
}

// Login authenticates a user and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(result.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login berhasil",
		"access_token": token,
		"user": gin.H{
			"id":    result.User.ID,
			"name":  result.User.Name,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
		"profile": result.Profile,
	})
}

// Profile returns the authenticated user's account and profile
func (h *AuthHandler) Profile(c *gin.Context) {
	result, err := h.auth.Profile(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": result.User, "profile": result.Profile})
}

// ChangePassword rotates the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.auth.ChangePassword(middleware.GetUserID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password berhasil diubah"})
}
