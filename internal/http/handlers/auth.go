package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/http/response"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "User registered successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

// GET /api/auth/profile
func (ah *AuthHandler) Profile(c *gin.Context) {
	user, err := ah.authService.Profile(c.Request.Context(), userID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// PUT /api/auth/profile
func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdate
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := ah.authService.UpdateProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
