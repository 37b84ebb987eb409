package api

import (
	"errors"   // Matching auth errors
	"net/http" // HTTP status codes

	"earning_admin/internal/auth" // Admin credentials

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// LoginRequest is the admin login form
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// PasswordRequest carries a new admin password
type PasswordRequest struct {
	Password string `json:"password" binding:"required"` // New password
}

// LoginHandler authenticates the admin and returns a JWT token
func LoginHandler(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		token, err := authSvc.Login(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Wrong username or password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
			return
		}
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler ends the session of the calling token
func LogoutHandler(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authSvc.Logout(c.Request.Context(), c.GetString("sessionID")); err != nil {
			logrus.WithField("error", err.Error()).Error("Logout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// ChangePasswordHandler replaces the admin password
func ChangePasswordHandler(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		err := authSvc.ChangePassword(c.Request.Context(), req.Password)
		if errors.Is(err, auth.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 4 characters long."})
			return
		}
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Password change failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Admin password changed successfully!"})
	}
}
