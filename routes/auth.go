package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"train-feedback-server/database"
	"train-feedback-server/models"
	"train-feedback-server/services"
	"train-feedback-server/utils"
)

// LoginRequest represents the login request
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents the password change request
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/login", login)
	router.POST("/refresh", refreshToken)
	router.POST("/logout", logout)
}

// RegisterProtectedAuthRoutes registers auth routes that require a valid token
func RegisterProtectedAuthRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", currentUser)
	router.POST("/auth/change-password", changePassword)
}

// login authenticates an operator or admin account
func login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User ID and password are required",
		})
		return
	}

	var user models.User
	if err := database.DB.Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid user ID or password",
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Account is deactivated",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid user ID or password",
		})
		return
	}

	jwtService := services.NewJWTService()
	pair, err := jwtService.GenerateTokenPair(&user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Login successful",
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
		"user": gin.H{
			"userId": user.UserID,
			"name":   user.Name,
			"role":   user.Role,
		},
	})
}

// refreshToken exchanges a refresh token for a new token pair
func refreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Refresh token is required",
		})
		return
	}

	jwtService := services.NewJWTService()
	pair, err := jwtService.RefreshAccessToken(req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

// logout revokes the presented refresh token
func logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// No refresh token supplied; the access token simply expires
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Logged out",
		})
		return
	}

	jwtService := services.NewJWTService()
	if err := jwtService.RevokeToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to revoke token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// currentUser returns the authenticated account
func currentUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Account not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"userId": user.UserID,
			"name":   user.Name,
			"role":   user.Role,
		},
	})
}

// changePassword updates the authenticated account's password and revokes
// its refresh tokens
func changePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Old password, new password and confirm password are required",
		})
		return
	}

	if len(req.NewPassword) < 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "New password must be at least 5 characters",
		})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "New password and confirm password do not match",
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Account not found",
		})
		return
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Old password is incorrect",
		})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to process password",
		})
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update password",
		})
		return
	}

	// Force re-login everywhere else
	jwtService := services.NewJWTService()
	if err := jwtService.RevokeAllUserTokens(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Password changed but failed to revoke existing sessions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}
