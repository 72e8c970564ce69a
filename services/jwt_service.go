package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"train-feedback-server/config"
	"train-feedback-server/database"
	"train-feedback-server/models"
	"train-feedback-server/utils"
)

// JWTService handles JWT token operations
type JWTService struct{}

// NewJWTService creates a new JWT service
func NewJWTService() *JWTService {
	return &JWTService{}
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// GenerateTokenPair generates both access and refresh tokens
func (js *JWTService) GenerateTokenPair(user *models.User, userAgent, ipAddress string) (*TokenPair, error) {
	// Generate access token (short-lived)
	accessToken, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	// Generate refresh token (long-lived)
	refreshToken, err := js.generateRefreshToken(user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(config.AppConfig.JWT.ExpiryHours * 3600),
		TokenType:    "Bearer",
	}, nil
}

// generateRefreshToken generates a long-lived refresh token
func (js *JWTService) generateRefreshToken(userID uint, userAgent, ipAddress string) (string, error) {
	// Generate a secure random token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := hex.EncodeToString(tokenBytes)

	// Create refresh token record
	refreshToken := &models.RefreshToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour), // 30 days
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	// Save to database
	if err := database.DB.Create(refreshToken).Error; err != nil {
		return "", err
	}

	return tokenString, nil
}

// RefreshAccessToken validates a refresh token and issues a new token pair,
// rotating the refresh token
func (js *JWTService) RefreshAccessToken(refreshTokenString, userAgent, ipAddress string) (*TokenPair, error) {
	var refreshToken models.RefreshToken
	if err := database.DB.Preload("User").
		Where("token = ?", refreshTokenString).
		First(&refreshToken).Error; err != nil {
		return nil, errors.New("refresh token not found")
	}

	if !refreshToken.IsValid() {
		return nil, errors.New("refresh token is expired or revoked")
	}

	// Rotate: revoke the old token before issuing a new pair
	refreshToken.Revoke()
	if err := database.DB.Save(&refreshToken).Error; err != nil {
		return nil, err
	}

	return js.GenerateTokenPair(&refreshToken.User, userAgent, ipAddress)
}

// RevokeToken revokes a single refresh token
func (js *JWTService) RevokeToken(refreshTokenString string) error {
	return database.DB.Model(&models.RefreshToken{}).
		Where("token = ?", refreshTokenString).
		Update("is_revoked", true).Error
}

// RevokeAllUserTokens revokes every refresh token for a user, e.g. after a
// password change
func (js *JWTService) RevokeAllUserTokens(userID uint) error {
	return database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

// CleanupExpiredTokens removes expired and revoked refresh tokens
func (js *JWTService) CleanupExpiredTokens() error {
	result := database.DB.
		Where("expires_at <= ? OR is_revoked = ?", time.Now(), true).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Cleaned up %d expired refresh tokens", result.RowsAffected)
	}
	return nil
}
