package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"train-feedback-server/database"
	"train-feedback-server/models"
	"train-feedback-server/utils"
)

// AdminHandler upgrades admin connections onto the batch event feed
type AdminHandler struct {
	hub *Hub
}

// NewAdminHandler creates the admin feed handler
func NewAdminHandler(hub *Hub) *AdminHandler {
	return &AdminHandler{hub: hub}
}

// HandleAdmin authenticates the connection and joins it to the hub. Browsers
// cannot set an Authorization header on a WebSocket upgrade, so the access
// token is passed as a query parameter.
func (h *AdminHandler) HandleAdmin(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Token query parameter required",
		})
		return
	}

	claims, err := utils.VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Token is invalid or expired",
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Account not found or deactivated",
		})
		return
	}
	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Admin access required",
		})
		return
	}

	ServeWebSocket(h.hub, c.Writer, c.Request, user.ID)
}
