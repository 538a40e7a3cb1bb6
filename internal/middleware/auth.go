package middleware

import (
	"strings"

	"golang-food-storefront/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const deviceCookieName = "cart_device"
const deviceCookieMaxAge = 60 * 60 * 24 * 365

type AuthMiddleware struct {
	sessions   *auth.SessionManager
	cookieName string
}

func NewAuthMiddleware(sessions *auth.SessionManager, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// DeviceRequired ensures every visitor carries the device cookie the cart
// is keyed by, minting one on first use.
func (a *AuthMiddleware) DeviceRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, err := c.Cookie(deviceCookieName)
		if err != nil || deviceID == "" {
			deviceID = uuid.New().String()
			c.SetCookie(deviceCookieName, deviceID, deviceCookieMaxAge, "/", "", false, true)
		}
		c.Set("device_id", deviceID)
		c.Next()
	}
}

// SessionOptional resolves the session cookie when present but never
// rejects the request. Anonymous shoppers can fill a cart; the checkout
// gate decides what a missing session means.
func (a *AuthMiddleware) SessionOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := a.extractToken(c)
		if token == "" {
			c.Set("authenticated", false)
			c.Next()
			return
		}

		claims, err := a.sessions.ValidateToken(token)
		if err != nil {
			c.Set("authenticated", false)
			c.Next()
			return
		}

		c.Set("authenticated", true)
		c.Set("session_token", token)
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// extractToken reads the session cookie, falling back to a bearer header
// for non-browser clients.
func (a *AuthMiddleware) extractToken(c *gin.Context) string {
	if token, err := c.Cookie(a.cookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// GetDeviceID helper function to extract device ID from context
func GetDeviceID(c *gin.Context) string {
	if deviceID, exists := c.Get("device_id"); exists {
		return deviceID.(string)
	}
	return ""
}

// GetUserID helper function to extract user ID from context
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(string)
	}
	return ""
}

// GetSessionToken helper function to extract the raw session token for
// forwarding to the backend
func GetSessionToken(c *gin.Context) string {
	if token, exists := c.Get("session_token"); exists {
		return token.(string)
	}
	return ""
}

// IsAuthenticated reports whether the request carries a valid session
func IsAuthenticated(c *gin.Context) bool {
	if authenticated, exists := c.Get("authenticated"); exists {
		return authenticated.(bool)
	}
	return false
}
