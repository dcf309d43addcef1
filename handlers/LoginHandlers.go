package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"panchayat/models"
	"panchayat/storage"
	"panchayat/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LoginHandler handles user authentication
// @Summary Login user
// @Description Authenticate user and return session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		token = strings.TrimSpace(token)

		// If a valid token is presented, log in from its email claim. When
		// validation fails we fall through to credential login so an expired
		// token never locks anyone out.
		if token != "" {
			parsedToken, err := utils.ValidateJWT(token)
			if err == nil && parsedToken.Valid {
				claims, ok := parsedToken.Claims.(jwt.MapClaims)
				if !ok {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims structure"})
					return
				}

				email, ok := claims["email"].(string)
				if !ok || email == "" {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Email claim missing or invalid"})
					return
				}

				user, err := storage.GetUserByEmail(db, email)
				if err != nil {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
					return
				}

				if user.Suspended {
					c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
					return
				}

				var roleName string
				err = db.QueryRow("SELECT r.role_name FROM users u JOIN roles r ON u.role_id = r.role_id WHERE u.id = $1", user.ID).Scan(&roleName)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user role", "details": err.Error()})
					return
				}

				c.JSON(http.StatusOK, gin.H{
					"message":      "User successfully logged in via token",
					"access_token": token,
					"role":         roleName,
					"user": gin.H{
						"id":    user.ID,
						"email": user.Email,
					},
				})
				return
			}
		}

		var loginData models.LoginRequest
		if err := c.ShouldBindJSON(&loginData); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := storage.GetUserByEmail(db, loginData.Email)
		if err != nil || !utils.ValidatePassword(user.Password, loginData.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		var roleName string
		err = db.QueryRow("SELECT r.role_name FROM users u JOIN roles r ON u.role_id = r.role_id WHERE u.id = $1", user.ID).Scan(&roleName)
		if err != nil {
			roleName = "Employee"
		}

		accessToken, err := utils.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		sessionID := uuid.New().String()
		refreshToken, err := utils.GenerateRefreshToken(user.Email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
			return
		}

		now := time.Now()
		session := &models.Session{
			UserID:                user.ID,
			SessionID:             sessionID,
			HostName:              c.Request.Host,
			IPAddress:             loginData.IP,
			Timestamp:             now,
			ExpiresAt:             now.Add(15 * time.Minute),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresAt: now.Add(15 * 24 * time.Hour),
		}
		if err := storage.SaveSession(db, session, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "User successfully logged in",
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"session_id":    sessionID,
			"role":          roleName,
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
			},
		})

		activityLog := models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     user.FirstName + " " + user.LastName,
			HostName:     session.HostName,
			EventContext: "Authentication",
			IPAddress:    session.IPAddress,
			Description:  "User logged in",
			EventName:    "login",
		}
		_ = SaveActivityLog(db, activityLog)
	}
}

// LogoutHandler handles user logout
// @Summary Logout user
// @Description Deletes the caller's session
// @Tags Authentication
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/logout [post]
func LogoutHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		session, _, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		if err := storage.DeleteSessionByID(db, sessionID, session.UserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// ValidateSessionHandler reports whether a session is still valid
// @Summary Validate session
// @Tags Authentication
// @Success 200 {object} object
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [get]
func ValidateSessionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid": true,
			"user": gin.H{
				"id":          user.ID,
				"email":       user.Email,
				"designation": user.Designation,
				"village":     user.Village,
				"block":       user.Block,
				"district":    user.District,
			},
		})
	}
}
