package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"covergen/middleware"
	"covergen/models"
	"covergen/pkg/config"
	"covergen/pkg/logging"
	"covergen/pkg/security"
	tokenstore "covergen/pkg/token"
)

// Register handler
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email           string `json:"email"`
			Username        string `json:"username"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirm_password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}

		email := strings.TrimSpace(strings.ToLower(body.Email))
		username := strings.TrimSpace(body.Username)

		if email == "" || username == "" || body.Password == "" || body.ConfirmPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Email, username, password, and confirm password are required"})
			return
		}
		if body.Password != body.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Passwords do not match"})
			return
		}

		var exists models.User
		if err := db.Where("email = ? OR username = ?", email, username).First(&exists).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"msg": "Email or username already exists"})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		user := models.User{
			Email:     email,
			Username:  username,
			Role:      string(security.RoleUser),
			AdminRole: security.AdminRoleNone.String(),
			Status:    string(security.StatusActive),
		}
		if err := user.SetPassword(body.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to set password"})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"msg": "User created", "username": user.Username, "email": user.Email})
	}
}

// Login handler
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		email := strings.TrimSpace(strings.ToLower(body.Email))
		if email == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Email and password are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
			return
		}
		if !user.CheckPassword(body.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
			return
		}
		if user.Status == string(security.StatusSuspended) {
			c.JSON(http.StatusForbidden, gin.H{"msg": "account suspended"})
			return
		}

		// JWT with 1 day expiry; jti is what logout revokes
		jti := uuid.NewString()
		claims := jwt.MapClaims{
			"sub": strconv.Itoa(int(user.ID)),
			"exp": time.Now().Add(24 * time.Hour).Unix(),
			"jti": jti,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenStr, err := token.SignedString([]byte(config.JWTSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": tokenStr, "username": user.Username})
	}
}

// Logout writes the jti to the authoritative revocation store with the
// token's remaining lifetime as TTL.
func Logout(store tokenstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		jti := c.GetString(middleware.ContextJTIKey)
		if jti == "" {
			c.JSON(http.StatusOK, gin.H{"msg": "logged out"})
			return
		}

		ttl := time.Hour
		if exp, ok := c.Get(middleware.ContextTokenExpKey); ok {
			if expUnix, ok := exp.(int64); ok {
				if remaining := time.Until(time.Unix(expUnix, 0)); remaining > 0 {
					ttl = remaining
				}
			}
		}

		if err := store.Revoke(c.Request.Context(), jti, ttl); err != nil {
			logging.Error("failed to revoke token", zap.Error(err), zap.String("jti", jti))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "logged out"})
	}
}

// Me returns the resolved identity of the current request.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := middleware.SecurityContextFrom(c)
		if sctx == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing security context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":      sctx.UserID,
			"role":         sctx.Role,
			"admin_role":   sctx.AdminRole.String(),
			"capabilities": sctx.Capabilities,
		})
	}
}
