package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"covergen/models"
	"covergen/pkg/logging"
	"covergen/pkg/security"
)

// ListUsers returns all accounts with their roles and status.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("id").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		out := make([]gin.H, 0, len(users))
		for _, u := range users {
			out = append(out, gin.H{
				"id":         u.ID,
				"email":      u.Email,
				"username":   u.Username,
				"role":       u.Role,
				"admin_role": u.AdminRole,
				"status":     u.Status,
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}

// SetUserStatus suspends or reactivates an account. Suspension takes effect
// on the user's next request regardless of any live token.
func SetUserStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		if body.Status != string(security.StatusActive) && body.Status != string(security.StatusSuspended) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "status must be active or suspended"})
			return
		}

		res := db.Model(&models.User{}).Where("id = ?", id).Update("status", body.Status)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
			return
		}
		logging.Info("user status changed", zap.Int("user", id), zap.String("status", body.Status))
		c.JSON(http.StatusOK, gin.H{"msg": "status updated"})
	}
}

// SetUserRole changes an account's administrative tier.
func SetUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
			return
		}
		var body struct {
			AdminRole string `json:"admin_role"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		// round-trip through the parser so only known tiers are stored
		role := security.ParseAdminRole(body.AdminRole)
		if role.String() != body.AdminRole {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown admin role"})
			return
		}

		res := db.Model(&models.User{}).Where("id = ?", id).Update("admin_role", role.String())
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update role"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
			return
		}
		logging.Info("user admin role changed", zap.Int("user", id), zap.String("admin_role", role.String()))
		c.JSON(http.StatusOK, gin.H{"msg": "role updated"})
	}
}
