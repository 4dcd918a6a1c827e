package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"covergen/middleware"
	"covergen/models"
)

type profileBody struct {
	AuthorName    string `json:"author_name"`
	StudentNumber string `json:"student_number"`
	University    string `json:"university"`
	Faculty       string `json:"faculty"`
	Program       string `json:"program"`
	ClassName     string `json:"class_name"`
	Lecturer      string `json:"lecturer"`
}

// ListProfiles returns the caller's author profiles.
func ListProfiles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := middleware.SecurityContextFrom(c)
		if sctx == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing security context"})
			return
		}
		var profiles []models.AuthorProfile
		if err := db.Where("user_id = ?", sctx.UserID).Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	}
}

// CreateProfile stores a new author profile for the caller.
func CreateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := middleware.SecurityContextFrom(c)
		if sctx == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing security context"})
			return
		}
		var body profileBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		if body.AuthorName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Author name is required"})
			return
		}

		profile := models.AuthorProfile{
			UserID:        sctx.UserID,
			AuthorName:    body.AuthorName,
			StudentNumber: body.StudentNumber,
			University:    body.University,
			Faculty:       body.Faculty,
			Program:       body.Program,
			ClassName:     body.ClassName,
			Lecturer:      body.Lecturer,
		}
		if err := db.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create profile"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"profile": profile})
	}
}

// UpdateProfile edits one of the caller's profiles.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := middleware.SecurityContextFrom(c)
		if sctx == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing security context"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid profile id"})
			return
		}

		var profile models.AuthorProfile
		if err := db.Where("id = ? AND user_id = ?", id, sctx.UserID).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "profile not found"})
			return
		}

		var body profileBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		if body.AuthorName != "" {
			profile.AuthorName = body.AuthorName
		}
		profile.StudentNumber = body.StudentNumber
		profile.University = body.University
		profile.Faculty = body.Faculty
		profile.Program = body.Program
		profile.ClassName = body.ClassName
		profile.Lecturer = body.Lecturer

		if err := db.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// DeleteProfile removes one of the caller's profiles.
func DeleteProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := middleware.SecurityContextFrom(c)
		if sctx == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing security context"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid profile id"})
			return
		}
		res := db.Where("user_id = ?", sctx.UserID).Delete(&models.AuthorProfile{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete profile"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "profile deleted"})
	}
}
