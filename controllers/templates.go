package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"covergen/middleware"
	"covergen/models"
)

// ListTemplates returns all cover templates.
func ListTemplates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var templates []models.CoverTemplate
		if err := db.Order("name").Find(&templates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"templates": templates})
	}
}

// GetTemplate returns one template by id.
func GetTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid template id"})
			return
		}
		var tpl models.CoverTemplate
		if err := db.First(&tpl, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "template not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"template": tpl})
	}
}

// CreateTemplate stores a new cover template.
func CreateTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name      string `json:"name"`
			PaperSize string `json:"paper_size"`
			Layout    string `json:"layout"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		if body.Name == "" || body.Layout == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Name and layout are required"})
			return
		}
		if body.PaperSize == "" {
			body.PaperSize = "A4"
		}

		sctx := middleware.SecurityContextFrom(c)
		tpl := models.CoverTemplate{
			Name:      body.Name,
			PaperSize: body.PaperSize,
			Layout:    body.Layout,
		}
		if sctx != nil {
			tpl.CreatedBy = sctx.UserID
		}
		if err := db.Create(&tpl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create template"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"template": tpl})
	}
}

// UpdateTemplate replaces the mutable fields of a template.
func UpdateTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid template id"})
			return
		}
		var tpl models.CoverTemplate
		if err := db.First(&tpl, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "template not found"})
			return
		}

		var body struct {
			Name      string `json:"name"`
			PaperSize string `json:"paper_size"`
			Layout    string `json:"layout"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		if body.Name != "" {
			tpl.Name = body.Name
		}
		if body.PaperSize != "" {
			tpl.PaperSize = body.PaperSize
		}
		if body.Layout != "" {
			tpl.Layout = body.Layout
		}
		if err := db.Save(&tpl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update template"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"template": tpl})
	}
}

// DeleteTemplate removes a template.
func DeleteTemplate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid template id"})
			return
		}
		res := db.Delete(&models.CoverTemplate{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete template"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "template not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "template deleted"})
	}
}
