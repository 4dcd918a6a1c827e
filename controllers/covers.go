package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"covergen/middleware"
	"covergen/models"
	"covergen/pkg/logging"
	"covergen/pkg/services"
)

// RenderCover assembles a template and profile with the request's title
// fields, resolves the university logo, and streams back the rendered PDF.
func RenderCover(db *gorm.DB, renderer services.Renderer, logos *services.LogoDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := middleware.SecurityContextFrom(c)
		if sctx == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing security context"})
			return
		}

		var body struct {
			TemplateID uint   `json:"template_id"`
			ProfileID  uint   `json:"profile_id"`
			Title      string `json:"title"`
			Subject    string `json:"subject"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		if body.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Title is required"})
			return
		}

		var tpl models.CoverTemplate
		if err := db.First(&tpl, body.TemplateID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "template not found"})
			return
		}
		var profile models.AuthorProfile
		if err := db.Where("id = ? AND user_id = ?", body.ProfileID, sctx.UserID).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "profile not found"})
			return
		}

		logoURL, err := logos.Lookup(c.Request.Context(), profile.University)
		if err != nil {
			// a missing logo is cosmetic, render without it
			logging.Warn("logo lookup failed", zap.Error(err), zap.String("university", profile.University))
		}

		pdf, err := renderer.Render(c.Request.Context(), services.CoverData{
			Layout:        tpl.Layout,
			PaperSize:     tpl.PaperSize,
			Title:         body.Title,
			Subject:       body.Subject,
			LogoURL:       logoURL,
			AuthorName:    profile.AuthorName,
			StudentNumber: profile.StudentNumber,
			University:    profile.University,
			Faculty:       profile.Faculty,
			Program:       profile.Program,
			ClassName:     profile.ClassName,
			Lecturer:      profile.Lecturer,
		})
		if err != nil {
			logging.Error("cover render failed", zap.Error(err), zap.Uint("user", sctx.UserID))
			c.JSON(http.StatusBadGateway, gin.H{"msg": "render failed"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="cover.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
