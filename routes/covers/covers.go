package covers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"covergen/controllers"
	"covergen/middleware"
	"covergen/pkg/security"
	"covergen/pkg/services"
)

// Register wires template, profile, and render routes onto the protected
// group. Mutations carry an explicit capability check.
func Register(grp *gin.RouterGroup, db *gorm.DB, g *middleware.Gateway, renderer services.Renderer, logos *services.LogoDirectory) {
	grp.GET("/templates", controllers.ListTemplates(db))
	grp.GET("/templates/:id", controllers.GetTemplate(db))
	grp.POST("/templates", g.RequirePermission(security.CapTemplatesWrite), controllers.CreateTemplate(db))
	grp.PUT("/templates/:id", g.RequirePermission(security.CapTemplatesWrite), controllers.UpdateTemplate(db))
	grp.DELETE("/templates/:id", g.RequirePermission(security.CapTemplatesWrite), controllers.DeleteTemplate(db))

	grp.GET("/profiles", controllers.ListProfiles(db))
	grp.POST("/profiles", g.RequirePermission(security.CapProfilesWrite), controllers.CreateProfile(db))
	grp.PUT("/profiles/:id", g.RequirePermission(security.CapProfilesWrite), controllers.UpdateProfile(db))
	grp.DELETE("/profiles/:id", g.RequirePermission(security.CapProfilesWrite), controllers.DeleteProfile(db))

	grp.POST("/covers/render", g.RequirePermission(security.CapCoversRender), controllers.RenderCover(db, renderer, logos))
}
