package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"covergen/controllers"
	"covergen/middleware"
	"covergen/pkg/security"
)

// Register wires the account administration routes.
func Register(grp *gin.RouterGroup, db *gorm.DB, g *middleware.Gateway) {
	grp.GET("/admin/users", g.RequirePermission(security.CapUsersView), controllers.ListUsers(db))
	grp.PUT("/admin/users/:id/status", g.RequirePermission(security.CapUsersManage), controllers.SetUserStatus(db))
	grp.PUT("/admin/users/:id/role", g.RequirePermission(security.CapUsersManage), controllers.SetUserRole(db))
}
