package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"covergen/controllers"
	"covergen/middleware"
	"covergen/pkg/security"
	tokenstore "covergen/pkg/token"
)

// RegisterPublic registers /register and /login. Both are reachable without a
// token, so the limiter keys on client IP; bodies still pass the scanner.
func RegisterPublic(r *gin.Engine, db *gorm.DB, g *middleware.Gateway, loginLimiter *security.Limiter) {
	r.POST("/register", g.RateLimit(loginLimiter), g.ScanPayload(), controllers.Register(db))
	r.POST("/login", g.RateLimit(loginLimiter), g.ScanPayload(), controllers.Login(db))
}

// RegisterProtected registers routes behind the full admission pipeline.
func RegisterProtected(grp *gin.RouterGroup, store tokenstore.Store) {
	grp.POST("/logout", controllers.Logout(store))
	grp.GET("/me", controllers.Me())
}
