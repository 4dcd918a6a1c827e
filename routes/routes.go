package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"covergen/middleware"
	"covergen/pkg/security"
	"covergen/pkg/services"
	tokenstore "covergen/pkg/token"

	adminRoutes "covergen/routes/admin"
	authRoutes "covergen/routes/auth"
	coverRoutes "covergen/routes/covers"
)

// RegisterRoutes wires every route group behind the admission pipeline.
// Protected routes run, in order: token + revocation check, rate limiting,
// payload scan, identity resolution; per-route permission checks follow.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	g *middleware.Gateway,
	store tokenstore.Store,
	renderer services.Renderer,
	logos *services.LogoDirectory,
	loginLimiter, apiLimiter *security.Limiter,
) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "covergen backend running"})
	})

	authRoutes.RegisterPublic(r, db, g, loginLimiter)

	protected := r.Group("/")
	protected.Use(g.Authenticate(), g.RateLimit(apiLimiter), g.ScanPayload(), g.ResolveIdentity())
	authRoutes.RegisterProtected(protected, store)
	coverRoutes.Register(protected, db, g, renderer, logos)
	adminRoutes.Register(protected, db, g)
}
