package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"covergen/middleware"
	"covergen/models"
	"covergen/pkg/cache"
	"covergen/pkg/config"
	"covergen/pkg/logging"
	"covergen/pkg/security"
	"covergen/pkg/services"
	tokenstore "covergen/pkg/token"
	"covergen/routes"
)

func main() {
	config.Load()
	logging.Init()
	defer logging.Sync()

	if config.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN must be set")
	}
	db, err := gorm.Open(mysql.Open(config.MySQLDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CoverTemplate{}, &models.AuthorProfile{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	// authoritative revocation store: Redis when configured, else in-process
	var store tokenstore.Store
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr, DB: config.RedisDB})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		cancel()
		store = tokenstore.NewRedisStore(client)
	} else {
		log.Println("REDIS_ADDR not set, using in-process revocation store")
		store = tokenstore.NewMemoryStore()
	}

	revocations := security.NewRevocationCache(store,
		time.Duration(config.RevocationCacheTTLSeconds)*time.Second,
		time.Duration(config.RevocationLookupTimeoutSeconds)*time.Second)

	sweep := time.Duration(config.RateLimitSweepSeconds) * time.Second
	loginLimiter := security.NewLimiter(
		time.Duration(config.LoginWindowSeconds)*time.Second, config.LoginMaxRequests, sweep)
	apiLimiter := security.NewLimiter(
		time.Duration(config.APIWindowSeconds)*time.Second, config.APIMaxRequests, sweep)

	logoCache := cache.New(config.LogoCacheMaxItems, time.Minute)
	logos := services.NewLogoDirectory(config.LogoDirectoryURL, logoCache,
		time.Duration(config.LogoCacheTTLSeconds)*time.Second)

	var renderer services.Renderer
	if config.RendererURL != "" {
		renderer = services.NewHTTPRenderer(config.RendererURL)
	} else {
		log.Println("RENDERER_URL not set, using mock renderer")
		renderer = services.MockRenderer{}
	}

	gateway := middleware.NewGateway(revocations, security.NewGormIdentityStore(db))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, gateway, store, renderer, logos, loginLimiter, apiLimiter)

	srv := &http.Server{Addr: ":" + config.Port, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	loginLimiter.Stop()
	apiLimiter.Stop()
	logoCache.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
