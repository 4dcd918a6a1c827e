package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsProduction bool

	Port      string
	JWTSecret string

	MySQLDSN  string
	RedisAddr string
	RedisDB   int

	RendererURL      string
	LogoDirectoryURL string

	// security gateway tunables
	RevocationCacheTTLSeconds      int
	RevocationLookupTimeoutSeconds int
	RateLimitSweepSeconds          int
	LoginWindowSeconds             int
	LoginMaxRequests               int
	APIWindowSeconds               int
	APIMaxRequests                 int

	LogoCacheTTLSeconds int
	LogoCacheMaxItems   int
)

// Load reads .env (outside production) and populates the package vars.
// Call once from main before anything else touches config.
func Load() {
	AppEnv = os.Getenv("APP_ENV")
	if AppEnv != "production" {
		// .env is optional outside production; real env vars win either way
		_ = godotenv.Load()
		AppEnv = os.Getenv("APP_ENV")
	}
	IsProduction = AppEnv == "production"

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set in production")
	}

	MySQLDSN = os.Getenv("MYSQL_DSN")
	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisDB = atoiOr(os.Getenv("REDIS_DB"), 0)

	RendererURL = os.Getenv("RENDERER_URL")
	LogoDirectoryURL = os.Getenv("LOGO_DIRECTORY_URL")

	RevocationCacheTTLSeconds = atoiOr(os.Getenv("REVOCATION_CACHE_TTL_SECONDS"), 60)
	RevocationLookupTimeoutSeconds = atoiOr(os.Getenv("REVOCATION_LOOKUP_TIMEOUT_SECONDS"), 3)
	RateLimitSweepSeconds = atoiOr(os.Getenv("RATE_LIMIT_SWEEP_SECONDS"), 60)
	LoginWindowSeconds = atoiOr(os.Getenv("LOGIN_RATE_WINDOW_SECONDS"), 900)
	LoginMaxRequests = atoiOr(os.Getenv("LOGIN_RATE_MAX_REQUESTS"), 5)
	APIWindowSeconds = atoiOr(os.Getenv("API_RATE_WINDOW_SECONDS"), 60)
	APIMaxRequests = atoiOr(os.Getenv("API_RATE_MAX_REQUESTS"), 120)

	LogoCacheTTLSeconds = atoiOr(os.Getenv("LOGO_CACHE_TTL_SECONDS"), 3600)
	LogoCacheMaxItems = atoiOr(os.Getenv("LOGO_CACHE_MAX_ITEMS"), 500)

	log.Printf("[config] AppEnv=%s port=%s redis=%v", AppEnv, Port, RedisAddr != "")
	log.Printf("[config] revocation ttl=%ds lookupTimeout=%ds sweep=%ds",
		RevocationCacheTTLSeconds, RevocationLookupTimeoutSeconds, RateLimitSweepSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
