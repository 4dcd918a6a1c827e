package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"covergen/pkg/config"
	"covergen/pkg/logging"
	"covergen/pkg/security"
)

const (
	ContextUserIDKey   = "current_user_id"
	ContextJTIKey      = "current_jti"
	ContextTokenExpKey = "current_token_exp"
	ContextSecurityKey = "security_context"
)

// Gateway runs every inbound request through the admission pipeline: token +
// revocation check, rate limiting, payload scan, identity resolution, then
// permission checks. Each stage aborts the request on rejection; later stages
// never run. One Gateway instance is shared process-wide and all its state
// lives in the injected collaborators, so tests can build a fresh one.
type Gateway struct {
	revocations *security.RevocationCache
	identities  security.IdentityStore
}

func NewGateway(revocations *security.RevocationCache, identities security.IdentityStore) *Gateway {
	return &Gateway{revocations: revocations, identities: identities}
}

// Authenticate extracts and validates the bearer token and checks it against
// the revocation cache. It stores the subject and jti for later stages but
// does not touch the identity store; ResolveIdentity does that.
func (g *Gateway) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			reject(c, http.StatusUnauthorized, "missing authorization header", "auth")
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			reject(c, http.StatusUnauthorized, "invalid authorization header", "auth")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			// only accept HMAC signing
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return []byte(config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			reject(c, http.StatusUnauthorized, "invalid token", "auth")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			reject(c, http.StatusUnauthorized, "invalid token claims", "auth")
			return
		}

		jti, _ := claims["jti"].(string)
		if g.revocations.IsRevoked(c.Request.Context(), jti) {
			reject(c, http.StatusUnauthorized, "token has been revoked", "revocation")
			return
		}

		var userID string
		if sub, ok := claims["sub"].(string); ok {
			userID = sub
		} else if subf, ok := claims["sub"].(float64); ok {
			// jwt lib may parse numeric subjects as float64
			userID = strconv.Itoa(int(subf))
		}
		if userID == "" {
			reject(c, http.StatusUnauthorized, "invalid subject in token", "auth")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextJTIKey, jti)
		if exp, ok := claims["exp"].(float64); ok {
			// logout needs the remaining lifetime to bound the revocation TTL
			c.Set(ContextTokenExpKey, int64(exp))
		}
		c.Next()
	}
}

// RateLimit applies a fixed-window limiter keyed on the authenticated subject
// when present, otherwise the client IP, always scoped to the route.
func (g *Gateway) RateLimit(l *security.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetString(ContextUserIDKey)
		if identity == "" {
			identity = c.ClientIP()
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		d := l.Allow(identity + ":" + route)
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(d.RetryAfter))
			logging.Warn("rate limit exceeded",
				zap.String("identity", identity),
				zap.String("route", route))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"msg":        "too many requests",
				"retryAfter": d.RetryAfter,
			})
			return
		}
		c.Next()
	}
}

// ScanPayload inspects the request body for attack signatures before any
// handler binds it. JSON bodies are walked recursively; anything else is
// scanned as one raw string. The body is restored for downstream binding.
func (g *Gateway) ScanPayload() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}
		data, err := c.GetRawData()
		if err != nil {
			reject(c, http.StatusBadRequest, "unreadable request body", "scan")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(data))

		var body any
		if err := json.Unmarshal(data, &body); err != nil {
			body = string(data)
		}
		if security.Scan(body) {
			reject(c, http.StatusBadRequest, "request rejected", "scan")
			return
		}
		c.Next()
	}
}

// ResolveIdentity looks up the token subject and attaches the request
// SecurityContext. A suspended account or a store failure never proceeds.
func (g *Gateway) ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserIDKey)
		id64, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			reject(c, http.StatusUnauthorized, "invalid subject in token", "identity")
			return
		}

		identity, err := g.identities.Lookup(c.Request.Context(), uint(id64))
		if errors.Is(err, security.ErrIdentityNotFound) {
			reject(c, http.StatusUnauthorized, "unknown subject", "identity")
			return
		}
		if err != nil {
			// cannot resolve capabilities without a role: unauthorized
			logging.Error("identity store lookup failed", zap.Error(err), zap.String("sub", userID))
			reject(c, http.StatusUnauthorized, "identity unavailable", "identity")
			return
		}

		sctx, err := security.NewContext(identity)
		if errors.Is(err, security.ErrSuspended) {
			reject(c, http.StatusForbidden, "account suspended", "identity")
			return
		}
		if err != nil {
			reject(c, http.StatusUnauthorized, "identity unavailable", "identity")
			return
		}

		c.Set(ContextSecurityKey, sctx)
		c.Next()
	}
}

// RequirePermission gates a route on a capability of the resolved context.
func (g *Gateway) RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sctx := SecurityContextFrom(c)
		if sctx == nil {
			reject(c, http.StatusUnauthorized, "missing security context", "authorize")
			return
		}
		if !sctx.HasCapability(perm) {
			logging.Warn("permission denied",
				zap.Uint("user", sctx.UserID),
				zap.String("permission", perm),
				zap.String("route", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "permission denied"})
			return
		}
		c.Next()
	}
}

// SecurityContextFrom returns the request's resolved context, or nil.
func SecurityContextFrom(c *gin.Context) *security.SecurityContext {
	v, ok := c.Get(ContextSecurityKey)
	if !ok {
		return nil
	}
	sctx, _ := v.(*security.SecurityContext)
	return sctx
}

func reject(c *gin.Context, status int, msg, stage string) {
	logging.Warn("request rejected",
		zap.String("stage", stage),
		zap.String("ip", c.ClientIP()),
		zap.String("route", c.Request.URL.Path),
		zap.Int("status", status))
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}
