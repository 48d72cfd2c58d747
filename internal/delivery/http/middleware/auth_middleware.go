package middleware

import (
	"context"
	"net/http"
	"strings"

	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/pkg/jwt"
	"mindcare-backend/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type contextKey string

const ActorKey contextKey = "actor"

// RevokedTokenKeyPrefix prefixes the Redis keys the identity provider writes for revoked token ids
const RevokedTokenKeyPrefix = "revoked_token:"

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	log         *logrus.Logger
}

// NewAuthMiddleware builds the bearer-token check. redisClient may be nil, which skips the revocation lookup.
func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
		log:         log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if m.isRevoked(r.Context(), claims.ID) {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), claims.Actor())))
	})
}

// isRevoked fails open: a Redis outage must not lock every user out
func (m *AuthMiddleware) isRevoked(ctx context.Context, tokenID string) bool {
	if m.redisClient == nil || tokenID == "" {
		return false
	}

	exists, err := m.redisClient.Exists(ctx, RevokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		m.log.Warnf("Failed to check token revocation: %+v", err)
		return false
	}
	return exists > 0
}

// WithActor stores the authenticated caller in ctx
func WithActor(ctx context.Context, actor entity.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext extracts the authenticated caller from context
func GetActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(entity.Actor)
	return actor, ok
}
