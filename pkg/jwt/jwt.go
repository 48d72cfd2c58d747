package jwt

import (
	"errors"
	"time"

	"mindcare-backend/config"
	"mindcare-backend/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidUserType = errors.New("token has no valid user_type")
)

// Claims are the identity claims the identity provider signs into every access token
type Claims struct {
	UserID   string          `json:"user_id"`
	UserType entity.UserType `json:"user_type"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the caller of a core operation
func (c *Claims) Actor() entity.Actor {
	return entity.Actor{
		UserID:   c.UserID,
		UserType: c.UserType,
		Email:    c.Email,
		Name:     c.Name,
	}
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken signs an access token for actor. Production tokens come from the identity provider;
// this is used by tests and local tooling.
func (s *JWTService) GenerateToken(actor entity.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   actor.UserID,
		UserType: actor.UserType,
		Email:    actor.Email,
		Name:     actor.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   actor.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, options...)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	switch claims.UserType {
	case entity.UserTypeDoctor, entity.UserTypePatient, entity.UserTypeAdmin:
	default:
		return nil, ErrInvalidUserType
	}

	return claims, nil
}
