package jwt

import (
	"errors"
	"testing"
	"time"

	"mindcare-backend/config"
	"mindcare-backend/internal/domain/entity"
)

func newService(issuer string) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: issuer})
}

func TestValidateToken_RoundTrip(t *testing.T) {
	s := newService("identity.test")
	actor := entity.Actor{UserID: "user-1", UserType: entity.UserTypeDoctor, Email: "doc@example.com", Name: "Dr. Smith"}

	token, err := s.GenerateToken(actor, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Actor() != actor {
		t.Errorf("actor = %+v, want %+v", claims.Actor(), actor)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	patient := entity.Actor{UserID: "user-1", UserType: entity.UserTypePatient}

	expired, _ := newService("").GenerateToken(patient, -time.Minute)
	wrongIssuer, _ := newService("someone-else").GenerateToken(patient, time.Hour)
	wrongSecret, _ := NewJWTService(config.JWTConfig{Secret: "other"}).GenerateToken(patient, time.Hour)
	noType, _ := newService("identity.test").GenerateToken(entity.Actor{UserID: "user-1", UserType: "nurse"}, time.Hour)

	s := newService("identity.test")
	tests := map[string]string{
		"expired":      expired,
		"wrong issuer": wrongIssuer,
		"wrong secret": wrongSecret,
		"garbage":      "not-a-token",
		"unknown type": noType,
	}
	for name, token := range tests {
		if _, err := s.ValidateToken(token); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := s.ValidateToken(noType); !errors.Is(err, ErrInvalidUserType) {
		t.Errorf("unknown type err = %v, want %v", err, ErrInvalidUserType)
	}
}
