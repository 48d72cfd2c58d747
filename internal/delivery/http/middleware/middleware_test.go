package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindcare-backend/config"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/pkg/jwt"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func echoActor(t *testing.T, seen *entity.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActorFromContext(r.Context())
		if !ok {
			t.Error("actor missing from context")
		}
		*seen = actor
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})
	actor := entity.Actor{UserID: "pat-1", UserType: entity.UserTypePatient, Name: "Jane Roe"}
	token, err := jwtService.GenerateToken(actor, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var seen entity.Actor
	handler := NewAuthMiddleware(jwtService, nil, quietLogger()).Authenticate(echoActor(t, &seen))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}

	if seen != actor {
		t.Errorf("actor = %+v, want %+v", seen, actor)
	}
}

func TestRequireUserType(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := RequireAdminOrDoctor(ok)

	tests := []struct {
		name   string
		actor  *entity.Actor
		status int
	}{
		{"no actor", nil, http.StatusUnauthorized},
		{"patient", &entity.Actor{UserID: "p", UserType: entity.UserTypePatient}, http.StatusForbidden},
		{"doctor", &entity.Actor{UserID: "d", UserType: entity.UserTypeDoctor}, http.StatusOK},
		{"admin", &entity.Actor{UserID: "a", UserType: entity.UserTypeAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.actor != nil {
				req = req.WithContext(WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	handler := NewCORSMiddleware("").Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/doctors", nil))

	if rec.Code != http.StatusOK || called {
		t.Errorf("preflight status = %d, handler called = %v", rec.Code, called)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
