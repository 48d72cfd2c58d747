package middleware

import (
	"net/http"

	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/pkg/response"
)

// RequireUserType creates a middleware that checks the caller has one of the allowed user types.
// The actor is read from context (set by AuthMiddleware from token claims).
func RequireUserType(allowed ...entity.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "User information not found")
				return
			}

			for _, userType := range allowed {
				if actor.UserType == userType {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeAdmin)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeDoctor)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypePatient)(next)
}

// RequireAdminOrDoctor is a convenience middleware for admin or doctor endpoints
func RequireAdminOrDoctor(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeAdmin, entity.UserTypeDoctor)(next)
}
