package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mindcare-backend/internal/delivery/http/middleware"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/pkg/response"
	"mindcare-backend/pkg/validator"
)

// currentActor writes 401 and returns false when the request was not authenticated
func currentActor(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
	}
	return actor, ok
}

// decodeAndValidate reads a JSON body into req and validates it, writing 400 on failure
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// queryBool parses an optional boolean query parameter; ok is false when it is present but malformed
func queryBool(r *http.Request, key string) (value *bool, ok bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
