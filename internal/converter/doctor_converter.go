package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		Name:           doctor.Name,
		Email:          doctor.Email,
		Specialization: doctor.Specialization,
		LicenseNumber:  doctor.LicenseNumber,
		IsAvailable:    doctor.IsAvailable == nil || *doctor.IsAvailable,
		Rating:         doctor.Rating,
		TotalReviews:   doctor.TotalReviews,
		CreatedAt:      doctor.CreatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
