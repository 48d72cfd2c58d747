package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		Name:             patient.Name,
		Email:            patient.Email,
		Age:              patient.Age,
		Gender:           patient.Gender,
		DoctorID:         patient.DoctorID,
		PrimaryDiagnosis: patient.PrimaryDiagnosis,
		EmergencyContact: dto.EmergencyContactResponse{
			Name:         patient.EmergencyContact.Name,
			Phone:        patient.EmergencyContact.Phone,
			Relationship: patient.EmergencyContact.Relationship,
		},
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

// CreatePatientRequestToEntity builds a patient profile owned by userID
func CreatePatientRequestToEntity(userID string, req *dto.CreatePatientRequest) *entity.Patient {
	patient := &entity.Patient{
		ID:               userID,
		Name:             req.Name,
		Email:            req.Email,
		Age:              req.Age,
		Gender:           req.Gender,
		PrimaryDiagnosis: req.PrimaryDiagnosis,
		EmergencyContact: entity.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Phone:        req.EmergencyContact.Phone,
			Relationship: req.EmergencyContact.Relationship,
		},
	}
	if req.DoctorID != "" {
		doctorID := req.DoctorID
		patient.DoctorID = &doctorID
	}
	return patient
}

// UpdatePatientRequestToPatch keeps only the fields the caller sent
func UpdatePatientRequestToPatch(req *dto.UpdatePatientRequest) map[string]interface{} {
	patch := make(map[string]interface{})
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Age != nil {
		patch["age"] = *req.Age
	}
	if req.Gender != nil {
		patch["gender"] = *req.Gender
	}
	if req.DoctorID != nil {
		patch["doctor_id"] = *req.DoctorID
	}
	if req.PrimaryDiagnosis != nil {
		patch["primary_diagnosis"] = *req.PrimaryDiagnosis
	}
	if req.EmergencyContact != nil {
		patch["emergency_contact_name"] = req.EmergencyContact.Name
		patch["emergency_contact_phone"] = req.EmergencyContact.Phone
		patch["emergency_contact_relationship"] = req.EmergencyContact.Relationship
	}
	return patch
}
