package converter

import (
	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to its response DTO. The ledger
// is included so clients can grey out taken slots.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:          doctor.ID,
		Name:        doctor.Name,
		Email:       doctor.Email,
		ImageURL:    doctor.ImageURL,
		Speciality:  doctor.Speciality,
		Degree:      doctor.Degree,
		Experience:  doctor.Experience,
		About:       doctor.About,
		Available:   doctor.IsAvailable(),
		Fees:        doctor.Fees,
		Address:     map[string]interface{}(doctor.Address),
		SlotsBooked: map[string][]string(doctor.SlotsBooked),
		CreatedAt:   doctor.CreatedAt,
	}
}

// DoctorToPublicResponse converts a Doctor entity for unauthenticated
// listings; the email is withheld.
func DoctorToPublicResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	response := DoctorToResponse(doctor)
	if response == nil {
		return nil
	}
	response.Email = ""
	return response
}

// DoctorsToPublicResponses converts a slice of Doctor entities for listings
func DoctorsToPublicResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToPublicResponse(&doctors[i])
	}
	return responses
}

// DoctorsToResponses converts a slice of Doctor entities for admin listings
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
