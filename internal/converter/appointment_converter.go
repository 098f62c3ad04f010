package converter

import (
	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		SlotDate:        appointment.SlotDate,
		SlotTime:        appointment.SlotTime,
		Amount:          appointment.Amount,
		Cancelled:       appointment.Cancelled,
		IsCompleted:     appointment.IsCompleted,
		Payment:         appointment.Payment,
		Status:          appointment.DisplayStatus(),
		PatientSnapshot: map[string]interface{}(appointment.PatientSnapshot),
		DoctorSnapshot:  map[string]interface{}(appointment.DoctorSnapshot),
		CreatedAt:       appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
