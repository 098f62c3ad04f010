package dto

// Response DTOs

type AdminDashboardResponse struct {
	Doctors            int64                 `json:"doctors"`
	Patients           int64                 `json:"patients"`
	Appointments       int64                 `json:"appointments"`
	LatestAppointments []AppointmentResponse `json:"latest_appointments"`
}
