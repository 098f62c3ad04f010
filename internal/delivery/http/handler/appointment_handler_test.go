package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/usecase"
	"healthsphere-api/pkg/response"
	"healthsphere-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// stubAppointmentUsecase returns canned results so handler mapping can be
// exercised without a database.
type stubAppointmentUsecase struct {
	bookResult *dto.AppointmentResponse
	bookErr    error
	cancelErr  error
	listResult *dto.AppointmentListResponse
	listErr    error
}

func (s *stubAppointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.bookResult, s.bookErr
}

func (s *stubAppointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	return s.cancelErr
}

func (s *stubAppointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return s.listResult, s.listErr
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return envelope
}

func TestBookAppointment(t *testing.T) {
	validBody := func() *bytes.Buffer {
		body, _ := json.Marshal(dto.BookAppointmentRequest{
			DoctorID: uuid.New(),
			SlotDate: "1_4_2025",
			SlotTime: "10:00",
		})
		return bytes.NewBuffer(body)
	}

	tests := []struct {
		name       string
		stub       *stubAppointmentUsecase
		wantStatus int
		wantOK     bool
	}{
		{
			name: "successful booking",
			stub: &stubAppointmentUsecase{
				bookResult: &dto.AppointmentResponse{ID: uuid.New(), SlotDate: "1_4_2025", SlotTime: "10:00"},
			},
			wantStatus: http.StatusCreated,
			wantOK:     true,
		},
		{
			name:       "slot already booked",
			stub:       &stubAppointmentUsecase{bookErr: entity.ErrSlotTaken},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "doctor unavailable",
			stub:       &stubAppointmentUsecase{bookErr: usecase.ErrDoctorUnavailable},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "doctor not found",
			stub:       &stubAppointmentUsecase{bookErr: usecase.ErrDoctorNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(tt.stub, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", validBody())
			rec := httptest.NewRecorder()
			h.BookAppointment(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if envelope := decodeEnvelope(t, rec); envelope.Success != tt.wantOK {
				t.Fatalf("success = %t, want %t", envelope.Success, tt.wantOK)
			}
		})
	}
}

func TestBookAppointmentValidation(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	tests := []struct {
		name string
		req  dto.BookAppointmentRequest
	}{
		{"padded date key", dto.BookAppointmentRequest{DoctorID: uuid.New(), SlotDate: "01_4_2025", SlotTime: "10:00"}},
		{"bad slot time", dto.BookAppointmentRequest{DoctorID: uuid.New(), SlotDate: "1_4_2025", SlotTime: "25:00"}},
		{"missing doctor", dto.BookAppointmentRequest{SlotDate: "1_4_2025", SlotTime: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBuffer(body))
			rec := httptest.NewRecorder()
			h.BookAppointment(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if envelope := decodeEnvelope(t, rec); envelope.Success {
				t.Fatal("validation failure reported success")
			}
		})
	}
}

func TestCancelAppointment(t *testing.T) {
	tests := []struct {
		name       string
		cancelErr  error
		wantStatus int
	}{
		{"successful cancel", nil, http.StatusOK},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not the owner", usecase.ErrNotAppointmentOwner, http.StatusForbidden},
		{"already cancelled", usecase.ErrAppointmentAlreadyCancelled, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{cancelErr: tt.cancelErr}, validator.NewValidator())

			// The handler reads the ID from mux vars, so route through a router
			router := mux.NewRouter()
			router.HandleFunc("/appointments/{id}", h.CancelAppointment).Methods(http.MethodDelete)

			target := fmt.Sprintf("/appointments/%s", uuid.New())
			req := httptest.NewRequest(http.MethodDelete, target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	t.Run("malformed ID", func(t *testing.T) {
		h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())
		router := mux.NewRouter()
		router.HandleFunc("/appointments/{id}", h.CancelAppointment).Methods(http.MethodDelete)

		req := httptest.NewRequest(http.MethodDelete, "/appointments/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGetMyAppointments(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{
		listResult: &dto.AppointmentListResponse{
			Appointments: []dto.AppointmentResponse{{ID: uuid.New()}},
			Total:        1,
		},
	}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()
	h.GetMyAppointments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); !envelope.Success {
		t.Fatal("listing reported failure")
	}
}
