package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAppointmentMarkPaid(t *testing.T) {
	t.Run("active appointment can be paid", func(t *testing.T) {
		a := &Appointment{}
		if err := a.MarkPaid(); err != nil {
			t.Fatalf("MarkPaid returned %v", err)
		}
		if !a.Payment {
			t.Fatal("payment flag not set")
		}
	})

	t.Run("cancelled appointment cannot be paid", func(t *testing.T) {
		a := &Appointment{}
		a.Cancel()
		if err := a.MarkPaid(); err != ErrAppointmentCancelled {
			t.Fatalf("expected ErrAppointmentCancelled, got %v", err)
		}
		if a.Payment {
			t.Fatal("payment flag set on cancelled appointment")
		}
	})
}

func TestAppointmentCancelPreservesFields(t *testing.T) {
	a := &Appointment{
		SlotDate: "1_4_2025",
		SlotTime: "10:00",
		Amount:   decimal.NewFromInt(500),
		Payment:  true,
	}
	a.Cancel()

	if !a.Cancelled {
		t.Fatal("cancelled flag not set")
	}
	if a.SlotDate != "1_4_2025" || a.SlotTime != "10:00" {
		t.Fatal("slot fields mutated by cancel")
	}
	if !a.Payment {
		t.Fatal("payment flag cleared by cancel")
	}
	if !a.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatal("amount mutated by cancel")
	}
}

func TestAppointmentDisplayStatus(t *testing.T) {
	tests := []struct {
		name        string
		cancelled   bool
		isCompleted bool
		want        string
	}{
		{"fresh booking is scheduled", false, false, AppointmentStatusScheduled},
		{"completed", false, true, AppointmentStatusCompleted},
		{"cancelled", true, false, AppointmentStatusCancelled},
		{"cancellation wins over completion", true, true, AppointmentStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Cancelled: tt.cancelled, IsCompleted: tt.isCompleted}
			if got := a.DisplayStatus(); got != tt.want {
				t.Fatalf("DisplayStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
