package validator

import "testing"

type slotRequest struct {
	SlotDate string `validate:"required,datekey"`
	SlotTime string `validate:"required,slottime"`
}

func TestDateKeyValidation(t *testing.T) {
	v := NewValidator()

	valid := []string{"1_4_2025", "31_12_2025", "9_10_1999", "15_1_2030"}
	for _, date := range valid {
		if err := v.Validate(&slotRequest{SlotDate: date, SlotTime: "10:00"}); err != nil {
			t.Errorf("date key %q rejected: %v", date, err)
		}
	}

	invalid := []string{
		"01_4_2025", // padded day
		"1_04_2025", // padded month
		"1_13_2025", // month out of range
		"32_4_2025", // day out of range
		"0_4_2025",  // zero day
		"1_4_25",    // short year
		"1-4-2025",  // wrong separator
		"2025_4_1",  // reversed order
		"",
	}
	for _, date := range invalid {
		if err := v.Validate(&slotRequest{SlotDate: date, SlotTime: "10:00"}); err == nil {
			t.Errorf("date key %q accepted", date)
		}
	}
}

func TestSlotTimeValidation(t *testing.T) {
	v := NewValidator()

	valid := []string{"0:00", "9:30", "10:00", "14:45", "23:59"}
	for _, slot := range valid {
		if err := v.Validate(&slotRequest{SlotDate: "1_4_2025", SlotTime: slot}); err != nil {
			t.Errorf("slot time %q rejected: %v", slot, err)
		}
	}

	invalid := []string{
		"24:00",  // hour out of range
		"10:60",  // minute out of range
		"10:5",   // short minute
		"10.30",  // wrong separator
		"10:30p", // trailing junk
		"",
	}
	for _, slot := range invalid {
		if err := v.Validate(&slotRequest{SlotDate: "1_4_2025", SlotTime: slot}); err == nil {
			t.Errorf("slot time %q accepted", slot)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&slotRequest{SlotDate: "bad", SlotTime: "bad"})
	if err == nil {
		t.Fatal("invalid request validated")
	}

	formatted := v.FormatValidationErrors(err)
	if len(formatted) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(formatted), formatted)
	}
	if _, ok := formatted["SlotDate"]; !ok {
		t.Fatalf("no SlotDate message in %v", formatted)
	}
	if _, ok := formatted["SlotTime"]; !ok {
		t.Fatalf("no SlotTime message in %v", formatted)
	}
}
