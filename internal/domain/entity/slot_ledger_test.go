package entity

import (
	"reflect"
	"testing"
)

func TestSlotLedgerReserve(t *testing.T) {
	t.Run("first booking creates the date entry", func(t *testing.T) {
		var ledger SlotLedger
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve returned %v", err)
		}
		if !ledger.IsBooked("1_4_2025", "10:00") {
			t.Fatal("slot not present after Reserve")
		}
	})

	t.Run("double booking the same slot fails", func(t *testing.T) {
		var ledger SlotLedger
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve returned %v", err)
		}
		if err := ledger.Reserve("1_4_2025", "10:00"); err != ErrSlotTaken {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
		if got := len(ledger["1_4_2025"]); got != 1 {
			t.Fatalf("ledger entry has %d slots, want 1", got)
		}
	})

	t.Run("same time on a different date is independent", func(t *testing.T) {
		var ledger SlotLedger
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve returned %v", err)
		}
		if err := ledger.Reserve("2_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve on other date returned %v", err)
		}
	})

	t.Run("slots keep insertion order", func(t *testing.T) {
		var ledger SlotLedger
		for _, slot := range []string{"14:00", "9:30", "11:00"} {
			if err := ledger.Reserve("5_6_2025", slot); err != nil {
				t.Fatalf("Reserve(%q) returned %v", slot, err)
			}
		}
		want := []string{"14:00", "9:30", "11:00"}
		if !reflect.DeepEqual(ledger["5_6_2025"], want) {
			t.Fatalf("got %v, want %v", ledger["5_6_2025"], want)
		}
	})

	t.Run("date keys are opaque, no normalization", func(t *testing.T) {
		var ledger SlotLedger
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve returned %v", err)
		}
		// A differently-written key for the same calendar day is a
		// different entry
		if ledger.IsBooked("01_4_2025", "10:00") {
			t.Fatal("padded key matched unpadded entry")
		}
	})
}

func TestSlotLedgerRelease(t *testing.T) {
	t.Run("released slot can be rebooked", func(t *testing.T) {
		var ledger SlotLedger
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve returned %v", err)
		}
		ledger.Release("1_4_2025", "10:00")
		if ledger.IsBooked("1_4_2025", "10:00") {
			t.Fatal("slot still booked after Release")
		}
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("rebooking released slot returned %v", err)
		}
	})

	t.Run("release keeps other slots on the date", func(t *testing.T) {
		ledger := SlotLedger{"1_4_2025": {"9:00", "10:00", "11:00"}}
		ledger.Release("1_4_2025", "10:00")
		want := []string{"9:00", "11:00"}
		if !reflect.DeepEqual(ledger["1_4_2025"], want) {
			t.Fatalf("got %v, want %v", ledger["1_4_2025"], want)
		}
	})

	t.Run("release of an absent slot is a no-op", func(t *testing.T) {
		ledger := SlotLedger{"1_4_2025": {"9:00"}}
		ledger.Release("1_4_2025", "10:00")
		ledger.Release("9_9_2030", "10:00")
		if !reflect.DeepEqual(ledger["1_4_2025"], []string{"9:00"}) {
			t.Fatalf("ledger mutated by no-op release: %v", ledger)
		}
	})

	t.Run("emptied date entry is retained", func(t *testing.T) {
		ledger := SlotLedger{"1_4_2025": {"10:00"}}
		ledger.Release("1_4_2025", "10:00")
		slots, ok := ledger["1_4_2025"]
		if !ok {
			t.Fatal("date entry removed after last release")
		}
		if len(slots) != 0 {
			t.Fatalf("entry not empty: %v", slots)
		}
	})

	t.Run("release removes every occurrence", func(t *testing.T) {
		// Duplicates cannot arise through Reserve, but a hand-edited
		// ledger must still come out clean
		ledger := SlotLedger{"1_4_2025": {"10:00", "11:00", "10:00"}}
		ledger.Release("1_4_2025", "10:00")
		if !reflect.DeepEqual(ledger["1_4_2025"], []string{"11:00"}) {
			t.Fatalf("got %v, want [11:00]", ledger["1_4_2025"])
		}
	})
}

func TestSlotLedgerScanValue(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ledger := SlotLedger{"1_4_2025": {"10:00", "11:00"}, "2_4_2025": {}}
		raw, err := ledger.Value()
		if err != nil {
			t.Fatalf("Value returned %v", err)
		}

		var scanned SlotLedger
		if err := scanned.Scan(raw); err != nil {
			t.Fatalf("Scan returned %v", err)
		}
		if !reflect.DeepEqual(scanned, ledger) {
			t.Fatalf("got %v, want %v", scanned, ledger)
		}
	})

	t.Run("nil column scans to empty ledger", func(t *testing.T) {
		var ledger SlotLedger
		if err := ledger.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) returned %v", err)
		}
		if ledger == nil {
			t.Fatal("ledger still nil after Scan")
		}
		if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
			t.Fatalf("Reserve on scanned ledger returned %v", err)
		}
	})

	t.Run("nil ledger marshals to empty object", func(t *testing.T) {
		var ledger SlotLedger
		raw, err := ledger.Value()
		if err != nil {
			t.Fatalf("Value returned %v", err)
		}
		if string(raw.([]byte)) != "{}" {
			t.Fatalf("got %s, want {}", raw)
		}
	})
}

// Full booking lifecycle: book, conflict, cancel, rebook.
func TestSlotLedgerBookingLifecycle(t *testing.T) {
	var ledger SlotLedger

	if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
		t.Fatalf("initial booking failed: %v", err)
	}
	if err := ledger.Reserve("1_4_2025", "10:00"); err != ErrSlotTaken {
		t.Fatalf("conflicting booking: expected ErrSlotTaken, got %v", err)
	}

	ledger.Release("1_4_2025", "10:00")

	if err := ledger.Reserve("1_4_2025", "10:00"); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
}
