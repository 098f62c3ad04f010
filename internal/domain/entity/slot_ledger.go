package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSlotTaken is returned when a slot is already present in the ledger
var ErrSlotTaken = errors.New("slot is already booked")

// SlotLedger maps a date key ("D_M_YYYY", unpadded) to the list of time
// strings ("H:MM", 24-hour) already booked for that date. Both formats are
// produced by the client and matched as opaque keys; the ledger never parses
// them or does date arithmetic.
//
// The ledger is owned by the doctor row (jsonb column) and is mutated only
// through Reserve and Release.
type SlotLedger map[string][]string

// IsBooked reports whether slot is already present under dateKey.
func (l SlotLedger) IsBooked(dateKey, slot string) bool {
	for _, booked := range l[dateKey] {
		if booked == slot {
			return true
		}
	}
	return false
}

// Reserve books slot under dateKey. The date entry is created on the first
// booking for that date; slots are kept in insertion order, not chronological
// order. Returns ErrSlotTaken when the slot is already present.
func (l *SlotLedger) Reserve(dateKey, slot string) error {
	if *l == nil {
		*l = SlotLedger{}
	}
	if l.IsBooked(dateKey, slot) {
		return ErrSlotTaken
	}
	(*l)[dateKey] = append((*l)[dateKey], slot)
	return nil
}

// Release removes every occurrence of slot under dateKey. Releasing a slot
// that is not present is a no-op. The date entry is kept even when it
// becomes empty.
func (l SlotLedger) Release(dateKey, slot string) {
	booked, ok := l[dateKey]
	if !ok {
		return
	}
	remaining := make([]string, 0, len(booked))
	for _, s := range booked {
		if s != slot {
			remaining = append(remaining, s)
		}
	}
	l[dateKey] = remaining
}

// Value returns the json value, implements driver.Valuer interface
func (l SlotLedger) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(SlotLedger{})
	}
	return json.Marshal(l)
}

// Scan scans a jsonb value into the ledger, implements sql.Scanner interface
func (l *SlotLedger) Scan(value interface{}) error {
	if value == nil {
		*l = SlotLedger{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to scan slot ledger value: %v", value)
	}

	result := SlotLedger{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = result
	return nil
}
