package models

import (
	"fmt"
	"strings"
)

// ShiftSlot is one of the three daily shifts. The order is fixed and is
// the order codes are rendered in.
type ShiftSlot int

const (
	Breakfast ShiftSlot = iota
	Lunch
	Dinner
)

// SlotCount is the number of shift slots in a day.
const SlotCount = 3

// AllSlots lists the shift slots in ascending order.
var AllSlots = [SlotCount]ShiftSlot{Breakfast, Lunch, Dinner}

var slotCodes = [SlotCount]string{"B", "L", "D"}
var slotNames = [SlotCount]string{"breakfast", "lunch", "dinner"}

// Code returns the single-letter code used in schedules (B, L or D).
func (s ShiftSlot) Code() string {
	if !s.Valid() {
		return "?"
	}
	return slotCodes[s]
}

func (s ShiftSlot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ShiftSlot(%d)", int(s))
	}
	return slotNames[s]
}

// Valid reports whether s is one of the three known slots.
func (s ShiftSlot) Valid() bool {
	return s >= Breakfast && s <= Dinner
}

// ParseShiftSlot accepts a slot code or name, case-insensitive.
func ParseShiftSlot(v string) (ShiftSlot, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i := range AllSlots {
		if v == strings.ToLower(slotCodes[i]) || v == slotNames[i] {
			return AllSlots[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, v)
}

// MarshalText encodes the slot as its code.
func (s ShiftSlot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSlot, int(s))
	}
	return []byte(s.Code()), nil
}

// UnmarshalText decodes a slot code or name.
func (s *ShiftSlot) UnmarshalText(text []byte) error {
	slot, err := ParseShiftSlot(string(text))
	if err != nil {
		return err
	}
	*s = slot
	return nil
}
