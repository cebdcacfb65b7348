package model

import (
	"fmt"
	"slices"
)

// Segment is the part of the day a slot belongs to.
type Segment string

const (
	SegmentMorning   Segment = "Sáng"
	SegmentAfternoon Segment = "Chiều"
	SegmentEvening   Segment = "Tối"
)

const (
	firstSlotMinute  = 8 * 60
	lastSlotMinute   = 20 * 60
	lunchStartMinute = 12 * 60
	lunchEndMinute   = 13 * 60
	eveningMinute    = 18 * 60
	slotStepMinutes  = 30
)

// Slot is one bookable half-hour mark. Value is an opaque "HH:mm" string.
type Slot struct {
	Value   string  `json:"value"`
	Label   string  `json:"label"`
	Segment Segment `json:"segment"`
}

var catalog = buildCatalog()

func buildCatalog() []Slot {
	slots := make([]Slot, 0, (lastSlotMinute-firstSlotMinute)/slotStepMinutes+1)

	for minute := firstSlotMinute; minute <= lastSlotMinute; minute += slotStepMinutes {
		if minute >= lunchStartMinute && minute < lunchEndMinute {
			continue
		}

		value := fmt.Sprintf("%02d:%02d", minute/60, minute%60)
		segment := segmentOf(minute)

		slots = append(slots, Slot{
			Value:   value,
			Label:   fmt.Sprintf("%s (%s)", value, segment),
			Segment: segment,
		})
	}

	return slots
}

func segmentOf(minute int) Segment {
	switch {
	case minute < lunchStartMinute:
		return SegmentMorning
	case minute < eveningMinute:
		return SegmentAfternoon
	default:
		return SegmentEvening
	}
}

// Catalog returns the ordered slot list. Callers get their own copy.
func Catalog() []Slot {
	return slices.Clone(catalog)
}

func IsValidSlot(value string) bool {
	return slices.ContainsFunc(catalog, func(slot Slot) bool {
		return slot.Value == value
	})
}
