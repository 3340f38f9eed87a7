// file: internals/features/scheduling/slots/service/preset.go
package service

import (
	"errors"
	"fmt"
	"time"

	"formaplan_backend/internals/configs"
	"formaplan_backend/internals/features/scheduling/slots/dto"
)

/* =========================
   Slot modes & ranges
   ========================= */

type SlotMode string

const (
	ModeMorning   SlotMode = "morning"
	ModeAfternoon SlotMode = "afternoon"
	ModeFullDay   SlotMode = "full_day"
	ModeCustom    SlotMode = "custom"
)

func ParseSlotMode(s string) (SlotMode, bool) {
	switch SlotMode(s) {
	case ModeMorning, ModeAfternoon, ModeFullDay, ModeCustom:
		return SlotMode(s), true
	}
	return "", false
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

var (
	ErrCustomRangeRequired = errors.New("custom mode requires start and end times")
	ErrEndNotAfterStart    = errors.New("end time must be after start time")
)

/* =========================
   PresetExpander
   ========================= */

// PresetExpander turns a scheduling mode into 1–2 concrete time ranges.
// The morning/afternoon hours come from injected configuration, so one
// scheduling action yielding N rows stays isolated from the store.
type PresetExpander struct {
	morning   TimeRange
	afternoon TimeRange
}

func NewPresetExpander(p configs.SlotPresets) (*PresetExpander, error) {
	morning, err := parsePresetRange(p.MorningStart, p.MorningEnd)
	if err != nil {
		return nil, fmt.Errorf("morning preset: %w", err)
	}
	afternoon, err := parsePresetRange(p.AfternoonStart, p.AfternoonEnd)
	if err != nil {
		return nil, fmt.Errorf("afternoon preset: %w", err)
	}
	return &PresetExpander{morning: morning, afternoon: afternoon}, nil
}

func parsePresetRange(startStr, endStr string) (TimeRange, error) {
	start, ok := dto.ParseTimeOfDay(startStr)
	if !ok {
		return TimeRange{}, fmt.Errorf("invalid time %q (want HH:mm)", startStr)
	}
	end, ok := dto.ParseTimeOfDay(endStr)
	if !ok {
		return TimeRange{}, fmt.Errorf("invalid time %q (want HH:mm)", endStr)
	}
	if !end.After(start) {
		return TimeRange{}, ErrEndNotAfterStart
	}
	return TimeRange{Start: start, End: end}, nil
}

// Expand returns the ordered ranges for a mode. full_day is always the
// morning range followed by the afternoon range, as two entries.
func (e *PresetExpander) Expand(mode SlotMode, custom *TimeRange) ([]TimeRange, error) {
	switch mode {
	case ModeMorning:
		return []TimeRange{e.morning}, nil
	case ModeAfternoon:
		return []TimeRange{e.afternoon}, nil
	case ModeFullDay:
		return []TimeRange{e.morning, e.afternoon}, nil
	case ModeCustom:
		if custom == nil {
			return nil, ErrCustomRangeRequired
		}
		if !custom.End.After(custom.Start) {
			return nil, ErrEndNotAfterStart
		}
		return []TimeRange{*custom}, nil
	}
	return nil, fmt.Errorf("unknown slot mode %q", mode)
}
