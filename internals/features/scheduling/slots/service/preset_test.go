// file: internals/features/scheduling/slots/service/preset_test.go
package service

import (
	"errors"
	"testing"
	"time"

	"formaplan_backend/internals/configs"
)

func testPresets() configs.SlotPresets {
	return configs.SlotPresets{
		MorningStart:   "09:00",
		MorningEnd:     "12:30",
		AfternoonStart: "13:30",
		AfternoonEnd:   "17:00",
	}
}

func mustExpander(t *testing.T) *PresetExpander {
	t.Helper()
	e, err := NewPresetExpander(testPresets())
	if err != nil {
		t.Fatalf("NewPresetExpander: %v", err)
	}
	return e
}

func hhmm(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}

func TestNewPresetExpanderRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		p    configs.SlotPresets
	}{
		{"garbage time", configs.SlotPresets{MorningStart: "nope", MorningEnd: "12:30", AfternoonStart: "13:30", AfternoonEnd: "17:00"}},
		{"morning inverted", configs.SlotPresets{MorningStart: "12:30", MorningEnd: "09:00", AfternoonStart: "13:30", AfternoonEnd: "17:00"}},
		{"afternoon zero-length", configs.SlotPresets{MorningStart: "09:00", MorningEnd: "12:30", AfternoonStart: "13:30", AfternoonEnd: "13:30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPresetExpander(tt.p); err == nil {
				t.Fatalf("expected error for %+v", tt.p)
			}
		})
	}
}

func TestExpandSingleModes(t *testing.T) {
	e := mustExpander(t)

	tests := []struct {
		mode       SlotMode
		wantStart  string
		wantEnd    string
	}{
		{ModeMorning, "09:00", "12:30"},
		{ModeAfternoon, "13:30", "17:00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			ranges, err := e.Expand(tt.mode, nil)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if len(ranges) != 1 {
				t.Fatalf("want 1 range, got %d", len(ranges))
			}
			if !ranges[0].Start.Equal(hhmm(t, tt.wantStart)) || !ranges[0].End.Equal(hhmm(t, tt.wantEnd)) {
				t.Fatalf("got %v–%v, want %s–%s", ranges[0].Start, ranges[0].End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// Full-day is always two rows: the morning range then the afternoon
// range, never a single merged block.
func TestExpandFullDayIsTwoOrderedRanges(t *testing.T) {
	e := mustExpander(t)

	ranges, err := e.Expand(ModeFullDay, nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("want exactly 2 ranges, got %d", len(ranges))
	}
	if !ranges[0].Start.Equal(hhmm(t, "09:00")) || !ranges[0].End.Equal(hhmm(t, "12:30")) {
		t.Fatalf("first range = %v–%v, want morning", ranges[0].Start, ranges[0].End)
	}
	if !ranges[1].Start.Equal(hhmm(t, "13:30")) || !ranges[1].End.Equal(hhmm(t, "17:00")) {
		t.Fatalf("second range = %v–%v, want afternoon", ranges[1].Start, ranges[1].End)
	}
}

func TestExpandCustom(t *testing.T) {
	e := mustExpander(t)

	t.Run("nil range rejected", func(t *testing.T) {
		if _, err := e.Expand(ModeCustom, nil); !errors.Is(err, ErrCustomRangeRequired) {
			t.Fatalf("got %v, want ErrCustomRangeRequired", err)
		}
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		rng := &TimeRange{Start: hhmm(t, "15:00"), End: hhmm(t, "14:00")}
		if _, err := e.Expand(ModeCustom, rng); !errors.Is(err, ErrEndNotAfterStart) {
			t.Fatalf("got %v, want ErrEndNotAfterStart", err)
		}
	})

	t.Run("valid range passes through", func(t *testing.T) {
		rng := &TimeRange{Start: hhmm(t, "10:00"), End: hhmm(t, "11:00")}
		ranges, err := e.Expand(ModeCustom, rng)
		if err != nil {
			t.Fatalf("Expand: %v", err)
		}
		if len(ranges) != 1 || !ranges[0].Start.Equal(rng.Start) || !ranges[0].End.Equal(rng.End) {
			t.Fatalf("got %+v, want [%+v]", ranges, *rng)
		}
	})
}

func TestParseSlotMode(t *testing.T) {
	for _, valid := range []string{"morning", "afternoon", "full_day", "custom"} {
		if _, ok := ParseSlotMode(valid); !ok {
			t.Errorf("ParseSlotMode(%q) rejected a valid mode", valid)
		}
	}
	for _, invalid := range []string{"", "evening", "fullday", "MORNING"} {
		if _, ok := ParseSlotMode(invalid); ok {
			t.Errorf("ParseSlotMode(%q) accepted an invalid mode", invalid)
		}
	}
}
