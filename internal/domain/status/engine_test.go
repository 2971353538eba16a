package status

import (
	"errors"
	"testing"
)

func TestIsActive_DiurnalDaytimeOnly(t *testing.T) {
	for h := 0; h < 24; h++ {
		want := h >= 7 && h <= 17
		if got := IsActive(Diurnal, h); got != want {
			t.Fatalf("diurnal hour=%d: expected active=%v, got %v", h, want, got)
		}
	}
}

func TestIsActive_NocturnalAndCathemeralNeverActive(t *testing.T) {
	for _, p := range []ActivityPattern{Nocturnal, Cathemeral} {
		for h := 0; h < 24; h++ {
			if IsActive(p, h) {
				t.Fatalf("%s hour=%d: expected inactive", p, h)
			}
		}
	}
}

func TestIsEating_WindowIsHalfOpen(t *testing.T) {
	const schedule = "12-13"

	if !IsEating(schedule, 12) {
		t.Fatalf("expected eating at 12")
	}
	if IsEating(schedule, 13) {
		t.Fatalf("expected not eating at 13")
	}
	if IsEating(schedule, 11) {
		t.Fatalf("expected not eating at 11")
	}
}

func TestIsEating_EmptyOrUnparseableNeverEats(t *testing.T) {
	for _, schedule := range []string{"", "   ", "twice a day", "12-13, whenever", "25-26", "12:30-13:00", "10-10"} {
		for h := 0; h < 24; h++ {
			if IsEating(schedule, h) {
				t.Fatalf("schedule=%q hour=%d: expected not eating", schedule, h)
			}
		}
	}
}

func TestParseSchedule_RejectsSignedHours(t *testing.T) {
	for _, schedule := range []string{"+7-8", "7-+8", "+7", "8, +9:00-10", " 7 - 8x"} {
		if _, err := ParseSchedule(schedule); !errors.Is(err, ErrInvalidSchedule) {
			t.Fatalf("schedule=%q: expected ErrInvalidSchedule, got %v", schedule, err)
		}
		if IsEating(schedule, 7) || IsEating(schedule, 9) {
			t.Fatalf("schedule=%q: expected not eating", schedule)
		}
	}
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	first := Evaluate(Diurnal, "8-9;17", 8)
	for i := 0; i < 10; i++ {
		if got := Evaluate(Diurnal, "8-9;17", 8); got != first {
			t.Fatalf("expected %+v, got %+v", first, got)
		}
	}
	if !first.IsActive || !first.IsEating {
		t.Fatalf("expected active and eating at 8, got %+v", first)
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []Window
		wantErr bool
	}{
		{name: "empty", in: "", want: nil},
		{name: "single range", in: "12-13", want: []Window{{12, 13}}},
		{name: "with minutes", in: "08:00-09:00", want: []Window{{8, 9}}},
		{name: "single hour", in: "17", want: []Window{{17, 18}}},
		{name: "last hour wraps", in: "23", want: []Window{{23, 0}}},
		{name: "multiple separators", in: "7-8, 12-13; 18:00-19:00", want: []Window{{7, 8}, {12, 13}, {18, 19}}},
		{name: "trailing separator", in: "7-8,", want: []Window{{7, 8}}},
		{name: "end of day", in: "20-24", want: []Window{{20, 24}}},
		{name: "overnight", in: "22-2", want: []Window{{22, 2}}},
		{name: "full day", in: "0-24", want: []Window{{0, 24}}},
		{name: "text", in: "morning", wantErr: true},
		{name: "half hour", in: "12:30", wantErr: true},
		{name: "empty window", in: "5-5", wantErr: true},
		{name: "hour 24 as start", in: "24-2", wantErr: true},
		{name: "missing start", in: "-5", wantErr: true},
		{name: "three digits", in: "012-13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSchedule(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSchedule) {
					t.Fatalf("expected ErrInvalidSchedule, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Windows) != len(tt.want) {
				t.Fatalf("expected %d windows, got %d (%v)", len(tt.want), len(got.Windows), got.Windows)
			}
			for i := range tt.want {
				if got.Windows[i] != tt.want[i] {
					t.Fatalf("window %d: expected %v, got %v", i, tt.want[i], got.Windows[i])
				}
			}
		})
	}
}

func TestSchedule_OvernightWindow(t *testing.T) {
	s, err := ParseSchedule("22-2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, h := range []int{22, 23, 0, 1} {
		if !s.Contains(h) {
			t.Fatalf("expected hour %d inside overnight window", h)
		}
	}
	for _, h := range []int{2, 12, 21} {
		if s.Contains(h) {
			t.Fatalf("expected hour %d outside overnight window", h)
		}
	}
}

func TestParseActivityPattern(t *testing.T) {
	if p, ok := ParseActivityPattern(" Nocturnal "); !ok || p != Nocturnal {
		t.Fatalf("expected nocturnal, got %q ok=%v", p, ok)
	}
	if p, ok := ParseActivityPattern(""); !ok || p != Diurnal {
		t.Fatalf("expected default diurnal, got %q ok=%v", p, ok)
	}
	if _, ok := ParseActivityPattern("crepuscular"); ok {
		t.Fatalf("expected unknown pattern to be rejected")
	}
}
