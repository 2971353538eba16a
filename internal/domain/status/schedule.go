package status

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSchedule = errors.New("invalid feeding schedule")

// Window es un rango de horas [Start, End). Si End < Start el rango cruza medianoche.
type Window struct {
	Start int
	End   int
}

func (w Window) Contains(hour int) bool {
	if w.Start < w.End {
		return hour >= w.Start && hour < w.End
	}
	// cruza medianoche: 22-2 => 22,23,0,1
	return hour >= w.Start || hour < w.End
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.Start, w.End)
}

// Schedule es el horario de alimentación ya interpretado.
type Schedule struct {
	Windows []Window
}

func (s Schedule) Contains(hour int) bool {
	for _, w := range s.Windows {
		if w.Contains(hour) {
			return true
		}
	}
	return false
}

func (s Schedule) IsEmpty() bool { return len(s.Windows) == 0 }

// ParseSchedule interpreta horarios tipo "8-9, 12:00-13:00; 22-2" o "17".
//
// Formato:
//   - ventanas separadas por "," o ";"
//   - cada ventana es "INICIO-FIN" o solo "INICIO" (equivale a INICIO-INICIO+1)
//   - cada extremo es H, HH, H:MM o HH:MM con minutos "00"; FIN acepta 24
//
// Una sola ventana inválida invalida todo el horario.
func ParseSchedule(raw string) (Schedule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Schedule{}, nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	out := Schedule{Windows: make([]Window, 0, len(parts))}

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		w, err := parseWindow(p)
		if err != nil {
			return Schedule{}, err
		}
		out.Windows = append(out.Windows, w)
	}

	return out, nil
}

func parseWindow(s string) (Window, error) {
	startRaw, endRaw, hasEnd := strings.Cut(s, "-")

	start, err := parseHour(startRaw, false)
	if err != nil {
		return Window{}, err
	}

	if !hasEnd {
		return Window{Start: start, End: (start + 1) % 24}, nil
	}

	end, err := parseHour(endRaw, true)
	if err != nil {
		return Window{}, err
	}
	if end == start {
		return Window{}, fmt.Errorf("%w: empty window %q", ErrInvalidSchedule, s)
	}

	return Window{Start: start, End: end}, nil
}

func parseHour(s string, allow24 bool) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, hasMinutes := strings.Cut(s, ":")
	if hasMinutes && mm != "00" {
		return 0, fmt.Errorf("%w: only whole hours are supported (%q)", ErrInvalidSchedule, s)
	}
	if len(hh) == 0 || len(hh) > 2 || !allDigits(hh) {
		return 0, fmt.Errorf("%w: bad hour %q", ErrInvalidSchedule, s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("%w: bad hour %q", ErrInvalidSchedule, s)
	}

	max := 23
	if allow24 {
		max = 24
	}
	if h > max {
		return 0, fmt.Errorf("%w: hour out of range %q", ErrInvalidSchedule, s)
	}
	return h, nil
}

// allDigits descarta signos ("+7") que strconv.Atoi aceptaría.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
