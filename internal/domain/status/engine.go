package status

import "strings"

// ActivityPattern describe el ciclo natural de actividad de un animal.
// @Enum diurnal, nocturnal, cathemeral
type ActivityPattern string

const (
	Diurnal    ActivityPattern = "diurnal"
	Nocturnal  ActivityPattern = "nocturnal"
	Cathemeral ActivityPattern = "cathemeral"
)

// ActivityPatterns lista los valores válidos en orden de declaración.
var ActivityPatterns = []ActivityPattern{Diurnal, Nocturnal, Cathemeral}

// ParseActivityPattern normaliza el texto recibido (case-insensitive).
// El string vacío devuelve Diurnal, igual que el valor por defecto del modelo.
func ParseActivityPattern(s string) (ActivityPattern, bool) {
	v := ActivityPattern(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return Diurnal, true
	}
	for _, p := range ActivityPatterns {
		if p == v {
			return p, true
		}
	}
	return "", false
}

const (
	dayStartHour = 6
	dayEndHour   = 18
)

// Result es lo que consume la vista de estado.
type Result struct {
	IsActive bool
	IsEating bool
}

// Evaluate calcula el estado de un animal para una hora del día (0-23).
// La hora la valida quien llama; aquí no se lee el reloj.
func Evaluate(pattern ActivityPattern, feedingSchedule string, hour int) Result {
	return Result{
		IsActive: IsActive(pattern, hour),
		IsEating: IsEating(feedingSchedule, hour),
	}
}

// IsActive solo contempla animales diurnos entre las 7 y las 17 inclusive.
// Nocturnos y catemerales nunca se reportan activos.
func IsActive(pattern ActivityPattern, hour int) bool {
	return pattern == Diurnal && hour > dayStartHour && hour < dayEndHour
}

// IsEating devuelve false si el horario está vacío o no se puede parsear.
func IsEating(feedingSchedule string, hour int) bool {
	s, err := ParseSchedule(feedingSchedule)
	if err != nil {
		return false
	}
	return s.Contains(hour)
}
