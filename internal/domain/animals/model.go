package animals

import (
	"strings"
	"time"

	"zoo-admin/internal/domain/status"
)

// Size es la clase de tamaño del animal.
// @Enum microscopic, very_small, small, medium, large, very_large
type Size string

const (
	SizeMicroscopic Size = "microscopic"
	SizeVerySmall   Size = "very_small"
	SizeSmall       Size = "small"
	SizeMedium      Size = "medium"
	SizeLarge       Size = "large"
	SizeVeryLarge   Size = "very_large"
)

var Sizes = []Size{SizeMicroscopic, SizeVerySmall, SizeSmall, SizeMedium, SizeLarge, SizeVeryLarge}

// DietaryClass es la clase de dieta.
// @Enum carnivore, herbivore, omnivore, insectivore, piscivore
type DietaryClass string

const (
	DietCarnivore   DietaryClass = "carnivore"
	DietHerbivore   DietaryClass = "herbivore"
	DietOmnivore    DietaryClass = "omnivore"
	DietInsectivore DietaryClass = "insectivore"
	DietPiscivore   DietaryClass = "piscivore"
)

var DietaryClasses = []DietaryClass{DietCarnivore, DietHerbivore, DietOmnivore, DietInsectivore, DietPiscivore}

// SecurityLevel es el nivel de seguridad que requiere el recinto.
// @Enum low, medium, high
type SecurityLevel string

const (
	SecurityLow    SecurityLevel = "low"
	SecurityMedium SecurityLevel = "medium"
	SecurityHigh   SecurityLevel = "high"
)

var SecurityLevels = []SecurityLevel{SecurityLow, SecurityMedium, SecurityHigh}

const (
	MinAge = 0
	MaxAge = 150
)

// Animal es la ficha administrativa de un animal del zoo.
// PreyID, EnclosureID y CategoryID son referencias no-dueñas: borrar el destino
// solo limpia la referencia.
type Animal struct {
	ID string

	Name    string
	Species string
	Age     int

	Size            Size
	DietaryClass    DietaryClass
	ActivityPattern status.ActivityPattern
	FeedingSchedule string

	PreyID      *string
	EnclosureID *string
	CategoryID  *string

	SpaceRequirement    float64
	SecurityRequirement SecurityLevel

	// Version se incrementa en cada Update (control de concurrencia optimista).
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter filtra el listado. Campos vacíos = sin filtro.
type ListFilter struct {
	EnclosureID     string
	CategoryID      string
	ActivityPattern status.ActivityPattern
	Query           string
}

// Matches aplica el filtro en memoria (lo usan los adapters que no tienen SQL).
func (f ListFilter) Matches(a Animal) bool {
	if f.EnclosureID != "" && (a.EnclosureID == nil || *a.EnclosureID != f.EnclosureID) {
		return false
	}
	if f.CategoryID != "" && (a.CategoryID == nil || *a.CategoryID != f.CategoryID) {
		return false
	}
	if f.ActivityPattern != "" && a.ActivityPattern != f.ActivityPattern {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(a.Name), q) && !strings.Contains(strings.ToLower(a.Species), q) {
			return false
		}
	}
	return true
}

// StatusView es una fila de la vista de estado. No se persiste.
type StatusView struct {
	ID              string
	Name            string
	Species         string
	ActivityPattern status.ActivityPattern
	Hour            int
	IsActive        bool
	IsEating        bool
}

// Ref es un par id/nombre para listas desplegables.
type Ref struct {
	ID   string
	Name string
}

// FormOptions agrupa los valores de los desplegables del formulario de animal.
type FormOptions struct {
	Sizes            []Size
	DietaryClasses   []DietaryClass
	ActivityPatterns []status.ActivityPattern
	SecurityLevels   []SecurityLevel
	Enclosures       []Ref
	Categories       []Ref
	Prey             []Ref
}
