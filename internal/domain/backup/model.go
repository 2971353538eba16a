package backup

import "time"

// FormatVersion cambia solo si cambia la forma del JSON.
const FormatVersion = 1

// Snapshot es la foto completa del zoo que se exporta.
type Snapshot struct {
	FormatVersion int         `json:"format_version"`
	TakenAt       time.Time   `json:"taken_at"`
	Enclosures    []NamedItem `json:"enclosures"`
	Categories    []NamedItem `json:"categories"`
	Animals       []Animal    `json:"animals"`
}

// NamedItem sirve para recintos y categorías (misma forma).
type NamedItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Animal struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Species             string    `json:"species"`
	Age                 int       `json:"age"`
	Size                string    `json:"size"`
	DietaryClass        string    `json:"dietary_class"`
	ActivityPattern     string    `json:"activity_pattern"`
	FeedingSchedule     string    `json:"feeding_schedule"`
	PreyID              *string   `json:"prey_id"`
	EnclosureID         *string   `json:"enclosure_id"`
	CategoryID          *string   `json:"category_id"`
	SpaceRequirement    float64   `json:"space_requirement"`
	SecurityRequirement string    `json:"security_requirement"`
	Version             int       `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Result describe un backup ya escrito.
type Result struct {
	Key        string
	Bytes      int
	Enclosures int
	Categories int
	Animals    int
}
