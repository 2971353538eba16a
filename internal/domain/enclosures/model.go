package enclosures

import "time"

// Enclosure es un recinto. Los animales lo referencian (Animal.EnclosureID);
// el recinto no es dueño de ellos.
type Enclosure struct {
	ID   string
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}
