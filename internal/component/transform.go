package component

// Transform is the world placement of an entity. Pure data.
type Transform struct {
	X     float32
	Y     float32
	Z     float32
	Scale float32
}

// Sprite references the texture an entity is drawn with. Atlas is the sheet
// or image path from the owning catalog; Index selects a cell in sheets.
type Sprite struct {
	Atlas string
	Index int
}

// Collider is an axis-aligned box handed to the physics collaborator.
type Collider struct {
	HalfWidth  float32
	HalfHeight float32
	Fixed      bool
}
