package petstore

// Pet is one pet card as served by the lookup API.
type Pet struct {
	Name     string
	Number   string
	ImageURL string
	Moves    []Move
}

// Move is a single ability of a pet.
type Move struct {
	Name  string
	Type  string
	Power int
}
