package entities

// SnapshotAttributes is the closed set of attributes a PropertySnapshot records.
var SnapshotAttributes = []string{
	"id",
	"class",
	"name",
	"type",
	"value",
	"href",
	"src",
	"alt",
	"aria-label",
}

// PropertySnapshot is the observed state of one matched element at one instant.
type PropertySnapshot struct {
	Text       string            `json:"text"`       // Visible text
	TagName    string            `json:"tag_name"`   // Lower-case tag name
	Attributes map[string]string `json:"attributes"` // Only attributes present on the element
	Location   Point             `json:"location"`   // Top-left corner on the page
	Size       Size              `json:"size"`
	Displayed  bool              `json:"displayed"`
	Enabled    bool              `json:"enabled"`
}

// Attribute returns the recorded attribute and whether it was present.
func (p PropertySnapshot) Attribute(name string) (string, bool) {
	v, ok := p.Attributes[name]
	return v, ok
}

// Point is a position on the page
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is an element's rendered size
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
