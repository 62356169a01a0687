package formation

import (
	"errors"
	"fmt"
)

// ErrUnknownFormation is returned when a formation id is not in the catalog.
var ErrUnknownFormation = errors.New("unknown formation")

// DefaultID is the formation a new squad starts with.
const DefaultID = "cross-functional"

// Position is where a slot is drawn on the board, as CSS-style percentages.
type Position struct {
	Top  string `json:"top"`
	Left string `json:"left"`
}

// Slot is a single role position within a formation.
type Slot struct {
	Role     Role     `json:"id"`
	Label    string   `json:"label,omitempty"` // overrides Role.Label when set
	Position Position `json:"position"`
}

// DisplayLabel returns the slot's label override or the role label.
func (s Slot) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Role.Label()
}

// Formation is an immutable board layout.
type Formation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slots       []Slot `json:"slots"`
}

// Has reports whether the formation defines a slot for role.
func (f Formation) Has(role Role) bool {
	for _, s := range f.Slots {
		if s.Role == role {
			return true
		}
	}
	return false
}

// Roles returns the formation's roles in slot order.
func (f Formation) Roles() []Role {
	out := make([]Role, len(f.Slots))
	for i, s := range f.Slots {
		out[i] = s.Role
	}
	return out
}

func slot(r Role, top, left string) Slot {
	return Slot{Role: r, Position: Position{Top: top, Left: left}}
}

var catalog = []Formation{
	{
		ID:          "cross-functional",
		Name:        "Classic Agile (Cross-Functional)",
		Description: "Balanced team for end-to-end delivery.",
		Slots: []Slot{
			slot(RoleManager, "12%", "50%"),
			slot(RoleProductOwner, "35%", "50%"),
			slot(RoleFrontend1, "55%", "20%"),
			slot(RoleFrontend2, "55%", "80%"),
			slot(RoleDevOps, "55%", "50%"),
			slot(RoleBackend1, "80%", "35%"),
			slot(RoleBackend2, "80%", "65%"),
		},
	},
	{
		ID:          "microservices",
		Name:        "Microservices Squad",
		Description: "Backend heavy team optimized for API and service scale.",
		Slots: []Slot{
			slot(RoleManager, "12%", "50%"),
			slot(RoleProductOwner, "30%", "30%"),
			slot(RoleDevOps, "30%", "70%"),
			slot(RoleBackend1, "55%", "35%"),
			slot(RoleBackend2, "55%", "65%"),
			slot(RoleBackend3, "80%", "20%"),
			slot(RoleBackend4, "80%", "80%"),
		},
	},
	{
		ID:          "frontend-exp",
		Name:        "Frontend Experience",
		Description: "UX and Frontend focus for UI/UX intensive products.",
		Slots: []Slot{
			slot(RoleManager, "12%", "50%"),
			slot(RoleUX, "35%", "50%"),
			slot(RoleFrontend1, "55%", "20%"),
			slot(RoleFrontend2, "55%", "80%"),
			slot(RoleFrontend3, "75%", "30%"),
			slot(RoleFrontend4, "75%", "70%"),
			slot(RoleBackend1, "88%", "50%"),
		},
	},
	{
		ID:          "data-analytics",
		Name:        "Data & Analytics",
		Description: "Specialized team for data pipelines and AI models.",
		Slots: []Slot{
			slot(RoleManager, "12%", "50%"),
			slot(RoleProductOwner, "35%", "30%"),
			slot(RoleDataScientist, "35%", "70%"),
			slot(RoleData1, "60%", "40%"),
			slot(RoleData2, "60%", "60%"),
			slot(RoleBackend1, "80%", "20%"),
			slot(RoleDevOps, "80%", "80%"),
		},
	},
	{
		ID:          "integration",
		Name:        "Integration & Platform",
		Description: "Robust engineering with QA and Architecture.",
		Slots: []Slot{
			slot(RoleManager, "12%", "50%"),
			slot(RoleArchitect, "30%", "50%"),
			slot(RoleBackend1, "50%", "30%"),
			slot(RoleBackend2, "50%", "70%"),
			slot(RoleQA, "70%", "50%"),
			slot(RoleBackend3, "85%", "30%"),
			slot(RoleDevOps, "85%", "70%"),
		},
	},
}

// Catalog returns all formations in display order. The returned slice is a copy.
func Catalog() []Formation {
	out := make([]Formation, len(catalog))
	for i, f := range catalog {
		out[i] = f.clone()
	}
	return out
}

// Lookup finds a formation by id.
func Lookup(id string) (Formation, error) {
	for _, f := range catalog {
		if f.ID == id {
			return f.clone(), nil
		}
	}
	return Formation{}, fmt.Errorf("%w: %q", ErrUnknownFormation, id)
}

// Default returns the formation a new squad starts with.
func Default() Formation {
	f, err := Lookup(DefaultID)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Formation) clone() Formation {
	f.Slots = append([]Slot(nil), f.Slots...)
	return f
}
