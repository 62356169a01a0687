// Package formation provides the closed role vocabulary and the static catalog of squad formations.
package formation

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role identifier is not part of the vocabulary.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies a position on the formation board.
type Role uint8

// Role vocabulary. The zero value is not a valid role.
const (
	RoleManager Role = iota + 1
	RoleProductOwner
	RoleDevOps
	RoleFrontend1
	RoleFrontend2
	RoleFrontend3
	RoleFrontend4
	RoleBackend1
	RoleBackend2
	RoleBackend3
	RoleBackend4
	RoleUX
	RoleQA
	RoleArchitect
	RoleData1
	RoleData2
	RoleDataScientist
)

type roleInfo struct {
	id    string
	label string
}

var roles = [...]roleInfo{
	RoleManager:       {"manager", "Eng Manager"},
	RoleProductOwner:  {"po", "Product Owner"},
	RoleDevOps:        {"devops", "DevOps / SRE"},
	RoleFrontend1:     {"fe1", "Frontend Dev"},
	RoleFrontend2:     {"fe2", "Frontend Dev"},
	RoleFrontend3:     {"fe3", "Frontend Dev"},
	RoleFrontend4:     {"fe4", "Frontend Dev"},
	RoleBackend1:      {"be1", "Backend Dev"},
	RoleBackend2:      {"be2", "Backend Dev"},
	RoleBackend3:      {"be3", "Backend Dev"},
	RoleBackend4:      {"be4", "Backend Dev"},
	RoleUX:            {"ux", "UX Designer"},
	RoleQA:            {"qa", "QA Engineer"},
	RoleArchitect:     {"arch", "Solutions Arch"},
	RoleData1:         {"data1", "Data Engineer"},
	RoleData2:         {"data2", "Data Engineer"},
	RoleDataScientist: {"ds", "Data Scientist"},
}

var rolesByID = func() map[string]Role {
	m := make(map[string]Role, len(roles))
	for r := RoleManager; int(r) < len(roles); r++ {
		m[roles[r].id] = r
	}
	return m
}()

// ParseRole resolves a wire identifier such as "be3" to its Role.
func ParseRole(id string) (Role, error) {
	if r, ok := rolesByID[id]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, id)
}

// AllRoles returns every role in vocabulary order.
func AllRoles() []Role {
	out := make([]Role, 0, len(roles)-1)
	for r := RoleManager; int(r) < len(roles); r++ {
		out = append(out, r)
	}
	return out
}

// Valid reports whether r belongs to the vocabulary.
func (r Role) Valid() bool {
	return r > 0 && int(r) < len(roles)
}

// String returns the wire identifier of the role.
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roles[r].id
}

// Label returns the human-readable role name shown on the board.
func (r Role) Label() string {
	if !r.Valid() {
		return ""
	}
	return roles[r].label
}

// MarshalText encodes the role as its wire identifier.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(roles[r].id), nil
}

// UnmarshalText decodes a wire identifier.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
