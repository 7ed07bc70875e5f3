package rules

import (
	"fmt"
	"strings"
)

// Role identifies one of the five influence cards.
type Role int

const (
	RoleDuke Role = iota + 1
	RoleAssassin
	RoleCaptain
	RoleAmbassador
	RoleContessa
)

var roleNames = map[Role]string{
	RoleDuke:       "DUKE",
	RoleAssassin:   "ASSASSIN",
	RoleCaptain:    "CAPTAIN",
	RoleAmbassador: "AMBASSADOR",
	RoleContessa:   "CONTESSA",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// AllRoles returns the five roles in deck order.
func AllRoles() []Role {
	return []Role{RoleDuke, RoleAssassin, RoleCaptain, RoleAmbassador, RoleContessa}
}

// ParseRole maps a card name (case-insensitive) to its Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown card %q", s)
}
