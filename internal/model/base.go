package model

import (
	"fmt"
	"strings"
)

// Role identifies which side of a project a viewer or message sender is on.
type Role string

const (
	RoleClient   Role = "client"
	RoleAdmin    Role = "admin"
	RoleProvider Role = "provider"
)

// ParseRole parses a role tag. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleClient, RoleAdmin, RoleProvider:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleProvider:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Viewer is the caller a dashboard view is rendered for. Roles are taken
// as given and never verified.
type Viewer struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Key identifies the viewer session. The same user id under a different
// role is a different session.
func (v Viewer) Key() string {
	return v.UserID + "|" + string(v.Role)
}

// Cents is a monetary amount in hundredths of the currency unit.
type Cents int64

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float returns the amount in currency units, for spreadsheet cells.
func (c Cents) Float() float64 {
	return float64(c) / 100
}
