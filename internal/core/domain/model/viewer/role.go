package viewer

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Role is the capacity in which a viewer looks at the dashboard. It decides
// which working sets the classifier computes and which transitions the
// viewer may request.
type Role string

const (
	// RoleClient sees only its own orders, partitioned by status counters.
	RoleClient Role = "client"

	// RoleDriver sees its pickup and delivery assignments plus the
	// pre-assignment awaiting set.
	RoleDriver Role = "driver"

	// RoleAdmin sees every order, aggregate counts, and the driver roster.
	RoleAdmin Role = "admin"
)

// ParseRole converts an externally supplied role string into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks that the Role is one of client, driver, admin.
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleDriver, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a recognized viewer role", string(r)))
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
