package viewer

// Driver is a roster entry for a registered driver, as listed by the
// backend for the admin dashboard. Name may be empty when the driver has no
// display name registered.
type Driver struct {
	Username string
	Name     string
}
