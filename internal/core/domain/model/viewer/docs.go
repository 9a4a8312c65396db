// Package viewer models who is looking at a dashboard.
//
// The package includes:
//   - Session: The lifecycle-scoped viewer context (identity, role, bearer
//     token), created on sign-in and torn down on sign-out
//   - Role: The closed set of viewer roles (client, driver, admin)
//   - Driver: A roster entry for the admin dashboard's driver listing
//
// Authentication itself is an external collaborator; this package only
// carries the already-established identity into classification and
// transition-permission decisions.
package viewer
