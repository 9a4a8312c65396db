// Package kernel provides core domain primitives shared across the order
// projection model.
//
// The package includes:
//   - UUID: A value object for opaque order identifiers with validation,
//     comparison, and a derived human-friendly display form
//
// These primitives enforce domain invariants so that identifiers flowing in
// from the backend are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
