// Package order provides the client-side mirror of backend order records and
// the rules governing their lifecycle.
//
// The package includes:
//   - Order: A read-only mirror entity restored from snapshot data, with all
//     invariants validated at construction
//   - Status: The closed vocabulary of lifecycle states, with predicates for
//     the pipeline phases working sets are built from
//   - The transition policy: which status transitions an actor (pickup
//     driver, delivery driver, admin) may request
//
// Key business rules:
//   - Orders mutate only server-side; a later snapshot replaces the mirror
//   - Unrecognized status values never enter the model — the record is
//     quarantined at the adapter boundary
//   - The DELIVERY_ATTEMPTED branch (retry vs. terminal failure) is resolved
//     exclusively by the server; the client submits the attempt and displays
//     the authoritative outcome
//   - DELIVERED, FAILED, and CANCELLED are terminal
package order
