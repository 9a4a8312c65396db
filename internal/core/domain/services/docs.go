// Package services contains the pure domain services of the projection
// engine.
//
// StatusClassifier partitions an order snapshot into role-scoped working
// sets; ViewProjector assembles the full DashboardView read model (sets,
// aggregate counters, driver loads) for one refresh cycle. Both are
// deterministic and free of I/O: all inputs, including the generation
// timestamp, are passed in by the refresh pipeline.
package services
