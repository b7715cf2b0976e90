// Package weld provides the logging and metrics plumbing shared by the weld
// indexes.
//
// The indexes themselves live in subpackages:
//
//   - pointindex welds nearly coincident 3D points into dense vertex ids.
//   - hashindex maps and collects records of a caller-owned arena by a
//     caller-supplied hash and equality.
//   - arena is the flat struct-of-arrays storage both are built on.
//
// # Quick Start
//
//	idx, _ := pointindex.New(1e-6)
//	a := idx.Add(0, 0, 0)
//	b := idx.Add(1e-7, 0, 0) // same vertex: b == a
//	vertices := idx.Points()
//
// # Observability
//
// Every index accepts a *Logger and a MetricsCollector through its options.
// Both default to no-ops.
//
//	logger := weld.NewTextLogger(slog.LevelDebug)
//	metrics := &weld.BasicMetricsCollector{}
//	idx, _ := pointindex.New(1e-6,
//		pointindex.WithLogger(logger),
//		pointindex.WithMetricsCollector(metrics),
//	)
//	...
//	fmt.Println(metrics.GetStats().RehashCount)
//
// Rehashes and clears are logged at debug level.
package weld
