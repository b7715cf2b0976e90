// Package pointindex welds nearly coincident 3D points into dense ids.
//
// A PointIndex maps a coordinate triple to a stable integer id. Two points
// are the same vertex when no coordinate differs by more than the tolerance
// epsilon (an L∞ ball, boundary inclusive). The first point of a vertex
// fixes its stored coordinates; ids are handed out 0, 1, 2, ... in the order
// new vertices appear, so they can index the caller's own output buffers.
//
//	idx, _ := pointindex.New(1e-6)
//	for i := 0; i < len(soup); i += 3 {
//		faces = append(faces, idx.Add(soup[i], soup[i+1], soup[i+2]))
//	}
//	vertices := idx.Points() // x, y, z of id 0, then id 1, ...
//
// # Hashing
//
// Coordinates are quantized to cells of size epsilon and the three cell
// indices are packed into one int32. Points within epsilon of each other can
// fall into adjacent cells, so lookups probe all 27 cells around a point by
// default and return the smallest matching id. WithNeighborProbe(false)
// restores the single-cell lookup: faster, but a pair straddling a cell
// boundary is then welded only if both land in the same cell.
//
// # Concurrency
//
// PointIndex is not safe for concurrent mutation. Get, the Points family and
// GetBatch are read-only and may run concurrently while nothing calls Add or
// Clear.
package pointindex
