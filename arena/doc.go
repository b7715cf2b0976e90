// Package arena provides flat struct-of-arrays record storage addressed by
// integer handles.
//
// An Arena stores many records of one fixed shape without allocating anything
// per record. The shape is declared by a Schema: how many float64, float32,
// int64, int32, byte and handle fields each record has. The arena keeps one
// backing slice per category and a record's fields live at
// handle*width+field in the slice of their category.
//
// # Handles
//
// A Handle is an int32 index into the arena and the sentinel None (-1) plays
// the role of a nil pointer. Handle fields are initialized to None, every
// other field to zero. Chains, trees and cross references between records are
// expressed as handles, never as Go pointers, so the collector has nothing to
// trace.
//
// # Growth
//
// Add doubles the capacity when the arena is full. Resize copies the old
// contents into the low range of the new slices, so a handle keeps its field
// values across any number of resizes. Clear resets the length and field
// values but keeps the storage.
//
// # Off-heap mode
//
// WithOffHeap backs every column with an anonymous memory mapping instead of
// a Go slice. The mappings are released by Free; heap arenas ignore Free.
//
// # Concurrency
//
// Arena is not safe for concurrent mutation. Concurrent reads are safe while
// no goroutine calls Add, Resize, Clear or a setter.
package arena
