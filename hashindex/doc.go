// Package hashindex provides a key→value index and a key set over records
// that live in a caller-owned arena.
//
// Keys and values are arena handles. The index never looks inside a record
// itself; it asks a HashFunction to hash a key record and to compare two key
// records. This is how mesh code builds, for example, an edge table: edges
// are records in the caller's arena, a HashFunction hashes the two vertex
// handles of an edge, and the index maps each distinct edge to the first
// half-edge that produced it.
//
// Entries are kept in the index's own arena and chained through handles, so
// neither index allocates per entry. Nothing is ever removed; Clear resets an
// index for reuse without giving back its storage.
//
// # Insert-if-absent
//
// KeyValueIndex.Put never overwrites. When an equal key is already present
// Put returns the value stored for it and leaves the index untouched; it
// returns arena.None only when it inserted. KeySet.Add reports true only for
// the first Add of each distinct key.
//
// # Concurrency
//
// Neither index is safe for concurrent mutation. Concurrent lookups are safe
// while nothing mutates the index or the caller's arena.
package hashindex
