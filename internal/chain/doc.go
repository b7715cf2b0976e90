// Package chain implements the bucket table shared by every hash index in
// this module: separate chaining over arena records, linked by handles.
//
// A Table does not know what its entries contain. Each front end declares an
// arena schema with one int32 field for the cached hash and one handle field
// for the chain link and tells the table which fields those are. The table
// owns the bucket slice and the chain links; the front end owns the payload
// and the equality test.
//
// # Lookup
//
// Front ends walk a chain directly:
//
//	for e := t.Head(hash); e != arena.None; e = t.Next(e) {
//		if t.Hash(e) == hash && equal(e) {
//			return e
//		}
//	}
//
// The cached hash is compared first so that the (possibly expensive) equality
// test only runs on real candidates.
//
// # Growth
//
// Insert rehashes before linking a new entry once the entry count reaches
// the threshold (bucket count times load factor, at least one). Rehashing
// doubles the bucket slice and relinks every entry using its cached hash; no
// hash function is called and no entry moves in the arena.
package chain
