package hashindex

import "github.com/hupe1980/weld/arena"

// HashFunction hashes and compares key records of a caller-owned arena.
//
// Equal must be consistent with Hash: records that compare equal must hash
// to the same value. The index only calls Equal for entries whose cached
// hash matches.
type HashFunction interface {
	// Hash returns the hash of record h in src.
	Hash(src *arena.Arena, h arena.Handle) int32
	// Equal reports whether the records existing and candidate are equal keys.
	Equal(src *arena.Arena, existing, candidate arena.Handle) bool
}

// IdentityHash treats the handle itself as the key. The source arena is
// never read and may be nil.
type IdentityHash struct{}

// Hash implements HashFunction.
func (IdentityHash) Hash(_ *arena.Arena, h arena.Handle) int32 { return int32(h) }

// Equal implements HashFunction.
func (IdentityHash) Equal(_ *arena.Arena, a, b arena.Handle) bool { return a == b }

// RefFields hashes and compares records by the listed handle fields,
// e.g. RefFields{0, 1} for an edge keyed by its two vertex handles.
type RefFields []int

// Hash implements HashFunction.
func (f RefFields) Hash(src *arena.Arena, h arena.Handle) int32 {
	var hash int32 = 17
	for _, field := range f {
		hash = hash*31 + int32(src.Ref(h, field))
	}
	return hash
}

// Equal implements HashFunction.
func (f RefFields) Equal(src *arena.Arena, a, b arena.Handle) bool {
	for _, field := range f {
		if src.Ref(a, field) != src.Ref(b, field) {
			return false
		}
	}
	return true
}

// Funcs adapts a pair of functions to HashFunction.
type Funcs struct {
	HashFn  func(src *arena.Arena, h arena.Handle) int32
	EqualFn func(src *arena.Arena, existing, candidate arena.Handle) bool
}

// Hash implements HashFunction.
func (f Funcs) Hash(src *arena.Arena, h arena.Handle) int32 { return f.HashFn(src, h) }

// Equal implements HashFunction.
func (f Funcs) Equal(src *arena.Arena, existing, candidate arena.Handle) bool {
	return f.EqualFn(src, existing, candidate)
}
