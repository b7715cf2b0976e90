package arena

import "fmt"

// Category identifies one primitive column family of a record.
type Category int

const (
	// CategoryFloat64 holds float64 fields.
	CategoryFloat64 Category = iota
	// CategoryFloat32 holds float32 fields.
	CategoryFloat32
	// CategoryInt64 holds int64 fields.
	CategoryInt64
	// CategoryInt32 holds int32 fields.
	CategoryInt32
	// CategoryByte holds byte fields.
	CategoryByte
	// CategoryHandle holds Handle fields. New slots start out as None.
	CategoryHandle
)

func (c Category) String() string {
	switch c {
	case CategoryFloat64:
		return "float64"
	case CategoryFloat32:
		return "float32"
	case CategoryInt64:
		return "int64"
	case CategoryInt32:
		return "int32"
	case CategoryByte:
		return "byte"
	case CategoryHandle:
		return "handle"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Schema declares how many fields of each category a record uses.
type Schema struct {
	Float64s int
	Float32s int
	Int64s   int
	Int32s   int
	Bytes    int
	Handles  int
}

// Width returns the number of fields the schema declares for c.
func (s Schema) Width(c Category) int {
	switch c {
	case CategoryFloat64:
		return s.Float64s
	case CategoryFloat32:
		return s.Float32s
	case CategoryInt64:
		return s.Int64s
	case CategoryInt32:
		return s.Int32s
	case CategoryByte:
		return s.Bytes
	case CategoryHandle:
		return s.Handles
	default:
		return 0
	}
}

// RecordSize returns the number of bytes one record occupies across all columns.
func (s Schema) RecordSize() int {
	return s.Float64s*8 + s.Float32s*4 + s.Int64s*8 + s.Int32s*4 + s.Bytes + s.Handles*4
}

// Validate reports whether the schema describes a usable record.
func (s Schema) Validate() error {
	for c := CategoryFloat64; c <= CategoryHandle; c++ {
		if w := s.Width(c); w < 0 {
			return fmt.Errorf("%w: negative %s width %d", ErrInvalidSchema, c, w)
		}
	}
	if s.RecordSize() == 0 {
		return fmt.Errorf("%w: record has no fields", ErrInvalidSchema)
	}
	return nil
}
