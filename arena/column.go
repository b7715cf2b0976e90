package arena

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/weld/internal/mmap"
)

type element interface {
	~float64 | ~float32 | ~int64 | ~int32 | ~uint8
}

// column is the backing storage of one category: capacity*width elements.
type column[T element] struct {
	data    []T
	width   int
	fill    T
	mapping *mmap.Mapping
}

func newColumn[T element](width int, fill T) column[T] {
	return column[T]{width: width, fill: fill}
}

func (c *column[T]) init(capacity int, offHeap bool) {
	if c.width == 0 {
		return
	}
	c.data, c.mapping = makeSlice[T](capacity*c.width, offHeap)
	c.fillRange(0)
}

// resize reallocates the column for capacity records and copies the
// existing elements into the low range.
func (c *column[T]) resize(capacity int, offHeap bool) {
	if c.width == 0 {
		return
	}
	oldData, oldMapping := c.data, c.mapping

	c.data, c.mapping = makeSlice[T](capacity*c.width, offHeap)
	n := copy(c.data, oldData)
	c.fillRange(n)

	if oldMapping != nil {
		_ = oldMapping.Close()
	}
}

func (c *column[T]) reset() {
	if c.fill == 0 {
		clear(c.data)
		return
	}
	c.fillRange(0)
}

func (c *column[T]) fillRange(from int) {
	// Fresh heap slices and anonymous mappings are already zeroed.
	if c.fill == 0 {
		return
	}
	tail := c.data[from:]
	for i := range tail {
		tail[i] = c.fill
	}
}

func (c *column[T]) free() {
	if c.mapping != nil {
		_ = c.mapping.Close()
		c.mapping = nil
	}
	c.data = nil
}

func (c *column[T]) bytes() int {
	var zero T
	return len(c.data) * int(unsafe.Sizeof(zero))
}

func makeSlice[T element](n int, offHeap bool) ([]T, *mmap.Mapping) {
	if n == 0 {
		return nil, nil
	}
	if !offHeap {
		return make([]T, n), nil
	}

	var zero T
	size := n * int(unsafe.Sizeof(zero))

	m, err := mmap.MapAnon(size)
	if err != nil {
		// Growth has no error path: running out of memory is fatal, exactly
		// as it is for make.
		panic(fmt.Errorf("arena: off-heap allocation of %d bytes: %w", size, err))
	}
	// Chain walks jump around the columns.
	_ = m.Advise(mmap.AccessRandom)

	return unsafe.Slice((*T)(unsafe.Pointer(&m.Bytes()[0])), n), m //nolint:gosec // unsafe is required for off-heap columns
}
