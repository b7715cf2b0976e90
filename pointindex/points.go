package pointindex

type float interface {
	~float32 | ~float64
}

// Points returns the stored coordinates interleaved by id: x, y, z of id 0,
// then id 1, and so on.
func (p *PointIndex) Points() []float64 {
	return p.PointsInto(nil)
}

// PointsInto writes the stored coordinates interleaved by id into buf and
// returns it. A buf shorter than 3*Len() is replaced by a new slice.
func (p *PointIndex) PointsInto(buf []float64) []float64 {
	buf = ensure(buf, 3*p.table.Len())
	for e := range p.table.All() {
		off := 3 * int(p.entries.Int32(e, fieldID))
		buf[off] = p.entries.Float64(e, 0)
		buf[off+1] = p.entries.Float64(e, 1)
		buf[off+2] = p.entries.Float64(e, 2)
	}
	return buf
}

// PointsXYZ writes each axis into its own channel, indexed by id. Channels
// shorter than Len() are replaced by new slices.
func (p *PointIndex) PointsXYZ(x, y, z []float64) ([]float64, []float64, []float64) {
	n := p.table.Len()
	x, y, z = ensure(x, n), ensure(y, n), ensure(z, n)
	scatter(p, x, y, z)
	return x, y, z
}

// PointsXYZ32 is PointsXYZ with float32 channels.
func (p *PointIndex) PointsXYZ32(x, y, z []float32) ([]float32, []float32, []float32) {
	n := p.table.Len()
	x, y, z = ensure(x, n), ensure(y, n), ensure(z, n)
	scatter(p, x, y, z)
	return x, y, z
}

// PointsXY writes the x and y axes into separate channels, indexed by id.
func (p *PointIndex) PointsXY(x, y []float64) ([]float64, []float64) {
	n := p.table.Len()
	x, y = ensure(x, n), ensure(y, n)
	scatter(p, x, y)
	return x, y
}

// PointsXY32 is PointsXY with float32 channels.
func (p *PointIndex) PointsXY32(x, y []float32) ([]float32, []float32) {
	n := p.table.Len()
	x, y = ensure(x, n), ensure(y, n)
	scatter(p, x, y)
	return x, y
}

// scatter writes axis i of every point into channels[i] at the point's id.
func scatter[T float](p *PointIndex, channels ...[]T) {
	for e := range p.table.All() {
		id := int(p.entries.Int32(e, fieldID))
		for axis, ch := range channels {
			ch[id] = T(p.entries.Float64(e, axis))
		}
	}
}

func ensure[T float](buf []T, n int) []T {
	if len(buf) < n {
		return make([]T, n)
	}
	return buf
}
