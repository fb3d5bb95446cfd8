package core

import "strings"

// Occupancy is a carved/uncarved matrix stored as a flat slice.
// index = y*W + x. True means carved (open), false means wall.
type Occupancy struct {
	W, H  int
	Cells []bool
}

// NewOccupancy creates an all-wall occupancy grid.
func NewOccupancy(w, h int) *Occupancy {
	return &Occupancy{W: w, H: h, Cells: make([]bool, w*h)}
}

func (o *Occupancy) idx(c Coord) int { return c.Y*o.W + c.X }

// InBounds checks whether c is inside the grid.
func (o *Occupancy) InBounds(c Coord) bool {
	return inBounds(c, o.W, o.H)
}

// Carved reports whether c is open. Out-of-bounds is treated as wall.
func (o *Occupancy) Carved(c Coord) bool {
	if !o.InBounds(c) {
		return false
	}
	return o.Cells[o.idx(c)]
}

// Carve opens c. Out-of-bounds coordinates are ignored.
func (o *Occupancy) Carve(c Coord) {
	if !o.InBounds(c) {
		return
	}
	o.Cells[o.idx(c)] = true
}

// CarvedCount returns the number of open cells.
func (o *Occupancy) CarvedCount() int {
	n := 0
	for _, open := range o.Cells {
		if open {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (o *Occupancy) Clone() *Occupancy {
	cells := make([]bool, len(o.Cells))
	copy(cells, o.Cells)
	return &Occupancy{W: o.W, H: o.H, Cells: cells}
}

// String renders the grid with '#' for walls and ' ' for carved cells.
func (o *Occupancy) String() string {
	var b strings.Builder
	b.Grow((o.W + 1) * o.H)
	for y := 0; y < o.H; y++ {
		for x := 0; x < o.W; x++ {
			if o.Cells[y*o.W+x] {
				b.WriteRune(FloorRune)
			} else {
				b.WriteRune(WallRune)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
