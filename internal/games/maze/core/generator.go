package core

import (
	"fmt"
	"math/rand"
)

// MinSize is the smallest accepted generated width or height.
const MinSize = 9

// RNG is the randomness the generator consumes. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// NormalizeSize clamps n to at least MinSize and rounds even values down to odd.
func NormalizeSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// Maze is a freshly generated map that features can still be added to.
type Maze struct {
	width, height int
	occupancy     *Occupancy
	kinds         []Kind
	start, exit   Coord
	maxAdditional int
	rng           RNG
}

// Generate carves a maze with a seeded math/rand source.
func Generate(width, height int, seed int64) (*Maze, error) {
	return GenerateWithRNG(width, height, rand.New(rand.NewSource(seed)))
}

// GenerateWithRNG carves a width×height maze with the hunt-and-kill
// algorithm over the ((width-1)/2)×((height-1)/2) room grid.
// Both dimensions must be odd and at least MinSize.
func GenerateWithRNG(width, height int, rng RNG) (*Maze, error) {
	if width < MinSize || height < MinSize || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("%w: %dx%d (need odd sizes >= %d)", ErrInvalidSize, width, height, MinSize)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil rng", ErrInvalidSize)
	}

	occ := NewOccupancy(width, height)
	huntAndKill(occ, rng)
	start, exit := outerEntrances(width, height, rng)
	occ.Carve(start)
	occ.Carve(exit)

	m := &Maze{
		width:     width,
		height:    height,
		occupancy: occ,
		kinds:     make([]Kind, width*height),
		start:     start,
		exit:      exit,
		rng:       rng,
	}
	for i, open := range occ.Cells {
		if open {
			m.kinds[i] = Floor
		}
	}
	m.kinds[m.idx(start)] = Start
	m.kinds[m.idx(exit)] = Exit
	m.maxAdditional = len(m.freeCells())
	return m, nil
}

type room struct{ x, y int }

func (r room) cell() Coord { return Coord{X: 2*r.x + 1, Y: 2*r.y + 1} }

var roomSteps = [4]Dir{North, East, South, West}

// huntAndKill carves a spanning tree of the room grid into occ.
// Rooms sit at odd coordinates; the wall between two rooms is carved when
// they are joined.
func huntAndKill(occ *Occupancy, rng RNG) {
	rw, rh := (occ.W-1)/2, (occ.H-1)/2
	visited := make([]bool, rw*rh)
	remaining := rw * rh

	visit := func(r room) {
		visited[r.y*rw+r.x] = true
		occ.Carve(r.cell())
		remaining--
	}
	join := func(a, b room) {
		ca, cb := a.cell(), b.cell()
		occ.Carve(Coord{X: (ca.X + cb.X) / 2, Y: (ca.Y + cb.Y) / 2})
	}
	neighbours := func(r room, wantVisited bool) []room {
		out := make([]room, 0, 4)
		for _, d := range roomSteps {
			n := room{r.x + d.DX, r.y + d.DY}
			if n.x < 0 || n.x >= rw || n.y < 0 || n.y >= rh {
				continue
			}
			if visited[n.y*rw+n.x] == wantVisited {
				out = append(out, n)
			}
		}
		return out
	}

	cur := room{rng.Intn(rw), rng.Intn(rh)}
	visit(cur)

	for remaining > 0 {
		// Kill: random walk until boxed in.
		for {
			next := neighbours(cur, false)
			if len(next) == 0 {
				break
			}
			n := next[rng.Intn(len(next))]
			join(cur, n)
			visit(n)
			cur = n
		}
		if remaining == 0 {
			break
		}

		// Hunt: first unvisited room (row-major) that touches the tree.
		found := false
		for y := 0; y < rh && !found; y++ {
			for x := 0; x < rw; x++ {
				r := room{x, y}
				if visited[y*rw+x] {
					continue
				}
				linked := neighbours(r, true)
				if len(linked) == 0 {
					continue
				}
				join(r, linked[rng.Intn(len(linked))])
				visit(r)
				cur = r
				found = true
				break
			}
		}
		if !found {
			return
		}
	}
}

// outerEntrances picks start and exit on opposite sides of the boundary,
// each adjacent to a room cell.
func outerEntrances(w, h int, rng RNG) (Coord, Coord) {
	oddX := func() int { return 2*rng.Intn((w-1)/2) + 1 }
	oddY := func() int { return 2*rng.Intn((h-1)/2) + 1 }

	switch rng.Intn(4) {
	case 0:
		return Coord{X: oddX(), Y: 0}, Coord{X: oddX(), Y: h - 1}
	case 1:
		return Coord{X: oddX(), Y: h - 1}, Coord{X: oddX(), Y: 0}
	case 2:
		return Coord{X: 0, Y: oddY()}, Coord{X: w - 1, Y: oddY()}
	default:
		return Coord{X: w - 1, Y: oddY()}, Coord{X: 0, Y: oddY()}
	}
}

func (m *Maze) idx(c Coord) int { return c.Y*m.width + c.X }

// Width is the number of columns, always odd.
func (m *Maze) Width() int { return m.width }

// Height is the number of rows, always odd.
func (m *Maze) Height() int { return m.height }

// Start is the entrance opening on the border.
func (m *Maze) Start() Coord { return m.start }

// Exit is the exit opening on the opposite border.
func (m *Maze) Exit() Coord { return m.exit }

// Occupancy returns a copy of the carved grid.
func (m *Maze) Occupancy() *Occupancy { return m.occupancy.Clone() }

// MaxAdditionalObjects is the number of carved cells other than start and
// exit, fixed at generation time.
func (m *Maze) MaxAdditionalObjects() int { return m.maxAdditional }

// FreeCells returns how many cells can still receive a feature.
func (m *Maze) FreeCells() int { return len(m.freeCells()) }

// Kind returns the current content of c, or Wall outside the grid.
func (m *Maze) Kind(c Coord) Kind {
	if !inBounds(c, m.width, m.height) {
		return Wall
	}
	return m.kinds[m.idx(c)]
}

func (m *Maze) freeCells() []Coord {
	out := make([]Coord, 0, len(m.kinds))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.kinds[y*m.width+x] == Floor {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// AddObjects places count features of kind (Obstacle or Coin) on distinct
// free cells chosen uniformly without replacement. It fails with
// ErrInsufficientSpace and leaves the maze unchanged when count exceeds
// the free cells.
func (m *Maze) AddObjects(kind Kind, count int) error {
	if kind != Obstacle && kind != Coin {
		return fmt.Errorf("%w: cannot place %s", ErrInvalidFeature, kind)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidFeature, count)
	}
	free := m.freeCells()
	if count > len(free) {
		return fmt.Errorf("%w: %d %s requested, %d cells free", ErrInsufficientSpace, count, kind, len(free))
	}
	// Partial Fisher-Yates over the row-major free list.
	for i := 0; i < count; i++ {
		j := i + m.rng.Intn(len(free)-i)
		free[i], free[j] = free[j], free[i]
		m.kinds[m.idx(free[i])] = kind
	}
	return nil
}

// Level returns a playable snapshot of the maze with its features.
func (m *Maze) Level() *Level {
	kinds := make([]Kind, len(m.kinds))
	copy(kinds, m.kinds)
	lvl, err := NewLevel(m.width, m.height, kinds)
	if err != nil {
		// Generation always produces one start and one exit.
		panic(err)
	}
	return lvl
}

// Encode renders the maze in the level text format.
func (m *Maze) Encode() string {
	return Encode(m.Level())
}
