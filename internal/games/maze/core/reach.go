package core

import "github.com/zyedidia/generic/mapset"

// Passable decides whether a search may enter a block.
type Passable func(Block) bool

// Clearable treats every non-wall block as passable: obstacles can be
// destroyed and a locked exit opens once all coins are taken.
func Clearable(b Block) bool {
	return b.Kind != Wall
}

// Reachable returns every coordinate reachable from `from` by orthogonal
// steps through blocks accepted by pass. The origin is always included.
func Reachable(lvl *Level, from Coord, pass Passable) mapset.Set[Coord] {
	seen := mapset.New[Coord]()
	if !lvl.InBounds(from) {
		return seen
	}
	seen.Put(from)
	queue := []Coord{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range roomSteps {
			n := cur.Step(d)
			if !lvl.InBounds(n) || seen.Has(n) || !pass(lvl.At(n)) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}

// Solvable reports whether every coin and the exit can be reached from the
// start once obstacles are cleared.
func Solvable(lvl *Level) bool {
	seen := Reachable(lvl, lvl.Start(), Clearable)
	for y := 0; y < lvl.height; y++ {
		for x := 0; x < lvl.width; x++ {
			c := Coord{X: x, Y: y}
			k := lvl.At(c).Kind
			if (k == Coin || k == Exit) && !seen.Has(c) {
				return false
			}
		}
	}
	return true
}
