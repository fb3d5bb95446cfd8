package core

import "fmt"

// Level is the mutable state of one playable map.
//
// Invariants: exactly one Start and one Exit; CoinsRemaining equals the
// number of Coin blocks; every Exit block is open iff CoinsRemaining == 0.
type Level struct {
	width, height  int
	blocks         []Block
	start, exit    Coord
	totalCoins     int
	coinsRemaining int
	changes        *ChangeTracker
}

// NewLevel builds a level from a row-major slice of kinds.
// The exit starts open iff there are no coins.
func NewLevel(width, height int, kinds []Kind) (*Level, error) {
	if width <= 0 || height <= 0 {
		return nil, malformed(0, "non-positive dimensions %dx%d", width, height)
	}
	if len(kinds) != width*height {
		return nil, malformed(0, "expected %d cells, got %d", width*height, len(kinds))
	}

	lvl := &Level{
		width:   width,
		height:  height,
		blocks:  make([]Block, len(kinds)),
		changes: NewChangeTracker(),
	}
	starts, exits := 0, 0
	for i, k := range kinds {
		c := Coord{X: i % width, Y: i / width}
		switch k {
		case Start:
			starts++
			lvl.start = c
		case Exit:
			exits++
			lvl.exit = c
		case Coin:
			lvl.totalCoins++
		case Wall, Floor, Obstacle:
		default:
			return nil, malformed(0, "unknown block kind %d at %s", k, c)
		}
		lvl.blocks[i] = Block{Kind: k}
	}
	if starts != 1 {
		return nil, malformed(0, "expected exactly one start, found %d", starts)
	}
	if exits != 1 {
		return nil, malformed(0, "expected exactly one exit, found %d", exits)
	}

	lvl.coinsRemaining = lvl.totalCoins
	if lvl.coinsRemaining == 0 {
		lvl.blocks[lvl.idx(lvl.exit)].ExitOpen = true
	}
	return lvl, nil
}

func (l *Level) idx(c Coord) int { return c.Y*l.width + c.X }

// Width is the number of columns.
func (l *Level) Width() int { return l.width }

// Height is the number of rows.
func (l *Level) Height() int { return l.height }

// Start is the player's spawn coordinate.
func (l *Level) Start() Coord { return l.start }

// Exit is the coordinate of the exit block.
func (l *Level) Exit() Coord { return l.exit }

// TotalCoins is the number of coins the level was loaded with.
func (l *Level) TotalCoins() int { return l.totalCoins }

// CoinsRemaining is the number of coins still on the map.
func (l *Level) CoinsRemaining() int { return l.coinsRemaining }

// ExitOpen reports whether the exit is unlocked.
func (l *Level) ExitOpen() bool {
	return l.blocks[l.idx(l.exit)].ExitOpen
}

// Changes returns the tracker the level records mutations into.
func (l *Level) Changes() *ChangeTracker { return l.changes }

// InBounds checks whether c is inside the level.
func (l *Level) InBounds(c Coord) bool {
	return inBounds(c, l.width, l.height)
}

// At returns the block at c. Out-of-bounds reads return a wall.
func (l *Level) At(c Coord) Block {
	if !l.InBounds(c) {
		return Block{Kind: Wall}
	}
	return l.blocks[l.idx(c)]
}

// Block returns the block at c or ErrOutOfBounds.
func (l *Level) Block(c Coord) (Block, error) {
	if !l.InBounds(c) {
		return Block{}, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return l.blocks[l.idx(c)], nil
}

// CoinCollectedAt turns the coin at c into floor. When the last coin is
// taken every exit block is opened and recorded as changed.
func (l *Level) CoinCollectedAt(c Coord) error {
	if !l.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	i := l.idx(c)
	if l.blocks[i].Kind != Coin {
		return fmt.Errorf("%w: %s", ErrNoCoin, c)
	}
	l.blocks[i] = Block{Kind: Floor}
	l.coinsRemaining--
	l.changes.Mark(c)

	if l.coinsRemaining == 0 {
		l.openExits()
	}
	return nil
}

func (l *Level) openExits() {
	for i := range l.blocks {
		if l.blocks[i].Kind == Exit && !l.blocks[i].ExitOpen {
			l.blocks[i].ExitOpen = true
			l.changes.Mark(Coord{X: i % l.width, Y: i / l.width})
		}
	}
}

// ObstacleDestroyedAt turns the obstacle at c into floor.
func (l *Level) ObstacleDestroyedAt(c Coord) error {
	if !l.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	i := l.idx(c)
	if !l.blocks[i].Destructible() {
		return fmt.Errorf("%w: %s is %s", ErrNotDestructible, c, l.blocks[i].Kind)
	}
	l.blocks[i] = Block{Kind: Floor}
	l.changes.Mark(c)
	return nil
}

// Count returns how many blocks of kind k the level currently holds.
func (l *Level) Count(k Kind) int {
	n := 0
	for _, b := range l.blocks {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// Clone returns an independent copy with an empty change tracker.
func (l *Level) Clone() *Level {
	blocks := make([]Block, len(l.blocks))
	copy(blocks, l.blocks)
	cp := *l
	cp.blocks = blocks
	cp.changes = NewChangeTracker()
	return &cp
}
