// Package core provides the maze game's rules: generation, the level text
// format, the block grid and the player state machine.
// This package is UI-agnostic and deterministic.
package core

// Dir is a unit vector the player faces and moves along.
// Y increases downward (screen coordinates), so North is (0, -1).
type Dir struct {
	DX int
	DY int
}

// The four cardinal directions.
var (
	North = Dir{DX: 0, DY: -1}
	South = Dir{DX: 0, DY: 1}
	East  = Dir{DX: 1, DY: 0}
	West  = Dir{DX: -1, DY: 0}
)

// DirFromDelta returns the direction for (dx, dy) if it is a unit cardinal vector.
func DirFromDelta(dx, dy int) (Dir, bool) {
	d := Dir{DX: dx, DY: dy}
	return d, d.Valid()
}

// Valid reports whether d is one of North, South, East or West.
func (d Dir) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	default:
		return false
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	return d.DX, d.DY
}

// String returns the compass name of the direction.
func (d Dir) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return "?"
	}
}

// Kind is the semantic content of a single cell.
type Kind uint8

const (
	Wall Kind = iota
	Floor
	Start
	Exit
	Obstacle
	Coin
)

// Characters used by the level text format.
const (
	WallRune     = '#'
	FloorRune    = ' '
	StartRune    = 'P'
	ExitRune     = 'E'
	ObstacleRune = 'I'
	CoinRune     = 'C'
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Start:
		return "start"
	case Exit:
		return "exit"
	case Obstacle:
		return "obstacle"
	case Coin:
		return "coin"
	default:
		return "unknown"
	}
}

// Rune returns the level-file character for the kind.
func (k Kind) Rune() rune {
	switch k {
	case Floor:
		return FloorRune
	case Start:
		return StartRune
	case Exit:
		return ExitRune
	case Obstacle:
		return ObstacleRune
	case Coin:
		return CoinRune
	default:
		return WallRune
	}
}

// KindFromRune parses a level-file character.
func KindFromRune(r rune) (Kind, bool) {
	switch r {
	case WallRune:
		return Wall, true
	case FloorRune:
		return Floor, true
	case StartRune:
		return Start, true
	case ExitRune:
		return Exit, true
	case ObstacleRune:
		return Obstacle, true
	case CoinRune:
		return Coin, true
	default:
		return Wall, false
	}
}

// Block is one cell of a level. The zero value is a wall.
//
// Accessibility is always derived from Kind and ExitOpen and never stored.
type Block struct {
	Kind     Kind
	ExitOpen bool // Meaningful only when Kind == Exit
}

// Accessible reports whether the player may occupy the block.
func (b Block) Accessible() bool {
	switch b.Kind {
	case Wall, Obstacle:
		return false
	case Exit:
		return b.ExitOpen
	default:
		return true
	}
}

// Destructible reports whether the block can be turned into floor.
func (b Block) Destructible() bool {
	return b.Kind == Obstacle
}

// IsExit reports whether the block is the level exit.
func (b Block) IsExit() bool {
	return b.Kind == Exit
}
