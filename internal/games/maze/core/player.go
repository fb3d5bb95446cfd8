package core

import "fmt"

// Player holds the agent's position, facing and collected coins.
// It never owns a level: every operation takes the *Level it acts on.
type Player struct {
	Name   string
	pos    Coord
	facing Dir
	coins  int
}

// NewPlayer places a player on the level's start, facing South.
func NewPlayer(name string, lvl *Level) *Player {
	return &Player{Name: name, pos: lvl.Start(), facing: South}
}

// Enter moves the player onto a fresh level's start and resets facing.
// Collected coins are kept.
func (p *Player) Enter(lvl *Level) {
	p.pos = lvl.Start()
	p.facing = South
}

// Position is the cell the player stands on.
func (p *Player) Position() Coord { return p.pos }

// Facing is the direction the player last turned to.
func (p *Player) Facing() Dir { return p.facing }

// Coins returns the total number of coins collected so far.
func (p *Player) Coins() int { return p.coins }

// FacingCoord returns the cell directly in front of the player.
func (p *Player) FacingCoord() Coord {
	return p.pos.Step(p.facing)
}

// Move turns the player toward d and steps one cell if the target is
// accessible. The facing changes even when the step is rejected.
func (p *Player) Move(lvl *Level, d Dir) error {
	if !d.Valid() {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, d.DX, d.DY)
	}
	p.facing = d

	target := p.pos.Step(d)
	b, err := lvl.Block(target)
	if err != nil {
		return err
	}
	if !b.Accessible() {
		return fmt.Errorf("%w: %s is %s", ErrBlocked, target, b.Kind)
	}

	if b.Kind == Coin {
		if err := lvl.CoinCollectedAt(target); err != nil {
			return err
		}
		p.coins++
	}

	prev := p.pos
	p.pos = target
	lvl.Changes().Mark(prev)
	return nil
}

// Step is Move for a raw (dx, dy) delta.
func (p *Player) Step(lvl *Level, dx, dy int) error {
	d, ok := DirFromDelta(dx, dy)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, dx, dy)
	}
	return p.Move(lvl, d)
}

// DestroyFacingBlock clears the obstacle in front of the player.
func (p *Player) DestroyFacingBlock(lvl *Level) error {
	target := p.FacingCoord()
	if !lvl.InBounds(target) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, target)
	}
	return lvl.ObstacleDestroyedAt(target)
}

// AtOpenExit reports whether the player stands on an unlocked exit.
func (p *Player) AtOpenExit(lvl *Level) bool {
	b := lvl.At(p.pos)
	return b.IsExit() && b.Accessible()
}
