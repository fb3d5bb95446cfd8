package maze

import (
	"strconv"

	platformcore "github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

const (
	hudHeight    = 3 // Status line, controls, separator
	footerHeight = 1 // Message line
	minScreenW   = 24
	minScreenH   = hudHeight + footerHeight + 5
)

// tile is the cached look of one level cell.
type tile struct {
	wide   [2]rune // Used when cells are two columns wide
	narrow rune
	color  platformcore.Color
}

// tileView caches the rendered tiles of a level. After the initial build
// only coordinates reported by the level's change tracker are recomputed.
type tileView struct {
	level      *core.Level
	tiles      []tile
	fullBuilds int
	updates    int
}

func (v *tileView) reset(lvl *core.Level) {
	v.level = lvl
	v.tiles = make([]tile, lvl.Width()*lvl.Height())
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			v.tiles[y*lvl.Width()+x] = tileFor(lvl.At(core.C(x, y)))
		}
	}
	// Everything is fresh; pending changes are already reflected.
	lvl.Changes().Drain()
	v.fullBuilds++
}

// sync applies pending level changes to the cache.
func (v *tileView) sync() {
	if v.level == nil {
		return
	}
	for _, c := range v.level.Changes().Drain() {
		v.tiles[c.Y*v.level.Width()+c.X] = tileFor(v.level.At(c))
		v.updates++
	}
}

func (v *tileView) at(x, y int) tile {
	return v.tiles[y*v.level.Width()+x]
}

func tileFor(b core.Block) tile {
	switch b.Kind {
	case core.Wall:
		return tile{wide: [2]rune{'█', '█'}, narrow: '█', color: platformcore.ColorBlue}
	case core.Start:
		return tile{wide: [2]rune{'·', '·'}, narrow: '·', color: platformcore.ColorGray}
	case core.Exit:
		if b.ExitOpen {
			return tile{wide: [2]rune{'░', '░'}, narrow: '░', color: platformcore.ColorBrightGreen}
		}
		return tile{wide: [2]rune{'▒', '▒'}, narrow: '▒', color: platformcore.ColorRed}
	case core.Obstacle:
		return tile{wide: [2]rune{'▓', '▓'}, narrow: '▓', color: platformcore.ColorOrange}
	case core.Coin:
		return tile{wide: [2]rune{'(', ')'}, narrow: 'o', color: platformcore.ColorBrightYellow}
	default:
		return tile{wide: [2]rune{' ', ' '}, narrow: ' ', color: platformcore.ColorDefault}
	}
}

func playerTile(d core.Dir) tile {
	var r rune
	switch d {
	case core.North:
		r = '^'
	case core.West:
		r = '<'
	case core.East:
		r = '>'
	default:
		r = 'v'
	}
	return tile{wide: [2]rune{r, r}, narrow: r, color: platformcore.ColorBrightCyan}
}

// layout describes where the level lands on screen.
type layout struct {
	cellW      int // 2 or 1 columns per cell
	originX    int // Screen column of the first visible cell
	originY    int
	camX, camY int // First visible level cell
	cols, rows int // Visible cells
}

func (g *Game) computeLayout(w, h int) layout {
	lw, lh := g.level.Width(), g.level.Height()
	availH := h - hudHeight - footerHeight

	l := layout{cellW: 2}
	if lw*2 > w {
		l.cellW = 1
	}
	l.cols = min(lw, w/l.cellW)
	l.rows = min(lh, availH)

	// Center when the level fits, otherwise follow the player.
	pos := g.player.Position()
	l.camX = platformcore.Clamp(pos.X-l.cols/2, 0, lw-l.cols)
	l.camY = platformcore.Clamp(pos.Y-l.rows/2, 0, lh-l.rows)
	l.originX = (w - l.cols*l.cellW) / 2
	l.originY = hudHeight + (availH-l.rows)/2
	return l
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.level == nil {
		msg := "Check the levels directory"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.renderOverlay(dst, "No level available", msg)
		return
	}

	g.view.sync()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderLevel(dst)

	if g.message != "" {
		dst.DrawTextWithColor(1, dst.Height()-1, g.message, platformcore.ColorYellow)
	}

	switch {
	case g.gameOver && g.won:
		g.renderOverlay(dst, "Level complete!", "Score: "+strconv.Itoa(g.score)+"  R: restart  B: menu")
	case g.gameOver && g.loadErr != nil:
		g.renderOverlay(dst, "Run over", g.loadErr.Error())
	case g.gameOver:
		g.renderOverlay(dst, "Time's up!", "Score: "+strconv.Itoa(g.score)+"  R: restart  B: menu")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderLevel(dst *platformcore.Screen) {
	l := g.computeLayout(dst.Width(), dst.Height())
	pos := g.player.Position()

	for vy := 0; vy < l.rows; vy++ {
		for vx := 0; vx < l.cols; vx++ {
			x, y := l.camX+vx, l.camY+vy
			t := g.view.at(x, y)
			if pos.X == x && pos.Y == y {
				t = playerTile(g.player.Facing())
			}
			sx := l.originX + vx*l.cellW
			sy := l.originY + vy
			if l.cellW == 2 {
				dst.SetWithColor(sx, sy, t.wide[0], t.color)
				dst.SetWithColor(sx+1, sy, t.wide[1], t.color)
			} else {
				dst.SetWithColor(sx, sy, t.narrow, t.color)
			}
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " " + g.Title()
	if g.level != nil {
		exit := "LOCKED"
		exitColor := platformcore.ColorRed
		if g.level.ExitOpen() {
			exit = "OPEN"
			exitColor = platformcore.ColorBrightGreen
		}
		hud += " | " + g.levelName +
			" | Coins: " + strconv.Itoa(g.player.Coins()) +
			" | Left: " + strconv.Itoa(g.level.CoinsRemaining()) +
			" | Time: " + g.timer.String() +
			" | Exit: "
		dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
		dst.DrawTextWithColor(len([]rune(hud)), 0, exit, exitColor)
	} else {
		dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	}

	dst.DrawTextWithColor(0, 1, " Arrows/WASD: Move | Space/X: Clear | P: Pause | B: Menu", platformcore.ColorGray)
	dst.DrawHLine(0, 2, dst.Width(), '─', platformcore.ColorGray)
}

// renderOverlay draws a centered overlay box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := min(maxLen+4, w)
	boxH := 5
	box := platformcore.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}

// DrawPreview draws a whole level centered in dst, without player or HUD.
// Cells are two columns wide when the level fits, otherwise one; rows that
// do not fit are clipped.
func DrawPreview(dst *platformcore.Screen, lvl *core.Level) {
	cellW := 2
	if lvl.Width()*2 > dst.Width() {
		cellW = 1
	}
	ox := max((dst.Width()-lvl.Width()*cellW)/2, 0)
	oy := max((dst.Height()-lvl.Height())/2, 0)

	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			b := lvl.At(core.C(x, y))
			t := tileFor(b)
			if b.Kind == core.Start {
				t = tile{wide: [2]rune{'P', ' '}, narrow: 'P', color: platformcore.ColorBrightCyan}
			}
			if cellW == 2 {
				dst.SetWithColor(ox+x*2, oy+y, t.wide[0], t.color)
				dst.SetWithColor(ox+x*2+1, oy+y, t.wide[1], t.color)
			} else {
				dst.SetWithColor(ox+x, oy+y, t.narrow, t.color)
			}
		}
	}
}
