package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
)

// LevelMenuModel is the level picker for solo play.
type LevelMenuModel struct {
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	levels       []levels.Level
	loadErr      error
	selected     string
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates a level selection model over the loader's levels.
func NewLevelMenuModel(loader *levels.Loader, width, height int) LevelMenuModel {
	all, err := loader.LoadAll()
	return LevelMenuModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		levels:    all,
		loadErr:   err,
		theme:     GetTheme(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.levels[m.cursor].Name
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(m.height-12, 3) // Header, description and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S O L O"), m.width))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(centerText(m.theme.Error.Render("Cannot load levels: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	case len(m.levels) == 0:
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found. Create one with `maze generate`."), m.width))
		b.WriteString("\n")
	default:
		b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
		b.WriteString("\n\n")
		m.renderList(&b)
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m LevelMenuModel) renderList(b *strings.Builder) {
	end := min(m.scrollOffset+m.visibleItems(), len(m.levels))

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < end; i++ {
		lvl := m.levels[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := fmt.Sprintf("%s%2d. %-24s %dx%d  coins %d", cursor, i+1, lvl.Name,
			lvl.Map.Width(), lvl.Map.Height(), lvl.Map.TotalCoins())
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if end < len(m.levels) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	cur := m.levels[m.cursor]
	desc := cur.Description
	if cur.Author != "" {
		desc = strings.TrimSpace(desc + "  by " + cur.Author)
	}
	if desc != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(desc), m.width))
		b.WriteString("\n")
	}
}

// Selected returns the chosen level name, or "" if none.
func (m LevelMenuModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selection and returns the chosen name.
// An empty name means the user backed out or quit.
func RunLevelSelector(loader *levels.Loader, cfg core.RuntimeConfig) (name string, quit bool, err error) {
	p := tea.NewProgram(NewLevelMenuModel(loader, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return "", true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
