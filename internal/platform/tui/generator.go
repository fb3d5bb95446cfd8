package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
)

// generator settings in display order
const (
	settingWidth = iota
	settingHeight
	settingCoins
	settingObstacles
	settingCount
)

var settingNames = [settingCount]string{"Width", "Height", "Coins", "Obstacles"}

// GeneratorModel lets the player tune, preview and save generated levels.
type GeneratorModel struct {
	limits    config.GeneratorConfig
	values    [settingCount]int
	cursor    int
	seed      int64
	result    maze.GenerateResult
	genErr    error
	saveDir   string
	status    string
	width     int
	height    int
	theme     Theme
	keyMapper *KeyMapper
	quitting  bool
	back      bool
	now       func() time.Time
}

// NewGeneratorModel starts from the adventure settings of cfg.
func NewGeneratorModel(cfg config.MazeConfig, saveDir string, width, height int) GeneratorModel {
	m := GeneratorModel{
		limits:    cfg.Generator,
		saveDir:   saveDir,
		width:     width,
		height:    height,
		theme:     GetTheme(),
		keyMapper: NewKeyMapper(),
		now:       time.Now,
	}
	m.values[settingWidth] = cfg.Adventure.Width
	m.values[settingHeight] = cfg.Adventure.Height
	m.values[settingCoins] = cfg.Adventure.Coins
	m.values[settingObstacles] = cfg.Adventure.Obstacles
	m.seed = m.now().UnixNano()
	m.regenerate()
	return m
}

// regenerate builds a new clamped preview and
// writes the effective values back into the settings.
func (m *GeneratorModel) regenerate() {
	res, err := maze.GenerateLevel(maze.GenerateOptions{
		Width:     m.values[settingWidth],
		Height:    m.values[settingHeight],
		Coins:     m.values[settingCoins],
		Obstacles: m.values[settingObstacles],
		Seed:      m.seed,
		Clamp:     true,
	})
	m.genErr = err
	if err != nil {
		return
	}
	m.result = res
	m.values[settingWidth] = res.Width
	m.values[settingHeight] = res.Height
	m.values[settingCoins] = res.Coins
	m.values[settingObstacles] = res.Obstacles
}

// adjust changes the selected setting within its limits.
func (m *GeneratorModel) adjust(delta int) {
	lo, hi, step := 0, m.limits.MaxFeatures, 1
	if m.cursor == settingWidth || m.cursor == settingHeight {
		lo, hi, step = m.limits.MinSize, m.limits.MaxSize, 2
	}
	v := m.values[m.cursor] + delta*step
	if v < lo || v > hi {
		return
	}
	m.values[m.cursor] = v
	m.regenerate()
}

// Init initializes the model.
func (m GeneratorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GeneratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m GeneratorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	m.status = ""
	switch action {
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < settingCount-1 {
			m.cursor++
		}
	case core.ActionLeft:
		m.adjust(-1)
	case core.ActionRight:
		m.adjust(1)
	case core.ActionDestroy, core.ActionRestart:
		m.seed++
		m.regenerate()
	case core.ActionConfirm:
		m.save()
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// save writes the previewed level to the library under a timestamped name.
func (m *GeneratorModel) save() {
	if m.genErr != nil || m.result.Maze == nil {
		return
	}
	name := levels.GeneratedName(m.now())
	path, err := levels.Save(m.saveDir, name, m.result.Maze.Level(), false)
	if err != nil {
		m.status = "Save failed: " + err.Error()
		return
	}
	m.status = "Saved " + path
}

// View renders the settings panel and the preview.
func (m GeneratorModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("L E V E L   G E N E R A T O R"), m.width))
	b.WriteString("\n\n")

	var settings []string
	for i, name := range settingNames {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		label := m.theme.SettingLabel.Render(fmt.Sprintf("%s%-10s", cursor, name))
		value := m.theme.SettingValue.Render(fmt.Sprintf("%02d", m.values[i]))
		settings = append(settings, label+" "+value)
	}
	b.WriteString(centerText(strings.Join(settings, "   "), m.width))
	b.WriteString("\n\n")

	switch {
	case m.genErr != nil:
		b.WriteString(centerText(m.theme.Error.Render(m.genErr.Error()), m.width))
		b.WriteString("\n")
	case m.result.Maze != nil:
		previewH := max(m.height-10, 3)
		screen := core.NewScreen(max(m.width, 1), previewH)
		maze.DrawPreview(screen, m.result.Maze.Level())
		b.WriteString(RenderScreen(screen))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.status), m.width))
	}
	b.WriteString("\n")
	controls := "Up/Down: Setting  |  Left/Right: Change  |  Space: Reroll  |  Enter: Save  |  Esc: Back"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// IsQuitting returns true if user wants to quit.
func (m GeneratorModel) IsQuitting() bool {
	return m.quitting
}

// RunGenerator runs the generator screen. quit is true when the user
// asked to leave the program rather than go back.
func RunGenerator(cfg config.MazeConfig, saveDir string, rt core.RuntimeConfig) (quit bool, err error) {
	p := tea.NewProgram(NewGeneratorModel(cfg, saveDir, rt.ScreenW, rt.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GeneratorModel)
	if !ok {
		return true, nil
	}
	return m.IsQuitting(), nil
}
