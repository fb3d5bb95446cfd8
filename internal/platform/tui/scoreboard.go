package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// boardKeys are the scoreboard bindings; they double as the help bar.
type boardKeys struct {
	Scroll key.Binding
	Mode   key.Binding
	Back   key.Binding
	Quit   key.Binding

	up, down, next, prev key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Mode, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		Mode:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab/←/→", "mode")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		up:   key.NewBinding(key.WithKeys("up", "k", "w")),
		down: key.NewBinding(key.WithKeys("down", "j", "s")),
		next: key.NewBinding(key.WithKeys("tab", "right", "l", "d")),
		prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h", "a")),
	}
}

// boardColumns are the leaderboard columns; the last one takes the slack.
var boardColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Name", Width: 6},
	{Title: "Score", Width: 8},
	{Title: "Coins", Width: 6},
	{Title: "Lvls", Width: 5},
	{Title: "Played", Width: 14},
}

// ScoreboardModel shows the top runs of one mode at a time.
type ScoreboardModel struct {
	modes []registry.GameInfo
	mode  int

	store  *storage.Store
	limit  int
	scores []storage.ScoreEntry
	stats  *storage.GameStats
	err    error
	now    func() time.Time

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the board on the first registered mode. A nil
// store renders an empty board; limit <= 0 uses the default size.
func NewScoreboardModel(store *storage.Store, limit, width, height int) ScoreboardModel {
	if limit <= 0 {
		limit = storage.DefaultLeaderboardSize
	}
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		limit:  limit,
		now:    time.Now,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) newTable() table.Model {
	cols := make([]table.Column, len(boardColumns))
	copy(cols, boardColumns)
	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.Width + 2
	}
	last := &cols[len(cols)-1]
	last.Width = max(last.Width, min(m.width-used-6, 22))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = currentTheme.MenuItemActive

	return table.New(
		table.WithColumns(cols),
		table.WithStyles(styles),
		table.WithFocused(true),
		table.WithHeight(max(3, min(m.limit+1, m.height-9))),
	)
}

// reload fetches the current mode's board and stats.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		m.scores, m.err = m.store.TopScores(id, m.limit)
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			playerLabel(s.Player),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Coins),
			strconv.Itoa(s.Levels),
			humanize.RelTime(s.CreatedAt, m.now(), "ago", "from now"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(step int) {
	if n := len(m.modes); n > 0 {
		m.mode = (m.mode + step + n) % n
		m.reload()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.down):
			m.table.MoveDown(1)
			return m, nil
		}
	}
	return m, nil
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	theme := currentTheme

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("H I G H   S C O R E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.modeTabs(), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.err != nil:
		body = theme.Error.Render("Scores unavailable: " + m.err.Error())
	case len(m.scores) == 0:
		body = theme.MenuDescription.Render("No runs yet. Be the first on this board.")
	default:
		body = m.table.View()
	}
	b.WriteString(centerText(body, m.width))
	b.WriteString("\n\n")

	if s := m.summary(); s != "" {
		b.WriteString(centerText(theme.MenuDescription.Render(s), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(theme.Controls.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// modeTabs lists the modes with the shown one highlighted.
func (m ScoreboardModel) modeTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = currentTheme.MenuItemActive.Render("[" + g.Title + "]")
		} else {
			tabs[i] = currentTheme.MenuItemNormal.Render(" " + g.Title + " ")
		}
	}
	return strings.Join(tabs, "  ")
}

// summary is one line of totals for the shown mode.
func (m ScoreboardModel) summary() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s runs · best %s · %s coins · last %s",
		humanize.Comma(int64(st.GamesCount)),
		humanize.Comma(int64(st.HighScore)),
		humanize.Comma(st.TotalCoins),
		humanize.RelTime(st.LastPlayed, m.now(), "ago", "from now"),
	)
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the player quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

func playerLabel(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

// RunScoreboard shows the scoreboard full screen. goBack is true when the
// player left for the menu rather than quitting.
func RunScoreboard(store *storage.Store, limit, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, limit, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
