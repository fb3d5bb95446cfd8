// Package tui provides terminal UI components including SSH server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.maze/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// LeaderboardSize is the number of runs shown per mode.
	LeaderboardSize int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:         ":23234",
		IdleTimeout:     30 * time.Minute,
		TickRate:        60,
		LeaderboardSize: storage.DefaultLeaderboardSize,
	}
}

// SSHServer wraps a Wish SSH server serving single-player maze sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	loader *levels.Loader
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. The store may be nil, in which case
// scores are not recorded; it stays owned by the caller.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, loader *levels.Loader, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "maze-ssh",
		})
	}
	if loader == nil {
		loader = levels.NewLoader("")
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		loader: loader,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".maze", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
		Player:   NormalizeName(sshSession.User()),
	}

	model := NewSessionModel(s.store, s.loader, cfg, s.config.LeaderboardSize).
		WithLogger(s.logger.With("user", sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a session currently shows.
type sessionScreen int

const (
	screenName sessionScreen = iota
	screenMenu
	screenLevels
	screenGame
	screenScores
)

// SessionModel manages the full flow of a remote session:
// name prompt -> menu -> level picker or game or scores -> menu.
// Child programs end themselves with tea.Quit when run standalone; the
// session drops those commands on every screen change.
type SessionModel struct {
	store      *storage.Store
	loader     *levels.Loader
	logger     *log.Logger
	config     core.RuntimeConfig
	boardSize  int
	screen     sessionScreen
	namePrompt NamePromptModel
	menu       MenuModel
	levelMenu  LevelMenuModel
	game       Model
	scores     ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. The player is asked for a
// name when cfg.Player is empty.
func NewSessionModel(store *storage.Store, loader *levels.Loader, cfg core.RuntimeConfig, boardSize int) SessionModel {
	m := SessionModel{
		store:     store,
		loader:    loader,
		logger:    log.Default(),
		config:    cfg,
		boardSize: boardSize,
	}
	if cfg.Player == "" {
		m.screen = screenName
		m.namePrompt = NewNamePromptModel("", cfg.ScreenW, cfg.ScreenH)
	} else {
		m.toMenu()
	}
	return m
}

// WithLogger sets the logger passed to games for storage failures.
func (m SessionModel) WithLogger(l *log.Logger) SessionModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenName {
		return m.namePrompt.Init()
	}
	return m.menu.Init()
}

func (m *SessionModel) toMenu() {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config).WithoutChoice(ChoiceGenerator)
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	// Ticks left over from a finished game.
	if _, ok := msg.(TickMsg); ok && m.screen != screenGame {
		return m, nil
	}

	switch m.screen {
	case screenName:
		return m.updateName(msg)
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.namePrompt.Update(msg)
	if p, ok := next.(NamePromptModel); ok {
		m.namePrompt = p
	}
	switch {
	case m.namePrompt.quitting:
		m.quitting = true
		return m, tea.Quit
	case m.namePrompt.Done():
		m.config.Player = m.namePrompt.Name()
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoiceAdventure:
		return m.startGame("adventure", "")
	case ChoiceSolo:
		m.screen = screenLevels
		m.levelMenu = NewLevelMenuModel(m.loader, m.config.ScreenW, m.config.ScreenH)
		return m, m.levelMenu.Init()
	case ChoiceScores:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.boardSize, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	}
	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levelMenu.Update(msg)
	if lm, ok := next.(LevelMenuModel); ok {
		m.levelMenu = lm
	}

	switch {
	case m.levelMenu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levelMenu.WantsBack():
		m.toMenu()
		return m, m.menu.Init()
	case m.levelMenu.Selected() != "":
		return m.startGame("solo", m.levelMenu.Selected())
	}
	return m, cmd
}

// startGame creates the mode and switches to it; on failure the session
// stays on the menu.
func (m SessionModel) startGame(id, level string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err == nil && level != "" {
		if sel, ok := game.(registry.LevelSelector); ok {
			err = sel.SelectLevel(level)
		}
	}
	if err != nil {
		m.logger.Warn("cannot start game", "game", id, "level", level, "error", err)
		m.toMenu()
		return m, m.menu.Init()
	}

	m.config.Seed = time.Now().UnixNano()
	m.game = NewModel(game, m.store, m.config).WithLogger(m.logger)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}

	switch {
	case m.game.quitting:
		m.quitting = true
		return m, tea.Quit
	case m.game.backToMenu:
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsGoingBack():
		m.toMenu()
		return m, m.menu.Init()
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenName:
		return m.namePrompt.View()
	case screenLevels:
		return m.levelMenu.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}
