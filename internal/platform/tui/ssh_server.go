package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
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

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/platform/feed"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.puzzles/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// FeedAddress enables the WebSocket outcome feed at /feed when set.
	FeedAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.puzzles/results.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server hosting one puzzle session per
// connection, plus the optional outcome feed.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	hub      *feed.Hub
	feedSrv  *http.Server
	recorder *Recorder
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "puzzles-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}
	if cfg.FeedAddress != "" {
		srv.hub = feed.NewHub(logger.WithPrefix("feed"))
		srv.feedSrv = &http.Server{
			Addr:              cfg.FeedAddress,
			Handler:           srv.hub.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	srv.recorder = NewRecorder(store, srv.hub, logger)

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".puzzles", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
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
	}

	model := NewSessionModel(s.recorder, cfg, s.logger.With("user", sshSession.User()))
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
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

// ListenAndServe starts the SSH server and the feed, and blocks until
// SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.hub != nil {
		go s.hub.Run(ctx)
		go func() {
			s.logger.Info("starting outcome feed", "address", s.feedSrv.Addr, "path", "/feed")
			if err := s.feedSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("feed server error", "error", err)
			}
		}()
	}

	s.logger.Info("starting SSH server", "address", s.config.Address)
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		//nolint:errcheck // Already failing
		s.Shutdown()
		return fmt.Errorf("tui: ssh server: %w", err)
	}
}

// Shutdown gracefully stops the servers and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var feedErr error
	if s.feedSrv != nil {
		feedErr = s.feedSrv.Shutdown(ctx)
	}
	sshErr := s.server.Shutdown(ctx)
	s.closeStore()

	return errors.Join(sshErr, feedErr)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenStats
	screenPuzzle
)

// SessionModel manages the full flow of one connection:
// menu -> puzzle -> menu, with the stats board reachable from the menu.
type SessionModel struct {
	recorder *Recorder
	config   core.RuntimeConfig
	logger   *log.Logger
	current  sessionScreen
	menu     MenuModel
	stats    StatsModel
	puzzle   Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(rec *Recorder, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		recorder: rec,
		config:   cfg,
		logger:   logger,
		menu:     NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenPuzzle:
		return m.updatePuzzle(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsStats():
		m.current = screenStats
		m.stats = NewStatsModel(m.recorder.Store(), m.config.ScreenW, m.config.ScreenH)
		return m, m.stats.Init()

	case m.menu.Selected() != nil:
		cfg := m.menu.Config()
		puzzle, err := NewModel(m.menu.Selected().PuzzleID, m.recorder, cfg)
		if err != nil {
			m.logger.Warn("could not start puzzle", "puzzle", m.menu.Selected().PuzzleID, "error", err)
			return m.backToMenu()
		}
		m.logger.Info("puzzle started", "puzzle", m.menu.Selected().PuzzleID, "difficulty", cfg.Difficulty)
		m.config = cfg
		m.puzzle = puzzle
		m.current = screenPuzzle
		return m, m.puzzle.Init()
	}

	return m, cmd
}

// updateStats handles updates when the stats board is open.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newStats, cmd := m.stats.Update(msg)
	if statsModel, ok := newStats.(StatsModel); ok {
		m.stats = statsModel
	}

	switch {
	case m.stats.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.stats.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

// updatePuzzle handles updates while a puzzle is running.
func (m SessionModel) updatePuzzle(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.puzzle.Update(msg)
	if puzzleModel, ok := newModel.(Model); ok {
		m.puzzle = puzzleModel
	}

	switch {
	case m.puzzle.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.puzzle.Done():
		return m.backToMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenPuzzle:
		return m.puzzle.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}
