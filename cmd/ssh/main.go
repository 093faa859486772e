package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/client"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/score"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	initHighScore := flag.Bool("init-highscore", false, "create the high score file if it is missing before serving")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scorePath := config.GetEnv("INVADERS_HIGHSCORE_FILE", loopconfig.DefaultHighScoreFile)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "highscore_file", scorePath)

	if *initHighScore {
		created, err := score.Init(scorePath)
		if err != nil {
			logger.Fatal("init high score", "err", err)
		}
		if created {
			logger.Info("created high score file", "path", scorePath)
		}
	}

	store, err := score.Open(scorePath)
	if errors.Is(err, score.ErrMissing) {
		logger.Fatal("high score file missing, start with -init-highscore to create it", "path", scorePath)
	}
	if err != nil {
		logger.Fatal("open high score", "err", err)
	}

	settings := loopconfig.Default()
	settings.ApplyEnv()
	if err := settings.Validate(); err != nil {
		logger.Fatal("settings", "err", err)
	}

	// Shared hub for every SSH session
	hub := server.NewServer(store, logger.WithPrefix("hub"))
	ctx, cancelHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()
	logger.Info("hub started", "high_score", store.Value())

	sessions := &sessionHandler{hub: hub, settings: settings, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			sessions.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger.WithPrefix("wish")),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	// Notify players and wait for them to disconnect, then stop the hub,
	// which saves the high score one last time.
	hub.Shutdown(15 * time.Second)
	cancelHub()
	<-hubDone
	logger.Info("hub stopped", "high_score", store.Value())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// sessionHandler runs one game client per SSH session.
type sessionHandler struct {
	hub      *server.Server
	settings *loopconfig.Settings
	logger   *log.Logger
}

// middleware handles SSH sessions and runs the game client.
func (h *sessionHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		c, err := client.NewClient(h.hub, reader, sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Settings:     h.settings,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("create client", "err", err)
			fmt.Fprintln(sess, "Error: could not start the game.")
			return
		}
		if err := c.Run(); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
