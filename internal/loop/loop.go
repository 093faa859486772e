// Package loop runs a single local session: a hub backed by the high
// score file and one terminal client attached to it.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/client"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/score"
)

// Options configures a local session.
type Options struct {
	Store        *score.Store
	Settings     *config.Settings
	Sounds       client.EventSink
	Logger       *log.Logger
	Username     string
	TermSizeFunc draw.TermSizeFunc
}

// Run plays until the player quits. The high score is saved on every game
// over, periodically while playing, and once more on return.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.Store == nil {
		return errors.New("run: no high score store")
	}

	hub := server.NewServer(opts.Store, opts.Logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	c, err := client.NewClient(hub, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Settings:     opts.Settings,
		Sounds:       opts.Sounds,
		Logger:       opts.Logger,
	})
	if err != nil {
		return err
	}
	return c.Run()
}
