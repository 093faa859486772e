package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/score"
	"github.com/tomz197/invaders/internal/window"
)

func main() {
	initHighScore := flag.Bool("init-highscore", false, "create the high score file with a score of 0 and exit")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "window")
	path := config.GetEnv("INVADERS_HIGHSCORE_FILE", loopconfig.DefaultHighScoreFile)

	if *initHighScore {
		created, err := score.Init(path)
		if err != nil {
			logger.Fatal("init high score", "err", err)
		}
		logger.Info("high score file ready", "path", path, "created", created)
		return
	}

	if err := run(logger, path); err != nil {
		fmt.Fprintf(os.Stderr, "window error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger, path string) error {
	store, err := score.Open(path)
	if errors.Is(err, score.ErrMissing) {
		return fmt.Errorf("%w\nrun with -init-highscore to create %s", err, path)
	}
	if err != nil {
		return err
	}

	settings := loopconfig.Default()
	settings.ApplyEnv()
	if err := settings.Validate(); err != nil {
		return err
	}

	hub := server.NewServer(store, logger.WithPrefix("hub"))
	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()
	defer func() {
		cancel()
		<-hubDone
	}()

	var sounds window.EventSink
	if config.GetEnvBool("INVADERS_AUDIO", true) {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	w, err := window.New(hub, window.Options{
		Username: os.Getenv("USER"),
		Settings: settings,
		Sounds:   sounds,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return w.Run()
}
