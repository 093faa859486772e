package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/client"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/score"
)

func main() {
	initHighScore := flag.Bool("init-highscore", false, "create the high score file with a score of 0 and exit")
	flag.Parse()

	path := config.GetEnv("INVADERS_HIGHSCORE_FILE", loopconfig.DefaultHighScoreFile)

	if *initHighScore {
		created, err := score.Init(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init high score: %v\n", err)
			os.Exit(1)
		}
		if created {
			fmt.Printf("Created %s\n", path)
		} else {
			fmt.Printf("%s already exists, left unchanged\n", path)
		}
		return
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	// The canvas owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logPath := config.GetEnv("INVADERS_LOG_FILE", ""); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "invaders")

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

	var sounds client.EventSink
	if config.GetEnvBool("INVADERS_AUDIO", true) {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("starting", "highscore_file", path, "high_score", store.Value(), "log_level", logger.GetLevel())

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Store:    store,
		Settings: settings,
		Sounds:   sounds,
		Logger:   logger.With("session", "local"),
		Username: os.Getenv("USER"),
	})
	logger.Info("stopped", "high_score", store.Value())
	return err
}
