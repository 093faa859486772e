package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	loopconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/score"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	scorePath := config.GetEnv("INVADERS_HIGHSCORE_FILE", loopconfig.DefaultHighScoreFile)

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "highscore_file", scorePath)
	if err := http.ListenAndServe(addr, newMux(sshHost, scorePath, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newMux(sshHost, scorePath string, logger *log.Logger) *http.ServeMux {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("GET /api/highscore", func(w http.ResponseWriter, r *http.Request) {
		highScoreHandler(w, scorePath, logger)
	})
	return mux
}

type highScoreResponse struct {
	HighScore int `json:"high_score"`
}

// highScoreHandler reports the saved high score. The file is written by the
// game servers, so it is read fresh on every request.
func highScoreHandler(w http.ResponseWriter, path string, logger *log.Logger) {
	store, err := score.Open(path)
	switch {
	case errors.Is(err, score.ErrMissing):
		http.Error(w, "no high score yet", http.StatusNotFound)
		return
	case err != nil:
		logger.Error("reading high score", "path", path, "err", err)
		http.Error(w, "high score unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(highScoreResponse{HighScore: store.Value()}); err != nil {
		logger.Warn("writing response", "err", err)
	}
}
