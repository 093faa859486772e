package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighScoreEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_score.json")
	srv := httptest.NewServer(newMux("play.example", path, log.New(io.Discard)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/highscore")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, os.WriteFile(path, []byte("4500"), 0o644))
	resp, err = http.Get(srv.URL + "/api/highscore")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"high_score":4500}`, string(body))

	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0o644))
	resp, err = http.Get(srv.URL + "/api/highscore")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestIndexPage(t *testing.T) {
	srv := httptest.NewServer(newMux("play.example", "unused", log.New(io.Discard)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "ssh -t play.example")
	assert.NotContains(t, string(body), "{{.SSHHost}}")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
