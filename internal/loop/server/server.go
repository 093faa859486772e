// Package server is the hub shared by every session: it owns the high
// score store, keeps a leaderboard of finished runs and tells clients about
// new high scores and shutdown. Each session runs its own game; nothing
// here touches a simulation.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/score"
)

// GameServer is the interface clients use to communicate with the hub.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	// SubmitScore reports a running score; it may raise the high score.
	SubmitScore(clientID, score int)
	// GameOver reports a finished run and requests an immediate save.
	GameOver(clientID, score, level int)
	HighScore() int
	GetSnapshot() *Snapshot
}

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Closed when the client is unregistered
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventHighScore ClientEventType = iota // Another session set a new high score
	EventServerShutdown
)

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type     ClientEventType
	Score    int
	Username string // Who set the high score
}

type scoreNotice struct {
	clientID int
	score    int
}

type finishedRun struct {
	clientID int
	score    int
	level    int
}

// Server implements GameServer.
type Server struct {
	store  *score.Store
	logger *log.Logger

	clients      map[int]*ClientHandle
	nextClientID int
	mu           sync.RWMutex

	registerCh   chan *ClientHandle
	unregisterCh chan int
	scoreCh      chan scoreNotice
	gameOverCh   chan finishedRun
	done         chan struct{}

	board    leaderboard
	snapshot atomic.Pointer[Snapshot]

	flushInterval time.Duration
}

var _ GameServer = (*Server)(nil)

// NewServer creates a hub persisting to store. A nil logger discards logs.
func NewServer(store *score.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:         store,
		logger:        logger,
		clients:       make(map[int]*ClientHandle),
		nextClientID:  1,
		registerCh:    make(chan *ClientHandle, 16),
		unregisterCh:  make(chan int, 16),
		scoreCh:       make(chan scoreNotice, 64),
		gameOverCh:    make(chan finishedRun, 16),
		done:          make(chan struct{}),
		flushInterval: config.HighScoreFlushInterval,
	}
	s.publish()
	return s
}

// SetFlushInterval changes how often a raised high score is written out.
// Must be called before Run.
func (s *Server) SetFlushInterval(d time.Duration) {
	s.flushInterval = d
}

// Run processes client traffic and saves the high score periodically.
// Blocks until the context is cancelled, then saves one last time.
func (s *Server) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.drain()
			s.flush("exit")
			return
		case h := <-s.registerCh:
			s.addClient(h)
		case id := <-s.unregisterCh:
			s.removeClient(id)
		case n := <-s.scoreCh:
			s.broadcastHighScore(n)
		case run := <-s.gameOverCh:
			s.finishRun(run)
		case <-ticker.C:
			s.flush("periodic")
		}
	}
}

// drain handles everything still queued when Run stops.
func (s *Server) drain() {
	for {
		select {
		case h := <-s.registerCh:
			s.addClient(h)
		case id := <-s.unregisterCh:
			s.removeClient(id)
		case <-s.scoreCh:
		case run := <-s.gameOverCh:
			s.finishRun(run)
		default:
			return
		}
	}
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout. The caller should cancel Run's context after.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	n := len(s.clients)
	s.mu.RUnlock()
	s.logger.Info("shutdown announced", "clients", n)

	deadline := time.After(timeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timeout, clients still connected", "clients", s.ClientCount())
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	if s.stopped() {
		close(handle.EventsCh)
		return handle
	}
	select {
	case s.registerCh <- handle:
	case <-s.done:
		close(handle.EventsCh)
	}
	return handle
}

// UnregisterClient removes a client from the hub.
func (s *Server) UnregisterClient(clientID int) {
	select {
	case s.unregisterCh <- clientID:
	case <-s.done:
	}
}

// SubmitScore raises the stored high score if score beats it. Other clients
// hear about it on their next frame.
func (s *Server) SubmitScore(clientID, score int) {
	if !s.store.Update(score) {
		return
	}
	select {
	case s.scoreCh <- scoreNotice{clientID: clientID, score: score}:
	default:
		// The store already has the value; only the broadcast is lost.
	}
}

// GameOver records a finished run on the leaderboard and saves the high
// score without waiting for the next periodic flush.
func (s *Server) GameOver(clientID, score, level int) {
	s.SubmitScore(clientID, score)
	if s.stopped() {
		s.flush("game over")
		return
	}
	select {
	case s.gameOverCh <- finishedRun{clientID: clientID, score: score, level: level}:
	case <-s.done:
		s.flush("game over")
	}
}

// HighScore returns the all-time high score.
func (s *Server) HighScore() int {
	return s.store.Value()
}

// GetSnapshot returns the latest hub snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	snap := *s.snapshot.Load()
	snap.HighScore = s.store.Value()
	return &snap
}

func (s *Server) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) addClient(h *ClientHandle) {
	s.mu.Lock()
	s.clients[h.ID] = h
	n := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("client joined", "id", h.ID, "user", h.Username, "clients", n)
	s.publish()
}

func (s *Server) removeClient(id int) {
	s.mu.Lock()
	h, ok := s.clients[id]
	if ok {
		close(h.EventsCh)
		delete(s.clients, id)
	}
	n := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.logger.Info("client left", "id", id, "user", h.Username, "clients", n)
		s.publish()
	}
}

func (s *Server) broadcastHighScore(n scoreNotice) {
	// Later notices may already have raised it further.
	if n.score < s.store.Value() {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	username := ""
	if h, ok := s.clients[n.clientID]; ok {
		username = h.Username
	}
	s.logger.Info("new high score", "score", n.score, "user", username)

	for id, handle := range s.clients {
		if id == n.clientID {
			continue
		}
		select {
		case handle.EventsCh <- ClientEvent{Type: EventHighScore, Score: n.score, Username: username}:
		default:
		}
	}
}

func (s *Server) finishRun(run finishedRun) {
	s.mu.RLock()
	username := ""
	if h, ok := s.clients[run.clientID]; ok {
		username = h.Username
	}
	s.mu.RUnlock()

	if s.board.add(username, run.score, run.level) {
		s.publish()
	}
	s.logger.Info("game over", "user", username, "score", run.score, "level", run.level)
	s.flush("game over")
}

// flush saves the high score if it changed since the last save.
func (s *Server) flush(reason string) {
	if !s.store.Dirty() {
		return
	}
	if err := s.store.Flush(); err != nil {
		s.logger.Error("saving high score failed", "reason", reason, "path", s.store.Path(), "err", err)
		return
	}
	s.logger.Debug("high score saved", "reason", reason, "score", s.store.Value())
}

// publish stores a fresh snapshot. Only called from Run's goroutine or
// before Run starts.
func (s *Server) publish() {
	s.snapshot.Store(&Snapshot{
		Players:   s.ClientCount(),
		HighScore: s.store.Value(),
		TopScores: s.board.top(),
	})
}
