package game

// EventType identifies something that happened during a frame.
type EventType int

const (
	EventGameStarted    EventType = iota
	EventFired                    // A bullet left the ship
	EventAlienDestroyed           // X, Y, Points set
	EventHighScore                // Score set to the new high score
	EventWaveCleared              // Level set to the new level
	EventShipHit                  // ShipsLeft set
	EventGameOver                 // Score set to the final score
)

// String returns a short name for logging.
func (t EventType) String() string {
	switch t {
	case EventGameStarted:
		return "game_started"
	case EventFired:
		return "fired"
	case EventAlienDestroyed:
		return "alien_destroyed"
	case EventHighScore:
		return "high_score"
	case EventWaveCleared:
		return "wave_cleared"
	case EventShipHit:
		return "ship_hit"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by the simulation for frontends (sound, effects,
// persistence). Only the fields relevant to Type are set.
type Event struct {
	Type      EventType
	X, Y      float64
	Points    int
	Score     int
	Level     int
	ShipsLeft int
}

func (g *Game) emit(ev Event) {
	g.events = append(g.events, ev)
}

// DrainEvents returns the events emitted since the last call.
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := make([]Event, len(g.events))
	copy(out, g.events)
	g.events = g.events[:0]
	return out
}
