package game

import "github.com/tomz197/invaders/internal/object"

// checkBulletAlienCollisions removes every bullet/alien pair that overlaps.
// A bullet overlapping several aliens destroys all of them; an alien is
// only ever claimed by the first bullet that reaches it. The formation is
// checked for clearance afterwards.
func (g *Game) checkBulletAlienCollisions() {
	aliens := g.Fleet.Aliens

	g.grid.Clear()
	for i, a := range aliens {
		g.grid.Insert(a.Rect, i)
	}

	destroyed := 0
	for _, b := range g.Bullets {
		hit := false
		g.grid.Query(b.Rect, func(i int) bool {
			a := aliens[i]
			// Aliens spanning several cells come back more than once.
			if a.IsDestroyed() || !b.Rect.Intersects(a.Rect) {
				return false
			}
			a.MarkDestroyed()
			hit = true
			destroyed++
			g.emit(Event{
				Type:   EventAlienDestroyed,
				X:      a.Rect.CenterX(),
				Y:      a.Rect.CenterY(),
				Points: g.Settings.AlienPoints,
			})
			return false
		})
		if hit {
			b.MarkDestroyed()
		}
	}

	if destroyed > 0 {
		g.Bullets = object.Compact(g.Bullets)
		g.Fleet.Compact()
		g.addScore(g.Settings.AlienPoints * destroyed)
	}

	if g.Fleet.Empty() {
		g.newWave()
		g.Stats.Level++
		g.emit(Event{Type: EventWaveCleared, Level: g.Stats.Level})
	}
}

// addScore credits points and updates the high score when it is beaten.
func (g *Game) addScore(points int) {
	g.Stats.Score += points
	g.checkHighScore()
}

// checkHighScore promotes the current score to high score if it is higher.
func (g *Game) checkHighScore() {
	if g.Stats.Score > g.Stats.HighScore {
		g.Stats.HighScore = g.Stats.Score
		g.emit(Event{Type: EventHighScore, Score: g.Stats.HighScore})
	}
}

// checkAliensWin treats an alien touching the ship or reaching the bottom
// of the screen as a hit on the ship. At most one hit is taken per frame.
func (g *Game) checkAliensWin() {
	if g.Fleet.HitsShip(g.Ship.Rect) || g.Fleet.ReachedBottom(g.Screen) {
		g.shipHit()
	}
}

// shipHit loses a ship. With ships remaining the wave restarts after a
// short pause; otherwise the game ends and the pointer comes back.
func (g *Game) shipHit() {
	g.Stats.ShipsLeft--

	if g.Stats.ShipsLeft > 0 {
		g.Fleet.Clear()
		g.clearBullets()

		g.Fleet.Populate(g.Screen, g.Settings)
		g.Ship.Center(g.Screen)

		g.emit(Event{Type: EventShipHit, ShipsLeft: g.Stats.ShipsLeft})
		g.pause(g.Settings.ShipHitPause)
		return
	}

	g.Stats.Active = false
	g.setPointerVisible(true)
	g.emit(Event{Type: EventShipHit, ShipsLeft: 0})
	g.emit(Event{Type: EventGameOver, Score: g.Stats.Score})
}
