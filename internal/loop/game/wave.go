package game

// newWave raises the difficulty and brings in a fresh formation.
func (g *Game) newWave() {
	s := g.Settings

	g.clearBullets()
	s.AlienSpeed += s.AlienSpeedIncrease
	// Integer truncation, not rounding.
	s.AlienPoints = int(float64(s.AlienPoints) * s.ScoreIncrease)
	// The drop speed only grows once it is already above the max, which
	// never happens with the stock settings. Kept as the game has always
	// played.
	if s.FleetDropSpeed > s.FleetDropMax {
		s.FleetDropSpeed += s.FleetDropIncrease
	}

	g.Fleet.Populate(g.Screen, s)
}
