package object

import "github.com/tomz197/invaders/internal/draw"

// Draw renders the ship as a filled cannon: a wide base with a turret.
func (s *Ship) Draw(c *draw.Canvas) {
	r := s.Rect
	base := r.Y + r.H*0.45
	pts := c.BorrowPoints(8)
	pts[0] = draw.Point{X: r.X, Y: r.Bottom()}
	pts[1] = draw.Point{X: r.X, Y: base}
	pts[2] = draw.Point{X: r.X + r.W*0.4, Y: base}
	pts[3] = draw.Point{X: r.X + r.W*0.45, Y: r.Y}
	pts[4] = draw.Point{X: r.X + r.W*0.55, Y: r.Y}
	pts[5] = draw.Point{X: r.X + r.W*0.6, Y: base}
	pts[6] = draw.Point{X: r.Right(), Y: base}
	pts[7] = draw.Point{X: r.Right(), Y: r.Bottom()}
	c.SetColor(draw.ColorGreen)
	c.DrawPolygon(pts, true)
}

// alienShape is an invader outline in unit coordinates, two animation frames.
var alienShape = [2][]draw.Point{
	{
		{X: 0.2, Y: 0}, {X: 0.8, Y: 0}, {X: 1, Y: 0.35}, {X: 1, Y: 0.7},
		{X: 0.8, Y: 1}, {X: 0.65, Y: 0.7}, {X: 0.35, Y: 0.7}, {X: 0.2, Y: 1},
		{X: 0, Y: 0.7}, {X: 0, Y: 0.35},
	},
	{
		{X: 0.2, Y: 0}, {X: 0.8, Y: 0}, {X: 1, Y: 0.35}, {X: 1, Y: 1},
		{X: 0.85, Y: 0.7}, {X: 0.65, Y: 0.7}, {X: 0.35, Y: 0.7}, {X: 0.15, Y: 0.7},
		{X: 0, Y: 1}, {X: 0, Y: 0.35},
	},
}

// Draw renders the alien. frame alternates the leg pose.
func (a *Alien) Draw(c *draw.Canvas, color draw.Color, frame int) {
	shape := alienShape[frame&1]
	pts := c.BorrowPoints(len(shape))
	for i, p := range shape {
		pts[i] = draw.Point{X: a.Rect.X + p.X*a.Rect.W, Y: a.Rect.Y + p.Y*a.Rect.H}
	}
	c.SetColor(color)
	c.DrawPolygon(pts, true)
}

// Draw renders the bullet as a filled box.
func (b *Bullet) Draw(c *draw.Canvas) {
	c.SetColor(draw.ColorRed)
	c.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
}
