package draw

import "math"

// FillCircle paints a filled circle given in logical coordinates.
// Scaling is applied per axis, so the circle becomes an ellipse in pixel
// space when the axes scale differently. The centre pixel is always painted,
// keeping tiny circles visible on small terminals.
func (c *Canvas) FillCircle(cx, cy, radius float64, color Color) {
	if c.scaleX == 0 || c.scaleY == 0 {
		return
	}

	x0 := int(math.Floor((cx - radius) * c.scaleX))
	x1 := int(math.Ceil((cx + radius) * c.scaleX))
	y0 := int(math.Floor((cy - radius) * c.scaleY))
	y1 := int(math.Ceil((cy + radius) * c.scaleY))
	r2 := radius * radius

	for py := y0; py <= y1; py++ {
		// Sample at pixel centre, mapped back to logical space
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			if lx*lx+ly*ly <= r2 {
				c.setPixel(px, py, color)
			}
		}
	}

	c.SetFloat(cx, cy, color)
}

// StrokeCircle paints the outline of a circle given in logical coordinates.
func (c *Canvas) StrokeCircle(cx, cy, radius float64, color Color) {
	if c.scaleX == 0 || c.scaleY == 0 || radius <= 0 {
		return
	}

	// Enough samples for one per outer pixel on the longer axis
	steps := int(2*math.Pi*radius*math.Max(c.scaleX, c.scaleY)) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.SetFloat(cx+math.Cos(a)*radius, cy+math.Sin(a)*radius, color)
	}
}
