package render

// Stroke is a recorded StrokePath call.
type Stroke struct {
	Points []Point
	Closed bool
	Paint  Paint
}

// Disc is a recorded FillDisc call.
type Disc struct {
	Center Point
	Radius float64
	Paint  Paint
}

// Recorder is a Surface that keeps every call since the last Clear.
type Recorder struct {
	Clears  int
	Strokes []Stroke
	Discs   []Disc
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Strokes = r.Strokes[:0]
	r.Discs = r.Discs[:0]
}

func (r *Recorder) StrokePath(pts []Point, closed bool, p Paint) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.Strokes = append(r.Strokes, Stroke{Points: cp, Closed: closed, Paint: p})
}

func (r *Recorder) FillDisc(center Point, radius float64, p Paint) {
	r.Discs = append(r.Discs, Disc{Center: center, Radius: radius, Paint: p})
}

// StrokesWith returns the recorded strokes drawn in color c with width w.
func (r *Recorder) StrokesWith(c Color, w float64) []Stroke {
	var out []Stroke
	for _, s := range r.Strokes {
		if s.Paint.Color == c && s.Paint.Width == w {
			out = append(out, s)
		}
	}
	return out
}
