package canvas

import "math"

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

type segKind uint8

const (
	segMove segKind = iota
	segLine
	segCubic
)

type segment struct {
	kind   segKind
	c1, c2 Point
	to     Point
}

// Path is a single closed outline built from lines and cubic beziers.
type Path struct {
	segs []segment
}

func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMove, to: Point{x, y}})
}

func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segLine, to: Point{x, y}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.segs = append(p.segs, segment{kind: segCubic, c1: Point{c1x, c1y}, c2: Point{c2x, c2y}, to: Point{x, y}})
}

// Close joins the last point back to the start of the path.
func (p *Path) Close() {
	if len(p.segs) == 0 {
		return
	}
	start := p.segs[0].to
	p.LineTo(start.X, start.Y)
}

// Rotate turns every point of the path by theta radians around (cx, cy).
func (p *Path) Rotate(cx, cy, theta float64) {
	sin, cos := math.Sincos(theta)
	rot := func(pt Point) Point {
		dx, dy := pt.X-cx, pt.Y-cy
		return Point{cx + dx*cos - dy*sin, cy + dx*sin + dy*cos}
	}
	for i := range p.segs {
		p.segs[i].c1 = rot(p.segs[i].c1)
		p.segs[i].c2 = rot(p.segs[i].c2)
		p.segs[i].to = rot(p.segs[i].to)
	}
}

// Flatten approximates the path with a polygon, splitting each cubic into
// steps line segments. The closing point is dropped when it repeats the
// first one.
func (p *Path) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	out := make([]Point, 0, len(p.segs)*steps)
	var cur Point
	for _, s := range p.segs {
		switch s.kind {
		case segMove, segLine:
			out = append(out, s.to)
		case segCubic:
			for i := 1; i <= steps; i++ {
				out = append(out, cubicAt(cur, s.c1, s.c2, s.to, float64(i)/float64(steps)))
			}
		}
		cur = s.to
	}
	if n := len(out); n > 1 && out[0] == out[n-1] {
		out = out[:n-1]
	}
	return out
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// CirclePoints returns n points around a circle, used by backends that fill
// discs as polygons.
func CirclePoints(cx, cy, r float64, n int) []Point {
	return appendCirclePoints(make([]Point, 0, n), cx, cy, r, n)
}

func appendCirclePoints(dst []Point, cx, cy, r float64, n int) []Point {
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		dst = append(dst, Point{cx + math.Cos(a)*r, cy + math.Sin(a)*r})
	}
	return dst
}

// CircleSegments picks a polygon resolution for a disc of radius r.
func CircleSegments(r float64) int {
	switch {
	case r < 2:
		return 8
	case r < 8:
		return 16
	case r < 64:
		return 32
	default:
		return 64
	}
}
