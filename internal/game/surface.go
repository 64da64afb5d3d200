package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sentinent/landing/internal/canvas"
)

const (
	radialSegments = 48
	// rings added between neighbouring stops and along each shape spoke
	gradientSteps = 6
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface is a canvas.Surface backed by an offscreen ebiten image. A surface
// resized to an empty size has no image and ignores draws.
type Surface struct {
	img           *ebiten.Image
	width, height int

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Surfaces is the provider the window host hands to the layers.
var Surfaces = canvas.ProviderFunc(func(width, height int) (canvas.Surface, error) {
	if err := canvas.CheckSize(width, height); err != nil {
		return nil, err
	}
	return NewSurface(width, height), nil
})

// Image returns the backing image, or nil for an empty surface.
func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.width, s.height = max(width, 0), max(height, 0)
	if s.width > 0 && s.height > 0 {
		s.img = ebiten.NewImage(s.width, s.height)
	}
}

func (s *Surface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if s.img == nil || c.A == 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if s.img == nil || c.A == 0 || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

// FillRadial draws the disc as concentric rings, one per stop plus
// intermediate rings, with vertex colors sampled from g.
func (s *Surface) FillRadial(cx, cy, r float64, g canvas.Gradient) {
	if s.img == nil || r <= 0 {
		return
	}
	outline := canvas.CirclePoints(cx, cy, r, radialSegments)
	s.fillFan(cx, cy, outline, radialRings(g, r), g)
}

// FillShape fans out from the gradient center to each outline point.
func (s *Surface) FillShape(outline []canvas.Point, g canvas.Gradient) {
	if s.img == nil || len(outline) < 3 {
		return
	}
	rings := make([]float64, gradientSteps)
	for i := range rings {
		rings[i] = float64(i+1) / gradientSteps
	}
	s.fillFan(g.CX, g.CY, outline, rings, g)
}

// radialRings returns ring positions as fractions of r, covering every stop
// that falls inside the disc.
func radialRings(g canvas.Gradient, r float64) []float64 {
	var rings []float64
	prev := 0.0
	add := func(t float64) {
		if t <= prev || t > 1 {
			return
		}
		for i := 1; i <= gradientSteps; i++ {
			rings = append(rings, prev+(t-prev)*float64(i)/gradientSteps)
		}
		prev = t
	}
	for _, st := range g.Stops {
		if g.Radius > 0 {
			add(st.Offset * g.Radius / r)
		}
	}
	add(1)
	return rings
}

// fillFan triangulates the region between (cx, cy) and the outline. Each
// spoke from the center to an outline point is split at rings, given as
// fractions of the spoke length.
func (s *Surface) fillFan(cx, cy float64, outline []canvas.Point, rings []float64, g canvas.Gradient) {
	n := len(outline)
	perSpoke := len(rings)
	if n*perSpoke+1 > math.MaxUint16 {
		perSpoke = (math.MaxUint16 - 1) / n
		if perSpoke == 0 {
			return
		}
		rings = rings[len(rings)-perSpoke:]
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.vertices = append(s.vertices, vertex(cx, cy, g.ColorAt(cx, cy)))
	for _, p := range outline {
		for _, t := range rings {
			x := cx + (p.X-cx)*t
			y := cy + (p.Y-cy)*t
			s.vertices = append(s.vertices, vertex(x, y, g.ColorAt(x, y)))
		}
	}

	at := func(spoke, ring int) uint16 { return uint16(1 + spoke*perSpoke + ring) }
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		s.indices = append(s.indices, 0, at(i, 0), at(j, 0))
		for k := 1; k < perSpoke; k++ {
			s.indices = append(s.indices,
				at(i, k-1), at(i, k), at(j, k),
				at(i, k-1), at(j, k), at(j, k-1),
			)
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

func vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 0xff,
		ColorG: float32(c.G) / 0xff,
		ColorB: float32(c.B) / 0xff,
		ColorA: float32(c.A) / 0xff,
	}
}
