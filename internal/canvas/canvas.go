// Package canvas defines the drawing surface the ambient layers paint into
// and a software implementation of it.
package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrNoSurface is returned by a Provider when no drawable surface can be
// obtained.
var ErrNoSurface = errors.New("canvas: no drawable surface")

// Surface is a 2D drawing target owned by one layer. All colors are straight
// (non-premultiplied) alpha.
type Surface interface {
	Size() (width, height int)
	// Resize changes the surface size and clears its content.
	Resize(width, height int)
	// Clear makes every pixel fully transparent.
	Clear()
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	// FillRadial fills the disc of radius r around (cx, cy) with g.
	FillRadial(cx, cy, r float64, g Gradient)
	// FillShape fills the closed outline with g. The outline must be
	// star-shaped around the gradient center.
	FillShape(outline []Point, g Gradient)
}

// Provider hands out surfaces.
type Provider interface {
	NewSurface(width, height int) (Surface, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(width, height int) (Surface, error)

func (f ProviderFunc) NewSurface(width, height int) (Surface, error) { return f(width, height) }

// CheckSize reports ErrNoSurface for sizes no backend can allocate.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrNoSurface, width, height)
	}
	return nil
}

// Stop is one color stop of a radial gradient; Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a radial gradient centered at (CX, CY). Alpha multiplies every
// stop, like a global alpha on the drawing context.
type Gradient struct {
	CX, CY float64
	Radius float64
	Stops  []Stop
	Alpha  float64
}

// At returns the gradient color at distance d from the center. Stops are
// interpolated in premultiplied space so fading to transparent does not
// darken the color.
func (g Gradient) At(d float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	t := 0.0
	if g.Radius > 0 {
		t = d / g.Radius
	}
	var c color.NRGBA
	switch {
	case t <= g.Stops[0].Offset:
		c = g.Stops[0].Color
	case t >= g.Stops[len(g.Stops)-1].Offset:
		c = g.Stops[len(g.Stops)-1].Color
	default:
		for i := 1; i < len(g.Stops); i++ {
			a, b := g.Stops[i-1], g.Stops[i]
			if t > b.Offset {
				continue
			}
			span := b.Offset - a.Offset
			f := 0.0
			if span > 0 {
				f = (t - a.Offset) / span
			}
			c = lerpPremul(a.Color, b.Color, f)
			break
		}
	}
	return WithAlpha(c, g.Alpha)
}

// ColorAt returns the gradient color at pixel position (x, y).
func (g Gradient) ColorAt(x, y float64) color.NRGBA {
	return g.At(math.Hypot(x-g.CX, y-g.CY))
}

func lerpPremul(a, b color.NRGBA, f float64) color.NRGBA {
	aa, ba := float64(a.A)/255, float64(b.A)/255
	alpha := aa + (ba-aa)*f
	if alpha <= 0 {
		return color.NRGBA{}
	}
	ch := func(x, y uint8) uint8 {
		pa := float64(x) * aa
		pb := float64(y) * ba
		return clampByte((pa + (pb-pa)*f) / alpha)
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: clampByte(alpha * 255)}
}

// WithAlpha scales the alpha channel of c by a, clamped to [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = clampByte(float64(c.A) * Clamp01(a))
	return c
}

// RGBA builds a color from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: clampByte(Clamp01(a) * 255)}
}

// Hex parses "#rrggbb" or "#rgb" into an opaque color.
func Hex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("canvas: bad hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("canvas: bad hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is Hex for package-level palettes.
func MustHex(s string) color.NRGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Transparent is rgba(0,0,0,0).
var Transparent = color.NRGBA{}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
