package starfield

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
)

var nebulaPalettes = [][3]color.NRGBA{
	{canvas.MustHex("#1a237e"), canvas.MustHex("#303f9f"), canvas.MustHex("#3949ab")},
	{canvas.MustHex("#4a148c"), canvas.MustHex("#6a1b9a"), canvas.MustHex("#7b1fa2")},
	{canvas.MustHex("#0d47a1"), canvas.MustHex("#1565c0"), canvas.MustHex("#1976d2")},
	{canvas.MustHex("#311b92"), canvas.MustHex("#4527a0"), canvas.MustHex("#512da8")},
	{canvas.MustHex("#003366"), canvas.MustHex("#004d99"), canvas.MustHex("#0066cc")},
	{canvas.MustHex("#2c1e4d"), canvas.MustHex("#4a3b7c"), canvas.MustHex("#6a5bac")},
}

// Nebula is a large, slowly rotating gradient blob.
type Nebula struct {
	X, Y     float64
	Radius   float64
	Palette  [3]color.NRGBA
	Density  float64
	Rotation float64
}

func generateNebulae(rng *rand.Rand, width, height int) []Nebula {
	n := config.NebulaMinCount + rng.Intn(config.NebulaMaxCount-config.NebulaMinCount+1)
	out := make([]Nebula, n)
	for i := range out {
		out[i] = Nebula{
			X:        rng.Float64() * float64(width),
			Y:        rng.Float64() * float64(height),
			Radius:   rng.Float64()*250 + 150,
			Palette:  nebulaPalettes[rng.Intn(len(nebulaPalettes))],
			Density:  rng.Float64()*0.6 + 0.2,
			Rotation: rng.Float64() * 2 * math.Pi,
		}
	}
	return out
}

// Outline is the nebula's organic closed shape: a loop of cubic curves whose
// radius swells three times per turn, rotated by the current rotation.
func (n *Nebula) Outline() *canvas.Path {
	var p canvas.Path
	for i := 0; i < config.NebulaOutlinePts; i++ {
		angle := float64(i) / config.NebulaOutlinePts * 2 * math.Pi
		r := n.Radius * (0.7 + math.Sin(angle*3)*0.3)
		x := n.X + math.Cos(angle)*r
		y := n.Y + math.Sin(angle)*r
		if i == 0 {
			p.MoveTo(x, y)
			continue
		}
		p.CubicTo(
			n.X+math.Cos(angle-0.1)*r*0.9, n.Y+math.Sin(angle-0.1)*r*0.9,
			n.X+math.Cos(angle+0.1)*r*0.9, n.Y+math.Sin(angle+0.1)*r*0.9,
			x, y,
		)
	}
	p.Close()
	p.Rotate(n.X, n.Y, n.Rotation)
	return &p
}

// Gradient is the nebula fill at the given boost (soundtrack level, 0 when
// silent).
func (n *Nebula) Gradient(boost float64) canvas.Gradient {
	return canvas.Gradient{
		CX:     n.X,
		CY:     n.Y,
		Radius: n.Radius,
		Stops: []canvas.Stop{
			{Offset: 0, Color: n.Palette[0]},
			{Offset: 0.5, Color: n.Palette[1]},
			{Offset: 1, Color: n.Palette[2]},
		},
		Alpha: n.Density * config.NebulaAlpha * (1 + 0.5*canvas.Clamp01(boost)),
	}
}
