package starfield

import (
	"image/color"

	"github.com/sentinent/landing/internal/canvas"
)

var colorBlack = color.NRGBA{A: 0xff}

// curveSteps is how many line segments approximate each outline curve.
const curveSteps = 6

func drawNebula(s canvas.Surface, n *Nebula, boost float64) {
	s.FillShape(n.Outline().Flatten(curveSteps), n.Gradient(boost))
}

// drawStar paints a soft glow disc, then the twinkling core, then a bright
// center for the larger white and gold stars.
func drawStar(s canvas.Surface, st *Star) {
	c := st.Category.Color()
	s.FillRadial(st.X, st.Y, st.Radius*1.5, canvas.Gradient{
		CX:     st.X,
		CY:     st.Y,
		Radius: st.Radius * 3,
		Stops: []canvas.Stop{
			{Offset: 0, Color: c},
			{Offset: 0.6, Color: c},
			{Offset: 0.9, Color: canvas.Transparent},
			{Offset: 1, Color: canvas.Transparent},
		},
		Alpha: st.Opacity,
	})

	tw := st.twinkle()
	s.FillCircle(st.X, st.Y, st.Radius*0.6, canvas.WithAlpha(c, st.Opacity*tw))

	if st.Radius <= 1 {
		return
	}
	switch st.Category {
	case White, BrightWhite:
		s.FillCircle(st.X, st.Y, st.Radius*0.3, canvas.WithAlpha(colorWhite, st.Opacity*tw*0.3))
	case Gold:
		s.FillCircle(st.X, st.Y, st.Radius*0.2, canvas.WithAlpha(colorGoldHi, st.Opacity*tw*0.4))
	}
}
