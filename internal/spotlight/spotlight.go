// Package spotlight follows the pointer with a soft glow and publishes its
// position as the --x/--y pair overlays use for spotlight and mask effects.
package spotlight

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
)

const component = "spotlight"

var glowColor = color.NRGBA{R: 139, G: 92, B: 246, A: 0xff}

type Options struct {
	Logger   logging.Logger
	Surfaces canvas.Provider
	// FPS is the expected frame rate the spring is tuned for.
	FPS int
}

// Glow eases toward the last pointer position with a critically damped spring.
type Glow struct {
	log      logging.Logger
	surfaces canvas.Provider
	spring   harmonica.Spring

	rt            host.Runtime
	surface       canvas.Surface
	frame         host.FrameID
	removeResize  func()
	removePointer func()
	mounted       bool

	x, y   float64
	vx, vy float64
	tx, ty float64
	moved  bool
}

func New(opts Options) *Glow {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	surfaces := opts.Surfaces
	if surfaces == nil {
		surfaces = canvas.RasterProvider
	}
	return &Glow{
		log:      logging.OrNoop(opts.Logger),
		surfaces: surfaces,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), config.SpotlightFrequency, config.SpotlightDamping),
	}
}

func (g *Glow) Mount(rt host.Runtime) {
	if g.mounted {
		return
	}
	w, h := rt.Size()
	surf, err := g.surfaces.NewSurface(w, h)
	if err != nil {
		g.log.Infof(component, "no drawable surface, staying static: %v", err)
		return
	}
	g.rt = rt
	g.surface = surf
	g.mounted = true
	g.x, g.y = float64(w)/2, float64(h)/2
	g.tx, g.ty = g.x, g.y
	g.vx, g.vy = 0, 0

	g.removeResize = rt.OnResize(g.Resize)
	g.removePointer = rt.OnPointerMove(g.PointerMove)
	g.frame = rt.RequestFrame(g.onFrame)
}

func (g *Glow) Unmount() {
	if !g.mounted {
		return
	}
	g.mounted = false
	g.rt.CancelFrame(g.frame)
	g.frame = 0
	g.removeResize()
	g.removePointer()
	g.removeResize, g.removePointer = nil, nil
}

func (g *Glow) Mounted() bool { return g.mounted }

func (g *Glow) Surface() canvas.Surface {
	if !g.mounted {
		return nil
	}
	return g.surface
}

// Resize resizes the surface; until the pointer has moved the glow stays
// centered.
func (g *Glow) Resize(width, height int) {
	if !g.mounted {
		return
	}
	g.surface.Resize(width, height)
	if !g.moved {
		g.tx, g.ty = float64(width)/2, float64(height)/2
	}
}

// PointerMove sets the target in container coordinates.
func (g *Glow) PointerMove(x, y float64) {
	if !g.mounted {
		return
	}
	g.tx, g.ty = x, y
	g.moved = true
}

func (g *Glow) onFrame(now time.Duration) {
	if !g.mounted {
		return
	}
	g.Tick(now)
	g.frame = g.rt.RequestFrame(g.onFrame)
}

// Tick steps the spring one frame and repaints the glow.
func (g *Glow) Tick(time.Duration) {
	if !g.mounted {
		return
	}
	g.x, g.vx = g.spring.Update(g.x, g.vx, g.tx)
	g.y, g.vy = g.spring.Update(g.y, g.vy, g.ty)

	g.surface.Clear()
	g.surface.FillRadial(g.x, g.y, config.SpotlightRadius, canvas.Gradient{
		CX:     g.x,
		CY:     g.y,
		Radius: config.SpotlightRadius,
		Stops: []canvas.Stop{
			{Offset: 0, Color: canvas.WithAlpha(glowColor, 0.15)},
			{Offset: 1, Color: canvas.WithAlpha(glowColor, 0)},
		},
		Alpha: 1,
	})
}

// Position is the smoothed glow center.
func (g *Glow) Position() (x, y float64) { return g.x, g.y }

// Vars returns the custom-property pair consumed by overlays.
func (g *Glow) Vars() map[string]string {
	return map[string]string{
		"--x": fmt.Sprintf("%.0fpx", g.x),
		"--y": fmt.Sprintf("%.0fpx", g.y),
	}
}
