// Package smoke renders soft colored puffs that rise, drift and fade over a
// translucent clear that leaves motion trails.
package smoke

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
)

const component = "smoke"

var palette = []color.NRGBA{
	canvas.RGBA(59, 130, 246, 0.8),
	canvas.RGBA(147, 51, 234, 0.8),
	canvas.RGBA(99, 102, 241, 0.8),
	canvas.RGBA(79, 70, 229, 0.8),
	canvas.RGBA(139, 92, 246, 0.8),
}

var trailColor = canvas.RGBA(10, 10, 20, config.SmokeTrailAlpha)

// Particle is one smoke puff. Life counts frames.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Life    float64
	MaxLife float64
	Color   color.NRGBA
}

type Options struct {
	Logger   logging.Logger
	Rand     *rand.Rand
	Surfaces canvas.Provider
}

// Layer is the smoke layer. Its simulation is frame based: each tick is one
// step regardless of wall-clock time.
type Layer struct {
	log      logging.Logger
	rng      *rand.Rand
	surfaces canvas.Provider

	rt           host.Runtime
	surface      canvas.Surface
	frame        host.FrameID
	removeResize func()
	mounted      bool

	particles []Particle
}

func New(opts Options) *Layer {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	surfaces := opts.Surfaces
	if surfaces == nil {
		surfaces = canvas.RasterProvider
	}
	return &Layer{
		log:      logging.OrNoop(opts.Logger),
		rng:      rng,
		surfaces: surfaces,
	}
}

// Mount acquires a surface, seeds the initial puffs across the viewport and
// starts the frame loop. Without a surface the layer stays inert.
func (l *Layer) Mount(rt host.Runtime) {
	if l.mounted {
		return
	}
	w, h := rt.Size()
	surf, err := l.surfaces.NewSurface(w, h)
	if err != nil {
		l.log.Infof(component, "no drawable surface, staying static: %v", err)
		return
	}
	l.rt = rt
	l.surface = surf
	l.mounted = true

	l.particles = make([]Particle, 0, config.SmokeMaxCount)
	for i := 0; i < config.SmokeInitialCount; i++ {
		x := l.rng.Float64() * float64(w)
		y := l.rng.Float64() * float64(h)
		l.particles = append(l.particles, l.newParticle(x, y))
	}

	l.removeResize = rt.OnResize(l.Resize)
	l.frame = rt.RequestFrame(l.onFrame)
	l.log.Infof(component, "mounted %dx%d with %d puffs", w, h, len(l.particles))
}

func (l *Layer) Unmount() {
	if !l.mounted {
		return
	}
	l.mounted = false
	l.rt.CancelFrame(l.frame)
	l.frame = 0
	if l.removeResize != nil {
		l.removeResize()
		l.removeResize = nil
	}
	l.log.Infof(component, "unmounted")
}

func (l *Layer) Mounted() bool { return l.mounted }

func (l *Layer) Surface() canvas.Surface {
	if !l.mounted {
		return nil
	}
	return l.surface
}

// Resize only resizes the surface. Live puffs keep their coordinates and
// drift into the new bounds on their own.
func (l *Layer) Resize(width, height int) {
	if !l.mounted {
		return
	}
	l.surface.Resize(width, height)
	l.log.Infof(component, "resized to %dx%d", width, height)
}

// Particles returns a copy of the live puffs.
func (l *Layer) Particles() []Particle {
	return append([]Particle(nil), l.particles...)
}

func (l *Layer) onFrame(now time.Duration) {
	if !l.mounted {
		return
	}
	l.Tick(now)
	l.frame = l.rt.RequestFrame(l.onFrame)
}

// Tick runs one simulation step and redraws.
func (l *Layer) Tick(time.Duration) {
	if !l.mounted {
		return
	}
	w, h := l.surface.Size()
	l.surface.FillRect(0, 0, float64(w), float64(h), trailColor)

	if len(l.particles) < config.SmokeMaxCount && l.rng.Float64() < config.SmokeSpawnChance {
		l.particles = append(l.particles, l.newParticle(l.rng.Float64()*float64(w), float64(h)+config.SmokeSpawnBelow))
	}

	live := l.particles[:0]
	for _, p := range l.particles {
		l.step(&p)
		if p.expired() {
			continue
		}
		drawPuff(l.surface, &p)
		live = append(live, p)
	}
	clear(l.particles[len(live):])
	l.particles = live
}

func (l *Layer) newParticle(x, y float64) Particle {
	return Particle{
		X:       x,
		Y:       y,
		VX:      (l.rng.Float64() - 0.5) * 0.8,
		VY:      -(l.rng.Float64()*1.5 + 0.5),
		Radius:  l.rng.Float64()*60 + 40,
		MaxLife: l.rng.Float64()*300 + 200,
		Color:   palette[l.rng.Intn(len(palette))],
	}
}

// step integrates, ages, applies the opacity envelope, then jitters and damps
// the velocity.
func (l *Layer) step(p *Particle) {
	p.X += p.VX
	p.Y += p.VY
	p.Life++
	p.Opacity = envelope(p.Life/p.MaxLife, p.Opacity)

	p.VX += (l.rng.Float64() - 0.5) * 0.05
	p.VY += (l.rng.Float64() - 0.5) * 0.03
	p.VX *= config.SmokeDamping
	p.VY *= config.SmokeDamping
}

// envelope maps life progress to opacity: a ramp up over the first fifth, a
// ramp down over the last fifth, and in between the previous value clamped
// to [0.1, 1].
func envelope(progress, prev float64) float64 {
	switch {
	case progress < 0.2:
		return progress * 5
	case progress > 0.8:
		return max(0, (1-progress)*5)
	default:
		return max(0.1, min(1, prev))
	}
}

func (p *Particle) expired() bool {
	return p.Life >= p.MaxLife || p.Y < config.SmokeEscapeY
}

func drawPuff(s canvas.Surface, p *Particle) {
	base := p.Color
	base.A = 0xff
	s.FillRadial(p.X, p.Y, p.Radius, canvas.Gradient{
		CX:     p.X,
		CY:     p.Y,
		Radius: p.Radius,
		Stops: []canvas.Stop{
			{Offset: 0, Color: canvas.WithAlpha(base, p.Opacity*0.4)},
			{Offset: 0.4, Color: canvas.WithAlpha(base, p.Opacity*0.2)},
			{Offset: 1, Color: canvas.WithAlpha(base, 0)},
		},
		Alpha: 1,
	})
}
