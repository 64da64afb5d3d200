// Package starfield renders the night-sky backdrop: drifting, twinkling stars
// over a few slowly rotating nebulae.
package starfield

import (
	"math/rand"
	"time"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
)

const component = "starfield"

type Options struct {
	Logger   logging.Logger
	Rand     *rand.Rand
	Surfaces canvas.Provider
	// Level returns the current soundtrack loudness in [0,1]; nil is silence.
	Level func() float64
}

// Field is the star field layer. It owns its surface, its stars and nebulae,
// and at most one pending frame request.
type Field struct {
	log      logging.Logger
	rng      *rand.Rand
	surfaces canvas.Provider
	level    func() float64

	rt           host.Runtime
	surface      canvas.Surface
	frame        host.FrameID
	removeResize func()
	mounted      bool

	last    time.Duration
	started bool

	stars   []Star
	nebulae []Nebula
}

func New(opts Options) *Field {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	surfaces := opts.Surfaces
	if surfaces == nil {
		surfaces = canvas.RasterProvider
	}
	return &Field{
		log:      logging.OrNoop(opts.Logger),
		rng:      rng,
		surfaces: surfaces,
		level:    opts.Level,
	}
}

// Mount attaches the field to rt. Without a drawable surface the field stays
// inert: nothing is scheduled and nothing is drawn.
func (f *Field) Mount(rt host.Runtime) {
	if f.mounted {
		return
	}
	w, h := rt.Size()
	surf, err := f.surfaces.NewSurface(w, h)
	if err != nil {
		f.log.Infof(component, "no drawable surface, staying static: %v", err)
		return
	}
	f.rt = rt
	f.surface = surf
	f.mounted = true
	f.started = false
	f.regenerate(w, h)
	f.removeResize = rt.OnResize(f.Resize)
	f.frame = rt.RequestFrame(f.onFrame)
	f.log.Infof(component, "mounted %dx%d with %d stars, %d nebulae", w, h, len(f.stars), len(f.nebulae))
}

// Unmount cancels the pending frame and detaches the resize listener.
func (f *Field) Unmount() {
	if !f.mounted {
		return
	}
	f.mounted = false
	f.rt.CancelFrame(f.frame)
	f.frame = 0
	if f.removeResize != nil {
		f.removeResize()
		f.removeResize = nil
	}
	f.log.Infof(component, "unmounted")
}

func (f *Field) Mounted() bool { return f.mounted }

// Surface is the layer the field paints into, nil when not mounted.
func (f *Field) Surface() canvas.Surface {
	if !f.mounted {
		return nil
	}
	return f.surface
}

// Resize resizes the surface and rebuilds every star and nebula.
func (f *Field) Resize(width, height int) {
	if !f.mounted {
		return
	}
	f.surface.Resize(width, height)
	f.regenerate(width, height)
	f.log.Infof(component, "resized to %dx%d, %d stars", width, height, len(f.stars))
}

func (f *Field) regenerate(width, height int) {
	if width <= 0 || height <= 0 {
		f.stars, f.nebulae = nil, nil
		return
	}
	f.stars = generateStars(f.rng, width, height)
	f.nebulae = generateNebulae(f.rng, width, height)
}

func (f *Field) onFrame(now time.Duration) {
	if !f.mounted {
		return
	}
	f.Tick(now)
	f.frame = f.rt.RequestFrame(f.onFrame)
}

// Tick advances the simulation to now and redraws. The first tick has a zero
// delta; a delta above the stall threshold leaves state and surface alone.
func (f *Field) Tick(now time.Duration) {
	if !f.mounted {
		return
	}
	if !f.started {
		f.last = now
		f.started = true
	}
	dt := float64(now-f.last) / float64(time.Millisecond)
	f.last = now
	if dt > config.MaxFrameDeltaMs {
		return
	}

	w, h := f.surface.Size()
	f.surface.FillRect(0, 0, float64(w), float64(h), colorBlack)

	boost := 0.0
	if f.level != nil {
		boost = f.level()
	}
	for i := range f.nebulae {
		n := &f.nebulae[i]
		n.Rotation += config.NebulaRotationRate * dt
		drawNebula(f.surface, n, boost)
	}

	organic := w > config.OrganicMotionWidth
	ms := float64(now) / float64(time.Millisecond)
	for i := range f.stars {
		s := &f.stars[i]
		s.advance(dt, ms, organic, float64(w), float64(h))
		drawStar(f.surface, s)
	}
}

// Stars returns a copy of the current stars.
func (f *Field) Stars() []Star {
	return append([]Star(nil), f.stars...)
}

// Nebulae returns a copy of the current nebulae.
func (f *Field) Nebulae() []Nebula {
	return append([]Nebula(nil), f.nebulae...)
}
