// Package scene assembles the ambient layers a host renders, bottom first.
package scene

import (
	"fmt"
	"math/rand"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
	"github.com/sentinent/landing/internal/smoke"
	"github.com/sentinent/landing/internal/spotlight"
	"github.com/sentinent/landing/internal/starfield"
)

// Layer is a mountable component owning one surface.
type Layer interface {
	Mount(rt host.Runtime)
	Unmount()
	Mounted() bool
	Surface() canvas.Surface
}

type Options struct {
	Kind     string
	Logger   logging.Logger
	Rand     *rand.Rand
	Surfaces canvas.Provider
	// Level feeds soundtrack loudness to the star field; may be nil.
	Level func() float64
	FPS   int
}

type Scene struct {
	kind   string
	layers []Layer
	glow   *spotlight.Glow
}

// New builds the layer stack for opts.Kind:
//
//	cosmic: star field, spotlight
//	smoke:  page gradient, smoke, spotlight
func New(opts Options) (*Scene, error) {
	s := &Scene{kind: opts.Kind}
	s.glow = spotlight.New(spotlight.Options{Logger: opts.Logger, Surfaces: opts.Surfaces, FPS: opts.FPS})

	switch opts.Kind {
	case config.SceneCosmic:
		s.layers = []Layer{
			starfield.New(starfield.Options{Logger: opts.Logger, Rand: opts.Rand, Surfaces: opts.Surfaces, Level: opts.Level}),
			s.glow,
		}
	case config.SceneSmoke:
		s.layers = []Layer{
			NewBackdrop(opts.Logger, opts.Surfaces),
			smoke.New(smoke.Options{Logger: opts.Logger, Rand: opts.Rand, Surfaces: opts.Surfaces}),
			s.glow,
		}
	default:
		return nil, fmt.Errorf("scene: unknown kind %q", opts.Kind)
	}
	return s, nil
}

func (s *Scene) Kind() string { return s.kind }

func (s *Scene) Mount(rt host.Runtime) {
	for _, l := range s.layers {
		l.Mount(rt)
	}
}

// Unmount tears layers down top first.
func (s *Scene) Unmount() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].Unmount()
	}
}

// Surfaces returns the surfaces of mounted layers, bottom first. Layers that
// could not get a surface are simply absent.
func (s *Scene) Surfaces() []canvas.Surface {
	out := make([]canvas.Surface, 0, len(s.layers))
	for _, l := range s.layers {
		if surf := l.Surface(); surf != nil {
			out = append(out, surf)
		}
	}
	return out
}

func (s *Scene) Layers() []Layer { return s.layers }

func (s *Scene) Spotlight() *spotlight.Glow { return s.glow }
