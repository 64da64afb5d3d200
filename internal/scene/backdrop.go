package scene

import (
	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
)

// pageGradient is the page background behind the smoke: top to bottom.
var pageGradient = []canvas.Stop{
	{Offset: 0, Color: canvas.MustHex("#0a0a14")},
	{Offset: 0.5, Color: canvas.MustHex("#0f0f1e")},
	{Offset: 1, Color: canvas.MustHex("#1a1a2e")},
}

// Backdrop is a static vertical gradient repainted only on resize.
type Backdrop struct {
	log      logging.Logger
	surfaces canvas.Provider

	surface      canvas.Surface
	removeResize func()
	mounted      bool
}

func NewBackdrop(log logging.Logger, surfaces canvas.Provider) *Backdrop {
	if surfaces == nil {
		surfaces = canvas.RasterProvider
	}
	return &Backdrop{log: logging.OrNoop(log), surfaces: surfaces}
}

func (b *Backdrop) Mount(rt host.Runtime) {
	if b.mounted {
		return
	}
	w, h := rt.Size()
	surf, err := b.surfaces.NewSurface(w, h)
	if err != nil {
		b.log.Infof("backdrop", "no drawable surface, staying static: %v", err)
		return
	}
	b.surface = surf
	b.mounted = true
	b.paint()
	b.removeResize = rt.OnResize(b.Resize)
}

func (b *Backdrop) Unmount() {
	if !b.mounted {
		return
	}
	b.mounted = false
	b.removeResize()
	b.removeResize = nil
}

func (b *Backdrop) Mounted() bool { return b.mounted }

func (b *Backdrop) Surface() canvas.Surface {
	if !b.mounted {
		return nil
	}
	return b.surface
}

func (b *Backdrop) Resize(width, height int) {
	if !b.mounted {
		return
	}
	b.surface.Resize(width, height)
	b.paint()
}

func (b *Backdrop) paint() {
	w, h := b.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	g := canvas.Gradient{Radius: float64(h - 1), Stops: pageGradient, Alpha: 1}
	for y := 0; y < h; y++ {
		b.surface.FillRect(0, float64(y), float64(w), 1, g.At(float64(y)))
	}
}
