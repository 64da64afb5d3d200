package main

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"time"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
	"github.com/sentinent/landing/internal/overlay"
	"github.com/sentinent/landing/internal/scene"
)

// kiosk renders a scene plus its overlay into an offscreen frame sized to
// the display.
type kiosk struct {
	host    *host.Host
	scene   *scene.Scene
	overlay *overlay.Overlay
	frame   *image.RGBA
}

func newKiosk(width, height int, kind string, seed int64, fps int, ov *overlay.Overlay, log logging.Logger) (*kiosk, error) {
	h := host.New(width, height)
	sc, err := scene.New(scene.Options{
		Kind:     kind,
		Logger:   log,
		Rand:     rand.New(rand.NewSource(seed)),
		Surfaces: canvas.RasterProvider,
		FPS:      fps,
	})
	if err != nil {
		return nil, err
	}
	sc.Mount(h)
	return &kiosk{
		host:    h,
		scene:   sc,
		overlay: ov,
		frame:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// render advances the scene to now and returns the composed frame.
func (k *kiosk) render(now time.Duration) *image.RGBA {
	k.host.Advance(now)
	draw.Draw(k.frame, k.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	canvas.Compose(k.frame, k.scene.Surfaces()...)
	if k.overlay != nil {
		k.overlay.Draw(k.frame)
	}
	return k.frame
}

func (k *kiosk) close() { k.scene.Unmount() }
