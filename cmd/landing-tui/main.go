// Command landing-tui previews a backdrop scene in the terminal using
// half-block cells.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
	"github.com/sentinent/landing/internal/scene"
)

type preview struct {
	screen tcell.Screen
	host   *host.Host
	scene  *scene.Scene
	frame  *image.RGBA
	start  time.Time
}

func newPreview(screen tcell.Screen, kind string, seed int64, fps int, log logging.Logger) (*preview, error) {
	cols, rows := screen.Size()
	h := host.New(cols*cellW, rows*cellH)
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
	p := &preview{screen: screen, host: h, scene: sc, start: time.Now()}
	p.resize(cols, rows)
	return p, nil
}

func (p *preview) resize(cols, rows int) {
	w, h := cols*cellW, rows*cellH
	p.frame = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	p.host.Resize(w, h)
}

// handle reports false when the preview should exit.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.host.MovePointer(float64(x*cellW+cellW/2), float64(y*cellH+cellH/2))
	case *tcell.EventResize:
		p.resize(p.screen.Size())
		p.screen.Sync()
	}
	return true
}

func (p *preview) draw() {
	p.host.Advance(time.Since(p.start))

	draw.Draw(p.frame, p.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	canvas.Compose(p.frame, p.scene.Surfaces()...)

	cols, rows := p.screen.Size()
	for i, c := range Downsample(p.frame, cols, rows) {
		style := tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(c.Top.R), int32(c.Top.G), int32(c.Top.B))).
			Background(tcell.NewRGBColor(int32(c.Bottom.R), int32(c.Bottom.G), int32(c.Bottom.B)))
		p.screen.SetContent(i%cols, i/cols, '▀', nil, style)
	}
	p.screen.Show()
}

func (p *preview) run(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handle(ev) {
				return
			}
		case <-ticker.C:
			p.draw()
		}
	}
}

func main() {
	fps := flag.Int("fps", config.DefaultHostFPS, config.FPSUsage)
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	kind := flag.String("scene", config.SceneCosmic, "backdrop to render: cosmic or smoke")
	flag.Parse()

	if err := config.CheckFPS(*fps); err != nil {
		fmt.Fprintln(os.Stderr, "landing-tui:", err)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "landing-tui:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "landing-tui:", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	p, err := newPreview(screen, *kind, *seed, *fps, logging.NoopLogger{})
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, "landing-tui:", err)
		os.Exit(2)
	}
	p.run(*fps)
	p.scene.Unmount()
	screen.Fini()
}
