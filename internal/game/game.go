// Package game hosts a scene in an ebiten window: it drives the frame
// scheduler from the ebiten loop, forwards input and composites layers.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/host"
	"github.com/sentinent/landing/internal/logging"
	"github.com/sentinent/landing/internal/scene"
	"github.com/sentinent/landing/internal/soundtrack"
)

const component = "game"

// Soundtrack is the part of soundtrack.Player the window uses.
type Soundtrack interface {
	Play(path string) error
	TogglePause()
	Paused() bool
	Level() float64
	Position() time.Duration
	Track() string
	Close() error
}

type Options struct {
	Config config.Config
	Logger logging.Logger
	// Surfaces defaults to ebiten-backed layers.
	Surfaces canvas.Provider
	// Soundtrack defaults to a soundtrack.Player on the speaker.
	Soundtrack Soundtrack
	// PickFile defaults to the native file dialog.
	PickFile func() (string, error)
}

type Game struct {
	cfg    config.Config
	log    logging.Logger
	host   *host.Host
	scene  *scene.Scene
	sound  Soundtrack
	pick   func() (string, error)
	start  time.Time
	now    func() time.Duration
	closed bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	cursorX, cursorY int
	cursorSeen       bool

	lastErr error
}

// New builds the scene for cfg and mounts it at the configured window size.
// A soundtrack that fails to start is reported in the status line only.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	log := logging.OrNoop(opts.Logger)

	g := &Game{
		cfg:     cfg,
		log:     log,
		host:    host.New(cfg.Width, cfg.Height),
		sound:   opts.Soundtrack,
		pick:    opts.PickFile,
		start:   time.Now(),
		prevKey: map[ebiten.Key]bool{},
	}
	g.now = func() time.Duration { return time.Since(g.start) }
	if g.sound == nil {
		g.sound = soundtrack.NewPlayer(log)
	}
	if g.pick == nil {
		g.pick = soundtrack.PickFile
	}
	surfaces := opts.Surfaces
	if surfaces == nil {
		surfaces = Surfaces
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sc, err := scene.New(scene.Options{
		Kind:     cfg.Scene,
		Logger:   log,
		Rand:     rand.New(rand.NewSource(seed)),
		Surfaces: surfaces,
		Level:    g.sound.Level,
		FPS:      ebiten.DefaultTPS,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.scene = sc
	g.scene.Mount(g.host)
	log.Infof(component, "mounted %s scene at %dx%d seed=%d", cfg.Scene, cfg.Width, cfg.Height, seed)

	if cfg.Soundtrack != "" {
		g.play(cfg.Soundtrack)
	}
	return g, nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyO) {
		g.openSoundtrack()
	}
	if justPressed(ebiten.KeySpace) {
		g.sound.TogglePause()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	g.pointer(x, y)
	g.host.Advance(g.now())
	return nil
}

// pointer forwards cursor movement; a still cursor is not a move.
func (g *Game) pointer(x, y int) {
	if g.cursorSeen && x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY, g.cursorSeen = x, y, true
	g.host.MovePointer(float64(x), float64(y))
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, s := range g.scene.Surfaces() {
		if es, ok := s.(*Surface); ok && es.Image() != nil {
			screen.DrawImage(es.Image(), nil)
		}
	}
	if g.cfg.Debug || g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	}
}

// Layout keeps the logical screen equal to the window and turns window size
// changes into viewport resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.host.Size()
	}
	if w, h := g.host.Size(); w != outsideWidth || h != outsideHeight {
		g.log.Infof(component, "resize %dx%d -> %dx%d", w, h, outsideWidth, outsideHeight)
		g.host.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close unmounts the scene and stops the soundtrack.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.scene.Unmount()
	return g.sound.Close()
}

func (g *Game) Scene() *scene.Scene { return g.scene }

func (g *Game) Host() *host.Host { return g.host }

func (g *Game) LastErr() error { return g.lastErr }

func (g *Game) openSoundtrack() {
	path, err := g.pick()
	if err != nil {
		g.lastErr = fmt.Errorf("file dialog: %w", err)
		g.log.Errorf(component, "%v", g.lastErr)
		return
	}
	if path == "" {
		return
	}
	g.play(path)
}

func (g *Game) play(path string) {
	if err := g.sound.Play(path); err != nil {
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

func (g *Game) status() string {
	parts := []string{
		g.scene.Kind(),
		fmt.Sprintf("%.0f fps", ebiten.ActualFPS()),
	}
	switch {
	case g.sound.Track() == "":
		parts = append(parts, "O: open soundtrack")
	case g.sound.Paused():
		parts = append(parts, "paused "+soundtrack.FormatPosition(g.sound.Position()))
	default:
		parts = append(parts, fmt.Sprintf("%s level %.2f", soundtrack.FormatPosition(g.sound.Position()), g.sound.Level()))
	}
	vars := g.scene.Spotlight().Vars()
	parts = append(parts, "--x "+vars["--x"]+" --y "+vars["--y"])
	status := strings.Join(parts, " | ")
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}
