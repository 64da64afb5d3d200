package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
)

type fakeSound struct {
	played  []string
	playErr error
	paused  bool
	closed  int
	level   float64
}

func (f *fakeSound) Play(path string) error {
	if f.playErr != nil {
		return f.playErr
	}
	f.played = append(f.played, path)
	return nil
}
func (f *fakeSound) TogglePause()            { f.paused = !f.paused }
func (f *fakeSound) Paused() bool            { return f.paused }
func (f *fakeSound) Level() float64          { return f.level }
func (f *fakeSound) Position() time.Duration { return 75 * time.Second }
func (f *fakeSound) Close() error            { f.closed++; return nil }
func (f *fakeSound) Track() string {
	if len(f.played) == 0 {
		return ""
	}
	return f.played[len(f.played)-1]
}

func testConfig(scene string) config.Config {
	return config.Config{Width: 320, Height: 200, Scene: scene, Seed: 7}
}

func newTestGame(t *testing.T, cfg config.Config, sound *fakeSound, pick func() (string, error)) (*Game, **canvas.Recorder) {
	t.Helper()
	var last *canvas.Recorder
	g, err := New(Options{
		Config:     cfg,
		Surfaces:   canvas.RecorderProvider(&last),
		Soundtrack: sound,
		PickFile:   pick,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, &last
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"unknown scene", config.Config{Width: 10, Height: 10, Scene: "rain"}},
		{"empty window", config.Config{Scene: config.SceneCosmic}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(Options{Config: tt.cfg, Soundtrack: &fakeSound{}}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewMountsScene(t *testing.T) {
	for _, kind := range []string{config.SceneCosmic, config.SceneSmoke} {
		t.Run(kind, func(t *testing.T) {
			g, _ := newTestGame(t, testConfig(kind), &fakeSound{}, nil)
			for _, l := range g.Scene().Layers() {
				if !l.Mounted() {
					t.Errorf("%T not mounted", l)
				}
			}
			if g.Host().Pending() == 0 {
				t.Error("no frame requested after mount")
			}
		})
	}
}

func TestStartupSoundtrack(t *testing.T) {
	cfg := testConfig(config.SceneCosmic)
	cfg.Soundtrack = "ambient.flac"

	sound := &fakeSound{}
	g, _ := newTestGame(t, cfg, sound, nil)
	if len(sound.played) != 1 || sound.played[0] != "ambient.flac" {
		t.Fatalf("played = %v", sound.played)
	}
	if g.LastErr() != nil {
		t.Fatalf("lastErr = %v", g.LastErr())
	}

	failing := &fakeSound{playErr: errors.New("decode failed")}
	g, _ = newTestGame(t, cfg, failing, nil)
	if g.LastErr() == nil {
		t.Fatal("startup soundtrack error not kept")
	}
	if !strings.Contains(g.status(), "Error: decode failed") {
		t.Errorf("status = %q", g.status())
	}
}

func TestOpenSoundtrack(t *testing.T) {
	tests := []struct {
		name     string
		pick     func() (string, error)
		wantPlay bool
		wantErr  bool
	}{
		{"picked", func() (string, error) { return "rain.mp3", nil }, true, false},
		{"cancelled", func() (string, error) { return "", nil }, false, false},
		{"dialog failure", func() (string, error) { return "", errors.New("no display") }, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sound := &fakeSound{}
			g, _ := newTestGame(t, testConfig(config.SceneCosmic), sound, tt.pick)
			g.openSoundtrack()
			if got := len(sound.played) == 1; got != tt.wantPlay {
				t.Errorf("played = %v", sound.played)
			}
			if got := g.LastErr() != nil; got != tt.wantErr {
				t.Errorf("lastErr = %v", g.LastErr())
			}
		})
	}
}

func TestLayoutResizesViewport(t *testing.T) {
	g, last := newTestGame(t, testConfig(config.SceneCosmic), &fakeSound{}, nil)
	glow := *last

	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Fatalf("Layout = %dx%d", w, h)
	}
	if hw, hh := g.Host().Size(); hw != 640 || hh != 480 {
		t.Errorf("host size = %dx%d", hw, hh)
	}
	if glow.W != 640 || glow.H != 480 || glow.Resizes != 1 {
		t.Errorf("top surface %dx%d after %d resizes", glow.W, glow.H, glow.Resizes)
	}

	g.Layout(640, 480)
	if glow.Resizes != 1 {
		t.Errorf("unchanged layout resized again (%d)", glow.Resizes)
	}

	w, h = g.Layout(0, 0)
	if w != 640 || h != 480 {
		t.Errorf("empty layout = %dx%d, want last size", w, h)
	}
}

func TestPointerMovesOnlyOnChange(t *testing.T) {
	g, _ := newTestGame(t, testConfig(config.SceneCosmic), &fakeSound{}, nil)
	moves := 0
	g.Host().OnPointerMove(func(x, y float64) { moves++ })

	g.pointer(10, 20)
	g.pointer(10, 20)
	g.pointer(11, 20)
	if moves != 2 {
		t.Fatalf("moves = %d, want 2", moves)
	}
}

func TestStatus(t *testing.T) {
	sound := &fakeSound{level: 0.5}
	g, _ := newTestGame(t, testConfig(config.SceneSmoke), sound, nil)

	if s := g.status(); !strings.Contains(s, "smoke") || !strings.Contains(s, "O: open soundtrack") || !strings.Contains(s, "--x ") {
		t.Errorf("idle status = %q", s)
	}
	g.play("drone.wav")
	if s := g.status(); !strings.Contains(s, "01:15 level 0.50") {
		t.Errorf("playing status = %q", s)
	}
	sound.TogglePause()
	if s := g.status(); !strings.Contains(s, "paused 01:15") {
		t.Errorf("paused status = %q", s)
	}
}

func TestClose(t *testing.T) {
	sound := &fakeSound{}
	g, _ := newTestGame(t, testConfig(config.SceneCosmic), sound, nil)
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if sound.closed != 1 {
		t.Errorf("soundtrack closed %d times", sound.closed)
	}
	for _, l := range g.Scene().Layers() {
		if l.Mounted() {
			t.Errorf("%T still mounted", l)
		}
	}
	if g.Host().Pending() != 0 {
		t.Errorf("pending frames = %d after close", g.Host().Pending())
	}
	resize, pointer := g.Host().Listeners()
	if resize != 0 || pointer != 0 {
		t.Errorf("listeners left: resize=%d pointer=%d", resize, pointer)
	}
}

func TestRadialRingsCoverStops(t *testing.T) {
	g := canvas.Gradient{Radius: 10, Stops: []canvas.Stop{{Offset: 0}, {Offset: 0.5}, {Offset: 1}}}
	rings := radialRings(g, 10)
	if len(rings) != 2*gradientSteps {
		t.Fatalf("rings = %d, want %d", len(rings), 2*gradientSteps)
	}
	if rings[gradientSteps-1] != 0.5 || rings[len(rings)-1] != 1 {
		t.Errorf("rings = %v", rings)
	}
	for i := 1; i < len(rings); i++ {
		if rings[i] <= rings[i-1] {
			t.Fatalf("rings not increasing: %v", rings)
		}
	}

	// a gradient wider than the disc only contributes stops inside it
	wide := canvas.Gradient{Radius: 20, Stops: []canvas.Stop{{Offset: 0}, {Offset: 0.25}, {Offset: 1}}}
	rings = radialRings(wide, 10)
	if len(rings) != 2*gradientSteps || rings[len(rings)-1] != 1 {
		t.Errorf("wide rings = %v", rings)
	}
}
