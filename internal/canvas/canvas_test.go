package canvas

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#aaddff", color.NRGBA{0xaa, 0xdd, 0xff, 0xff}, false},
		{"ffddaa", color.NRGBA{0xff, 0xdd, 0xaa, 0xff}, false},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Hex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Hex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckSize(t *testing.T) {
	if err := CheckSize(10, 10); err != nil {
		t.Errorf("CheckSize(10,10) = %v", err)
	}
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if err := CheckSize(sz[0], sz[1]); !errors.Is(err, ErrNoSurface) {
			t.Errorf("CheckSize(%d,%d) = %v, want ErrNoSurface", sz[0], sz[1], err)
		}
	}
}

func TestGradientAt(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	g := Gradient{
		Radius: 100,
		Stops:  []Stop{{0, red}, {0.5, red}, {1, Transparent}},
		Alpha:  1,
	}

	if got := g.At(0); got != red {
		t.Errorf("center = %v, want %v", got, red)
	}
	if got := g.At(50); got != red {
		t.Errorf("mid stop = %v, want %v", got, red)
	}
	if got := g.At(150); got.A != 0 {
		t.Errorf("beyond radius alpha = %d, want 0", got.A)
	}
	// Fading to transparent keeps the hue instead of darkening toward black.
	got := g.At(75)
	if got.R != 255 || got.G != 0 {
		t.Errorf("fade color = %v, want pure red channel", got)
	}
	if got.A < 120 || got.A > 135 {
		t.Errorf("fade alpha = %d, want about half", got.A)
	}

	g.Alpha = 0.5
	if got := g.At(0); got.A != 128 {
		t.Errorf("alpha-scaled center A = %d, want 128", got.A)
	}
}

func TestWithAlphaClamps(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 200}
	if got := WithAlpha(c, 1.2); got.A != 200 {
		t.Errorf("WithAlpha(>1) A = %d, want 200", got.A)
	}
	if got := WithAlpha(c, -1); got.A != 0 {
		t.Errorf("WithAlpha(<0) A = %d, want 0", got.A)
	}
}

func TestPathFlattenAndRotate(t *testing.T) {
	var p Path
	p.MoveTo(10, 0)
	p.CubicTo(10, 5, 5, 10, 0, 10)
	p.LineTo(0, 0)
	p.Close()

	pts := p.Flatten(4)
	if len(pts) != 6 {
		t.Fatalf("got %d points, want 6: %v", len(pts), pts)
	}
	if pts[4] != (Point{0, 10}) {
		t.Errorf("curve end = %v, want (0,10)", pts[4])
	}

	p.Rotate(0, 0, math.Pi/2)
	rot := p.Flatten(4)
	if math.Abs(rot[0].X) > 1e-9 || math.Abs(rot[0].Y-10) > 1e-9 {
		t.Errorf("rotated start = %v, want (0,10)", rot[0])
	}
}

func TestRasterFillRect(t *testing.T) {
	r := NewRaster(4, 4)
	r.FillRect(0, 0, 4, 4, color.NRGBA{0, 0, 0, 255})
	r.FillRect(1, 1, 2, 2, color.NRGBA{255, 0, 0, 255})

	if got := r.Image().RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("corner = %v, want black", got)
	}
	if got := r.Image().RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inner = %v, want red", got)
	}

	// Translucent fills accumulate toward the fill color.
	r.Clear()
	for i := 0; i < 60; i++ {
		r.FillRect(0, 0, 4, 4, RGBA(10, 10, 20, 0.1))
	}
	if a := r.Image().RGBAAt(2, 2).A; a < 250 {
		t.Errorf("trail alpha after 60 fills = %d, want near opaque", a)
	}
}

func TestRasterFillCircle(t *testing.T) {
	r := NewRaster(20, 20)
	r.FillCircle(10, 10, 5, color.NRGBA{255, 255, 255, 255})

	if got := r.Image().RGBAAt(10, 10); got.A != 255 {
		t.Errorf("center alpha = %d, want 255", got.A)
	}
	if got := r.Image().RGBAAt(1, 1); got.A != 0 {
		t.Errorf("outside alpha = %d, want 0", got.A)
	}
}

func TestRasterClipsPartiallyVisibleShapes(t *testing.T) {
	r := NewRaster(10, 10)
	white := color.NRGBA{255, 255, 255, 255}
	r.FillCircle(0, 0, 6, white)
	r.FillCircle(100, 100, 6, white)
	r.FillRadial(10, 10, 8, Gradient{CX: 10, CY: 10, Radius: 8, Stops: []Stop{{0, white}, {1, white}}, Alpha: 1})

	if got := r.Image().RGBAAt(1, 1); got.A == 0 {
		t.Error("corner of clipped circle not painted")
	}
	if got := r.Image().RGBAAt(9, 9); got.A == 0 {
		t.Error("corner of clipped radial not painted")
	}
	if got := r.Image().RGBAAt(9, 0); got.A != 0 {
		t.Errorf("pixel outside both shapes painted: %v", got)
	}
}

func TestRasterFillShapeGradient(t *testing.T) {
	r := NewRaster(40, 40)
	g := Gradient{
		CX: 20, CY: 20, Radius: 20,
		Stops: []Stop{{0, color.NRGBA{255, 0, 0, 255}}, {1, color.NRGBA{0, 0, 255, 255}}},
		Alpha: 1,
	}
	r.FillShape(CirclePoints(20, 20, 18, 32), g)

	center := r.Image().RGBAAt(20, 20)
	edge := r.Image().RGBAAt(20, 3)
	if center.R <= center.B {
		t.Errorf("center = %v, want red dominant", center)
	}
	if edge.B <= edge.R {
		t.Errorf("edge = %v, want blue dominant", edge)
	}
}

func TestRasterProviderRejectsEmpty(t *testing.T) {
	if _, err := RasterProvider.NewSurface(0, 100); !errors.Is(err, ErrNoSurface) {
		t.Errorf("NewSurface(0,100) err = %v, want ErrNoSurface", err)
	}
	s, err := RasterProvider.NewSurface(30, 20)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if w, h := s.Size(); w != 30 || h != 20 {
		t.Errorf("size = %dx%d, want 30x20", w, h)
	}
	s.Resize(50, 60)
	if w, h := s.Size(); w != 50 || h != 60 {
		t.Errorf("resized = %dx%d, want 50x60", w, h)
	}
}

func TestCompose(t *testing.T) {
	bottom := NewRaster(2, 2)
	bottom.FillRect(0, 0, 2, 2, color.NRGBA{0, 0, 255, 255})
	top := NewRaster(2, 2)
	top.FillRect(0, 0, 1, 1, color.NRGBA{255, 0, 0, 255})

	dst := NewRaster(2, 2)
	Compose(dst.Image(), bottom, NewRecorder(2, 2), top)

	if got := dst.Image().RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("(0,0) = %v, want red", got)
	}
	if got := dst.Image().RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("(1,1) = %v, want blue", got)
	}
}
