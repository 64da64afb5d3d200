package starfield

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/sentinent/landing/internal/canvas"
	"github.com/sentinent/landing/internal/config"
)

// Category is the kind of star, fixed at creation.
type Category uint8

const (
	White Category = iota
	Blue
	Purple
	BrightWhite
	Gold
)

var categoryNames = [...]string{"white", "blue", "purple", "bright-white", "gold"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

var (
	colorWhite  = canvas.MustHex("#ffffff")
	colorBlue   = canvas.MustHex("#aaddff")
	colorPurple = canvas.MustHex("#ddaaff")
	colorGold   = canvas.MustHex("#ffddaa")
	colorGoldHi = canvas.MustHex("#ffcc66")
)

func (c Category) Color() color.NRGBA {
	switch c {
	case Blue:
		return colorBlue
	case Purple:
		return colorPurple
	case Gold:
		return colorGold
	default:
		return colorWhite
	}
}

// categoryTable maps a uniform draw to a category: 60% white, 20% blue,
// 10% purple, 5% bright white, 5% gold. Each row carries the glow range and
// size multiplier of its category.
var categoryTable = []struct {
	upTo      float64
	cat       Category
	glowMin   float64
	glowSpan  float64
	sizeScale float64
}{
	{0.60, White, 0.1, 0.5, 1},
	{0.80, Blue, 0.2, 0.7, 1},
	{0.90, Purple, 0.3, 0.6, 1},
	{0.95, BrightWhite, 0.3, 0.8, 1.2},
	{1.00, Gold, 0.4, 0.9, 1.3},
}

// Star is one twinkling point light.
type Star struct {
	X, Y         float64
	SpeedX       float64 // px per ms
	SpeedY       float64
	Radius       float64
	Category     Category
	Opacity      float64
	TwinklePhase float64
	TwinkleSpeed float64 // rad per ms
	Glow         float64
}

// StarCount is the number of stars for a viewport; narrow viewports use a
// sparser density.
func StarCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	density := config.StarDensity
	if width <= config.MobileWidth {
		density = config.StarDensityMobile
	}
	return int(math.Floor(float64(width) * float64(height) / density))
}

// generateStars builds a full star set. A quarter of the stars gather around
// a handful of anchors and drift slower.
func generateStars(rng *rand.Rand, width, height int) []Star {
	n := StarCount(width, height)
	if n == 0 {
		return nil
	}
	w, h := float64(width), float64(height)

	anchors := make([]canvas.Point, 3+rng.Intn(4))
	for i := range anchors {
		anchors[i] = canvas.Point{X: rng.Float64() * w, Y: rng.Float64() * h}
	}

	stars := make([]Star, n)
	for i := range stars {
		s := newStar(rng)
		if rng.Float64() < config.ClusterChance {
			a := anchors[rng.Intn(len(anchors))]
			s.X = wrap(a.X+(rng.Float64()-0.5)*config.ClusterSpread, w)
			s.Y = wrap(a.Y+(rng.Float64()-0.5)*config.ClusterSpread, h)
			s.Radius = rng.Float64()*2 + 1
			s.SpeedX *= config.ClusterSpeedFactor
			s.SpeedY *= config.ClusterSpeedFactor
		} else {
			s.X = rng.Float64() * w
			s.Y = rng.Float64() * h
		}
		stars[i] = s
	}
	return stars
}

func newStar(rng *rand.Rand) Star {
	size := rng.Float64()*1.5 + 0.5
	speed := rng.Float64()*0.1 + 0.05
	angle := rng.Float64() * 2 * math.Pi
	depth := rng.Float64()*0.5 + 0.75

	pick := rng.Float64()
	row := categoryTable[len(categoryTable)-1]
	for _, r := range categoryTable {
		if pick < r.upTo {
			row = r
			break
		}
	}

	return Star{
		SpeedX:       math.Cos(angle) * speed * depth,
		SpeedY:       math.Sin(angle) * speed * depth,
		Radius:       size * row.sizeScale,
		Category:     row.cat,
		Opacity:      rng.Float64()*0.8 + 0.2,
		TwinklePhase: rng.Float64() * 2 * math.Pi,
		TwinkleSpeed: rng.Float64()*0.0005 + 0.0001,
		Glow:         rng.Float64()*row.glowSpan + row.glowMin,
	}
}

// advance moves the star by dt milliseconds. now is the frame timestamp in
// milliseconds and organic enables the timestamp-driven wobble used on wide
// viewports.
func (s *Star) advance(dt, now float64, organic bool, w, h float64) {
	s.X += s.SpeedX * dt
	s.Y += s.SpeedY * dt
	s.TwinklePhase += s.TwinkleSpeed * dt

	if organic {
		v := math.Sin(now*0.0001+s.X*0.01+s.Y*0.01) * 0.001 * dt
		s.X += math.Cos(now*0.0002) * v
		s.Y += math.Sin(now*0.0003) * v
	}

	s.X = wrap(s.X, w)
	s.Y = wrap(s.Y, h)
}

// twinkle is the core brightness factor, in [0.4, 1.2].
func (s *Star) twinkle() float64 {
	return math.Sin(s.TwinklePhase)*0.4 + 0.8
}

// wrap folds v into [0, max) toroidally.
func wrap(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	if v >= 0 && v < max {
		return v
	}
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	if v >= max {
		v = 0
	}
	return v
}
