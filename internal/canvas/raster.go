package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Raster is a Surface backed by an *image.RGBA. Shapes are scan converted
// with golang.org/x/image/vector into a coverage mask inside their clipped
// bounding box, then blended straight into the pixel buffer.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer

	// scratch reused across fills
	mask    image.Alpha
	pts     []Point
	lut     []premul
	lutStep float64
}

// premul is a color with 16-bit premultiplied channels.
type premul struct {
	r, g, b, a uint32
}

func toPremul(c color.NRGBA) premul {
	a := uint32(c.A) * 0x101
	return premul{
		r: uint32(c.R) * 0x101 * a / 0xffff,
		g: uint32(c.G) * 0x101 * a / 0xffff,
		b: uint32(c.B) * 0x101 * a / 0xffff,
		a: a,
	}
}

// lutScale is how many gradient samples are taken per pixel of distance.
const (
	lutScale   = 4
	lutMaxSize = 1 << 14
)

func NewRaster(width, height int) *Raster {
	r := &Raster{z: vector.NewRasterizer(0, 0)}
	r.Resize(width, height)
	return r
}

// RasterProvider allocates software surfaces.
var RasterProvider Provider = ProviderFunc(func(width, height int) (Surface, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	return NewRaster(width, height), nil
})

// Image exposes the backing image. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Raster) Clear() {
	clear(r.img.Pix)
}

func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA) {
	rect := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Intersect(r.img.Bounds())
	if rect.Empty() || c.A == 0 {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if radius <= 0 || c.A == 0 {
		return
	}
	r.pts = appendCirclePoints(r.pts[:0], cx, cy, radius, CircleSegments(radius))
	if box, ok := r.coverage(r.pts); ok {
		r.blendUniform(box, toPremul(c))
	}
}

func (r *Raster) FillRadial(cx, cy, radius float64, g Gradient) {
	if radius <= 0 || g.Alpha <= 0 {
		return
	}
	r.pts = appendCirclePoints(r.pts[:0], cx, cy, radius, CircleSegments(radius))
	r.fillGradient(r.pts, g)
}

func (r *Raster) FillShape(outline []Point, g Gradient) {
	if len(outline) < 3 || g.Alpha <= 0 {
		return
	}
	r.fillGradient(outline, g)
}

func (r *Raster) fillGradient(poly []Point, g Gradient) {
	if len(g.Stops) == 0 {
		return
	}
	box, ok := r.coverage(poly)
	if !ok {
		return
	}
	r.buildLUT(g)
	r.blendGradient(box, g.CX, g.CY)
}

// coverage rasterizes poly into r.mask and returns the surface rectangle the
// mask covers.
func (r *Raster) coverage(poly []Point) (image.Rectangle, bool) {
	bounds := polygonBounds(poly)
	box := bounds.Intersect(r.img.Bounds())
	if box.Empty() {
		return box, false
	}
	if !bounds.In(r.img.Bounds()) {
		poly = clipPolygon(poly, box)
		if len(poly) < 3 {
			return box, false
		}
	}

	w, h := box.Dx(), box.Dy()
	if cap(r.mask.Pix) < w*h {
		r.mask.Pix = make([]uint8, w*h)
	}
	r.mask.Pix = r.mask.Pix[:w*h]
	r.mask.Stride = w
	r.mask.Rect = image.Rect(0, 0, w, h)

	r.z.Reset(w, h)
	r.z.DrawOp = draw.Src
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
	for _, p := range poly[1:] {
		r.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	r.z.ClosePath()
	r.z.Draw(&r.mask, r.mask.Rect, image.Opaque, image.Point{})
	return box, true
}

// buildLUT samples g by distance from its center, lutScale samples per
// pixel, out to its radius. Farther pixels use the last entry, which is the
// last stop.
func (r *Raster) buildLUT(g Gradient) {
	n := int(math.Ceil(g.Radius*lutScale)) + 1
	n = min(max(n, 2), lutMaxSize)
	r.lutStep = 1
	if g.Radius > 0 {
		r.lutStep = g.Radius / float64(n-1)
	}
	r.lut = r.lut[:0]
	for i := 0; i < n; i++ {
		r.lut = append(r.lut, toPremul(g.At(float64(i)*r.lutStep)))
	}
}

func (r *Raster) blendUniform(box image.Rectangle, c premul) {
	w := box.Dx()
	for y := 0; y < box.Dy(); y++ {
		row := r.mask.Pix[y*w : y*w+w]
		off := r.img.PixOffset(box.Min.X, box.Min.Y+y)
		for x, m := range row {
			if m != 0 {
				blendPixel(r.img.Pix[off+4*x:off+4*x+4:off+4*x+4], c, uint32(m)*0x101)
			}
		}
	}
}

func (r *Raster) blendGradient(box image.Rectangle, cx, cy float64) {
	w := box.Dx()
	last := len(r.lut) - 1
	perPixel := 1 / r.lutStep
	for y := 0; y < box.Dy(); y++ {
		row := r.mask.Pix[y*w : y*w+w]
		off := r.img.PixOffset(box.Min.X, box.Min.Y+y)
		dy := float64(box.Min.Y+y) + 0.5 - cy
		for x, m := range row {
			if m == 0 {
				continue
			}
			dx := float64(box.Min.X+x) + 0.5 - cx
			i := int(math.Sqrt(dx*dx+dy*dy)*perPixel + 0.5)
			if i > last {
				i = last
			}
			blendPixel(r.img.Pix[off+4*x:off+4*x+4:off+4*x+4], r.lut[i], uint32(m)*0x101)
		}
	}
}

// blendPixel composites c with coverage m (16-bit) over p, Porter-Duff over
// on premultiplied values.
func blendPixel(p []uint8, c premul, m uint32) {
	sa := c.a * m / 0xffff
	if sa == 0 {
		return
	}
	inv := 0xffff - sa
	p[0] = uint8((uint32(p[0])*0x101*inv/0xffff + c.r*m/0xffff) >> 8)
	p[1] = uint8((uint32(p[1])*0x101*inv/0xffff + c.g*m/0xffff) >> 8)
	p[2] = uint8((uint32(p[2])*0x101*inv/0xffff + c.b*m/0xffff) >> 8)
	p[3] = uint8((uint32(p[3])*0x101*inv/0xffff + sa) >> 8)
}

func polygonBounds(poly []Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// clipPolygon clips poly to box (Sutherland-Hodgman, one edge at a time).
func clipPolygon(poly []Point, box image.Rectangle) []Point {
	x0, y0 := float64(box.Min.X), float64(box.Min.Y)
	x1, y1 := float64(box.Max.X), float64(box.Max.Y)
	edges := []struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{func(p Point) bool { return p.X >= x0 }, func(a, b Point) Point { return atX(a, b, x0) }},
		{func(p Point) bool { return p.X <= x1 }, func(a, b Point) Point { return atX(a, b, x1) }},
		{func(p Point) bool { return p.Y >= y0 }, func(a, b Point) Point { return atY(a, b, y0) }},
		{func(p Point) bool { return p.Y <= y1 }, func(a, b Point) Point { return atY(a, b, y1) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch curIn, prevIn := e.inside(cur), e.inside(prev); {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn && !prevIn:
				out = append(out, e.cross(prev, cur), cur)
			case !curIn && prevIn:
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{x, a.Y + (b.Y-a.Y)*t}
}

func atY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{a.X + (b.X-a.X)*t, y}
}

// Compose paints every Raster in layers over dst, bottom first. Surfaces of
// other backends are skipped.
func Compose(dst draw.Image, layers ...Surface) {
	for _, l := range layers {
		if rs, ok := l.(*Raster); ok {
			draw.Draw(dst, dst.Bounds(), rs.img, image.Point{}, draw.Over)
		}
	}
}
