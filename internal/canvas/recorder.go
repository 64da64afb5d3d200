package canvas

import "image/color"

// Recorder is a headless Surface that counts draw calls. It backs tests and
// runs without any graphics backend.
type Recorder struct {
	W, H int

	Clears  int
	Rects   int
	Circles int
	Radials int
	Shapes  int
	Resizes int

	LastRect color.NRGBA
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

// RecorderProvider returns a Provider that hands out Recorders and keeps the
// last one in *last.
func RecorderProvider(last **Recorder) Provider {
	return ProviderFunc(func(width, height int) (Surface, error) {
		if err := CheckSize(width, height); err != nil {
			return nil, err
		}
		r := NewRecorder(width, height)
		if last != nil {
			*last = r
		}
		return r, nil
	})
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Resize(width, height int) {
	r.W, r.H = width, height
	r.Resizes++
}

func (r *Recorder) Clear() { r.Clears++ }

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.Rects++
	r.LastRect = c
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) { r.Circles++ }
func (r *Recorder) FillRadial(cx, cy, radius float64, g Gradient)    { r.Radials++ }
func (r *Recorder) FillShape(outline []Point, g Gradient)            { r.Shapes++ }

// Draws is the total number of paint calls, excluding Clear and Resize.
func (r *Recorder) Draws() int {
	return r.Rects + r.Circles + r.Radials + r.Shapes
}
