package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func blackFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func changed(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				n++
			}
		}
	}
	return n
}

func TestEmptyOverlayDrawsNothing(t *testing.T) {
	o, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	img := blackFrame(200, 100)
	o.Draw(img)
	if n := changed(img, img.Bounds()); n != 0 {
		t.Fatalf("%d pixels changed", n)
	}
	if !o.QRBounds(img.Bounds()).Empty() {
		t.Error("QR bounds without a URL")
	}
}

func TestQRCodeInCorner(t *testing.T) {
	o, err := New(Options{URL: "https://example.com", QRSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	img := blackFrame(400, 300)
	qr := o.QRBounds(img.Bounds())
	if qr.Max != image.Pt(400-margin, 300-margin) || qr.Dx() != 100 || qr.Dy() != 100 {
		t.Fatalf("qr bounds = %v", qr)
	}

	o.Draw(img)
	if changed(img, qr) == 0 {
		t.Error("QR code not drawn")
	}
	if n := changed(img, image.Rect(0, 0, qr.Min.X, 300)); n != 0 {
		t.Errorf("%d pixels changed left of the code", n)
	}
}

func TestCaptionCentered(t *testing.T) {
	o, err := New(Options{Caption: "Sentinent", CaptionSize: 24})
	if err != nil {
		t.Fatal(err)
	}
	img := blackFrame(400, 200)
	o.Draw(img)

	left := changed(img, image.Rect(0, 0, 200, 200))
	right := changed(img, image.Rect(200, 0, 400, 200))
	if left == 0 || right == 0 {
		t.Fatalf("caption not centered: left=%d right=%d", left, right)
	}
	if n := changed(img, image.Rect(0, 0, 400, 100)); n != 0 {
		t.Errorf("%d pixels changed in the top half", n)
	}
}
