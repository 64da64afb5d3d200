// Package overlay draws the kiosk foreground over a composed backdrop frame:
// an optional caption and an optional QR code linking to the site.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/sentinent/landing/internal/logging"
)

const (
	component = "overlay"

	defaultCaptionSize = 36
	defaultQRSize      = 192
	margin             = 24
	shadowOffset       = 2
)

var (
	captionColor = color.RGBA{R: 0xf0, G: 0xf0, B: 0xff, A: 0xff}
	shadowColor  = color.RGBA{A: 0xff}
)

type Options struct {
	Logger logging.Logger
	// Caption is centered in the lower third; empty draws nothing.
	Caption     string
	CaptionSize float64
	// URL is encoded into a QR code in the bottom-right corner.
	URL    string
	QRSize int
}

type Overlay struct {
	caption string
	face    font.Face
	qr      image.Image
}

// New prepares the caption face and QR code. A font that fails to load
// falls back to the built-in bitmap face; an unencodable URL is an error.
func New(opts Options) (*Overlay, error) {
	log := logging.OrNoop(opts.Logger)
	o := &Overlay{caption: opts.Caption}

	if o.caption != "" {
		size := opts.CaptionSize
		if size <= 0 {
			size = defaultCaptionSize
		}
		tt, err := truetype.Parse(goregular.TTF)
		if err != nil {
			log.Errorf(component, "font parse failed, using basicfont: %v", err)
			o.face = basicfont.Face7x13
		} else {
			o.face = truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
			log.Infof(component, "caption font at %.0fpt", size)
		}
	}

	if opts.URL != "" {
		size := opts.QRSize
		if size <= 0 {
			size = defaultQRSize
		}
		code, err := qrcode.New(opts.URL, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("overlay: qr code: %w", err)
		}
		o.qr = code.Image(size)
	}
	return o, nil
}

// Draw paints the overlay onto dst.
func (o *Overlay) Draw(dst draw.Image) {
	b := dst.Bounds()
	if o.qr != nil {
		draw.Draw(dst, o.QRBounds(b), o.qr, o.qr.Bounds().Min, draw.Src)
	}
	if o.caption != "" {
		baseline := b.Min.Y + b.Dy()*3/4
		o.drawCaption(dst, shadowColor, shadowOffset, baseline+shadowOffset)
		o.drawCaption(dst, captionColor, 0, baseline)
	}
}

func (o *Overlay) drawCaption(dst draw.Image, fg color.Color, xOffset, baseline int) {
	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: o.face}
	width := drawer.MeasureString(o.caption).Ceil()
	b := dst.Bounds()
	x := b.Min.X + (b.Dx()-width)/2 + xOffset
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(o.caption)
}

// QRBounds is where Draw places the QR code on a frame of the given bounds;
// empty when there is no code.
func (o *Overlay) QRBounds(frame image.Rectangle) image.Rectangle {
	if o.qr == nil {
		return image.Rectangle{}
	}
	qb := o.qr.Bounds()
	at := image.Pt(frame.Max.X-margin-qb.Dx(), frame.Max.Y-margin-qb.Dy())
	return qb.Sub(qb.Min).Add(at)
}
