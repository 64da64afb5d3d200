// Package console prepares the Linux virtual terminal for direct framebuffer
// output and watches raw keyboard devices for an exit key.
package console

import (
	"encoding/binary"
	"errors"

	"github.com/sentinent/landing/internal/logging"
)

const component = "tty"

var ErrUnsupported = errors.New("console: not supported on this platform")

const (
	evKey = 0x01

	// Linux input-event-codes.h
	KeyEsc = 1
	KeyQ   = 16
	KeyF4  = 62
)

// SetGraphicsModeWithLog switches the console to graphics mode and logs the
// outcome.
func SetGraphicsModeWithLog(l logging.Logger) error {
	return withLog(l, "KD_GRAPHICS", SetGraphicsMode())
}

// RestoreTextModeWithLog is the counterpart of SetGraphicsModeWithLog.
func RestoreTextModeWithLog(l logging.Logger) error {
	return withLog(l, "KD_TEXT", RestoreTextMode())
}

func HideCursorWithLog(l logging.Logger) error { return withLog(l, "hide cursor", HideCursor()) }

func ShowCursorWithLog(l logging.Logger) error { return withLog(l, "show cursor", ShowCursor()) }

func withLog(l logging.Logger, what string, err error) error {
	l = logging.OrNoop(l)
	if err != nil {
		l.Errorf(component, "%s failed: %v", what, err)
	} else {
		l.Infof(component, "%s ok", what)
	}
	return err
}

// keyPressed scans a buffer of input_event records for a press of any of
// codes. tvSize is the size of the leading timeval on this platform.
func keyPressed(buf []byte, tvSize int, codes []uint16) bool {
	eventSize := tvSize + 2 + 2 + 4
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || value != 1 {
			continue
		}
		for _, c := range codes {
			if code == c {
				return true
			}
		}
	}
	return false
}
