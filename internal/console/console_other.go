//go:build !linux

package console

import (
	"context"

	"github.com/sentinent/landing/internal/logging"
)

func SetGraphicsMode() error { return ErrUnsupported }

func RestoreTextMode() error { return ErrUnsupported }

func HideCursor() error { return ErrUnsupported }

func ShowCursor() error { return ErrUnsupported }

func ExitOnKeys(ctx context.Context, l logging.Logger, onExit func(), codes ...uint16) {
	logging.OrNoop(l).Infof("input", "exit keys not supported on this platform")
}
