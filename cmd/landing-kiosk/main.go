//go:build linux

// Command landing-kiosk renders a backdrop scene straight to the Linux
// framebuffer for unattended displays.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"
	"os/signal"
	"syscall"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/console"
	"github.com/sentinent/landing/internal/logging"
	"github.com/sentinent/landing/internal/overlay"
)

func main() {
	device := flag.String("device", "/dev/fb0", "framebuffer device")
	fps := flag.Int("fps", config.DefaultHostFPS, config.FPSUsage)
	kind := flag.String("scene", config.SceneCosmic, "backdrop to render: cosmic or smoke")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	caption := flag.String("caption", "", "text centered over the backdrop")
	qrURL := flag.String("qr", "", "URL shown as a QR code in the bottom-right corner")
	debug := flag.Bool("debug", false, "enable debug logging to "+config.DebugLogPath)
	flag.Parse()

	if err := run(*device, *fps, *kind, *seed, *caption, *qrURL, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "landing-kiosk:", err)
		os.Exit(1)
	}
}

func run(device string, fps int, kind string, seed int64, caption, qrURL string, debug bool) error {
	if err := config.CheckFPS(fps); err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger, closeLog := logging.OpenDebugLog(debug, config.DebugLogPath, os.Stderr)
	defer closeLog()

	dev, err := fb.Open(device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", device, err)
	}
	defer dev.Close()
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())

	ov, err := overlay.New(overlay.Options{Logger: logger, Caption: caption, URL: qrURL})
	if err != nil {
		return err
	}
	k, err := newKiosk(bounds.Dx(), bounds.Dy(), kind, seed, fps, ov, logger)
	if err != nil {
		return err
	}
	defer k.close()

	_ = console.SetGraphicsModeWithLog(logger)
	_ = console.HideCursorWithLog(logger)
	defer func() {
		_ = console.RestoreTextModeWithLog(logger)
		_ = console.ShowCursorWithLog(logger)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	console.ExitOnKeys(ctx, logger, stop, console.KeyEsc, console.KeyF4)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Infof("main", "shutting down")
			return nil
		case <-ticker.C:
			frame := k.render(time.Since(start))
			draw.Draw(dev, bounds, frame, image.Point{}, draw.Src)
		}
	}
}
