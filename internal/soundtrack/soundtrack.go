// Package soundtrack plays an optional looping ambient track behind the
// backdrop and reports how loud it currently is.
package soundtrack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/sentinent/landing/internal/config"
	"github.com/sentinent/landing/internal/logging"
)

const component = "soundtrack"

var ErrUnsupported = errors.New("soundtrack: unsupported file type")

// Open opens path and picks a decoder by extension. The returned streamer
// owns the file; closing it closes the file.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("soundtrack: open: %w", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("soundtrack: decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// PickFile asks for a track with the native file dialog. A cancelled dialog
// returns "" and no error.
func PickFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Ambient Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

// Player loops one track at a time through the speaker.
type Player struct {
	log logging.Logger

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	path     string
	initDone bool
}

func NewPlayer(log logging.Logger) *Player {
	return &Player{log: logging.OrNoop(log)}
}

// Play stops whatever is playing and loops path at a reduced volume.
func (p *Player) Play(path string) error {
	streamer, format, err := Open(path)
	if err != nil {
		p.log.Errorf(component, "%v", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("soundtrack: speaker init: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("soundtrack: speaker init: %w", err)
		}
	default:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	p.closeStreamer()

	tap := NewTap(beep.Loop(-1, streamer), config.SoundtrackRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}
	volume := &effects.Volume{Streamer: ctrl, Base: 2, Volume: config.SoundtrackVolume}

	p.streamer, p.format, p.ctrl, p.tap, p.path = streamer, format, ctrl, tap, path
	speaker.Play(volume)
	p.log.Infof(component, "playing %s at %d Hz", filepath.Base(path), format.SampleRate)
	return nil
}

// TogglePause pauses or resumes playback; it does nothing when idle.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	speaker.Unlock()
}

// Paused reports whether playback is paused; idle counts as not paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Level is the loudness of the most recent samples; zero when idle or
// paused.
func (p *Player) Level() float64 {
	p.mu.Lock()
	tap, ctrl := p.tap, p.ctrl
	p.mu.Unlock()
	if tap == nil {
		return 0
	}
	speaker.Lock()
	paused := ctrl.Paused
	speaker.Unlock()
	if paused {
		return 0
	}
	return tap.Level(config.SoundtrackWindow)
}

// Position is how far into the current loop playback is.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Track is the file currently playing, or "".
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Close stops playback and releases the track.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	return p.closeStreamer()
}

func (p *Player) closeStreamer() error {
	if p.streamer == nil {
		return nil
	}
	err := p.streamer.Close()
	p.streamer, p.ctrl, p.tap, p.path = nil, nil, nil, ""
	return err
}

// FormatPosition renders d as MM:SS.
func FormatPosition(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
