package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Frames longer than this are treated as a stall and skipped.
	MaxFrameDeltaMs = 100

	// Ticker-driven hosts. Below MinHostFPS every frame is a stall; smoke
	// steps once per frame, so it rises at its intended speed at 60.
	DefaultHostFPS = 60
	MinHostFPS     = 1000/MaxFrameDeltaMs + 1

	// Star field
	StarDensity        = 4000.0
	StarDensityMobile  = 6000.0
	MobileWidth        = 768
	OrganicMotionWidth = 1000
	ClusterChance      = 0.25
	ClusterSpread      = 50.0
	ClusterSpeedFactor = 0.3
	NebulaMinCount     = 3
	NebulaMaxCount     = 6
	NebulaRotationRate = 0.00005
	NebulaAlpha        = 0.1
	NebulaOutlinePts   = 20

	// Smoke
	SmokeInitialCount = 50
	SmokeMaxCount     = 60
	SmokeSpawnChance  = 0.3
	SmokeDamping      = 0.99
	SmokeEscapeY      = -100.0
	SmokeSpawnBelow   = 50.0
	SmokeTrailAlpha   = 0.1

	// Spotlight
	SpotlightRadius    = 300.0
	SpotlightFrequency = 6.0
	SpotlightDamping   = 1.0

	// Soundtrack
	SoundtrackRingSize = 8192
	SoundtrackWindow   = 2048
	SoundtrackVolume   = -1.5

	DebugLogPath = "./landing-debug.log"
)

// Scene names accepted by -scene.
const (
	SceneCosmic = "cosmic"
	SceneSmoke  = "smoke"
)

// Config is the window host configuration.
type Config struct {
	Width      int
	Height     int
	Fullscreen bool
	Scene      string
	Soundtrack string
	Debug      bool
	DebugLog   string
	Seed       int64
}

// Parse reads flags from args, falling back to LANDING_* environment variables
// for the soundtrack and debug log path.
func Parse(args []string, getenv func(string) string, stderr io.Writer) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Config{}
	fs := flag.NewFlagSet("landing", flag.ContinueOnError)
	if stderr != nil {
		fs.SetOutput(stderr)
	}
	fs.IntVar(&cfg.Width, "width", WindowWidth, "initial window width in pixels")
	fs.IntVar(&cfg.Height, "height", WindowHeight, "initial window height in pixels")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", false, "start in fullscreen")
	fs.StringVar(&cfg.Scene, "scene", SceneCosmic, "backdrop to render: cosmic or smoke")
	fs.StringVar(&cfg.Soundtrack, "soundtrack", "", "ambient audio file to loop (wav, mp3, flac); also LANDING_SOUNDTRACK")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging and the status line")
	fs.StringVar(&cfg.DebugLog, "debug-log", "", "debug log path; also LANDING_DEBUG_LOG (default "+DebugLogPath+")")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed; 0 picks one from the clock")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Soundtrack == "" {
		cfg.Soundtrack = getenv("LANDING_SOUNDTRACK")
	}
	if cfg.DebugLog == "" {
		cfg.DebugLog = getenv("LANDING_DEBUG_LOG")
	}
	if cfg.DebugLog == "" {
		cfg.DebugLog = DebugLogPath
	}
	cfg.Scene = strings.ToLower(strings.TrimSpace(cfg.Scene))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	switch c.Scene {
	case SceneCosmic, SceneSmoke:
	default:
		return fmt.Errorf("unknown scene %q", c.Scene)
	}
	return nil
}

// CheckFPS rejects frame rates whose frame interval the star field would
// treat as a stall.
func CheckFPS(fps int) error {
	if fps < MinHostFPS {
		return fmt.Errorf("-fps %d is below %d; slower frames are skipped as stalls", fps, MinHostFPS)
	}
	return nil
}

// FPSUsage is the shared help text of the -fps flag.
var FPSUsage = fmt.Sprintf("frames per second, at least %d; smoke advances one step per frame and rises at its intended speed at %d", MinHostFPS, DefaultHostFPS)
