package config

import (
	"image/color"
	"time"
)

// InterpolationConfig contains the remote vessel smoothing settings.
type InterpolationConfig struct {
	// Enabled turns interpolation on. When off every promoted snapshot is
	// applied as-is on the tick it arrives.
	Enabled bool

	// Extrapolation allows the blend fraction to overshoot 1 so motion keeps
	// going past the last known target instead of freezing on it.
	Extrapolation bool

	// OffsetSeconds is how far behind the sender's live time playback sits.
	OffsetSeconds float64

	// SecondaryVesselUpdatesMsInterval is the nominal interval between two
	// position messages of a remote vessel, as announced by the server.
	SecondaryVesselUpdatesMsInterval float64

	// MinRecommendedMessageCount is the queue depth below which a warping
	// session never skips snapshots.
	MinRecommendedMessageCount int
}

// NominalUpdateInterval returns SecondaryVesselUpdatesMsInterval in seconds.
func (c *InterpolationConfig) NominalUpdateInterval() float64 {
	return (time.Duration(c.SecondaryVesselUpdatesMsInterval * float64(time.Millisecond))).Seconds()
}

// NetworkConfig contains client connection defaults
type NetworkConfig struct {
	ServerAddress string
	PlayerName    string
	Version       string
}

// ViewerConfig contains the debug viewer layout
type ViewerConfig struct {
	TPS            int
	MetersPerPixel float64 // Initial map scale
	ZoomStep       float64 // Scale multiplier per zoom key press
	ZoomSeconds    float32 // Duration of the zoom tween
	VesselSize     float32
	TrailLength    int     // Samples kept per vessel trail
	WarpRate       float64 // Time multiplier of the warp key
}

// SimConfig contains the local simulation settings
type SimConfig struct {
	LoadDistance float64 // Meters from the focused vessel within which vessels are loaded
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	LogLevel   string
	ShowHUD    bool
	SentryDSN  string
	SpectateID string // Vessel id to spectate at start-up, empty for none
}

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
}

// Global configuration instances
var C *Config
var Interpolation InterpolationConfig
var Network NetworkConfig
var Viewer ViewerConfig
var Sim SimConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange     = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightGreen = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue  = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue   = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Space      = color.RGBA{R: 8, G: 8, B: 20, A: 255}
)

func init() {
	C = &Config{
		Width:  1280,
		Height: 720,
	}

	Interpolation = InterpolationConfig{
		Enabled:                          true,
		Extrapolation:                    false,
		OffsetSeconds:                    1.0,
		SecondaryVesselUpdatesMsInterval: 500,
		MinRecommendedMessageCount:       3,
	}

	Network = NetworkConfig{
		ServerAddress: "localhost:8800",
		PlayerName:    "observer",
		Version:       "0.1.0",
	}

	Viewer = ViewerConfig{
		TPS:            60,
		MetersPerPixel: 4000,
		ZoomStep:       1.5,
		ZoomSeconds:    0.25,
		VesselSize:     4,
		TrailLength:    120,
		WarpRate:       10,
	}

	Sim = SimConfig{
		LoadDistance: 2500,
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		LogLevel: "info",
		ShowHUD:  true,
	}
}
