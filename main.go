package main

import (
	"flag"
	"os"
	"time"

	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/fonts"
	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/network"
	"github.com/automoto/orbitsync/scenes"
	"github.com/automoto/orbitsync/settings"
	"github.com/automoto/orbitsync/warp"
	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	address := flag.String("server", config.Network.ServerAddress, "Universe server address (host:port)")
	name := flag.String("name", config.Network.PlayerName, "Player name announced to the server")
	logLevel := flag.String("log", config.Debug.LogLevel, "Log level (debug, info, warn, error)")
	spectate := flag.String("spectate", "", "Vessel id to follow at start-up")
	offset := flag.Float64("offset", -1, "Playback delay in seconds (negative keeps the saved value)")
	flag.Parse()

	config.Debug.LogLevel = *logLevel
	config.Debug.SpectateID = *spectate
	config.Debug.SentryDSN = os.Getenv("ORBITSYNC_SENTRY_DSN")

	logging.Setup(config.Debug.LogLevel)
	log := logging.For("main")

	if config.Debug.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     config.Debug.SentryDSN,
			Release: config.Network.Version,
		})
		if err != nil {
			log.WithError(err).Warn("could not initialize sentry")
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize persistence and load saved settings
	if err := settings.InitPersistence(); err == nil {
		if saved, err := settings.LoadSettings(); err == nil && saved != nil {
			settings.ApplySavedSettings(saved)
		}
	}
	if *offset >= 0 {
		config.Interpolation.OffsetSeconds = *offset
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.WithError(err).Fatal("could not load fonts")
	}

	clock := warp.NewService(time.Now)
	client := network.NewClient(clock)
	scene, err := scenes.NewViewerScene(clock, client)
	if err != nil {
		log.WithError(err).Fatal("could not build viewer")
	}
	client.Connect(*address, config.Network.Version, *name)
	defer client.Disconnect()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("orbitsync")
	ebiten.SetTPS(config.Viewer.TPS)

	if err := ebiten.RunGame(&Game{scene: scene}); err != nil {
		log.WithError(err).Error("game loop stopped")
	}
}
