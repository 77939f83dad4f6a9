package systems

import (
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/network"
	"github.com/automoto/orbitsync/settings"
	"github.com/automoto/orbitsync/sim"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi/ecs"
)

// ViewerAction is a key-triggered viewer command.
type ViewerAction int

const (
	ActionSpectateNext ViewerAction = iota
	ActionStopSpectating
	ActionZoomIn
	ActionZoomOut
	ActionToggleHUD
	ActionToggleInterpolation
	ActionToggleExtrapolation
	ActionToggleWarp
	ActionCount // Must be last - used for array sizing
)

// ViewerBindings maps every action to the keys that trigger it.
var ViewerBindings = [ActionCount][]ebiten.Key{
	ActionSpectateNext:        {ebiten.KeyTab},
	ActionStopSpectating:      {ebiten.KeyEscape},
	ActionZoomIn:              {ebiten.KeyEqual, ebiten.KeyKPAdd},
	ActionZoomOut:             {ebiten.KeyMinus, ebiten.KeyKPSubtract},
	ActionToggleHUD:           {ebiten.KeyH},
	ActionToggleInterpolation: {ebiten.KeyI},
	ActionToggleExtrapolation: {ebiten.KeyX},
	ActionToggleWarp:          {ebiten.KeyW},
}

func justPressed(action ViewerAction) bool {
	for _, key := range ViewerBindings[action] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// NewViewerInputSystem returns the update system for the viewer's keyboard
// commands. Preference changes are saved straight away.
func NewViewerInputSystem(world *sim.World, client *network.Client) func(*ecs.ECS) {
	log := logging.For("input")

	return func(e *ecs.ECS) {
		if justPressed(ActionSpectateNext) {
			id := world.SpectateNext()
			log.WithField("vessel", id.String()).Debug("spectating")
		}
		if justPressed(ActionStopSpectating) {
			world.Spectate(uuid.Nil)
		}

		changed := false
		if cameraEntry, ok := components.Camera.First(e.World); ok {
			camera := components.Camera.Get(cameraEntry)
			switch {
			case justPressed(ActionZoomIn):
				zoom(camera, 1/config.Viewer.ZoomStep)
				changed = true
			case justPressed(ActionZoomOut):
				zoom(camera, config.Viewer.ZoomStep)
				changed = true
			}
		}

		if justPressed(ActionToggleHUD) {
			config.Debug.ShowHUD = !config.Debug.ShowHUD
			changed = true
		}
		if justPressed(ActionToggleInterpolation) {
			config.Interpolation.Enabled = !config.Interpolation.Enabled
			log.WithField("enabled", config.Interpolation.Enabled).Info("interpolation toggled")
			changed = true
		}
		if justPressed(ActionToggleExtrapolation) {
			config.Interpolation.Extrapolation = !config.Interpolation.Extrapolation
			log.WithField("enabled", config.Interpolation.Extrapolation).Info("extrapolation toggled")
			changed = true
		}
		if changed {
			settings.SaveCurrentSettings()
		}

		if justPressed(ActionToggleWarp) {
			toggleWarp(client, log)
		}
	}
}

func zoom(camera *components.CameraData, factor float64) {
	target := camera.MetersPerPixel * factor
	if camera.Zoom != nil {
		// Chain from where the running tween is heading.
		target = camera.ZoomTarget * factor
	}
	camera.ZoomTo(target, config.Viewer.ZoomSeconds)
	config.Viewer.MetersPerPixel = target
}

func toggleWarp(client *network.Client, log *logrus.Entry) {
	var err error
	if client.Warping() {
		err = client.StopWarp()
	} else {
		err = client.StartWarp(config.Viewer.WarpRate)
	}
	if err != nil {
		log.WithError(err).Warn("warp change not announced")
	}
}
