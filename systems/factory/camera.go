package factory

import (
	"github.com/automoto/orbitsync/archetypes"
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/yohamta/donburi"
)

func CreateCamera(w donburi.World) *donburi.Entry {
	camera := archetypes.Camera.Spawn(w)
	components.Camera.SetValue(camera, components.CameraData{
		MetersPerPixel: config.Viewer.MetersPerPixel,
	})
	return camera
}
