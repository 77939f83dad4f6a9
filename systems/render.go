package systems

import (
	"image/color"
	"math"

	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/sim"
	"github.com/automoto/orbitsync/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const minBodyRadius = 2

var trailColor = color.RGBA{R: 100, G: 180, B: 255, A: 90}

// NewMapRenderer returns a renderer drawing bodies, vessel trails and vessels
// seen from above the ecliptic.
func NewMapRenderer(world *sim.World) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		cameraEntry, ok := components.Camera.First(e.World)
		if !ok {
			return
		}
		camera := components.Camera.Get(cameraEntry)
		width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

		tags.Body.Each(e.World, func(entry *donburi.Entry) {
			b := components.Body.Get(entry)
			pos, ok := world.BodyPosition(b.Index)
			if !ok {
				return
			}
			x, y := camera.Project(pos, width, height)
			r := float32(math.Max(b.Radius/camera.MetersPerPixel, minBodyRadius))
			vector.FillCircle(screen, x, y, r, b.Color, true)
		})

		tags.Vessel.Each(e.World, func(entry *donburi.Entry) {
			drawTrail(screen, camera, components.Trail.Get(entry).Points, width, height)

			v := components.Vessel.Get(entry)
			x, y := camera.Project(v.Position, width, height)
			c := vesselColor(entry, v)
			vector.FillCircle(screen, x, y, config.Viewer.VesselSize, c, true)
			if entry.HasComponent(tags.Spectated) {
				vector.StrokeCircle(screen, x, y, config.Viewer.VesselSize*2, 1, config.Yellow, true)
			}
		})
	}
}

func drawTrail(screen *ebiten.Image, camera *components.CameraData, points []mgl64.Vec3, width, height int) {
	for i := 1; i < len(points); i++ {
		x0, y0 := camera.Project(points[i-1], width, height)
		x1, y1 := camera.Project(points[i], width, height)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, trailColor, true)
	}
}

func vesselColor(entry *donburi.Entry, v *components.VesselData) color.RGBA {
	switch {
	case entry.HasComponent(tags.Controlled):
		return config.LightGreen
	case v.Loaded:
		return config.Orange
	case v.Situation&(components.Landed|components.Splashed) != 0:
		return config.Red
	default:
		return config.White
	}
}
