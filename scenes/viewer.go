package scenes

import (
	"fmt"

	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/automoto/orbitsync/network"
	"github.com/automoto/orbitsync/sim"
	"github.com/automoto/orbitsync/systems"
	"github.com/automoto/orbitsync/systems/factory"
	"github.com/automoto/orbitsync/warp"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = 0

// ViewerScene shows the remote vessels of the universe on a map.
type ViewerScene struct {
	ecs       *ecs.ECS
	netClient *network.Client
	log       *logrus.Entry
	lastState network.ClientState
}

func NewViewerScene(clock *warp.Service, client *network.Client) (*ViewerScene, error) {
	world := donburi.NewWorld()
	simWorld, err := sim.NewWorld(world, clock, sim.StockBodies())
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}

	registry := netinterp.NewRegistry(clock, simWorld, &config.Interpolation)
	dispatcher := network.NewDispatcher(simWorld, registry, &config.Interpolation)

	if config.Debug.SpectateID != "" {
		id, err := uuid.Parse(config.Debug.SpectateID)
		if err != nil {
			return nil, fmt.Errorf("spectate id: %w", err)
		}
		simWorld.Spectate(id)
	}

	e := ecs.NewECS(world)
	factory.CreateCamera(world)

	e.AddSystem(systems.NewViewerInputSystem(simWorld, client))
	e.AddSystem(systems.NewInterpolationSystem(client, dispatcher, registry, simWorld))
	e.AddSystem(systems.NewCameraSystem(simWorld, sim.Kerbin))

	e.AddRenderer(layerDefault, systems.NewMapRenderer(simWorld))
	e.AddRenderer(layerDefault, systems.NewHUDRenderer(client, clock, registry))

	return &ViewerScene{
		ecs:       e,
		netClient: client,
		log:       logging.For("viewer"),
		lastState: client.State(),
	}, nil
}

func (vs *ViewerScene) Update() {
	if state := vs.netClient.State(); state != vs.lastState {
		entry := vs.log.WithField("state", state.String())
		if err := vs.netClient.LastError(); err != nil {
			entry = entry.WithError(err)
		}
		entry.Info("connection state changed")
		vs.lastState = state
	}

	vs.ecs.Update()
}

func (vs *ViewerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(config.Space)

	vs.ecs.Draw(screen)
}
