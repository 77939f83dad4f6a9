package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/fonts"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/automoto/orbitsync/network"
	"github.com/automoto/orbitsync/warp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudLineHeight = 14
	hudMaxVessels = 12
)

var hudBackground = color.RGBA{0, 0, 0, 160}

// NewHUDRenderer returns a renderer listing the clock, the engine counters and
// the state of every interpolation session.
func NewHUDRenderer(client *network.Client, clock *warp.Service, registry *netinterp.Registry) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		if !config.Debug.ShowHUD {
			return
		}
		lines := hudLines(client, clock, registry)

		vector.FillRect(screen, hudMargin/2, hudMargin/2,
			460, float32(len(lines)*hudLineHeight+hudMargin), hudBackground, false)

		face := fonts.Mono.Get()
		for i, line := range lines {
			text.Draw(screen, line, face, hudMargin, hudMargin+(i+1)*hudLineHeight-3, config.White)
		}
	}
}

func hudLines(client *network.Client, clock *warp.Service, registry *netinterp.Registry) []string {
	interp := config.Interpolation
	stats := registry.Stats().Load()

	lines := []string{
		fmt.Sprintf("%s %s  server UT %.1f  %d vessels",
			client.State(), client.ServerName(), clock.ServerTime(), registry.Len()),
		fmt.Sprintf("UT %.1f  subspace %d  warping %v (%d players)",
			clock.UniversalTime(), clock.CurrentSubspace(), clock.CurrentlyWarping(), clock.WarpingPlayers()),
		fmt.Sprintf("interp %v  extrap %v  offset %.2fs  interval %.0fms",
			interp.Enabled, interp.Extrapolation, interp.OffsetSeconds, interp.SecondaryVesselUpdatesMsInterval),
		fmt.Sprintf("promoted %d  underruns %d  skips %d  body misses %d  unblended %d  failures %d",
			stats.Promotions, stats.Underruns, stats.FastSkips, stats.BodyLookupMisses,
			stats.SkippedBlends, stats.BlendFailures),
	}

	sessions := registry.Snapshot()
	for i, s := range sessions {
		if i == hudMaxVessels {
			lines = append(lines, fmt.Sprintf("... %d more", len(sessions)-i))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %-13s q%-2d %5.1f%% sub %-2d td %+6.2f dur %.2f",
			s.VesselID.String()[:8], s.State, s.QueueLen, s.LerpPercentage*100,
			s.SubspaceID, s.TimeDifference, s.InterpolationDuration))
	}
	return lines
}
