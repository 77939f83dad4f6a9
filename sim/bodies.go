package sim

import (
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/orbit"
)

// Body indices of the stock system.
const (
	Kerbol = iota
	Kerbin
	Mun
	Minmus
)

// StockBodies returns the bodies every client of the universe agrees on.
func StockBodies() []components.BodyData {
	return []components.BodyData{
		{
			Index:          Kerbol,
			Name:           "Kerbol",
			Parent:         -1,
			Radius:         261600000,
			GravParameter:  1.1723328e18,
			RotationPeriod: 432000,
			Color:          config.Yellow,
		},
		{
			Index:            Kerbin,
			Name:             "Kerbin",
			Parent:           Kerbol,
			Radius:           600000,
			GravParameter:    3.5316e12,
			RotationPeriod:   21549.425,
			InitialRotation:  90,
			AtmosphereDepth:  70000,
			SeaLevelPressure: 101.325,
			ScaleHeight:      5600,
			Ocean:            true,
			Orbit:            orbit.New(0, 0, 13599840256, 0, 0, 3.14, 0, nil),
			Color:            config.LightBlue,
		},
		{
			Index:           Mun,
			Name:            "Mun",
			Parent:          Kerbin,
			Radius:          200000,
			GravParameter:   6.5138398e10,
			RotationPeriod:  138984.38,
			InitialRotation: 230,
			Orbit:           orbit.New(0, 0, 12000000, 0, 0, 1.7, 0, nil),
			Color:           config.White,
		},
		{
			Index:           Minmus,
			Name:            "Minmus",
			Parent:          Kerbin,
			Radius:          60000,
			GravParameter:   1.7658e9,
			RotationPeriod:  40400,
			InitialRotation: 230,
			Orbit:           orbit.New(6, 0, 47000000, 78, 38, 0.9, 0, nil),
			Color:           config.LightGreen,
		},
	}
}
