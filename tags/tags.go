package tags

import "github.com/yohamta/donburi"

var (
	Vessel     = donburi.NewTag().SetName("Vessel")
	Body       = donburi.NewTag().SetName("Body")
	Spectated  = donburi.NewTag().SetName("Spectated")
	Controlled = donburi.NewTag().SetName("Controlled")
)
