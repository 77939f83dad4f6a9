package messages

// UnknownSubspace is the subspace id of a player that is warping and has not
// been assigned a subspace yet.
const UnknownSubspace = -1

// SubspaceUpdate announces the time difference of a subspace against the
// server clock. Positive values are in the future.
type SubspaceUpdate struct {
	SubspaceID           int
	ServerTimeDifference float64
}

// SubspaceRemove is broadcast when the last player leaves a subspace.
type SubspaceRemove struct {
	SubspaceID int
}

// ServerClock is sent periodically so clients can track the server's universal time.
type ServerClock struct {
	ServerTime float64
}

// NewSubspace is sent by a client that finished warping and needs a subspace
// matching its new time.
type NewSubspace struct {
	ServerTimeDifference float64
}

// SubspaceAssigned moves the receiving client into a subspace.
type SubspaceAssigned struct {
	SubspaceID int
}

// WarpState is broadcast when a player starts or stops warping.
type WarpState struct {
	PlayerName string
	SubspaceID int
	Warping    bool
}
