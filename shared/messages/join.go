package messages

// JoinRequest is sent by a client after connecting to request joining the universe.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// It carries the timing settings every client must share.
type JoinAccepted struct {
	ServerName                       string
	ServerTime                       float64 // Universal time of the server clock when sent
	SubspaceID                       int     // Subspace the client starts in
	SecondaryVesselUpdatesMsInterval int
	Subspaces                        []SubspaceUpdate
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
