package protocol

// Phase is the lifecycle stage of a session
type Phase int

const (
	// PhaseConnected means the transport is up but no join was sent
	PhaseConnected Phase = iota
	// PhaseJoined means a join request was sent and the room is not known yet
	PhaseJoined
	// PhaseInRoom means the room is known and the first state is pending
	PhaseInRoom
	// PhaseActive means the board is initialised and turns are being played
	PhaseActive
	// PhaseEnded means the game finished normally
	PhaseEnded
	// PhaseTerminated means the session was aborted by an error
	PhaseTerminated
)

var phaseNames = map[Phase]string{
	PhaseConnected:  "connected",
	PhaseJoined:     "joined",
	PhaseInRoom:     "in_room",
	PhaseActive:     "active",
	PhaseEnded:      "ended",
	PhaseTerminated: "terminated",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Done returns true once no further events will be processed
func (p Phase) Done() bool {
	return p == PhaseEnded || p == PhaseTerminated
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
