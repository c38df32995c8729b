package migrate

// State — где находится прогон. Переходы строго последовательны:
// START -> NETWORKS_DONE -> PORTS_DONE -> ASSOCIATED -> MACS_DONE -> COMMITTED.
type State int

const (
	StateStart State = iota
	StateNetworksDone
	StatePortsDone
	StateAssociated
	StateMacsDone
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateNetworksDone:
		return "NETWORKS_DONE"
	case StatePortsDone:
		return "PORTS_DONE"
	case StateAssociated:
		return "ASSOCIATED"
	case StateMacsDone:
		return "MACS_DONE"
	case StateCommitted:
		return "COMMITTED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

type Stage int

const (
	StageNetworks Stage = iota
	StagePorts
	StageAssociate
	StageMacs
	StageCommit
)

// Stages — порядок выполнения в Run.
var Stages = []Stage{StageNetworks, StagePorts, StageAssociate, StageMacs, StageCommit}

type stageDef struct {
	label string
	from  State
	to    State
}

var stageDefs = map[Stage]stageDef{
	StageNetworks:  {"migrate networks, subnets, routes, and ips", StateStart, StateNetworksDone},
	StagePorts:     {"migrate ports", StateNetworksDone, StatePortsDone},
	StageAssociate: {"associating ips with ports", StatePortsDone, StateAssociated},
	StageMacs:      {"migrate macs and ranges", StateAssociated, StateMacsDone},
	StageCommit:    {"commit changes", StateMacsDone, StateCommitted},
}

func (s Stage) String() string {
	if d, ok := stageDefs[s]; ok {
		return d.label
	}
	return "unknown stage"
}
