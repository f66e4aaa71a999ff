package editor

// StartNodeID is the reserved identifier of the graph's entry node.
// Every graph contains exactly one node with this ID and it can never
// be removed.
const StartNodeID = "start"

// Position is a 2D canvas coordinate. It only affects layout; the
// orchestrator never sees it.
type Position struct {
	X float64
	Y float64
}

// Add returns the position offset by another position.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the position offset by the negation of another position.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Node is a unit of remote, user-authored code plus metadata within a
// pipeline graph. The code text is opaque to the editor; it is neither
// parsed nor executed locally.
type Node struct {
	// ID is unique within a graph and stable for the node's lifetime.
	ID string

	// Name is the orchestration-visible label. It is not required to
	// be unique.
	Name string

	// Code is arbitrary source text. May be empty.
	Code string

	// FlowLevel is a positive integer tier hint consumed by the
	// orchestrator. The editor does not interpret it.
	FlowLevel int

	// Position is the node's top-left corner in canvas space.
	Position Position
}

// Connection is a directed edge between two nodes, meaning From may
// hand control or data to To.
type Connection struct {
	From string
	To   string
}
