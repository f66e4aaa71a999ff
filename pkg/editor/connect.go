package editor

// Connector turns a two-event gesture into a directed edge. It is a
// state machine with two states: idle (no pending source) and pending
// on a source node.
//
//	Start(a)        idle -> pending(a); pending(b) -> pending(a)
//	End(b)          pending(a) -> idle, adding edge a -> b
//	End(a)          pending(a) -> idle, no edge (self-loop)
//	Cancel()        pending(a) -> idle
type Connector struct {
	graph  *Graph
	source string
}

// NewConnector creates a connection controller bound to a graph.
func NewConnector(g *Graph) *Connector {
	return &Connector{graph: g}
}

// Start arms the controller with a source node. Starting while already
// pending re-arms with the new source rather than stacking.
func (c *Connector) Start(nodeID string) {
	c.source = nodeID
}

// End completes the gesture against a target node. The edge is added
// through Graph.AddConnection, which still rejects duplicates and
// missing endpoints. Self-targets return to idle without an edge.
// Returns true only if an edge was actually created. No-op when idle.
func (c *Connector) End(targetID string) bool {
	if c.source == "" {
		return false
	}
	source := c.source
	c.source = ""
	if targetID == source {
		return false
	}
	return c.graph.AddConnection(source, targetID)
}

// Cancel discards the pending source, returning to idle.
func (c *Connector) Cancel() {
	c.source = ""
}

// Pending returns the pending source ID, or "" when idle.
func (c *Connector) Pending() string {
	return c.source
}
