package editor

// Drag converts pointer movement into node position updates. It is a
// two-phase interaction: Pick captures the node and the pointer's
// offset from the node's top-left corner, MoveTo recomputes the
// position as pointer minus captured offset on every move event, and
// Release clears the picked node.
//
// Only one node is dragged at a time. Move events with no picked node
// are no-ops, and a second Pick before Release is ignored. Dragging
// mutates nothing but position.
type Drag struct {
	graph  *Graph
	nodeID string
	offset Position
}

// NewDrag creates a drag controller bound to a graph.
func NewDrag(g *Graph) *Drag {
	return &Drag{graph: g}
}

// Pick begins dragging the node under the pointer. Returns false, and
// changes nothing, if the node does not exist or a drag is already in
// progress.
func (d *Drag) Pick(nodeID string, pointer Position) bool {
	if d.nodeID != "" {
		return false
	}
	n, ok := d.graph.Node(nodeID)
	if !ok {
		return false
	}
	d.nodeID = nodeID
	d.offset = pointer.Sub(n.Position)
	return true
}

// MoveTo repositions the picked node so it keeps its original offset
// from the pointer. The position is applied to the graph immediately,
// with no intermediate buffering. No-op when nothing is picked.
func (d *Drag) MoveTo(pointer Position) bool {
	if d.nodeID == "" {
		return false
	}
	d.graph.SetPosition(d.nodeID, pointer.Sub(d.offset))
	return true
}

// Release ends the drag. Safe to call when nothing is picked.
func (d *Drag) Release() {
	d.nodeID = ""
	d.offset = Position{}
}

// Active reports whether a node is currently picked.
func (d *Drag) Active() bool {
	return d.nodeID != ""
}

// NodeID returns the picked node's ID, or "" when idle.
func (d *Drag) NodeID() string {
	return d.nodeID
}
