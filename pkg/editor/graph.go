package editor

import "fmt"

// Default placement for the start node and the offset applied to each
// freshly added node so it does not cover the most recent one.
var (
	startPosition = Position{X: 120, Y: 80}
	spawnOffset   = Position{X: 40, Y: 40}
)

// Graph is the authoritative in-memory model of a pipeline under
// construction: a set of nodes plus directed connections between them.
// All mutation goes through the named operations below; callers never
// reach into the node or connection sets directly.
//
// Graph is NOT safe for concurrent use. It is owned by a single event
// loop and mutated synchronously in response to user input, so no
// locking is required or provided.
//
// A new graph always contains the reserved "start" node:
//
//	g := editor.NewGraph()
//	n := g.AddNode()                     // "node1", flow level 2
//	g.AddConnection(editor.StartNodeID, n.ID)
type Graph struct {
	nodes       []Node
	connections []Connection
	nextID      int
}

// NewGraph creates a graph seeded with the start node at flow level 1
// and empty code.
func NewGraph() *Graph {
	return &Graph{
		nodes: []Node{{
			ID:        StartNodeID,
			Name:      StartNodeID,
			FlowLevel: 1,
			Position:  startPosition,
		}},
		nextID: 1,
	}
}

// AddNode creates a node with a fresh unique ID ("node1", "node2", ...
// — IDs are never reused within a session), a default flow level of
// node-count+1, and a position offset from the most recently added
// node. Returns a copy of the created node.
func (g *Graph) AddNode() Node {
	id := fmt.Sprintf("node%d", g.nextID)
	g.nextID++

	n := Node{
		ID:        id,
		Name:      id,
		FlowLevel: len(g.nodes) + 1,
		Position:  g.nodes[len(g.nodes)-1].Position.Add(spawnOffset),
	}
	g.nodes = append(g.nodes, n)
	return n
}

// RemoveNode removes the node and every connection touching it.
// Removing the start node is a no-op, as is removing an unknown ID.
func (g *Graph) RemoveNode(id string) {
	if id == StartNodeID {
		return
	}
	idx := g.index(id)
	if idx < 0 {
		return
	}
	g.nodes = append(g.nodes[:idx], g.nodes[idx+1:]...)

	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.From != id && c.To != id {
			kept = append(kept, c)
		}
	}
	g.connections = kept
}

// SetName updates a node's display name. Unknown IDs are ignored.
func (g *Graph) SetName(id, name string) {
	if idx := g.index(id); idx >= 0 {
		g.nodes[idx].Name = name
	}
}

// SetCode replaces a node's source text. Unknown IDs are ignored.
func (g *Graph) SetCode(id, code string) {
	if idx := g.index(id); idx >= 0 {
		g.nodes[idx].Code = code
	}
}

// SetFlowLevel updates a node's flow level. Unknown IDs are ignored.
// The level is advisory: nothing ties it to connection direction.
func (g *Graph) SetFlowLevel(id string, level int) {
	if idx := g.index(id); idx >= 0 {
		g.nodes[idx].FlowLevel = level
	}
}

// SetPosition moves a node on the canvas. Unknown IDs are ignored.
// Connections are unaffected; edges are rendered from endpoint
// positions, not stored coordinates.
func (g *Graph) SetPosition(id string, pos Position) {
	if idx := g.index(id); idx >= 0 {
		g.nodes[idx].Position = pos
	}
}

// AddConnection adds the directed edge from -> to. The edge is
// rejected (no-op, returns false) if the endpoints are equal, either
// endpoint does not exist, or an identical edge already exists.
func (g *Graph) AddConnection(from, to string) bool {
	if from == to {
		return false
	}
	if g.index(from) < 0 || g.index(to) < 0 {
		return false
	}
	if g.HasConnection(from, to) {
		return false
	}
	g.connections = append(g.connections, Connection{From: from, To: to})
	return true
}

// RemoveConnection removes the matching edge if present.
func (g *Graph) RemoveConnection(from, to string) {
	for i, c := range g.connections {
		if c.From == from && c.To == to {
			g.connections = append(g.connections[:i], g.connections[i+1:]...)
			return
		}
	}
}

// HasConnection reports whether the edge from -> to exists.
func (g *Graph) HasConnection(from, to string) bool {
	for _, c := range g.connections {
		if c.From == from && c.To == to {
			return true
		}
	}
	return false
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	if idx := g.index(id); idx >= 0 {
		return g.nodes[idx], true
	}
	return Node{}, false
}

// Nodes returns a copy of the node set in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Connections returns a copy of the connection set in insertion order.
func (g *Graph) Connections() []Connection {
	out := make([]Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// NodeCount returns the number of nodes, including the start node.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// ConnectionCount returns the number of directed edges.
func (g *Graph) ConnectionCount() int {
	return len(g.connections)
}

// index returns the slice index of the node with the given ID, or -1.
func (g *Graph) index(id string) int {
	for i := range g.nodes {
		if g.nodes[i].ID == id {
			return i
		}
	}
	return -1
}
