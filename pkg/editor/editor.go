package editor

import (
	"context"
	"log/slog"

	"github.com/flowkit/studio/pkg/editor/observability"
)

// Editor is the state store behind the graph canvas. It owns the graph,
// the drag and connection controllers, and the view state, and exposes
// one named command per user gesture. Input bindings translate raw
// events into these commands; the commands apply synchronously, so the
// whole interaction layer is testable without any UI.
//
// Like Graph, Editor is single-owner and not safe for concurrent use.
type Editor struct {
	graph     *Graph
	drag      *Drag
	connector *Connector
	view      ViewState

	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger attaches a structured logger. Commands log at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithMetrics attaches a mutation metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Editor) {
		e.metrics = m
	}
}

// New creates an editor session around a fresh graph.
func New(opts ...Option) *Editor {
	g := NewGraph()
	e := &Editor{
		graph:     g,
		drag:      NewDrag(g),
		connector: NewConnector(g),
		view:      IdleView(),
		metrics:   observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the underlying graph model.
func (e *Editor) Graph() *Graph {
	return e.graph
}

// View returns the current view state.
func (e *Editor) View() ViewState {
	return e.view
}

// AddNode creates a node and selects it.
func (e *Editor) AddNode() Node {
	n := e.graph.AddNode()
	e.view = SelectedView(n.ID)
	e.record("add_node")
	observability.LogNodeAdded(e.logger, n.ID, n.FlowLevel)
	return n
}

// RemoveNode deletes a node and every connection touching it. The
// start node survives. Any view, drag, or pending connection referring
// to the removed node is reset.
func (e *Editor) RemoveNode(id string) {
	if id == StartNodeID {
		return
	}
	if _, ok := e.graph.Node(id); !ok {
		return
	}
	e.graph.RemoveNode(id)
	if viewed, ok := e.view.NodeID(); ok && viewed == id {
		e.view = IdleView()
	}
	if e.drag.NodeID() == id {
		e.drag.Release()
	}
	if e.connector.Pending() == id {
		e.connector.Cancel()
	}
	e.record("remove_node")
	observability.LogNodeRemoved(e.logger, id)
}

// SelectNode opens a node's detail panel. Unknown IDs reset to idle.
func (e *Editor) SelectNode(id string) {
	if _, ok := e.graph.Node(id); !ok {
		e.view = IdleView()
		return
	}
	e.view = SelectedView(id)
}

// EditCode opens the code overlay for a node. Unknown IDs are ignored.
func (e *Editor) EditCode(id string) {
	if _, ok := e.graph.Node(id); !ok {
		return
	}
	e.view = EditingCodeView(id)
}

// CloseView returns to the idle view, closing any open panel.
func (e *Editor) CloseView() {
	e.view = IdleView()
}

// SetName renames a node.
func (e *Editor) SetName(id, name string) {
	e.graph.SetName(id, name)
	e.record("set_name")
}

// SetCode replaces a node's source text.
func (e *Editor) SetCode(id, code string) {
	e.graph.SetCode(id, code)
	e.record("set_code")
}

// SetFlowLevel updates a node's flow level.
func (e *Editor) SetFlowLevel(id string, level int) {
	e.graph.SetFlowLevel(id, level)
	e.record("set_flow_level")
}

// PickNode starts dragging a node from the given pointer position.
func (e *Editor) PickNode(id string, pointer Position) bool {
	return e.drag.Pick(id, pointer)
}

// MoveTo tracks pointer movement during a drag.
func (e *Editor) MoveTo(pointer Position) {
	if e.drag.MoveTo(pointer) {
		e.record("move_node")
	}
}

// Release ends a drag.
func (e *Editor) Release() {
	e.drag.Release()
}

// StartConnection arms the connection gesture with a source node.
func (e *Editor) StartConnection(id string) {
	e.connector.Start(id)
}

// EndConnection completes the connection gesture against a target.
func (e *Editor) EndConnection(id string) bool {
	added := e.connector.End(id)
	if added {
		e.record("add_connection")
		observability.LogConnectionAdded(e.logger, id)
	}
	return added
}

// CancelConnection abandons a pending connection gesture.
func (e *Editor) CancelConnection() {
	e.connector.Cancel()
}

// RemoveConnection deletes the edge from -> to if present.
func (e *Editor) RemoveConnection(from, to string) {
	e.graph.RemoveConnection(from, to)
	e.record("remove_connection")
}

// record counts a graph mutation.
func (e *Editor) record(op string) {
	e.metrics.RecordMutation(context.Background(), op)
}
