/*
Package editor implements the graph-construction core of FlowKit
Studio: the in-memory pipeline model, the pointer-driven editing
interactions, and the view state that ties them together.

# Overview

A pipeline is a directed graph of nodes, each carrying a name, opaque
source text, and an advisory flow level. The user assembles the graph
interactively; on submission it is encoded (see the wire subpackage)
and handed to the orchestration service (see the client subpackage).
Nothing here executes or validates user code, and graphs are never
persisted locally.

# Model

Graph owns the node and connection sets and enforces the structural
invariants: the reserved "start" node always exists, node IDs are never
reused, connections always reference live nodes, and no duplicate or
self-loop edges exist.

# Interaction

Drag and Connector translate gestures into Graph mutations. Editor
composes them with a ViewState tagged union and exposes one named
command per gesture:

	e := editor.New()
	n := e.AddNode()
	e.StartConnection(editor.StartNodeID)
	e.EndConnection(n.ID)

	e.PickNode(n.ID, editor.Position{X: 200, Y: 120})
	e.MoveTo(editor.Position{X: 300, Y: 160})
	e.Release()

Everything runs on a single event loop; no type in this package is safe
for concurrent use.
*/
package editor
