package editor

// ViewKind discriminates the view-state union.
type ViewKind int

const (
	// ViewIdle means no node is selected and no panel is open.
	ViewIdle ViewKind = iota
	// ViewSelected means a node's detail panel is open.
	ViewSelected
	// ViewEditingCode means a node's code overlay is open.
	ViewEditingCode
)

// String returns the kind name for logs.
func (k ViewKind) String() string {
	switch k {
	case ViewIdle:
		return "idle"
	case ViewSelected:
		return "selected"
	case ViewEditingCode:
		return "editing-code"
	default:
		return "unknown"
	}
}

// ViewState is a tagged union describing what the user is looking at:
// nothing, a selected node, or a node's open code editor. Representing
// this as one value rules out impossible combinations such as an open
// editor with no selection.
type ViewState struct {
	kind   ViewKind
	nodeID string
}

// IdleView returns the idle view state.
func IdleView() ViewState {
	return ViewState{kind: ViewIdle}
}

// SelectedView returns the view state for a selected node.
func SelectedView(nodeID string) ViewState {
	return ViewState{kind: ViewSelected, nodeID: nodeID}
}

// EditingCodeView returns the view state for an open code editor.
func EditingCodeView(nodeID string) ViewState {
	return ViewState{kind: ViewEditingCode, nodeID: nodeID}
}

// Kind returns the variant tag.
func (v ViewState) Kind() ViewKind {
	return v.kind
}

// NodeID returns the node the view refers to and whether one exists.
// Idle views refer to no node.
func (v ViewState) NodeID() (string, bool) {
	if v.kind == ViewIdle {
		return "", false
	}
	return v.nodeID, true
}
