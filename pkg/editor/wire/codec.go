// Package wire encodes an edited graph into the orchestration
// service's submission format and decodes fetched flow records for
// display.
package wire

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/flowkit/studio/pkg/editor"
)

// NodeEntry is the per-node payload in a submission. Code is the
// Base64 encoding of the node's UTF-8 source text, so arbitrary code
// survives transport as plain ASCII.
type NodeEntry struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	FlowLevel int    `json:"flow_lvl"`
}

// DecodeCode returns the node's original source text.
func (e NodeEntry) DecodeCode() (string, error) {
	raw, err := base64.StdEncoding.DecodeString(e.Code)
	if err != nil {
		return "", fmt.Errorf("decode node code: %w", err)
	}
	return string(raw), nil
}

// Submission is the create-flow request body. Connections are not part
// of the wire format: the orchestrator receives only the node table,
// the initial input, and the designated current node. See the package
// notes in DESIGN.md before adding a topology field.
type Submission struct {
	Nodes        map[string]NodeEntry `json:"nodes"`
	CurrentInput map[string]any       `json:"curr_inp"`
	CurrentNode  NodeEntry            `json:"curr_node"`
}

// MarshalBody serializes the submission for transport. Map keys are
// marshaled in sorted order, so an unchanged graph always produces
// byte-identical bodies.
func (s *Submission) MarshalBody() ([]byte, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}
	return body, nil
}

// Encode builds a submission from the graph and the free-form input
// text. The input must be a JSON object; anything else fails with an
// *InputError before any payload is produced. The designated current
// node is always the start node.
func Encode(g *editor.Graph, inputText string) (*Submission, error) {
	var input map[string]any
	if err := json.Unmarshal([]byte(inputText), &input); err != nil {
		return nil, &InputError{Err: err}
	}

	nodes := make(map[string]NodeEntry)
	for _, n := range g.Nodes() {
		nodes[n.ID] = NodeEntry{
			Name:      n.Name,
			Code:      base64.StdEncoding.EncodeToString([]byte(n.Code)),
			FlowLevel: n.FlowLevel,
		}
	}

	start, ok := nodes[editor.StartNodeID]
	if !ok {
		// Unreachable for graphs built through editor.NewGraph.
		return nil, fmt.Errorf("encode submission: %w", ErrNoStartNode)
	}

	return &Submission{
		Nodes:        nodes,
		CurrentInput: input,
		CurrentNode:  start,
	}, nil
}

// DecodeRecord validates a fetched flow record and returns it verbatim.
// The record's schema belongs to the trace monitor; the studio only
// displays it.
func DecodeRecord(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, &RecordError{Body: body}
	}
	out := make(json.RawMessage, len(body))
	copy(out, body)
	return out, nil
}

// FormatRecord pretty-prints a flow record for display.
func FormatRecord(record json.RawMessage) string {
	var buf []byte
	var err error
	if buf, err = json.MarshalIndent(json.RawMessage(record), "", "  "); err != nil {
		return string(record)
	}
	return string(buf)
}
