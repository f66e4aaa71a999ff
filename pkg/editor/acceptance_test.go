package editor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowkit/studio/pkg/editor"
	"github.com/flowkit/studio/pkg/editor/client"
	"github.com/flowkit/studio/pkg/editor/journal"
	"github.com/flowkit/studio/pkg/editor/wire"
)

// TestScenario_DefaultGraphSubmission walks the minimal session: the
// fresh single-node graph with input "{}" encodes to the documented
// payload and round-trips through submission.
func TestScenario_DefaultGraphSubmission(t *testing.T) {
	var received map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"message":"ok","flow_id":"f-accept-1"}`))
	}))
	defer srv.Close()

	e := editor.New()
	sub, err := wire.Encode(e.Graph(), "{}")
	require.NoError(t, err)

	assert.Equal(t, wire.NodeEntry{Name: "start", Code: "", FlowLevel: 1}, sub.Nodes["start"])
	assert.Equal(t, sub.Nodes["start"], sub.CurrentNode)
	assert.Empty(t, sub.CurrentInput)

	c := client.New(srv.URL, srv.URL)
	flowID, err := c.SubmitFlow(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "f-accept-1", flowID)

	assert.JSONEq(t, `{"name":"start","code":"","flow_lvl":1}`, string(received["curr_node"]))
	assert.JSONEq(t, `{}`, string(received["curr_inp"]))
}

// TestScenario_AddConnectRemove tests that building and then deleting
// a node leaves the default graph.
func TestScenario_AddConnectRemove(t *testing.T) {
	e := editor.New()

	n := e.AddNode()
	assert.Equal(t, "node1", n.ID)
	assert.Equal(t, 2, n.FlowLevel)

	e.StartConnection(editor.StartNodeID)
	require.True(t, e.EndConnection(n.ID))

	e.RemoveNode(n.ID)

	g := e.Graph()
	assert.Equal(t, 1, g.NodeCount())
	assert.Zero(t, g.ConnectionCount())
	_, ok := g.Node(editor.StartNodeID)
	assert.True(t, ok)
}

// TestScenario_InvalidInputNeverReachesTheWire tests validation
// ordering: a malformed input payload fails the encode, so nothing is
// ever submitted.
func TestScenario_InvalidInputNeverReachesTheWire(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	defer srv.Close()

	e := editor.New()
	sub, err := wire.Encode(e.Graph(), "{not json")
	require.Nil(t, sub)
	assert.ErrorIs(t, err, wire.ErrInvalidInput)

	// The graph and editing state are untouched by the failure.
	assert.Equal(t, 1, e.Graph().NodeCount())
	assert.Equal(t, 0, requests)
}

// TestScenario_Tracker tests the tracker lookups: a blank identifier
// fails locally, a known one returns the record verbatim.
func TestScenario_Tracker(t *testing.T) {
	record := `{"flow_id":"abc-123","state":"done"}`
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/flow/abc-123", r.URL.Path)
		_, _ = w.Write([]byte(record))
	}))
	defer srv.Close()

	c := client.New(srv.URL, srv.URL)

	_, err := c.FetchFlow(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrMissingFlowID)
	assert.Equal(t, 0, requests)

	got, err := c.FetchFlow(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, record, string(got))
	assert.Equal(t, 1, requests)
}

// TestScenario_EditSubmitTrack drives a fuller session: build a small
// pipeline, submit it with a journal attached, then look it up.
func TestScenario_EditSubmitTrack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fcb/add", func(w http.ResponseWriter, r *http.Request) {
		var sub wire.Submission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		require.Len(t, sub.Nodes, 3)

		// Node code travels Base64-encoded and decodes back.
		code, err := sub.Nodes["node1"].DecodeCode()
		require.NoError(t, err)
		assert.Equal(t, "fetch()", code)

		_, _ = w.Write([]byte(`{"flow_id":"f-e2e"}`))
	})
	mux.HandleFunc("/flow/f-e2e", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"flow_id":"f-e2e","execution_path":["start","node1","node2"]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := editor.New()
	n1 := e.AddNode()
	e.SetName(n1.ID, "fetch")
	e.SetCode(n1.ID, "fetch()")
	n2 := e.AddNode()
	e.SetCode(n2.ID, "process()")

	e.StartConnection(editor.StartNodeID)
	require.True(t, e.EndConnection(n1.ID))
	e.StartConnection(n1.ID)
	require.True(t, e.EndConnection(n2.ID))

	sub, err := wire.Encode(e.Graph(), `{"limit": 5}`)
	require.NoError(t, err)

	store := journal.NewMemoryStore()
	defer store.Close()
	c := client.New(srv.URL, srv.URL, client.WithJournal(store))

	lc := client.Begin[string]()
	flowID, err := c.SubmitFlow(context.Background(), sub)
	require.NoError(t, err)
	lc = lc.Succeed(flowID)

	v, ok := lc.Value()
	require.True(t, ok)
	assert.Equal(t, "f-e2e", v)

	entry, err := store.Get(context.Background(), "f-e2e")
	require.NoError(t, err)
	assert.Equal(t, 3, entry.NodeCount)

	record, err := c.FetchFlow(context.Background(), flowID)
	require.NoError(t, err)
	assert.Contains(t, string(record), "execution_path")

	// Submission left the live graph untouched.
	assert.Equal(t, 3, e.Graph().NodeCount())
	assert.Equal(t, 2, e.Graph().ConnectionCount())
}
