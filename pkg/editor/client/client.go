// Package client implements the studio's side of the orchestration
// protocol: submitting an encoded graph for execution and fetching the
// persisted execution record of a submitted flow.
//
// Every operation is a single request with no retries; a failure is
// terminal for that user action. The editor remains usable while a
// request is in flight, so callers track each invocation with a
// Lifecycle value rather than blocking.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowkit/studio/pkg/editor/journal"
	"github.com/flowkit/studio/pkg/editor/observability"
	"github.com/flowkit/studio/pkg/editor/wire"
)

// DefaultTimeout bounds every request. The service protocol specifies
// no timeout, so the client supplies a defensive one.
const DefaultTimeout = 30 * time.Second

// Client talks to the flow control unit (submission, pause, resume)
// and the trace monitor (record lookup). It is safe for concurrent use
// as long as the configured journal store is.
type Client struct {
	controlUnitURL  string
	traceMonitorURL string
	httpClient      *http.Client
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	journal         journal.Store
	sessionID       string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the request timeout. Default: DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithSpans attaches a trace span manager.
func WithSpans(s observability.SpanManager) Option {
	return func(c *Client) {
		c.spans = s
	}
}

// WithJournal records successful submissions in the given store.
// Journal failures are logged and never fail a submission.
func WithJournal(store journal.Store) Option {
	return func(c *Client) {
		c.journal = store
	}
}

// New creates a client for the given control unit and trace monitor
// base URLs.
func New(controlUnitURL, traceMonitorURL string, opts ...Option) *Client {
	c := &Client{
		controlUnitURL:  strings.TrimRight(controlUnitURL, "/"),
		traceMonitorURL: strings.TrimRight(traceMonitorURL, "/"),
		httpClient:      &http.Client{Timeout: DefaultTimeout},
		metrics:         observability.NoopMetrics{},
		spans:           observability.NoopSpanManager{},
		sessionID:       uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the editing-session correlation ID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// createFlowResponse is the control unit's reply to a submission.
type createFlowResponse struct {
	FlowID  string `json:"flow_id"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// SubmitFlow sends an encoded submission to the control unit and
// returns the flow ID it assigned. The payload must already have
// passed encoding; no validation happens here. A well-formed response
// without a flow ID is a *ServiceError carrying the service's message.
func (c *Client) SubmitFlow(ctx context.Context, sub *wire.Submission) (string, error) {
	if sub == nil {
		return "", ErrNilSubmission
	}

	body, err := sub.MarshalBody()
	if err != nil {
		return "", err
	}

	attemptID := uuid.NewString()
	nodeCount := len(sub.Nodes)
	logger := observability.EnrichLogger(c.logger, c.sessionID, attemptID)
	observability.LogSubmitStart(logger, attemptID, nodeCount)

	ctx, span := c.spans.StartSubmitSpan(ctx, attemptID, nodeCount)
	done := observability.TimedOperation()
	start := time.Now()

	status, respBody, err := c.roundTrip(ctx, "submit", http.MethodPost, c.controlUnitURL+"/fcb/add", body)
	if err == nil {
		err = checkStatus("submit", status, respBody)
	}

	var resp createFlowResponse
	if err == nil {
		if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil || resp.FlowID == "" {
			message := resp.Message
			if message == "" {
				message = "service did not return a flow id"
			}
			err = &ServiceError{Op: "submit", Message: message, Err: ErrNoFlowID}
		}
	}

	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordSubmission(ctx, time.Since(start), nodeCount, err)

	if err != nil {
		observability.LogSubmitError(logger, attemptID, err, done())
		return "", err
	}

	observability.LogSubmitComplete(logger, attemptID, resp.FlowID, done())
	c.recordSubmission(ctx, logger, resp.FlowID, nodeCount)
	return resp.FlowID, nil
}

// FetchFlow retrieves the persisted execution record for a flow. The
// identifier must be non-empty after trimming whitespace; an empty one
// fails locally with ErrMissingFlowID, before any network traffic. The
// record is returned verbatim for display.
func (c *Client) FetchFlow(ctx context.Context, flowID string) (json.RawMessage, error) {
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return nil, ErrMissingFlowID
	}

	observability.LogFetchStart(c.logger, flowID)
	ctx, span := c.spans.StartFetchSpan(ctx, flowID)
	done := observability.TimedOperation()
	start := time.Now()

	status, body, err := c.roundTrip(ctx, "fetch", http.MethodGet, c.traceMonitorURL+"/flow/"+url.PathEscape(flowID), nil)
	if err == nil {
		err = checkStatus("fetch", status, body)
	}

	var record json.RawMessage
	if err == nil {
		record, err = wire.DecodeRecord(body)
	}

	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordFetch(ctx, time.Since(start), err)

	if err != nil {
		observability.LogFetchError(c.logger, flowID, err)
		return nil, err
	}

	observability.LogFetchComplete(c.logger, flowID, done(), len(record))
	return record, nil
}

// PauseFlow asks the control unit to pause a running flow.
// Returns the service's confirmation message.
func (c *Client) PauseFlow(ctx context.Context, flowID string) (string, error) {
	return c.flowAction(ctx, "pause", flowID)
}

// ResumeFlow asks the control unit to resume a paused flow.
// Returns the service's confirmation message.
func (c *Client) ResumeFlow(ctx context.Context, flowID string) (string, error) {
	return c.flowAction(ctx, "resume", flowID)
}

// ListFlows retrieves the trace monitor's registry of tracked flows,
// returned verbatim for display.
func (c *Client) ListFlows(ctx context.Context) (json.RawMessage, error) {
	status, body, err := c.roundTrip(ctx, "list", http.MethodGet, c.traceMonitorURL+"/flows", nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus("list", status, body); err != nil {
		return nil, err
	}
	return wire.DecodeRecord(body)
}

// Ping probes the control unit's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	status, body, err := c.roundTrip(ctx, "ping", http.MethodGet, c.controlUnitURL+"/health", nil)
	if err != nil {
		return err
	}
	return checkStatus("ping", status, body)
}

// flowAction issues a pause or resume request.
func (c *Client) flowAction(ctx context.Context, op, flowID string) (string, error) {
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return "", ErrMissingFlowID
	}

	target := c.controlUnitURL + "/fcb/" + url.PathEscape(flowID) + "/" + op
	status, body, err := c.roundTrip(ctx, op, http.MethodPost, target, nil)
	if err != nil {
		return "", err
	}
	if err := checkStatus(op, status, body); err != nil {
		return "", err
	}

	var resp createFlowResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ServiceError{Op: op, Message: "unreadable response", Err: err}
	}
	return resp.Message, nil
}

// roundTrip performs one HTTP exchange and reads the full body.
// Transport-level failures come back as *TransportError.
func (c *Client) roundTrip(ctx context.Context, op, method, target string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, &TransportError{Op: op, URL: target, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: op, URL: target, Err: err}
	}
	return resp.StatusCode, respBody, nil
}

// checkStatus converts a non-2xx response into a *ServiceError with
// the service-supplied reason when one is present.
func checkStatus(op string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	message := http.StatusText(status)
	var resp createFlowResponse
	if json.Unmarshal(body, &resp) == nil {
		if resp.Detail != "" {
			message = resp.Detail
		} else if resp.Message != "" {
			message = resp.Message
		}
	}
	return &ServiceError{Op: op, StatusCode: status, Message: message}
}

// recordSubmission journals a successful submission. Failures are
// non-fatal: the flow was accepted either way.
func (c *Client) recordSubmission(ctx context.Context, logger *slog.Logger, flowID string, nodeCount int) {
	if c.journal == nil {
		return
	}
	err := c.journal.Record(ctx, journal.Entry{
		FlowID:      flowID,
		SessionID:   c.sessionID,
		NodeCount:   nodeCount,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		observability.LogJournalError(logger, flowID, err)
	}
}
