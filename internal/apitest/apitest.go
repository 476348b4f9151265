// Package apitest fakes the Messages API at the HTTP transport so tests can
// drive a real SDK client.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"
)

// Reply is one canned HTTP response.
type Reply struct {
	Status      int
	ContentType string
	Body        string
}

// JSON is a 200 reply with a JSON body.
func JSON(body string) Reply { return Reply{Status: 200, ContentType: "application/json", Body: body} }

// SSE is a 200 reply with an event-stream body.
func SSE(body string) Reply { return Reply{Status: 200, ContentType: "text/event-stream", Body: body} }

const exhausted = `{"type":"error","error":{"type":"invalid_request_error","message":"script exhausted"}}`

// Transport replays replies in order and captures every request body. Once
// the script is exhausted it answers 400, which the SDK does not retry.
type Transport struct {
	mu      sync.Mutex
	replies []Reply
	bodies  [][]byte
}

// NewTransport returns a transport that will answer with replies.
func NewTransport(replies ...Reply) *Transport {
	return &Transport{replies: replies}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var b []byte
	if req.Body != nil {
		b, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.bodies = append(t.bodies, b)
	r := Reply{Status: 400, ContentType: "application/json", Body: exhausted}
	if len(t.replies) > 0 {
		r, t.replies = t.replies[0], t.replies[1:]
	}
	resp := &http.Response{
		StatusCode: r.Status,
		Body:       io.NopCloser(bytes.NewReader([]byte(r.Body))),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", r.ContentType)
	return resp, nil
}

// Requests returns the captured request bodies, oldest first.
func (t *Transport) Requests() []gjson.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]gjson.Result, len(t.bodies))
	for i, b := range t.bodies {
		out[i] = gjson.ParseBytes(b)
	}
	return out
}

// Client returns an SDK client whose requests all go through rt.
func Client(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0),
	)
	return &c
}

// ToolCall is a tool_use block in a canned reply.
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]any
}

// Message renders a Messages API response body. Texts come first, then calls.
func Message(stop string, texts []string, calls ...ToolCall) string {
	content := make([]map[string]any, 0, len(texts)+len(calls))
	for _, s := range texts {
		content = append(content, map[string]any{"type": "text", "text": s})
	}
	for _, c := range calls {
		in := c.Input
		if in == nil {
			in = map[string]any{}
		}
		content = append(content, map[string]any{"type": "tool_use", "id": c.ID, "name": c.Name, "input": in})
	}
	b, err := json.Marshal(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-sonnet-4-20250514",
		"content":     content,
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
	})
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Text is an end_turn reply with a single text block.
func Text(s string) string { return Message("end_turn", []string{s}) }
