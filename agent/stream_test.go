package agent_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/agent-patterns/agent"
	"github.com/petasbytes/agent-patterns/internal/apitest"
)

const poemStream = `event: message_start
data: {"type":"message_start","message":{"id":"msg_s","type":"message","role":"assistant","model":"claude-sonnet-4-20250514","content":[],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":9,"output_tokens":1}}}

event: content_block_start
data: {"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Silicon "}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"dreams"}}

event: content_block_stop
data: {"type":"content_block_stop","index":0}

event: message_delta
data: {"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":4}}

event: message_stop
data: {"type":"message_stop"}

`

// writeLog records every Write call separately.
type writeLog struct{ writes []string }

func (w *writeLog) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestStream_WritesFragmentsThenNewline(t *testing.T) {
	a, st := newAgent(agent.Settings{}, apitest.SSE(poemStream))

	w := &writeLog{}
	require.NoError(t, a.Stream(context.Background(), w, "Write a short poem about AI"))
	assert.Equal(t, []string{"Silicon ", "dreams", "\n"}, w.writes)

	req := st.Requests()[0]
	assert.True(t, req.Get("stream").Bool())
	assert.Equal(t, "Write a short poem about AI", req.Get("messages.0.content.0.text").String())
}

type failingWriter struct{}

var errClosed = errors.New("closed")

func (failingWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestStream_WriterError(t *testing.T) {
	a, _ := newAgent(agent.Settings{}, apitest.SSE(poemStream))
	assert.ErrorIs(t, a.Stream(context.Background(), failingWriter{}, "poem"), errClosed)
}

func TestStream_APIErrorWritesNothing(t *testing.T) {
	a, _ := newAgent(agent.Settings{})
	var buf bytes.Buffer
	require.Error(t, a.Stream(context.Background(), &buf, "poem"))
	assert.Empty(t, buf.String())
}
