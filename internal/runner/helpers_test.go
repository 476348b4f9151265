package runner_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/agent-patterns/internal/telemetry"
)

const textReply = `{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-20250514",
"content":[{"type":"text","text":"hi there"}],"stop_reason":"end_turn",
"usage":{"input_tokens":11,"output_tokens":3}}`

// observeInto turns on event emission into a fresh artifacts dir.
func observeInto(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AGT_ARTIFACTS_DIR", dir)
	t.Setenv("AGT_OBSERVE_JSON", "1")
	return dir
}

// events returns the parsed events named name, oldest first.
func events(t *testing.T, dir, name string) []gjson.Result {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, telemetry.EventsFile))
	require.NoError(t, err)
	var out []gjson.Result
	for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
		ev := gjson.Parse(line)
		if ev.Get("event").String() == name {
			out = append(out, ev)
		}
	}
	return out
}

func mustMessage(t *testing.T, body string) *anthropic.Message {
	t.Helper()
	var msg anthropic.Message
	require.NoError(t, msg.UnmarshalJSON([]byte(body)))
	return &msg
}
