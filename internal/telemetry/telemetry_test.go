package telemetry_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/agent-patterns/internal/telemetry"
)

// observeInto turns on event emission into a fresh artifacts dir.
func observeInto(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AGT_ARTIFACTS_DIR", dir)
	t.Setenv("AGT_OBSERVE_JSON", "1")
	return dir
}

func eventLines(t *testing.T, dir string) []string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, telemetry.EventsFile))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(b), "\n"), "JSONL must be newline-terminated")
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestEmit_GatedOff(t *testing.T) {
	dir := t.TempDir()
	out := runProbe(t, "TestEmitGatingProbe", map[string]string{
		"AGT_OBSERVE_JSON":  "0",
		"AGT_ARTIFACTS_DIR": dir,
	})
	assert.Contains(t, out, "no_file=true")
}

func TestEmitGatingProbe(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	telemetry.Emit("test_event", map[string]any{"foo": "bar"})
	_, err := os.Stat(filepath.Join(telemetry.ArtifactsDir(), telemetry.EventsFile))
	if os.IsNotExist(err) {
		println("no_file=true")
	} else {
		println("no_file=false")
	}
}

func TestEmit_WritesEventAndTime(t *testing.T) {
	dir := observeInto(t)

	telemetry.Emit("test_event", map[string]any{"foo": "bar", "num": 42})

	lines := eventLines(t, dir)
	require.Len(t, lines, 1)
	ev := gjson.Parse(lines[0])
	assert.Equal(t, "test_event", ev.Get("event").String())
	assert.Equal(t, "bar", ev.Get("foo").String())
	assert.EqualValues(t, 42, ev.Get("num").Int())
	_, err := time.Parse(time.RFC3339Nano, ev.Get("time").String())
	assert.NoError(t, err)
}

func TestEmit_AppendsInOrder(t *testing.T) {
	dir := observeInto(t)

	for _, name := range []string{"event1", "event2", "event3"} {
		telemetry.Emit(name, nil)
	}

	lines := eventLines(t, dir)
	require.Len(t, lines, 3)
	for i, want := range []string{"event1", "event2", "event3"} {
		assert.Equal(t, want, gjson.Get(lines[i], "event").String())
	}
	// nil fields give exactly event and time.
	assert.Len(t, gjson.Parse(lines[0]).Map(), 2)
}

func TestEmit_DoesNotMutateFields(t *testing.T) {
	observeInto(t)
	fields := map[string]any{"key": "value"}
	telemetry.Emit("test", fields)
	assert.Equal(t, map[string]any{"key": "value"}, fields)
}

func TestEmit_MarshalErrorWritesNothing(t *testing.T) {
	dir := observeInto(t)
	telemetry.Emit("bad", map[string]any{"x": math.NaN()})
	_, err := os.Stat(filepath.Join(dir, telemetry.EventsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestEmitLocalFeatures(t *testing.T) {
	dir := observeInto(t)
	t.Setenv("AGT_CALIBRATION_MODE", "1")

	ctx := telemetry.WithTurnID(context.Background(), "turn-xyz")
	user := "hello  world\nthis is\tgo"
	telemetry.EmitLocalFeatures(ctx, user)
	telemetry.EmitLocalFeatures(ctx, "")

	lines := eventLines(t, dir)
	require.Len(t, lines, 2)

	ev := gjson.Parse(lines[0])
	assert.Equal(t, "local_features", ev.Get("event").String())
	assert.Equal(t, "turn-xyz", ev.Get("turn_id").String())
	assert.Equal(t, "1", ev.Get("features_version").String())
	assert.EqualValues(t, 23, ev.Get("user.bytes").Int())
	assert.EqualValues(t, 5, ev.Get("user.words").Int())
	assert.EqualValues(t, 2, ev.Get("user.lines").Int())
	assert.NotContains(t, lines[0], "hello", "raw text must not leak")

	assert.EqualValues(t, 0, gjson.Get(lines[1], "user.runes").Int())
}

func TestEmitLocalFeatures_NeedsCalibration(t *testing.T) {
	dir := observeInto(t)
	t.Setenv("AGT_CALIBRATION_MODE", "0")

	telemetry.EmitLocalFeatures(context.Background(), "whatever")

	_, err := os.Stat(filepath.Join(dir, telemetry.EventsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestPersistPayload(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGT_ARTIFACTS_DIR", dir)
	t.Setenv("AGT_PERSIST_API_PAYLOADS", "1")

	ctx := telemetry.WithTurnID(context.Background(), "turn-p")
	path := telemetry.PersistPayload(ctx, "request", map[string]any{"model": "m", "max_tokens": 10})
	require.NotEmpty(t, path)
	assert.Equal(t, filepath.Join(dir, "payloads"), filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "turn-p-"))
	assert.True(t, strings.HasSuffix(path, "-request.json"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "m", gjson.GetBytes(b, "model").String())
}
