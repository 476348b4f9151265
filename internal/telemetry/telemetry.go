// Package telemetry records local JSONL events, API payloads and trace spans
// under the artifacts directory.
package telemetry

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventsFile is the name of the JSONL log inside ArtifactsDir.
const EventsFile = "events.jsonl"

var emitMu sync.Mutex

// Emit appends one JSON object to <ArtifactsDir>/events.jsonl when observe is
// enabled. The object holds fields plus "event" (name) and "time" (RFC3339Nano).
// Failures are logged and otherwise ignored.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	rec := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		rec[k] = v
	}
	rec["event"] = name
	rec["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	line, err := json.Marshal(rec)
	if err != nil {
		slog.Warn("telemetry: marshal event", "event", name, "error", err)
		return
	}

	emitMu.Lock()
	defer emitMu.Unlock()

	dir := ArtifactsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("telemetry: create artifacts dir", "dir", dir, "error", err)
		return
	}
	path := filepath.Join(dir, EventsFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("telemetry: open events file", "path", path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		slog.Warn("telemetry: write event", "path", path, "error", err)
	}
}
