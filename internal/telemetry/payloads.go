package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

var payloadSeq atomic.Int64

// PersistPayload writes v as indented JSON to
// <ArtifactsDir>/payloads/<turn>-<seq>-<kind>.json when payload persistence is
// enabled, and returns the path written ("" when disabled or on failure).
func PersistPayload(ctx context.Context, kind string, v any) string {
	if !PersistPayloadsEnabled() {
		return ""
	}
	turnID, ok := TurnIDFromContext(ctx)
	if !ok {
		turnID = "noturn"
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Warn("telemetry: marshal payload", "kind", kind, "error", err)
		return ""
	}

	dir := filepath.Join(ArtifactsDir(), "payloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("telemetry: create payload dir", "dir", dir, "error", err)
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%04d-%s.json", turnID, payloadSeq.Add(1), kind))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		slog.Warn("telemetry: write payload", "path", path, "error", err)
		return ""
	}
	return path
}
