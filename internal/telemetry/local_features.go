package telemetry

import (
	"context"

	"github.com/petasbytes/agent-patterns/internal/metrics"
)

// EmitLocalFeatures records size features of a user input, never the text
// itself. It only fires in calibration mode with observe on.
func EmitLocalFeatures(ctx context.Context, user string) {
	if !CalibrationModeEnabled() || !ObserveEnabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	Emit("local_features", map[string]any{
		"turn_id":          turnID,
		"features_version": "1",
		"user":             metrics.CountFeatures(user),
	})
}
