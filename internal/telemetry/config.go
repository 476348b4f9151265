package telemetry

import "os"

// Startup values. A later "1" in the environment still switches a flag on,
// which tests rely on; nothing switches one off mid-run.
var (
	calibrationAtStartup bool
	observeAtStartup     bool
	persistAtStartup     bool
)

func init() {
	calibrationAtStartup = os.Getenv("AGT_CALIBRATION_MODE") == "1"
	// Calibration implies observe and persist unless they are set explicitly.
	observeAtStartup = explicitOr("AGT_OBSERVE_JSON", calibrationAtStartup)
	persistAtStartup = explicitOr("AGT_PERSIST_API_PAYLOADS", calibrationAtStartup)
}

func explicitOr(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		return v == "1"
	}
	return fallback
}

func enabled(key string, atStartup bool) bool {
	return os.Getenv(key) == "1" || atStartup
}

// CalibrationModeEnabled reports whether local-feature events are recorded.
func CalibrationModeEnabled() bool { return enabled("AGT_CALIBRATION_MODE", calibrationAtStartup) }

// ObserveEnabled reports whether events are appended to events.jsonl.
func ObserveEnabled() bool { return enabled("AGT_OBSERVE_JSON", observeAtStartup) }

// PersistPayloadsEnabled reports whether request and response bodies are written to disk.
func PersistPayloadsEnabled() bool { return enabled("AGT_PERSIST_API_PAYLOADS", persistAtStartup) }

// ArtifactsDir is where events and payloads go: AGT_ARTIFACTS_DIR, or ".agent".
func ArtifactsDir() string {
	if d := os.Getenv("AGT_ARTIFACTS_DIR"); d != "" {
		return d
	}
	return ".agent"
}
