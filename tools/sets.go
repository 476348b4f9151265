package tools

import "github.com/petasbytes/agent-patterns/internal/fsops"

// Assistant returns the tool-dispatch loop's tools: get_weather and calculator.
func Assistant() *Registry {
	return MustRegistry(Weather{}, Calculator{})
}

// Autonomous returns the autonomous loop's tools: search_web and save_to_file.
// A non-nil sandbox makes save_to_file write for real.
func Autonomous(sandbox *fsops.Sandbox) *Registry {
	return MustRegistry(SearchWeb{}, SaveToFile{Sandbox: sandbox})
}
