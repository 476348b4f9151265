package agent

import (
	"errors"

	"github.com/petasbytes/agent-patterns/internal/provider"
	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/tools"
)

// Pattern names, used as request labels and CLI arguments.
const (
	PatternBasic      = "basic"
	PatternTools      = "tools"
	PatternRAG        = "rag"
	PatternReasoning  = "reasoning"
	PatternStreaming  = "streaming"
	PatternAutonomous = "autonomous"
)

// Patterns lists every pattern in demo order.
var Patterns = []string{PatternBasic, PatternTools, PatternRAG, PatternReasoning, PatternStreaming, PatternAutonomous}

// DefaultMaxIterations bounds the tool loop when Settings leaves it unset.
const DefaultMaxIterations = 10

var (
	// ErrNoText is returned when a reply that should answer carries no text block.
	ErrNoText = errors.New("agent: reply has no text block")
	// ErrIterationLimit is returned when the tool loop is still asking for
	// tools after its last allowed request.
	ErrIterationLimit = errors.New("agent: tool loop iteration limit reached")
)

// Settings tunes request sizes and loop bounds. Zero values take defaults.
type Settings struct {
	MaxTokens         int64
	LongMaxTokens     int64
	ToolMaxIterations int
}

func (s Settings) withDefaults() Settings {
	if s.MaxTokens <= 0 {
		s.MaxTokens = provider.DefaultMaxTokens
	}
	if s.LongMaxTokens <= 0 {
		s.LongMaxTokens = provider.DefaultLongMaxTokens
	}
	if s.ToolMaxIterations <= 0 {
		s.ToolMaxIterations = DefaultMaxIterations
	}
	return s
}

// Agent runs the single-shot patterns. It holds no history between calls and
// may be shared.
type Agent struct {
	runner   *runner.Runner
	settings Settings
	tools    *tools.Registry

	// Executor runs tool calls for RunTools. Nil means the built-in tools.
	Executor tools.Executor
}

// New returns an Agent using r for every request.
func New(r *runner.Runner, s Settings) *Agent {
	return &Agent{runner: r, settings: s.withDefaults(), tools: tools.Assistant()}
}

func (a *Agent) executor() tools.Executor {
	if a.Executor != nil {
		return a.Executor
	}
	return a.tools
}
