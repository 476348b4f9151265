package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/petasbytes/agent-patterns/agent"
)

// Demo prompts, one per pattern.
const (
	basicPrompt      = "Hello! What can you help me with?"
	toolsPrompt      = "What's the weather in Paris and what's 15 * 23?"
	ragQuery         = "When was the company founded?"
	reasoningTask    = "Plan a week-long trip to Japan"
	streamingPrompt  = "Write a short poem about AI"
	autonomousPrompt = "Research recent AI developments and summarize"
)

var headers = map[string]string{
	agent.PatternBasic:      "BASIC AGENT",
	agent.PatternTools:      "TOOL-USING AGENT",
	agent.PatternRAG:        "RAG AGENT",
	agent.PatternReasoning:  "REASONING AGENT",
	agent.PatternStreaming:  "STREAMING AGENT",
	agent.PatternAutonomous: "AUTONOMOUS AGENT",
}

// selectPatterns returns the patterns named in args in demo order, or all of
// them when args is empty.
func selectPatterns(args []string) ([]string, error) {
	if len(args) == 0 {
		return agent.Patterns, nil
	}
	want := make(map[string]bool, len(args))
	for _, a := range args {
		name := strings.ToLower(strings.TrimSpace(a))
		if !slices.Contains(agent.Patterns, name) {
			return nil, fmt.Errorf("unknown pattern %q (want one of %s)", a, strings.Join(agent.Patterns, ", "))
		}
		want[name] = true
	}
	var out []string
	for _, p := range agent.Patterns {
		if want[p] {
			out = append(out, p)
		}
	}
	return out, nil
}

type demo struct {
	agent         *agent.Agent
	autonomous    *agent.Autonomous
	docs          []string
	maxIterations int
}

// run prints the header for pattern and its output to w.
func (d *demo) run(ctx context.Context, w io.Writer, pattern string) error {
	fmt.Fprintf(w, "=== %s ===\n", headers[pattern])

	var (
		out string
		err error
	)
	switch pattern {
	case agent.PatternBasic:
		out, _, err = d.agent.Chat(ctx, basicPrompt, nil)
	case agent.PatternTools:
		out, err = d.agent.RunTools(ctx, toolsPrompt)
	case agent.PatternRAG:
		out, err = d.agent.AnswerWithContext(ctx, ragQuery, d.docs)
	case agent.PatternReasoning:
		out, err = d.agent.Reason(ctx, reasoningTask)
	case agent.PatternStreaming:
		err = d.agent.Stream(ctx, w, streamingPrompt)
	case agent.PatternAutonomous:
		out, err = d.autonomous.ExecuteTask(ctx, autonomousPrompt, d.maxIterations)
	default:
		return fmt.Errorf("unknown pattern %q", pattern)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", pattern, err)
	}
	if pattern != agent.PatternStreaming {
		fmt.Fprintln(w, out)
	}
	fmt.Fprintln(w)
	return nil
}
