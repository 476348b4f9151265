// Package windowing trims a conversation to a token budget without ever
// separating a tool_use turn from the turn carrying its results.
package windowing

import (
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
)

// GroupKind tells whether a Group is one message or a tool exchange.
type GroupKind int

const (
	GroupSingleton GroupKind = iota
	GroupPair
)

// Group is the half-open message range [Start, End) treated as one unit.
type Group struct {
	Kind  GroupKind
	Start int
	End   int
}

// GroupBlocks splits msgs into units. An assistant turn with tool_use blocks
// pairs with the next message only when that message is a user turn whose
// leading tool_result blocks answer exactly the same ids (text may follow the
// results, never precede them). Error results pair like any other. Everything
// else is a singleton.
func GroupBlocks(msgs []anthropic.MessageParam) []Group {
	groups := make([]Group, 0, len(msgs))
	for i := 0; i < len(msgs); i++ {
		if i+1 < len(msgs) {
			if reason := pairReason(msgs[i], msgs[i+1]); reason == "" {
				groups = append(groups, Group{Kind: GroupPair, Start: i, End: i + 2})
				i++
				continue
			} else if reason != "no_tool_use" {
				slog.Debug("windowing: not pairing", "reason", reason, "index", i)
			}
		}
		groups = append(groups, Group{Kind: GroupSingleton, Start: i, End: i + 1})
	}
	return groups
}

// pairReason returns "" when a and b form a tool exchange, otherwise why not.
func pairReason(a, b anthropic.MessageParam) string {
	if a.Role != anthropic.MessageParamRoleAssistant {
		return "no_tool_use"
	}
	uses := toolUseIDs(a)
	if len(uses) == 0 {
		return "no_tool_use"
	}
	if b.Role != anthropic.MessageParamRoleUser {
		return "not_followed_by_user"
	}
	results, ok := leadingResultIDs(b)
	switch {
	case !ok:
		return "ordering_invalid"
	case !subset(uses, results):
		return "missing_results"
	case !subset(results, uses):
		return "extra_results"
	}
	return ""
}

func toolUseIDs(m anthropic.MessageParam) map[string]bool {
	ids := map[string]bool{}
	for _, blk := range m.Content {
		if tu := blk.OfToolUse; tu != nil && tu.ID != "" {
			ids[tu.ID] = true
		}
	}
	return ids
}

// leadingResultIDs collects tool_result ids from the front of m. It reports
// false if a tool_result appears after any other block.
func leadingResultIDs(m anthropic.MessageParam) (map[string]bool, bool) {
	ids := map[string]bool{}
	pastResults := false
	for _, blk := range m.Content {
		tr := blk.OfToolResult
		if tr == nil {
			pastResults = true
			continue
		}
		if pastResults {
			return ids, false
		}
		if tr.ToolUseID != "" {
			ids[tr.ToolUseID] = true
		}
	}
	return ids, true
}

// subset reports whether every key of a is in b.
func subset(a, b map[string]bool) bool {
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}
