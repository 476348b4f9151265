package windowing

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// TokenCounter estimates the input-token cost of messages.
type TokenCounter interface {
	CountMessage(m anthropic.MessageParam) int
	CountGroup(g Group, all []anthropic.MessageParam) int
}

// BlockOverhead is added once per content block.
const BlockOverhead = 4

// HeuristicCounter is a deterministic estimate: one token per rune of text
// (including text nested in tool results and tool names) plus BlockOverhead
// per block. Images, documents and thinking count overhead only.
type HeuristicCounter struct{}

func (HeuristicCounter) CountMessage(m anthropic.MessageParam) int {
	n := 0
	for _, blk := range m.Content {
		n += BlockOverhead + blockRunes(blk)
	}
	return n
}

func (h HeuristicCounter) CountGroup(g Group, all []anthropic.MessageParam) int {
	n := 0
	for i := g.Start; i < g.End && i < len(all); i++ {
		n += h.CountMessage(all[i])
	}
	return n
}

func blockRunes(blk anthropic.ContentBlockParamUnion) int {
	switch {
	case blk.OfText != nil:
		return utf8.RuneCountInString(blk.OfText.Text)
	case blk.OfToolUse != nil:
		return utf8.RuneCountInString(blk.OfToolUse.Name)
	case blk.OfToolResult != nil:
		n := 0
		for _, c := range blk.OfToolResult.Content {
			if c.OfText != nil {
				n += utf8.RuneCountInString(c.OfText.Text)
			}
		}
		return n
	}
	return 0
}
