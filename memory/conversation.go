package memory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Conversation is an ordered list of turns. The zero value is empty and ready
// to use. It is not safe for concurrent use.
type Conversation struct {
	msgs []anthropic.MessageParam
}

// New returns a conversation seeded with msgs.
func New(msgs ...anthropic.MessageParam) *Conversation {
	return &Conversation{msgs: slices.Clone(msgs)}
}

// Append adds turns as-is.
func (c *Conversation) Append(msgs ...anthropic.MessageParam) {
	c.msgs = append(c.msgs, msgs...)
}

// AppendUserText adds a user turn with a single text block.
func (c *Conversation) AppendUserText(text string) {
	c.Append(anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
}

// AppendAssistantText adds an assistant turn with a single text block.
func (c *Conversation) AppendAssistantText(text string) {
	c.Append(anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
}

// AppendToolResults adds one user turn carrying all results.
func (c *Conversation) AppendToolResults(results []anthropic.ContentBlockParamUnion) {
	c.Append(anthropic.NewUserMessage(results...))
}

// Reset drops all turns and starts over from msgs.
func (c *Conversation) Reset(msgs ...anthropic.MessageParam) {
	c.msgs = slices.Clone(msgs)
}

// Messages returns a copy of the turns, suitable for a request.
func (c *Conversation) Messages() []anthropic.MessageParam {
	return slices.Clone(c.msgs)
}

// Len is the number of turns.
func (c *Conversation) Len() int { return len(c.msgs) }

// Message is a text-only view of one turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text,omitempty"`
}

// Transcript renders each turn as text. Tool blocks appear as bracketed
// markers so a printed transcript shows where tools ran.
func (c *Conversation) Transcript() []Message {
	out := make([]Message, 0, len(c.msgs))
	for _, m := range c.msgs {
		parts := make([]string, 0, len(m.Content))
		for _, blk := range m.Content {
			switch {
			case blk.OfText != nil:
				parts = append(parts, blk.OfText.Text)
			case blk.OfToolUse != nil:
				parts = append(parts, fmt.Sprintf("[tool_use %s]", blk.OfToolUse.Name))
			case blk.OfToolResult != nil:
				parts = append(parts, fmt.Sprintf("[tool_result %s]", blk.OfToolResult.ToolUseID))
			}
		}
		out = append(out, Message{Role: string(m.Role), Text: strings.Join(parts, "\n")})
	}
	return out
}
