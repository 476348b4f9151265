package windowing

import (
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
)

// Stats describes one Fit call.
type Stats struct {
	// Total is the estimated cost of the returned window.
	Total            int
	Budget           int
	IncludedGroups   int
	SkippedGroups    int
	OverBudgetNewest bool
}

// Fit returns the longest suffix of msgs, made of whole groups, whose cost is
// within budget. When the newest group alone is over budget (or budget <= 0
// with messages present) the window is empty and OverBudgetNewest is set.
// The returned slice aliases msgs.
func Fit(msgs []anthropic.MessageParam, budget int, c TokenCounter) ([]anthropic.MessageParam, Stats) {
	st := Stats{Budget: budget}
	if len(msgs) == 0 {
		return nil, st
	}

	groups := GroupBlocks(msgs)
	start := len(groups)
	for gi := len(groups) - 1; gi >= 0; gi-- {
		cost := c.CountGroup(groups[gi], msgs)
		if st.Total+cost > budget {
			break
		}
		st.Total += cost
		start = gi
	}

	st.IncludedGroups = len(groups) - start
	st.SkippedGroups = start
	if st.IncludedGroups == 0 {
		st.OverBudgetNewest = true
		slog.Debug("windowing: newest group over budget", "budget", budget, "groups", len(groups))
		return nil, st
	}
	return msgs[groups[start].Start:], st
}
