package orchestrator

import (
	"fmt"
	"strings"
)

// FormatProgress renders a ProgressEvent as console text. Events with
// nothing to show render as "".
func FormatProgress(event ProgressEvent) string {
	if event.Status == ProgressFailed {
		if event.Index > 0 {
			return fmt.Sprintf("  ✗ subtask %d failed: %s", event.Index, event.Message)
		}
		return fmt.Sprintf("  ✗ %s failed: %s", event.Phase, event.Message)
	}

	switch {
	case event.Phase == PhasePlanning && event.Status == ProgressComplete:
		return FormatPlan(event.Plan)
	case event.Phase == PhaseExecuting && event.Status == ProgressWorking:
		return "\n" + FormatSubtaskHeader(event.Index, event.Subtask)
	case event.Phase == PhaseExecuting && event.Status == ProgressComplete:
		return event.Message
	case event.Phase == PhaseSynthesizing && event.Status == ProgressWorking:
		return "\n\U0001F9E9 SYNTHESIS:"
	default:
		return ""
	}
}

// FormatPlan renders the plan header and numbered subtasks.
func FormatPlan(plan []string) string {
	var sb strings.Builder
	sb.WriteString("\U0001F4CB PLAN:")
	for i, s := range plan {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, s)
	}
	return sb.String()
}

// FormatSubtaskHeader formats a subtask header for display.
// Returns: "⚙️ Subtask {N}: {subtask}"
func FormatSubtaskHeader(index int, subtask string) string {
	return fmt.Sprintf("⚙️ Subtask %d: %s", index, subtask)
}

// FinalAnswerBanner precedes the final answer.
const FinalAnswerBanner = "\n===== ✅ FINAL ANSWER =====\n"
