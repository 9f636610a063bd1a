package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/agentchain/internal/orchestrator"
)

// maxLabel bounds node label length so diagrams stay readable.
const maxLabel = 40

// GenerateMermaid produces a Mermaid graph TD diagram of a run: the goal
// fans out to each subtask, and every subtask feeds the final answer.
func GenerateMermaid(run *orchestrator.Run) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("  G[\"%s\"]\n", label(run.Goal)))

	sb.WriteString("  subgraph S[\"subtasks\"]\n")
	for i, subtask := range run.Plan {
		sb.WriteString(fmt.Sprintf("    T%d[\"%d. %s\"]\n", i+1, i+1, label(subtask)))
	}
	sb.WriteString("  end\n")

	sb.WriteString("  A[\"final answer\"]\n")
	for i := range run.Plan {
		sb.WriteString(fmt.Sprintf("  G --> T%d\n", i+1))
		sb.WriteString(fmt.Sprintf("  T%d --> A\n", i+1))
	}
	return sb.String()
}

// label shortens s and strips characters Mermaid treats as syntax.
func label(s string) string {
	s = strings.NewReplacer("\"", "'", "\n", " ", "[", "(", "]", ")").Replace(strings.TrimSpace(s))
	if r := []rune(s); len(r) > maxLabel {
		return string(r[:maxLabel-3]) + "..."
	}
	return s
}
