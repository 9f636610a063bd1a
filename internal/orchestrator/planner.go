package orchestrator

import (
	"context"
	"strings"
	"unicode"
)

const (
	// maxPlanSteps caps the number of subtasks kept from a plan.
	maxPlanSteps = 5

	// minStepLen is the length at or below which a parsed line is noise.
	minStepLen = 3
)

// DefaultPlan is used when the model's plan has no usable lines.
var DefaultPlan = []string{
	"Summarize the goal.",
	"List 3 key steps.",
	"Give next actions.",
}

// Planner breaks a goal into subtasks.
type Planner struct {
	gen Generator
}

// NewPlanner creates a Planner that asks gen for the plan.
func NewPlanner(gen Generator) *Planner {
	return &Planner{gen: gen}
}

// Plan asks for a numbered list of 3-5 subtasks and parses it. A generator
// error is returned unchanged; the default plan only covers a reply that
// parses to nothing.
func (p *Planner) Plan(ctx context.Context, goal string) ([]string, error) {
	raw, err := p.gen.Route(ctx, planPrompt(goal))
	if err != nil {
		return nil, err
	}
	return ParsePlan(raw), nil
}

func planPrompt(goal string) string {
	return "Break the user's goal into 3-5 short, actionable subtasks.\n" +
		"Return ONLY a numbered list. No introduction or extra text.\n\n" +
		"User goal: " + goal
}

// ParsePlan turns a numbered list into subtasks. Blank lines are dropped,
// a leading "1." or "2)" token is stripped from lines that start with a
// digit, and entries of three characters or fewer are discarded. At most
// five entries are kept. An empty result yields a copy of DefaultPlan.
func ParsePlan(raw string) []string {
	var steps []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		step := line
		if r := []rune(line)[0]; unicode.IsDigit(r) {
			if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
				if rest := strings.TrimSpace(line[i:]); rest != "" {
					step = rest
				}
			}
		}
		if len([]rune(step)) <= minStepLen {
			continue
		}
		steps = append(steps, step)
		if len(steps) == maxPlanSteps {
			break
		}
	}

	if len(steps) == 0 {
		return append([]string(nil), DefaultPlan...)
	}
	return steps
}
