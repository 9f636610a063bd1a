package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGenerator returns canned replies and records every prompt it sees.
type mockGenerator struct {
	reply   func(prompt string) (string, error)
	prompts []string
}

func (m *mockGenerator) Route(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply(prompt)
}

func fixed(text string) *mockGenerator {
	return &mockGenerator{reply: func(string) (string, error) { return text, nil }}
}

func TestParsePlan_StripsNumberingAndBlankLines(t *testing.T) {
	got := ParsePlan("1. Research competitors\n2) Draft outline\n\n3 Write summary")
	assert.Equal(t, []string{"Research competitors", "Draft outline", "Write summary"}, got)
}

func TestParsePlan_KeepsUnnumberedLinesVerbatim(t *testing.T) {
	got := ParsePlan("  - Pick a niche  \nValidate demand\r\n")
	assert.Equal(t, []string{"- Pick a niche", "Validate demand"}, got)
}

func TestParsePlan_NoiseOnly_ReturnsDefault(t *testing.T) {
	assert.Equal(t, DefaultPlan, ParsePlan("\n   \n"))
	assert.Equal(t, DefaultPlan, ParsePlan("1.\nok\n2) a\nabc"))
	assert.Equal(t, DefaultPlan, ParsePlan(""))
}

func TestParsePlan_DefaultIsACopy(t *testing.T) {
	got := ParsePlan("")
	got[0] = "changed"
	assert.Equal(t, "Summarize the goal.", DefaultPlan[0])
}

func TestParsePlan_TruncatesToFive(t *testing.T) {
	var lines []string
	for _, s := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		lines = append(lines, "1. step "+s)
	}
	got := ParsePlan(strings.Join(lines, "\n"))
	require.Len(t, got, 5)
	assert.Equal(t, "step one", got[0])
	assert.Equal(t, "step five", got[4])
}

func TestParsePlan_LeadingDigitTokenAlwaysStripped(t *testing.T) {
	assert.Equal(t, []string{"2024 roadmap", "growth"}, ParsePlan("1. 2024 roadmap\n10x growth"))
}

func TestPlanner_Plan_PromptAndParse(t *testing.T) {
	gen := fixed("1. Find leads\n2. Score leads")
	plan, err := NewPlanner(gen).Plan(context.Background(), "Grow sales")
	require.NoError(t, err)
	assert.Equal(t, []string{"Find leads", "Score leads"}, plan)

	require.Len(t, gen.prompts, 1)
	assert.Equal(t,
		"Break the user's goal into 3-5 short, actionable subtasks.\n"+
			"Return ONLY a numbered list. No introduction or extra text.\n\n"+
			"User goal: Grow sales",
		gen.prompts[0])
}

func TestPlanner_Plan_GeneratorErrorIsNotMasked(t *testing.T) {
	boom := errors.New("all providers failed")
	gen := &mockGenerator{reply: func(string) (string, error) { return "", boom }}

	plan, err := NewPlanner(gen).Plan(context.Background(), "goal")
	assert.Nil(t, plan)
	assert.Same(t, boom, err)
}

func TestExecutor_Execute(t *testing.T) {
	gen := fixed("\n  - bullet\n")
	out, err := NewExecutor(gen).Execute(context.Background(), "Goal", "Sub")
	require.NoError(t, err)
	assert.Equal(t, "- bullet", out)
	assert.Equal(t,
		"Complete the subtask concisely. Use bullet points if helpful.\nOriginal goal: Goal\nSubtask: Sub\n",
		gen.prompts[0])
}

func TestSynthesizer_PromptLayout(t *testing.T) {
	gen := fixed(" final ")
	out, err := NewSynthesizer(gen).Synthesize(context.Background(), "G", []string{"A", "B"}, []string{"ra", "rb"})
	require.NoError(t, err)
	assert.Equal(t, "final", out)
	assert.Equal(t,
		"Merge the step results into ONE final answer. Remove repetition.\n"+
			"Structure it with short sections and finish with EXACTLY 3 next actions.\n\n"+
			"User goal: G\n\n"+
			"Step 1: A\nResult:\nra\n\nStep 2: B\nResult:\nrb\n\n"+
			"Final consolidated answer:",
		gen.prompts[0])
}

func TestSynthesizer_Idempotent(t *testing.T) {
	gen := fixed("same")
	s := NewSynthesizer(gen)
	first, err := s.Synthesize(context.Background(), "G", []string{"A"}, []string{"r"})
	require.NoError(t, err)
	second, err := s.Synthesize(context.Background(), "G", []string{"A"}, []string{"r"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, gen.prompts[0], gen.prompts[1])
}

func TestSynthesizer_LengthMismatch(t *testing.T) {
	gen := fixed("x")
	_, err := NewSynthesizer(gen).Synthesize(context.Background(), "G", []string{"A", "B"}, []string{"r"})
	assert.ErrorIs(t, err, ErrResultMismatch)
	assert.Empty(t, gen.prompts)
}
