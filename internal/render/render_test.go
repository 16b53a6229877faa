package render

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/promptplay/internal/brainstorm"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/runner"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

var (
	_ runner.Presenter = (*Renderer)(nil)
	_ brainstorm.View  = (*Renderer)(nil)
)

func newBuffered() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf), &buf
}

func TestBar(t *testing.T) {
	assert.Equal(t, "███░░", Bar(3, 5))
	assert.Equal(t, "░░", Bar(-1, 2))
	assert.Equal(t, "██", Bar(9, 2))
}

func TestStatuses(t *testing.T) {
	tests := []struct {
		total     int
		clarity   string
		readiness string
	}{
		{10, "Ready!", "Ready for development"},
		{7, "Ready!", "Ready for development"},
		{6, "Getting there...", "Needs improvement"},
		{4, "Getting there...", "Needs improvement"},
		{3, "Needs more clarity", "Not ready"},
		{0, "Needs more clarity", "Not ready"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.clarity, ClarityStatus(tt.total), tt.total)
		assert.Equal(t, tt.readiness, ReadinessStatus(tt.total), tt.total)
	}
}

func TestTurn(t *testing.T) {
	r, buf := newBuffered()
	r.Turn(&schema.BrainstormTurn{
		Phase:    2,
		Context:  "A login page",
		Question: "Which audience?",
		Options: []schema.BrainstormOption{
			{Label: "Customers", Description: "Public", Value: "c"},
			{Label: "Staff", Value: "s"},
		},
		Scoring: &schema.BrainstormScoring{Total: 3, TaskGoal: 2, CompletionCriteria: 0, Scope: 1, Constraints: 0},
	})

	out := buf.String()
	assert.Contains(t, out, "[Context] → [Explore] →  Solution  →  Testing ")
	assert.Contains(t, out, "Clarity Score: ███░░░░░░░ 3/10 Needs more clarity")
	assert.Contains(t, out, "Goal 2/3 | Criteria 0/3 | Scope 1/2 | Constraints 0/2")
	assert.Contains(t, out, "Weak areas: completionCriteria, constraints")
	assert.Contains(t, out, "1. Customers")
	assert.Contains(t, out, "Public")
	assert.Contains(t, out, "3. Other - Provide your own response")
	assert.NotContains(t, out, "\x1b[", "no color codes when not writing to a terminal")
}

func TestComplete(t *testing.T) {
	r, buf := newBuffered()
	r.Complete(&schema.BrainstormTurn{
		IsComplete: true,
		Summary: &schema.BrainstormSummary{
			TaskOverview:    "Login",
			CoreFeatures:    []string{"email"},
			SuccessCriteria: []string{"works"},
		},
		GeneratedPrompt: "Build it",
		Scoring:         &schema.BrainstormScoring{Total: 8, TaskGoal: 3, CompletionCriteria: 3, Scope: 1, Constraints: 1},
	}, "brainstorm_result.json")

	out := buf.String()
	assert.Contains(t, out, "Brainstorm Complete!")
	assert.Contains(t, out, "Task Overview: Login")
	assert.Contains(t, out, "    - email")
	assert.Contains(t, out, "Generated Prompt:")
	assert.Contains(t, out, "Build it")
	assert.Contains(t, out, "8/10 Ready!")
	assert.Contains(t, out, "Structured output saved to: brainstorm_result.json")
}

func TestBannerAndAbandoned(t *testing.T) {
	r, buf := newBuffered()
	long := ""
	for i := 0; i < 30; i++ {
		long += "word "
	}
	r.Banner("abc-123", long)
	r.Abandoned()

	out := buf.String()
	assert.Contains(t, out, "Session: abc-123")
	assert.Contains(t, out, "Context: "+long[:100]+"...")
	assert.Contains(t, out, "Session abandoned.")
}

func TestScore(t *testing.T) {
	r, buf := newBuffered()
	r.Score(&schema.ScoreResult{
		Dimensions: schema.ScoringDimensions{
			RuntimeTarget:      schema.DimensionScore{Score: 2, Reason: "web"},
			DeliveryForm:       schema.DimensionScore{Score: 1, Reason: "page"},
			ControlScheme:      schema.DimensionScore{Score: 1},
			BusinessRules:      schema.DimensionScore{Score: 0},
			AcceptanceCriteria: schema.DimensionScore{Score: 1},
		},
		TotalScore: 5,
		Summary:    "Almost",
	})

	out := buf.String()
	assert.Contains(t, out, "Issue Readiness Score")
	assert.Contains(t, out, "Overall: █████░░░░░ 5/10 - Needs improvement")
	assert.Contains(t, out, "██ Runtime Target: 2/2 - web")
	assert.Contains(t, out, "░░ Business Rules: 0/2")
	assert.Contains(t, out, "Summary: Almost")
}

func TestDecomposition(t *testing.T) {
	hours := 2.5
	blocker := "waiting on design"
	r, buf := newBuffered()
	r.Decomposition(&schema.TaskDecompositionResult{
		Epic:      schema.Epic{Title: "Login", Description: "Auth"},
		Reasoning: "Because",
		Stories: []schema.Story{{ID: "S1", Title: "API", Tasks: []schema.Task{
			{TaskID: "T1", Title: "Schema", Status: schema.StatusDone, Role: "Senior Developer", OwnerType: schema.OwnerAI, EstimateHours: &hours},
			{TaskID: "T2", Title: "Form", Status: schema.StatusBlocked, Role: "Product Owner", OwnerType: schema.OwnerHuman, Dependencies: []string{"T1"}, BlockerReason: &blocker},
		}}},
		ExecutionPlan: schema.ExecutionPlan{
			Phases:              []schema.ExecutionPhase{{Phase: 1, ParallelTasks: []string{"T1", "T2"}, Description: "All"}},
			TotalEstimatedHours: 2.5,
			CriticalPath:        []string{"T1", "T2"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Epic: Login")
	assert.Contains(t, out, "┌─ S1: API")
	assert.Contains(t, out, "│ ├─ ✓ T1: Schema")
	assert.Contains(t, out, "Est: 2.5h | SP: ?")
	assert.Contains(t, out, "│ └─ ✕ T2: Form")
	assert.Contains(t, out, "Deps: T1")
	assert.Contains(t, out, "Blocked: waiting on design")
	assert.Contains(t, out, "Phase 1: All")
	assert.Contains(t, out, "Parallel: [T1, T2]")
	assert.Contains(t, out, "Total Estimated Hours: 2.5h")
	assert.Contains(t, out, "Critical Path: T1 → T2")
}

func TestDispatch(t *testing.T) {
	r, buf := newBuffered()
	r.Dispatch(&schema.DispatchResult{
		Dispatches: []schema.TaskDispatch{
			{
				TaskID: "T1",
				Scoring: schema.RoleFitScoring{
					Complexity:    schema.DimensionScore{Score: 2},
					Risk:          schema.DimensionScore{Score: 2},
					HumanJudgment: schema.DimensionScore{Score: 1},
				},
				TotalScore:      5,
				RecommendedRole: schema.RoleProductOwner,
				OwnerType:       schema.OwnerHuman,
				AutonomyLevel:   schema.AutonomyManual,
				Reasoning:       "Needs sign-off",
			},
			{
				TaskID:          "T2",
				TotalScore:      0,
				RecommendedRole: schema.RoleJuniorDeveloper,
				OwnerType:       schema.OwnerAI,
				AutonomyLevel:   schema.AutonomyAutonomous,
			},
		},
		Summary: "Mixed",
	})

	out := buf.String()
	assert.Contains(t, out, "Tasks: 2 total | AI: 1 | Human: 1")
	assert.Contains(t, out, "T1: Product Owner ✋ manual")
	assert.Contains(t, out, "Score: [██ ██ █░] 5/6 (human)")
	assert.Contains(t, out, "T2: Junior Developer ⚡ autonomous")
	assert.Contains(t, out, "Summary: Mixed")
}

func TestRejectedAndNotices(t *testing.T) {
	r, buf := newBuffered()
	r.Notice("Found 3 tasks in decomposed_task.json")
	r.Rejected("score", "not json", stderrors.New("no JSON object found in response"))
	r.Invalid("raw text", stderrors.New("bad"))

	out := buf.String()
	assert.Contains(t, out, "Found 3 tasks in decomposed_task.json")
	assert.Contains(t, out, "Error: Failed to parse score response")
	assert.Contains(t, out, "not json")
	assert.Contains(t, out, "Raw response:\nraw text")
}

func TestPrompts(t *testing.T) {
	r, buf := newBuffered()
	r.Prompts([]prompt.Info{
		{Name: "brainstorm", Source: prompt.SourceBuiltin, Path: "templates/brainstorm.md", Digest: "0123456789abcdef0123"},
		{Name: "issue_scoring", Source: prompt.SourceDir, Path: "prompts/issue_scoring.md", Digest: "fedcba9876543210fedc"},
	})

	out := buf.String()
	assert.Contains(t, out, "Prompt Templates")
	assert.Contains(t, out, "brainstorm")
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abc")
	assert.Contains(t, out, "prompts/issue_scoring.md")
}
