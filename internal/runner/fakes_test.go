package runner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/felixgeelhaar/promptplay/internal/metrics"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/provider"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

type fakeClient struct {
	reply    string
	err      error
	system   string
	messages []provider.Message
	workflow string
}

func (c *fakeClient) Chat(ctx context.Context, systemPrompt string, messages []provider.Message) (string, error) {
	c.system = systemPrompt
	c.messages = messages
	c.workflow = provider.WorkflowFrom(ctx)
	return c.reply, c.err
}

type fakePresenter struct {
	score         *schema.ScoreResult
	decomposition *schema.TaskDecompositionResult
	dispatch      *schema.DispatchResult
	rejected      []error
	excerpts      []string
	saved         []string
	notices       []string
}

func (p *fakePresenter) Score(r *schema.ScoreResult)                     { p.score = r }
func (p *fakePresenter) Decomposition(r *schema.TaskDecompositionResult) { p.decomposition = r }
func (p *fakePresenter) Dispatch(r *schema.DispatchResult)               { p.dispatch = r }
func (p *fakePresenter) Saved(path string)                               { p.saved = append(p.saved, path) }
func (p *fakePresenter) Notice(msg string)                               { p.notices = append(p.notices, msg) }
func (p *fakePresenter) Rejected(_, excerpt string, err error) {
	p.excerpts = append(p.excerpts, excerpt)
	p.rejected = append(p.rejected, err)
}

type fixture struct {
	client    *fakeClient
	presenter *fakePresenter
	metrics   *metrics.Metrics
	deps      Deps
	dir       string
}

func newFixture(t *testing.T, reply string) *fixture {
	t.Helper()
	store, err := prompt.NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		client:    &fakeClient{reply: reply},
		presenter: &fakePresenter{},
		metrics:   metrics.NewMetrics(prometheus.NewRegistry()),
		dir:       t.TempDir(),
	}
	f.deps = Deps{
		Client:    f.client,
		Templates: store,
		Presenter: f.presenter,
		Metrics:   f.metrics,
	}
	return f
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

const validScore = "Here you go:\n```json\n" + `{
  "dimensions": {
    "runtimeTarget": {"score": 2, "reason": "Web"},
    "deliveryForm": {"score": 2, "reason": "Page"},
    "controlScheme": {"score": 1, "reason": "Form only"},
    "businessRules": {"score": 1, "reason": "Lockout unclear"},
    "acceptanceCriteria": {"score": 0, "reason": "None"}
  },
  "totalScore": 6,
  "summary": "Mostly clear"
}` + "\n```"

const validDecomposition = `{
  "epic": {"title": "Login", "description": "Email/password login"},
  "reasoning": "Backend first",
  "stories": [
    {"id": "S1", "title": "Backend", "tasks": [
      {"task_id": "T1", "title": "Schema", "description": "Users table", "role": "Senior Developer",
       "estimate_hours": 2, "acceptance_criteria": "Migrates"},
      {"task_id": "T2", "title": "Endpoint", "description": "POST /login", "role": "Senior Developer",
       "estimate_hours": 4, "dependencies": ["T1"], "acceptance_criteria": "Returns token"}
    ]},
    {"id": "S2", "title": "Frontend", "tasks": [
      {"task_id": "T3", "title": "Form", "description": "Login form", "role": "Junior Developer",
       "owner_type": "human", "estimate_hours": 3, "dependencies": ["T2"], "acceptance_criteria": "Submits"}
    ]}
  ],
  "execution_plan": {
    "phases": [
      {"phase": 1, "parallel_tasks": ["T1"], "description": "Data"},
      {"phase": 2, "parallel_tasks": ["T2"], "description": "API"},
      {"phase": 3, "parallel_tasks": ["T3"], "description": "UI"}
    ],
    "total_estimated_hours": 9,
    "critical_path": ["T1", "T2", "T3"]
  }
}`

func dispatchJSON(ids ...string) string {
	out := `{"dispatches": [`
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += `{"task_id": "` + id + `",
		  "scoring": {"complexity": {"score": 2, "reason": "r"}, "risk": {"score": 1, "reason": "r"}, "human_judgment": {"score": 1, "reason": "r"}},
		  "total_score": 4, "recommended_role": "Senior Developer", "owner_type": "ai", "autonomy_level": "supervised", "reasoning": "ok"}`
	}
	return out + `], "summary": "All AI"}`
}
