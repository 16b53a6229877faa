package runner

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/extract"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/provider"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

func TestScorerRun(t *testing.T) {
	f := newFixture(t, validScore)
	s := &Scorer{Deps: f.deps, OutputPath: f.path(persist.ScoreFile)}

	result, err := s.Run(context.Background(), "  Build a login page  ")
	require.NoError(t, err)
	assert.Equal(t, 6, result.TotalScore)

	require.Len(t, f.client.messages, 1)
	assert.Equal(t, provider.UserMessage("Please score this issue:\n\nBuild a login page"), f.client.messages[0])
	assert.Contains(t, f.client.system, "runtimeTarget")
	assert.Equal(t, ScoreWorkflow, f.client.workflow)

	var saved schema.ScoreResult
	require.NoError(t, persist.ReadJSON(f.path(persist.ScoreFile), &saved))
	assert.Equal(t, *result, saved)
	assert.Same(t, result, f.presenter.score)
	assert.Equal(t, []string{f.path(persist.ScoreFile)}, f.presenter.saved)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Extractions.WithLabelValues(ScoreWorkflow, "ok")))
}

func TestScorerRequiresInput(t *testing.T) {
	f := newFixture(t, validScore)
	_, err := (&Scorer{Deps: f.deps}).Run(context.Background(), " \n ")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputMissing))
	assert.Nil(t, f.client.messages, "no request is sent")
}

func TestScorerRejectsMismatchedTotal(t *testing.T) {
	bad := strings.Replace(validScore, `"totalScore": 6`, `"totalScore": 9`, 1)
	f := newFixture(t, bad)
	out := f.path(persist.ScoreFile)

	result, err := (&Scorer{Deps: f.deps, OutputPath: out}).Run(context.Background(), "issue")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, extract.ErrSchemaViolation)
	assert.NoFileExists(t, out)
	require.Len(t, f.presenter.rejected, 1)
	assert.Nil(t, f.presenter.score)
}

func TestScorerNoJSON(t *testing.T) {
	prose := strings.Repeat("I think this issue is fine. ", 40)
	f := newFixture(t, prose)
	out := f.path(persist.ScoreFile)

	_, err := (&Scorer{Deps: f.deps, OutputPath: out}).Run(context.Background(), "issue")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, extract.NoJSONFound, extract.KindOf(err))
	require.Len(t, f.presenter.excerpts, 1)
	assert.Len(t, []rune(f.presenter.excerpts[0]), extract.ExcerptLimit)
	assert.NoFileExists(t, out)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Extractions.WithLabelValues(ScoreWorkflow, "no_json")))
}

func TestScorerChatError(t *testing.T) {
	f := newFixture(t, "")
	f.client.err = errors.NewProviderAuthError("openai", stderrors.New("401"))

	_, err := (&Scorer{Deps: f.deps, OutputPath: f.path("x.json")}).Run(context.Background(), "issue")
	assert.True(t, errors.HasCode(err, errors.ErrCodeProviderAuth))
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestDecomposerRun(t *testing.T) {
	f := newFixture(t, validDecomposition)
	out := f.path(persist.DecomposeFile)

	result, err := (&Decomposer{Deps: f.deps, OutputPath: out}).Run(context.Background(), "Build login")
	require.NoError(t, err)

	assert.Contains(t, f.client.system, "Goal:\nBuild login")
	assert.NotContains(t, f.client.system, "{task_description}")
	assert.Equal(t, "Build login", f.client.messages[0].Content)

	tasks := result.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, schema.StatusTodo, tasks[0].Status)
	assert.Equal(t, schema.OwnerAI, tasks[0].OwnerType)
	assert.Equal(t, []string{}, tasks[0].Dependencies)
	assert.Equal(t, schema.OwnerHuman, tasks[2].OwnerType)

	var saved schema.TaskDecompositionResult
	require.NoError(t, persist.ReadJSON(out, &saved))
	assert.Equal(t, *result, saved)
}

func TestDecomposerDefaultGoal(t *testing.T) {
	f := newFixture(t, validDecomposition)
	_, err := (&Decomposer{Deps: f.deps, OutputPath: f.path("d.json")}).Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultGoal, f.client.messages[0].Content)
}

func TestDecomposerRejectsBrokenReferences(t *testing.T) {
	bad := strings.Replace(validDecomposition, `"dependencies": ["T2"]`, `"dependencies": ["T9"]`, 1)
	f := newFixture(t, bad)
	out := f.path(persist.DecomposeFile)

	_, err := (&Decomposer{Deps: f.deps, OutputPath: out}).Run(context.Background(), "goal")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, extract.SchemaViolation, extract.KindOf(err))
	assert.Contains(t, err.Error(), `unknown task "T9"`)
	assert.NoFileExists(t, out)
}

func writeDecomposition(t *testing.T, f *fixture) string {
	t.Helper()
	in := f.path(persist.DecomposeFile)
	require.NoError(t, os.WriteFile(in, []byte(validDecomposition), 0o644))
	return in
}

func TestDispatcherRun(t *testing.T) {
	f := newFixture(t, dispatchJSON("T1", "T2", "T3"))
	in := writeDecomposition(t, f)
	out := f.path(persist.DispatchFile)

	result, err := (&Dispatcher{Deps: f.deps, OutputPath: out}).Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Dispatches, 3)

	assert.Equal(t, "Dispatch roles for these 3 tasks.", f.client.messages[0].Content)
	assert.NotContains(t, f.client.system, "{tasks_json}")
	assert.Contains(t, f.client.system, "[\n  {\n    \"task_id\": \"T1\",")
	assert.Contains(t, f.client.system, `"dependencies": []`)
	assert.Contains(t, f.client.system, "\"human_judgment\": {\"score\": 0, \"reason\": \"Why\"}\n      },")
	assert.Equal(t, []string{"Found 3 tasks in " + in}, f.presenter.notices)
	assert.FileExists(t, out)
}

type fixedTemplates map[string]string

func (t fixedTemplates) Load(name string) (string, error) {
	return t[name], nil
}

func TestDispatcherKeepsTemplateBraces(t *testing.T) {
	const tpl = "Tasks:\n{tasks_json}\n" +
		`{"dispatches": [{"scoring": {"risk": {"score": 1}}}]} and {{literal}}`

	f := newFixture(t, dispatchJSON("T1", "T2", "T3"))
	f.deps.Templates = fixedTemplates{"role_dispatch": tpl}
	in := writeDecomposition(t, f)

	_, err := (&Dispatcher{Deps: f.deps, OutputPath: f.path("out.json")}).Run(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.client.system, "Tasks:\n[\n"))
	assert.True(t, strings.HasSuffix(f.client.system,
		`{"dispatches": [{"scoring": {"risk": {"score": 1}}}]} and {{literal}}`))
}

func TestDispatcherToleratesMissingTasks(t *testing.T) {
	f := newFixture(t, dispatchJSON("T1", "T3"))
	in := writeDecomposition(t, f)

	result, err := (&Dispatcher{Deps: f.deps, OutputPath: f.path("out.json")}).Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, result.Dispatches, 2)
}

func TestDispatcherRejectsUnknownAndDuplicateIDs(t *testing.T) {
	for name, reply := range map[string]string{
		"unknown":   dispatchJSON("T1", "T7"),
		"duplicate": dispatchJSON("T1", "T1"),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, reply)
			in := writeDecomposition(t, f)
			out := f.path(persist.DispatchFile)

			_, err := (&Dispatcher{Deps: f.deps, OutputPath: out}).Run(context.Background(), in)
			assert.ErrorIs(t, err, ErrRejected)
			assert.ErrorIs(t, err, extract.ErrSchemaViolation)
			assert.NoFileExists(t, out)
		})
	}
}

func TestDispatcherRejectsBandViolation(t *testing.T) {
	reply := strings.Replace(dispatchJSON("T1"), `"owner_type": "ai"`, `"owner_type": "human"`, 1)
	f := newFixture(t, reply)
	in := writeDecomposition(t, f)

	_, err := (&Dispatcher{Deps: f.deps, OutputPath: f.path("out.json")}).Run(context.Background(), in)
	assert.ErrorIs(t, err, extract.ErrSchemaViolation)
}

func TestDispatcherInputErrors(t *testing.T) {
	f := newFixture(t, dispatchJSON("T1"))

	_, err := (&Dispatcher{Deps: f.deps}).Run(context.Background(), f.path("missing.json"))
	require.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
	pe, _ := errors.As(err)
	assert.Contains(t, pe.Suggestions, "Run 'promptplay decompose' first to generate tasks")

	empty := f.path("empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"stories": []}`), 0o644))
	_, err = (&Dispatcher{Deps: f.deps}).Run(context.Background(), empty)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputInvalid))
	assert.Nil(t, f.client.messages)
}

func TestBriefs(t *testing.T) {
	r := &schema.TaskDecompositionResult{Stories: []schema.Story{
		{ID: "S1", Tasks: []schema.Task{{TaskID: "A", Title: "a"}}},
		{ID: "S2", Tasks: []schema.Task{{TaskID: "B", Title: "b", Dependencies: []string{"A"}}}},
	}}

	assert.Equal(t, []TaskBrief{
		{TaskID: "A", Title: "a", Dependencies: []string{}},
		{TaskID: "B", Title: "b", Dependencies: []string{"A"}},
	}, Briefs(r))
}

type missingTemplates struct{}

func (missingTemplates) Load(name string) (string, error) {
	return "", errors.NewPromptNotFoundError(name)
}

func TestMissingTemplate(t *testing.T) {
	f := newFixture(t, validScore)
	f.deps.Templates = missingTemplates{}

	_, err := (&Scorer{Deps: f.deps}).Run(context.Background(), "issue")
	assert.True(t, errors.HasCode(err, errors.ErrCodePromptNotFound))
}
