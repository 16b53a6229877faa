package schema

import (
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visit(t *testing.T, s Structured, doc string) error {
	t.Helper()
	var value any
	require.NoError(t, json.Unmarshal([]byte(doc), &value))
	return s.JSONSchema().VisitJSON(value, openapi3.MultiErrors())
}

func TestBrainstormTurnSchema(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "minimal turn",
			doc:  `{"phase":1,"question":"What?","options":[{"label":"A","description":"a","value":"a"}]}`,
		},
		{
			name: "null optionals",
			doc:  `{"phase":2,"question":"Q","options":[],"context":null,"isComplete":null,"summary":null,"scoring":null}`,
		},
		{
			name:    "phase out of range",
			doc:     `{"phase":5,"question":"Q","options":[]}`,
			wantErr: true,
		},
		{
			name:    "missing question",
			doc:     `{"phase":1,"options":[]}`,
			wantErr: true,
		},
		{
			name:    "option without value",
			doc:     `{"phase":1,"question":"Q","options":[{"label":"A","description":"a"}]}`,
			wantErr: true,
		},
		{
			name:    "scope above max",
			doc:     `{"phase":1,"question":"Q","options":[],"scoring":{"total":3,"taskGoal":0,"completionCriteria":0,"scope":3,"constraints":0}}`,
			wantErr: true,
		},
		{
			name:    "fractional phase",
			doc:     `{"phase":1.5,"question":"Q","options":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := visit(t, &BrainstormTurn{}, tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBrainstormTurnValidate(t *testing.T) {
	opts := []BrainstormOption{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}

	tests := []struct {
		name    string
		turn    BrainstormTurn
		wantErr string
	}{
		{
			name: "consistent scoring",
			turn: BrainstormTurn{Phase: 1, Options: opts, Scoring: &BrainstormScoring{Total: 8, TaskGoal: 3, CompletionCriteria: 3, Scope: 1, Constraints: 1}},
		},
		{
			name:    "total mismatch",
			turn:    BrainstormTurn{Phase: 1, Options: opts, Scoring: &BrainstormScoring{Total: 9, TaskGoal: 3, CompletionCriteria: 3, Scope: 1, Constraints: 1}},
			wantErr: "scoring.total is 9 but dimensions sum to 8",
		},
		{
			name:    "duplicate option value",
			turn:    BrainstormTurn{Phase: 1, Options: append(opts, BrainstormOption{Label: "C", Value: "a"})},
			wantErr: `options[2].value "a" duplicates options[0]`,
		},
		{
			name: "no scoring",
			turn: BrainstormTurn{Phase: 3, Options: opts},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.turn.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLowDimensions(t *testing.T) {
	tests := []struct {
		name    string
		scoring BrainstormScoring
		want    []string
	}{
		{"half is not low", BrainstormScoring{TaskGoal: 3, CompletionCriteria: 3, Scope: 1, Constraints: 1}, []string{}},
		{"all zero", BrainstormScoring{}, []string{"taskGoal", "completionCriteria", "scope", "constraints"}},
		{"one of three is low", BrainstormScoring{TaskGoal: 1, CompletionCriteria: 2, Scope: 2, Constraints: 2}, []string{"taskGoal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scoring.LowDimensions())
		})
	}
}

func TestBrainstormApplyDefaults(t *testing.T) {
	turn := &BrainstormTurn{Scoring: &BrainstormScoring{}}
	turn.ApplyDefaults()
	assert.NotNil(t, turn.Scoring.LowScoreDimensions)
}

func TestScoreResultValidate(t *testing.T) {
	dims := ScoringDimensions{
		RuntimeTarget:      DimensionScore{Score: 2},
		DeliveryForm:       DimensionScore{Score: 1},
		ControlScheme:      DimensionScore{Score: 0},
		BusinessRules:      DimensionScore{Score: 2},
		AcceptanceCriteria: DimensionScore{Score: 1},
	}

	assert.NoError(t, (&ScoreResult{Dimensions: dims, TotalScore: 6}).Validate())

	err := (&ScoreResult{Dimensions: dims, TotalScore: 7}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalScore is 7 but dimensions sum to 6")

	names := make([]string, 0, 5)
	for _, n := range dims.Named() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Runtime Target", "Delivery Form", "Control Scheme", "Business Rules", "Acceptance Criteria"}, names)
}

func TestScoreResultSchemaRejectsOutOfRange(t *testing.T) {
	doc := `{"dimensions":{
		"runtimeTarget":{"score":3,"reason":"r"},
		"deliveryForm":{"score":0,"reason":"r"},
		"controlScheme":{"score":0,"reason":"r"},
		"businessRules":{"score":0,"reason":"r"},
		"acceptanceCriteria":{"score":0,"reason":"r"}},
		"totalScore":3,"summary":"s"}`
	assert.Error(t, visit(t, &ScoreResult{}, doc))
}

func TestDecompositionApplyDefaults(t *testing.T) {
	r := &TaskDecompositionResult{Stories: []Story{{ID: "S1", Tasks: []Task{{TaskID: "T1"}}}}}
	r.ApplyDefaults()

	task := r.Stories[0].Tasks[0]
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, OwnerAI, task.OwnerType)
	assert.Equal(t, []string{}, task.Dependencies)
	assert.Equal(t, []string{}, task.Artifacts)
	assert.Nil(t, task.EstimateHours)
}

func TestDecompositionValidateDuplicateIDs(t *testing.T) {
	r := &TaskDecompositionResult{Stories: []Story{
		{ID: "S1", Tasks: []Task{{TaskID: "T1"}}},
		{ID: "S2", Tasks: []Task{{TaskID: "T1"}, {TaskID: "T2"}}},
	}}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `task_id "T1" appears in S1 and S2`)
}

func TestTaskSchemaEstimateBounds(t *testing.T) {
	base := `{"epic":{"title":"e","description":"d"},"reasoning":"r","stories":[{"id":"S1","title":"s","tasks":[
		{"task_id":"T1","title":"t","description":"d","role":"Junior Developer","acceptance_criteria":"a","estimate_hours":%s}]}],
		"execution_plan":{"phases":[],"total_estimated_hours":0,"critical_path":[]}}`

	for _, tc := range []struct {
		hours   string
		wantErr bool
	}{
		{"null", false},
		{"1", false},
		{"7.5", false},
		{"0.5", true},
		{"12", true},
	} {
		t.Run(tc.hours, func(t *testing.T) {
			err := visit(t, &TaskDecompositionResult{}, sprintf(base, tc.hours))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskStatusEnum(t *testing.T) {
	doc := `{"epic":{"title":"e","description":"d"},"reasoning":"r","stories":[{"id":"S1","title":"s","tasks":[
		{"task_id":"T1","title":"t","description":"d","role":"x","acceptance_criteria":"a","status":"started"}]}],
		"execution_plan":{"phases":[],"total_estimated_hours":0,"critical_path":[]}}`
	assert.Error(t, visit(t, &TaskDecompositionResult{}, doc))
}
