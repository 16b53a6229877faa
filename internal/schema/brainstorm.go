package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// BrainstormOption is one answer the model suggests for its question.
type BrainstormOption struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

// BrainstormScoring rates how clear the requirement has become.
type BrainstormScoring struct {
	Total              int      `json:"total"`
	TaskGoal           int      `json:"taskGoal"`
	CompletionCriteria int      `json:"completionCriteria"`
	Scope              int      `json:"scope"`
	Constraints        int      `json:"constraints"`
	LowScoreDimensions []string `json:"lowScoreDimensions"`
}

// Dimension maxima for BrainstormScoring.
const (
	MaxTaskGoal           = 3
	MaxCompletionCriteria = 3
	MaxScope              = 2
	MaxConstraints        = 2
	MaxClarity            = 10
)

// Sum adds up the four dimensions.
func (s BrainstormScoring) Sum() int {
	return s.TaskGoal + s.CompletionCriteria + s.Scope + s.Constraints
}

// LowDimensions lists the dimensions scoring below half of their maximum,
// using their JSON names.
func (s BrainstormScoring) LowDimensions() []string {
	low := []string{}
	for _, d := range []struct {
		name       string
		score, max int
	}{
		{"taskGoal", s.TaskGoal, MaxTaskGoal},
		{"completionCriteria", s.CompletionCriteria, MaxCompletionCriteria},
		{"scope", s.Scope, MaxScope},
		{"constraints", s.Constraints, MaxConstraints},
	} {
		if d.score*2 < d.max {
			low = append(low, d.name)
		}
	}
	return low
}

// BrainstormSummary is produced once the session is complete.
type BrainstormSummary struct {
	TaskOverview          string   `json:"taskOverview"`
	Background            string   `json:"background"`
	CoreFeatures          []string `json:"coreFeatures"`
	TechnicalRequirements []string `json:"technicalRequirements"`
	TestingPlan           string   `json:"testingPlan"`
	SuccessCriteria       []string `json:"successCriteria"`
}

// BrainstormTurn is the model's reply in one brainstorm round.
type BrainstormTurn struct {
	Phase           int                `json:"phase"`
	Question        string             `json:"question"`
	Options         []BrainstormOption `json:"options"`
	Context         string             `json:"context,omitempty"`
	IsComplete      bool               `json:"isComplete,omitempty"`
	GeneratedPrompt string             `json:"generatedPrompt,omitempty"`
	Summary         *BrainstormSummary `json:"summary,omitempty"`
	Scoring         *BrainstormScoring `json:"scoring,omitempty"`
}

var brainstormTurnSchema = object(
	[]string{"phase", "question", "options"},
	map[string]*openapi3.Schema{
		"phase":    boundedInt(1, 4),
		"question": str(),
		"options": listOf(object(
			[]string{"label", "description", "value"},
			map[string]*openapi3.Schema{
				"label":       str(),
				"description": str(),
				"value":       str(),
			},
		)),
		"context":         nullable(str()),
		"isComplete":      nullable(openapi3.NewBoolSchema()),
		"generatedPrompt": nullable(str()),
		"summary": nullable(object(
			[]string{"taskOverview", "background", "coreFeatures", "technicalRequirements", "testingPlan", "successCriteria"},
			map[string]*openapi3.Schema{
				"taskOverview":          str(),
				"background":            str(),
				"coreFeatures":          strList(),
				"technicalRequirements": strList(),
				"testingPlan":           str(),
				"successCriteria":       strList(),
			},
		)),
		"scoring": nullable(object(
			[]string{"total", "taskGoal", "completionCriteria", "scope", "constraints"},
			map[string]*openapi3.Schema{
				"total":              boundedInt(0, MaxClarity),
				"taskGoal":           boundedInt(0, MaxTaskGoal),
				"completionCriteria": boundedInt(0, MaxCompletionCriteria),
				"scope":              boundedInt(0, MaxScope),
				"constraints":        boundedInt(0, MaxConstraints),
				"lowScoreDimensions": strList(),
			},
		)),
	},
)

// JSONSchema implements Structured.
func (t *BrainstormTurn) JSONSchema() *openapi3.Schema { return brainstormTurnSchema }

// ApplyDefaults implements Defaulter.
func (t *BrainstormTurn) ApplyDefaults() {
	if t.Scoring != nil && t.Scoring.LowScoreDimensions == nil {
		t.Scoring.LowScoreDimensions = []string{}
	}
}

// Validate implements Structured.
func (t *BrainstormTurn) Validate() error {
	var v Violations

	seen := make(map[string]int, len(t.Options))
	for i, opt := range t.Options {
		if prev, dup := seen[opt.Value]; dup {
			v.addf("options[%d].value %q duplicates options[%d]", i, opt.Value, prev)
			continue
		}
		seen[opt.Value] = i
	}

	if t.Scoring != nil {
		if sum := t.Scoring.Sum(); sum != t.Scoring.Total {
			v.addf("scoring.total is %d but dimensions sum to %d", t.Scoring.Total, sum)
		}
	}

	return v.err()
}
