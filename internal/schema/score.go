package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// DimensionScore is a 0..2 rating with its justification.
type DimensionScore struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// MaxDimensionScore bounds every DimensionScore.
const MaxDimensionScore = 2

// ScoringDimensions are the five issue readiness checks.
type ScoringDimensions struct {
	RuntimeTarget      DimensionScore `json:"runtimeTarget"`
	DeliveryForm       DimensionScore `json:"deliveryForm"`
	ControlScheme      DimensionScore `json:"controlScheme"`
	BusinessRules      DimensionScore `json:"businessRules"`
	AcceptanceCriteria DimensionScore `json:"acceptanceCriteria"`
}

// NamedScore pairs a dimension with its display name.
type NamedScore struct {
	Name string
	DimensionScore
}

// Named returns the dimensions in display order.
func (d ScoringDimensions) Named() []NamedScore {
	return []NamedScore{
		{"Runtime Target", d.RuntimeTarget},
		{"Delivery Form", d.DeliveryForm},
		{"Control Scheme", d.ControlScheme},
		{"Business Rules", d.BusinessRules},
		{"Acceptance Criteria", d.AcceptanceCriteria},
	}
}

// Sum adds up the five dimension scores.
func (d ScoringDimensions) Sum() int {
	total := 0
	for _, n := range d.Named() {
		total += n.Score
	}
	return total
}

// ScoreResult is the readiness assessment of one issue.
type ScoreResult struct {
	Dimensions ScoringDimensions `json:"dimensions"`
	TotalScore int               `json:"totalScore"`
	Summary    string            `json:"summary"`
}

func dimensionScoreSchema() *openapi3.Schema {
	return object(
		[]string{"score", "reason"},
		map[string]*openapi3.Schema{
			"score":  boundedInt(0, MaxDimensionScore),
			"reason": str(),
		},
	)
}

var scoreResultSchema = object(
	[]string{"dimensions", "totalScore", "summary"},
	map[string]*openapi3.Schema{
		"dimensions": object(
			[]string{"runtimeTarget", "deliveryForm", "controlScheme", "businessRules", "acceptanceCriteria"},
			map[string]*openapi3.Schema{
				"runtimeTarget":      dimensionScoreSchema(),
				"deliveryForm":       dimensionScoreSchema(),
				"controlScheme":      dimensionScoreSchema(),
				"businessRules":      dimensionScoreSchema(),
				"acceptanceCriteria": dimensionScoreSchema(),
			},
		),
		"totalScore": boundedInt(0, 10),
		"summary":    str(),
	},
)

// JSONSchema implements Structured.
func (r *ScoreResult) JSONSchema() *openapi3.Schema { return scoreResultSchema }

// Validate implements Structured. The total must match the dimensions.
func (r *ScoreResult) Validate() error {
	var v Violations
	if sum := r.Dimensions.Sum(); sum != r.TotalScore {
		v.addf("totalScore is %d but dimensions sum to %d", r.TotalScore, sum)
	}
	return v.err()
}
