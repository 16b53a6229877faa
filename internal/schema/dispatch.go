package schema

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Roles a task can be dispatched to.
const (
	RoleJuniorDeveloper = "Junior Developer"
	RoleSeniorDeveloper = "Senior Developer"
	RoleProductOwner    = "Product Owner"
	RoleScrumMaster     = "Scrum Master"
	RoleReviewer        = "Reviewer"
)

// AIRoles and HumanRoles partition the dispatch roles.
var (
	AIRoles    = []string{RoleJuniorDeveloper, RoleSeniorDeveloper}
	HumanRoles = []string{RoleProductOwner, RoleScrumMaster, RoleReviewer}
)

// AllRoles returns every dispatch role, AI roles first.
func AllRoles() []string {
	return append(append([]string{}, AIRoles...), HumanRoles...)
}

// AutonomyLevel says how much supervision the owner needs.
type AutonomyLevel string

const (
	AutonomyAutonomous AutonomyLevel = "autonomous"
	AutonomySupervised AutonomyLevel = "supervised"
	AutonomyManual     AutonomyLevel = "manual"
)

// MaxDispatchScore is the highest possible TaskDispatch.TotalScore.
const MaxDispatchScore = 6

// OwnerTypeFor maps a delegation score to its owner: 0..4 ai, 5..6 human.
func OwnerTypeFor(total int) OwnerType {
	if total <= 4 {
		return OwnerAI
	}
	return OwnerHuman
}

// AutonomyFor maps a delegation score to its autonomy band:
// 0..2 autonomous, 3..4 supervised, 5..6 manual.
func AutonomyFor(total int) AutonomyLevel {
	switch {
	case total <= 2:
		return AutonomyAutonomous
	case total <= 4:
		return AutonomySupervised
	default:
		return AutonomyManual
	}
}

// RoleFitScoring rates how safely a task can be delegated.
type RoleFitScoring struct {
	Complexity    DimensionScore `json:"complexity"`
	Risk          DimensionScore `json:"risk"`
	HumanJudgment DimensionScore `json:"human_judgment"`
}

// Sum adds up the three dimensions.
func (s RoleFitScoring) Sum() int {
	return s.Complexity.Score + s.Risk.Score + s.HumanJudgment.Score
}

// TaskDispatch assigns a role, owner and autonomy level to one task.
type TaskDispatch struct {
	TaskID          string         `json:"task_id"`
	Scoring         RoleFitScoring `json:"scoring"`
	TotalScore      int            `json:"total_score"`
	RecommendedRole string         `json:"recommended_role"`
	OwnerType       OwnerType      `json:"owner_type"`
	AutonomyLevel   AutonomyLevel  `json:"autonomy_level"`
	Reasoning       string         `json:"reasoning"`
}

// DispatchResult is the dispatch of every decomposed task.
type DispatchResult struct {
	Dispatches []TaskDispatch `json:"dispatches"`
	Summary    string         `json:"summary"`
}

var dispatchSchema = object(
	[]string{"dispatches", "summary"},
	map[string]*openapi3.Schema{
		"dispatches": listOf(object(
			[]string{"task_id", "scoring", "total_score", "recommended_role", "owner_type", "autonomy_level", "reasoning"},
			map[string]*openapi3.Schema{
				"task_id": str(),
				"scoring": object(
					[]string{"complexity", "risk", "human_judgment"},
					map[string]*openapi3.Schema{
						"complexity":     dimensionScoreSchema(),
						"risk":           dimensionScoreSchema(),
						"human_judgment": dimensionScoreSchema(),
					},
				),
				"total_score":      boundedInt(0, MaxDispatchScore),
				"recommended_role": enum(AllRoles()...),
				"owner_type":       enum(string(OwnerHuman), string(OwnerAI)),
				"autonomy_level":   enum(string(AutonomyAutonomous), string(AutonomySupervised), string(AutonomyManual)),
				"reasoning":        str(),
			},
		)),
		"summary": str(),
	},
)

// JSONSchema implements Structured.
func (r *DispatchResult) JSONSchema() *openapi3.Schema { return dispatchSchema }

// Validate implements Structured. Totals must match the scoring and the
// owner and autonomy must match the total's band.
func (r *DispatchResult) Validate() error {
	var v Violations
	for i, d := range r.Dispatches {
		if sum := d.Scoring.Sum(); sum != d.TotalScore {
			v.addf("dispatches[%d] (%s): total_score is %d but scoring sums to %d", i, d.TaskID, d.TotalScore, sum)
		}
		if want := OwnerTypeFor(d.TotalScore); d.OwnerType != want {
			v.addf("dispatches[%d] (%s): owner_type %q does not match total_score %d (want %q)", i, d.TaskID, d.OwnerType, d.TotalScore, want)
		}
		if want := AutonomyFor(d.TotalScore); d.AutonomyLevel != want {
			v.addf("dispatches[%d] (%s): autonomy_level %q does not match total_score %d (want %q)", i, d.TaskID, d.AutonomyLevel, d.TotalScore, want)
		}
	}
	return v.err()
}

// CheckTaskIDs reports dispatched task IDs that are unknown or repeated,
// and returns the known IDs the result left out.
func (r *DispatchResult) CheckTaskIDs(known map[string]bool) (missing []string, err error) {
	var v Violations
	seen := make(map[string]bool, len(r.Dispatches))
	for i, d := range r.Dispatches {
		switch {
		case !known[d.TaskID]:
			v.addf("dispatches[%d]: unknown task_id %q", i, d.TaskID)
		case seen[d.TaskID]:
			v.addf("dispatches[%d]: task_id %q dispatched twice", i, d.TaskID)
		}
		seen[d.TaskID] = true
	}
	for id := range known {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing, v.err()
}
