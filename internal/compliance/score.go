// Package compliance reduces the chemical inventory and employee roster to a
// single weighted score with a status bucket and ranked remediation list.
package compliance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"hazcom/internal/inventory"
	"hazcom/internal/training"
)

// Category weights, in percentage points. They sum to 100.
const (
	weightSDS      = 30
	weightLabels   = 25
	weightTraining = 30
	weightProgram  = 15
)

// SubScore is one weighted compliance category.
type SubScore struct {
	Percent float64 `json:"percent"`
	Weight  int     `json:"weight"`
	Met     int     `json:"met"`
	Total   int     `json:"total"`
}

// Suggestion is one remediation action, weighted by how many overall points
// fixing it would recover.
type Suggestion struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// Result is the full compliance report.
type Result struct {
	Overall         int          `json:"overall"`
	Status          string       `json:"status"`
	Color           string       `json:"color"`
	SDS             SubScore     `json:"sds"`
	Labels          SubScore     `json:"labels"`
	Training        SubScore     `json:"training"`
	WrittenProgram  SubScore     `json:"written_program"`
	Suggestions     []Suggestion `json:"suggestions"`
	ActionItemCount int          `json:"action_item_count"`
}

// Score computes the weighted compliance result for the given collections at
// the given time. Pure and synchronous; callers load the collections first.
func Score(chemicals []inventory.Chemical, employees []inventory.Employee, now time.Time) Result {
	var suggestions []Suggestion
	actionItems := 0

	// SDS coverage: chemicals whose data sheet is current.
	sdsMet := 0
	for _, c := range chemicals {
		if c.SDSStatus == inventory.SDSCurrent {
			sdsMet++
		}
	}
	sds := subScore(sdsMet, len(chemicals), weightSDS)
	for _, c := range chemicals {
		if c.SDSStatus != inventory.SDSCurrent {
			suggestions = append(suggestions, Suggestion{
				Text:   fmt.Sprintf("Obtain a current SDS for %s", c.ProductName),
				Points: pointsPer(weightSDS, len(chemicals)),
			})
			actionItems++
		}
	}

	// Container labels.
	labeledMet := 0
	for _, c := range chemicals {
		if c.Labeled {
			labeledMet++
		}
	}
	labels := subScore(labeledMet, len(chemicals), weightLabels)
	for _, c := range chemicals {
		if !c.Labeled {
			suggestions = append(suggestions, Suggestion{
				Text:   fmt.Sprintf("Print and apply a GHS label for %s", c.ProductName),
				Points: pointsPer(weightLabels, len(chemicals)),
			})
			actionItems++
		}
	}

	// Employee training, via the derived classification.
	trainedMet := 0
	for _, e := range employees {
		ev := training.Evaluate(e, now)
		if training.Satisfactory(ev.Status) {
			trainedMet++
		} else {
			suggestions = append(suggestions, Suggestion{
				Text:   fmt.Sprintf("Schedule HazCom training for %s (%s)", e.Name, ev.Label),
				Points: pointsPer(weightTraining, len(employees)),
			})
			actionItems++
		}
	}
	trainingScore := subScore(trainedMet, len(employees), weightTraining)

	// Written program readiness. The third check is a standing placeholder
	// until the written-program document gets its own tracked state.
	programChecks := []bool{len(chemicals) > 0, len(employees) > 0, true}
	programMet := 0
	for _, ok := range programChecks {
		if ok {
			programMet++
		}
	}
	program := subScore(programMet, len(programChecks), weightProgram)

	overall := int(math.Round(
		float64(weightSDS)/100*sds.Percent +
			float64(weightLabels)/100*labels.Percent +
			float64(weightTraining)/100*trainingScore.Percent +
			float64(weightProgram)/100*program.Percent))

	status, color := bucket(overall)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Points > suggestions[j].Points
	})
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	return Result{
		Overall:         overall,
		Status:          status,
		Color:           color,
		SDS:             sds,
		Labels:          labels,
		Training:        trainingScore,
		WrittenProgram:  program,
		Suggestions:     suggestions,
		ActionItemCount: actionItems,
	}
}

// subScore computes one category. A zero denominator is a vacuous pass.
func subScore(met, total, weight int) SubScore {
	pct := 100.0
	if total > 0 {
		pct = 100 * float64(met) / float64(total)
	}
	return SubScore{Percent: pct, Weight: weight, Met: met, Total: total}
}

// pointsPer is the overall-score value of fixing one deficiency in a
// category: the category weight spread across its denominator.
func pointsPer(weight, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(weight) / float64(total)))
}

func bucket(overall int) (status, color string) {
	switch {
	case overall >= 90:
		return "Inspection Ready", "green"
	case overall >= 70:
		return "Getting Close", "amber"
	case overall >= 50:
		return "Needs Work", "red"
	default:
		return "At Risk", "red"
	}
}
