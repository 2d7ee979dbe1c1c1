// Package training derives an employee's training classification from their
// module completion and refresher dates. Status is recomputed on every read
// rather than stored, so it can never drift from the underlying fields.
package training

import (
	"fmt"
	"math"
	"time"

	"hazcom/internal/inventory"
)

// Status is the derived training classification.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusOverdue    Status = "overdue"
	StatusDueSoon    Status = "due-soon"
	StatusCurrent    Status = "current"
)

// CurriculumSize is the fixed number of modules in the training curriculum.
const CurriculumSize = 7

// dueSoonDays is the warning window before the refresher comes due.
const dueSoonDays = 30

// Evaluation is the result of classifying one employee.
type Evaluation struct {
	Status         Status `json:"status"`
	CompletedCount int    `json:"completed_count"`
	RemainingCount int    `json:"remaining_count"`
	DaysUntilDue   *int   `json:"days_until_due,omitempty"`
	Label          string `json:"label"`
}

// Evaluate classifies an employee's training state at the given time. It is
// pure and total: every input maps to exactly one of the five statuses, and
// the result depends only on the completed-module count and LastTraining.
func Evaluate(e inventory.Employee, now time.Time) Evaluation {
	completed := len(e.CompletedModules)
	if completed > CurriculumSize {
		completed = CurriculumSize
	}
	remaining := CurriculumSize - completed

	switch {
	case completed == 0:
		return Evaluation{
			Status:         StatusNotStarted,
			RemainingCount: CurriculumSize,
			Label:          "Not started",
		}
	case completed < CurriculumSize:
		return Evaluation{
			Status:         StatusInProgress,
			CompletedCount: completed,
			RemainingCount: remaining,
			Label:          fmt.Sprintf("In progress (%d of %d modules)", completed, CurriculumSize),
		}
	case e.LastTraining == nil:
		// Completed the curriculum but the refresher date is unknown.
		return Evaluation{
			Status:         StatusOverdue,
			CompletedCount: completed,
			Label:          "Overdue (no refresher date on file)",
		}
	}

	// The refresher is due one calendar year after the last training, so the
	// anniversary holds across leap years.
	dueDate := e.LastTraining.AddDate(1, 0, 0)
	days := int(math.Ceil(dueDate.Sub(now).Hours() / 24))

	switch {
	case days < 0:
		return Evaluation{
			Status:         StatusOverdue,
			CompletedCount: completed,
			DaysUntilDue:   &days,
			Label:          fmt.Sprintf("Overdue by %d days", -days),
		}
	case days <= dueSoonDays:
		return Evaluation{
			Status:         StatusDueSoon,
			CompletedCount: completed,
			DaysUntilDue:   &days,
			Label:          fmt.Sprintf("Refresher due in %d days", days),
		}
	default:
		return Evaluation{
			Status:         StatusCurrent,
			CompletedCount: completed,
			DaysUntilDue:   &days,
			Label:          "Current",
		}
	}
}

// Satisfactory reports whether a status counts toward the training sub-score.
func Satisfactory(s Status) bool {
	return s == StatusCurrent || s == StatusDueSoon
}
