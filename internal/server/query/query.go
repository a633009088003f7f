// Package query filters and orders a single user's task set. All functions
// are pure: they never mutate their input and touch no state outside it.
// Ownership scoping has already happened in the task repository by the time
// a slice reaches this package.
package query

import (
	"sort"
	"time"

	"github.com/dkoval/tasktrack/internal/server/models"
)

// Filter selects one archived partition and optionally narrows it by
// category and priority. Nil means "all" for the optional fields; Archived
// is deliberately not optional so a response can never mix the active and
// archived views.
type Filter struct {
	Category *models.Category
	Priority *models.Priority
	Archived bool
}

// SortKey names a sortable task attribute.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByPriority  SortKey = "priority"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByCreatedAt, SortByDueDate, SortByPriority:
		return true
	}
	return false
}

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// Apply returns the tasks matching f, preserving input order.
func Apply(tasks []models.Task, f Filter) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Archived != f.Archived {
			continue
		}
		if f.Category != nil && t.Category != *f.Category {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		result = append(result, t)
	}
	return result
}

// Sort returns a new slice ordered by the given key and direction. Priority
// compares by rank (High=3, Medium=2, Low=1), never lexically. Tasks without
// a due date sort after all dated tasks regardless of direction.
func Sort(tasks []models.Task, by SortKey, order Order) []models.Task {
	result := make([]models.Task, len(tasks))
	copy(result, tasks)

	sign := 1
	if order == OrderDesc {
		sign = -1
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch by {
		case SortByDueDate:
			if a.DueDate == nil || b.DueDate == nil {
				// undated tasks go last in both directions
				return a.DueDate != nil && b.DueDate == nil
			}
			return sign*compareTimes(*a.DueDate, *b.DueDate) < 0
		case SortByPriority:
			return sign*(a.Priority.Rank()-b.Priority.Rank()) < 0
		default:
			return sign*compareTimes(a.CreatedAt, b.CreatedAt) < 0
		}
	})

	return result
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
