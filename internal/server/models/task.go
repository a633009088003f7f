package models

import "time"

// Category is the closed set of task categories.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal:
		return true
	}
	return false
}

// Priority is an ordered enumeration: High > Medium > Low.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Valid() bool {
	return p.Rank() != 0
}

// Rank returns the numeric weight used for ordering. Lexical comparison of
// priority names gives the wrong order, so all sorting goes through Rank.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is the central entity. UserID is set at creation and never
// reassigned; Completed and Archived are independent flags, so an archived
// task keeps its completion state.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Text      string     `json:"text"`
	Category  Category   `json:"category"`
	Priority  Priority   `json:"priority"`
	Completed bool       `json:"completed"`
	Archived  bool       `json:"archived"`
	CreatedAt time.Time  `json:"createdAt"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}
