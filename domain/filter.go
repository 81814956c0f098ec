package domain

import "sort"

// FilterMode selects exactly one view of a task list. The modes are mutually
// exclusive: picking one replaces whatever was active before.
type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterPending    FilterMode = "pending"
	FilterCompleted  FilterMode = "completed"
	FilterByPriority FilterMode = "priority"
	FilterByCategory FilterMode = "category"
)

// Filter is a single active filter specification.
type Filter struct {
	Mode     FilterMode
	Priority Priority // set when Mode is FilterByPriority
	Category Category // set when Mode is FilterByCategory
}

func (f Filter) matches(t *Task) bool {
	switch f.Mode {
	case FilterPending:
		return t.Status != StatusCompleted
	case FilterCompleted:
		return t.Status == StatusCompleted
	case FilterByPriority:
		return t.Priority == f.Priority
	case FilterByCategory:
		return t.Category == f.Category
	default:
		return true
	}
}

// FilterTasks returns the tasks matching f, sorted by creation time
// descending (newest first, stable for ties). The input is not mutated.
func FilterTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		if f.matches(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
