package domain

// CategoryStat aggregates completion counts for one category.
type CategoryStat struct {
	Category  Category `json:"category"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
}

// ComputeCategoryStats counts tasks per category over the full, unfiltered
// set. Categories with no tasks are omitted. Output follows the fixed
// category display order.
func ComputeCategoryStats(tasks []Task) []CategoryStat {
	totals := make(map[Category]*CategoryStat, len(Categories()))
	for i := range tasks {
		c := tasks[i].Category
		stat, ok := totals[c]
		if !ok {
			stat = &CategoryStat{Category: c}
			totals[c] = stat
		}
		stat.Total++
		if tasks[i].IsCompleted() {
			stat.Completed++
		}
	}

	out := make([]CategoryStat, 0, len(totals))
	for _, c := range Categories() {
		if stat, ok := totals[c]; ok {
			out = append(out, *stat)
		}
	}
	return out
}
