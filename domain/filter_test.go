package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTask(id string, category Category, status Status, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Title:     "task " + id,
		Status:    status,
		Priority:  PriorityMedium,
		Category:  category,
		CreatedAt: createdAt,
	}
}

func TestFilterTasksByCategory(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		makeTask("1", CategoryWork, StatusPending, base.Add(1*time.Minute)),
		makeTask("2", CategoryPersonal, StatusPending, base.Add(2*time.Minute)),
		makeTask("3", CategoryWork, StatusCompleted, base.Add(3*time.Minute)),
		makeTask("4", CategoryPersonal, StatusPending, base.Add(4*time.Minute)),
		makeTask("5", CategoryWork, StatusPending, base.Add(5*time.Minute)),
	}

	got := FilterTasks(tasks, Filter{Mode: FilterByCategory, Category: CategoryWork})

	require.Len(t, got, 3)
	// newest first
	assert.Equal(t, "5", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Equal(t, "1", got[2].ID)
}

func TestFilterTasksModes(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		makeTask("1", CategoryWork, StatusPending, base),
		makeTask("2", CategoryWork, StatusCompleted, base.Add(time.Minute)),
	}
	tasks[0].Priority = PriorityHigh

	all := FilterTasks(tasks, Filter{Mode: FilterAll})
	assert.Len(t, all, 2)

	pending := FilterTasks(tasks, Filter{Mode: FilterPending})
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].ID)

	completed := FilterTasks(tasks, Filter{Mode: FilterCompleted})
	require.Len(t, completed, 1)
	assert.Equal(t, "2", completed[0].ID)

	high := FilterTasks(tasks, Filter{Mode: FilterByPriority, Priority: PriorityHigh})
	require.Len(t, high, 1)
	assert.Equal(t, "1", high[0].ID)
}

func TestFilterTasksStableForTies(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		makeTask("a", CategoryWork, StatusPending, at),
		makeTask("b", CategoryWork, StatusPending, at),
		makeTask("c", CategoryWork, StatusPending, at),
	}

	got := FilterTasks(tasks, Filter{Mode: FilterAll})
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestFilterTasksDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		makeTask("1", CategoryWork, StatusPending, base.Add(time.Minute)),
		makeTask("2", CategoryWork, StatusPending, base.Add(2*time.Minute)),
	}

	_ = FilterTasks(tasks, Filter{Mode: FilterAll})
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "2", tasks[1].ID)
}

func TestComputeCategoryStats(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		makeTask("1", CategoryWork, StatusPending, base),
		makeTask("2", CategoryWork, StatusCompleted, base),
		makeTask("3", CategoryHealth, StatusCompleted, base),
	}

	stats := ComputeCategoryStats(tasks)

	// zero-total categories are omitted; fixed display order is kept
	require.Len(t, stats, 2)
	assert.Equal(t, CategoryStat{Category: CategoryWork, Total: 2, Completed: 1}, stats[0])
	assert.Equal(t, CategoryStat{Category: CategoryHealth, Total: 1, Completed: 1}, stats[1])
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	assert.Empty(t, ComputeCategoryStats(nil))
}
