package budget_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-auth-client/budget"
	"github.com/stretchr/testify/require"
)

func record(name, department string, status budget.Status, total, spent float64) budget.Record {
	return budget.Record{Budget: budget.Budget{
		ID:          budget.ID(name),
		Name:        name,
		Department:  department,
		Status:      status,
		TotalAmount: total,
		SpentAmount: spent,
	}}
}

func TestComputeStats(t *testing.T) {
	t.Run("active budgets count as approved", func(t *testing.T) {
		records := []budget.Record{
			record("a", "Science", budget.StatusApproved, 1000, 250),
			record("b", "Science", budget.StatusActive, 2000, 750),
			record("c", "English", budget.StatusPending, 500, 0),
			record("d", "English", budget.StatusRejected, 300, 0),
			record("e", "History", budget.StatusDraft, 200, 0),
		}

		stats := budget.ComputeStats(records)
		require.Equal(t, 5, stats.TotalBudgets)
		require.Equal(t, 2, stats.Approved)
		require.Equal(t, 1, stats.Pending)
		require.Equal(t, 1, stats.Rejected)
		require.Equal(t, 1, stats.Draft)
		require.Equal(t, float64(4000), stats.TotalAmount)
		require.Equal(t, float64(1000), stats.SpentAmount)
		require.Equal(t, float64(3000), stats.RemainingAmount)
		require.Equal(t, float64(25), stats.UtilizationPercent)
	})

	t.Run("no records", func(t *testing.T) {
		stats := budget.ComputeStats(nil)
		require.Equal(t, 0, stats.TotalBudgets)
		require.Equal(t, float64(0), stats.UtilizationPercent)
	})
}

func TestComputeDepartmentStats(t *testing.T) {
	records := []budget.Record{
		record("a", "Science", budget.StatusActive, 1000, 500),
		record("b", "Science", budget.StatusDraft, 1000, 0),
		record("c", "Mathematics", budget.StatusApproved, 400, 100),
	}

	stats := budget.ComputeDepartmentStats(records, budget.Departments())
	require.Len(t, stats, 6)

	byName := map[string]budget.DepartmentStats{}
	for _, s := range stats {
		byName[s.Department] = s
	}

	science := byName["Science"]
	require.Equal(t, 2, science.Budgets)
	require.Equal(t, float64(2000), science.TotalAmount)
	require.Equal(t, float64(500), science.SpentAmount)
	require.Equal(t, float64(25), science.UtilizationPercent)
	require.Equal(t, float64(75000), science.BudgetLimit)

	english := byName["English"]
	require.Equal(t, 0, english.Budgets)
	require.Equal(t, float64(0), english.UtilizationPercent)
}

func TestUtilizationPercent(t *testing.T) {
	require.Equal(t, float64(50), budget.UtilizationPercent(50, 100))
	require.Equal(t, float64(0), budget.UtilizationPercent(50, 0))
	require.Equal(t, float64(0), budget.UtilizationPercent(0, -10))
}

func TestID_UnmarshalJSON(t *testing.T) {
	t.Run("accepts a string", func(t *testing.T) {
		var id budget.ID
		require.NoError(t, json.Unmarshal([]byte(`"abc-123"`), &id))
		require.Equal(t, budget.ID("abc-123"), id)
	})

	t.Run("accepts a number", func(t *testing.T) {
		var id budget.ID
		require.NoError(t, json.Unmarshal([]byte(`42`), &id))
		require.Equal(t, budget.ID("42"), id)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var id budget.ID
		require.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
	})
}
