package budget

// Stats is the dashboard's headline aggregation over the current records.
// Approved counts ACTIVE budgets too, matching how the demo pages group
// them.
type Stats struct {
	TotalBudgets       int
	Approved           int
	Pending            int
	Rejected           int
	Draft              int
	TotalAmount        float64
	SpentAmount        float64
	RemainingAmount    float64
	UtilizationPercent float64
}

// ComputeStats aggregates counts by status and the overall utilization
// percentage used for the progress bars.
func ComputeStats(records []Record) Stats {
	stats := Stats{TotalBudgets: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusApproved, StatusActive:
			stats.Approved++
		case StatusPending:
			stats.Pending++
		case StatusRejected:
			stats.Rejected++
		case StatusDraft:
			stats.Draft++
		}
		stats.TotalAmount += r.TotalAmount
		stats.SpentAmount += r.SpentAmount
	}
	stats.RemainingAmount = stats.TotalAmount - stats.SpentAmount
	stats.UtilizationPercent = UtilizationPercent(stats.SpentAmount, stats.TotalAmount)
	return stats
}

// DepartmentStats is the per-department breakdown shown on the reports page.
type DepartmentStats struct {
	Department         string
	BudgetLimit        float64
	Budgets            int
	TotalAmount        float64
	SpentAmount        float64
	UtilizationPercent float64
}

// ComputeDepartmentStats aggregates records against each department in the
// given list. Departments without budgets appear with zero values.
func ComputeDepartmentStats(records []Record, departments []Department) []DepartmentStats {
	stats := make([]DepartmentStats, 0, len(departments))
	for _, dept := range departments {
		deptStats := DepartmentStats{Department: dept.Name, BudgetLimit: dept.BudgetLimit}
		for _, r := range records {
			if r.Department != dept.Name {
				continue
			}
			deptStats.Budgets++
			deptStats.TotalAmount += r.TotalAmount
			deptStats.SpentAmount += r.SpentAmount
		}
		deptStats.UtilizationPercent = UtilizationPercent(deptStats.SpentAmount, deptStats.TotalAmount)
		stats = append(stats, deptStats)
	}
	return stats
}
