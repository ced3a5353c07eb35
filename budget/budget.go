// Package budget implements the budget-demo client: CRUD and approval calls
// against the REST backend with an optimistic fallback that keeps the demo
// usable when no backend is reachable.
package budget

import (
	"encoding/json"
	"time"

	"github.com/jrsteele09/go-auth-client/users"
)

// Status is a budget's position in the approval workflow.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// ID is an opaque budget identifier. The backend issues numeric ids while
// locally synthesized records use UUIDs, so it decodes from either a JSON
// number or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*id = ID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*id = ID(asNumber.String())
	return nil
}

// Budget is the backend-owned budget record.
type Budget struct {
	ID              ID          `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	TotalAmount     float64     `json:"totalAmount"`
	SpentAmount     float64     `json:"spentAmount"`
	RemainingAmount float64     `json:"remainingAmount"`
	Department      string      `json:"department"`
	Category        string      `json:"category"`
	Status          Status      `json:"status"`
	CreatedBy       *users.User `json:"createdBy,omitempty"`
	ApprovedBy      *users.User `json:"approvedBy,omitempty"`
	StartDate       time.Time   `json:"startDate"`
	EndDate         time.Time   `json:"endDate"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Origin tags where a record came from. Local records were synthesized
// client-side after a failed backend call and are never reconciled with
// server state; the tag keeps that divergence visible so a reconciliation
// pass can be added later without ambiguity.
type Origin string

const (
	OriginConfirmed Origin = "confirmed"
	OriginLocal     Origin = "local"
)

// Record is a budget plus its provenance.
type Record struct {
	Budget
	Origin Origin
}

// Department is a demo department with its spending limit.
type Department struct {
	ID          int
	Name        string
	Description string
	BudgetLimit float64
	IsActive    bool
}

// Departments returns the demo's static department list.
func Departments() []Department {
	return []Department{
		{ID: 1, Name: "Mathematics", Description: "Math Department", BudgetLimit: 50000, IsActive: true},
		{ID: 2, Name: "Science", Description: "Science Department", BudgetLimit: 75000, IsActive: true},
		{ID: 3, Name: "English", Description: "English Department", BudgetLimit: 30000, IsActive: true},
		{ID: 4, Name: "History", Description: "History Department", BudgetLimit: 25000, IsActive: true},
		{ID: 5, Name: "Physical Education", Description: "PE Department", BudgetLimit: 40000, IsActive: true},
		{ID: 6, Name: "Technology", Description: "IT Department", BudgetLimit: 100000, IsActive: true},
	}
}

// UtilizationPercent is the spent share of an amount as a percentage,
// zero when nothing was budgeted.
func UtilizationPercent(spent, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return spent / total * 100
}
