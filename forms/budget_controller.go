package forms

import (
	"context"
	"strconv"
	"time"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/pkg/errors"
)

const (
	MsgNameRequired       = "Name is required"
	MsgDepartmentRequired = "Department is required"
	MsgCategoryRequired   = "Category is required"
	MsgAmountInvalid      = "Amount must be a number greater than zero"
	MsgStartDateInvalid   = "Start date must be in YYYY-MM-DD format"
	MsgEndDateInvalid     = "End date must be in YYYY-MM-DD format"
	MsgEndBeforeStart     = "End date must be after the start date"
)

const dateLayout = "2006-01-02"

// BudgetInput is the validated payload of the budget create/edit form.
type BudgetInput struct {
	Name        string
	Description string
	TotalAmount float64
	Department  string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
}

// BudgetSubmitter receives a validated budget form submission.
type BudgetSubmitter interface {
	SubmitBudget(ctx context.Context, input BudgetInput) error
}

// BudgetController drives the budget create/edit form.
type BudgetController struct {
	*Form
	submitter BudgetSubmitter
}

func NewBudgetController(submitter BudgetSubmitter) (*BudgetController, error) {
	if submitter == nil {
		return nil, errors.New("[NewBudgetController] submitter is required")
	}
	return &BudgetController{Form: NewForm(), submitter: submitter}, nil
}

func (c *BudgetController) Submit(ctx context.Context) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}

	input, fieldErrors := c.validate()
	if len(fieldErrors) > 0 {
		c.fail(MsgFixErrorsBelow, fieldErrors)
		return interrors.ErrValidationFailed
	}

	c.submitting()
	if err := c.submitter.SubmitBudget(ctx, input); err != nil {
		c.failFromError(err)
		return err
	}
	c.succeed()
	return nil
}

func (c *BudgetController) validate() (BudgetInput, map[string]string) {
	fieldErrors := map[string]string{}
	input := BudgetInput{
		Name:        c.Field("name"),
		Description: c.Field("description"),
		Department:  c.Field("department"),
		Category:    c.Field("category"),
	}

	if input.Name == "" {
		fieldErrors["name"] = MsgNameRequired
	}
	if input.Department == "" {
		fieldErrors["department"] = MsgDepartmentRequired
	}
	if input.Category == "" {
		fieldErrors["category"] = MsgCategoryRequired
	}

	amount, err := strconv.ParseFloat(c.Field("totalAmount"), 64)
	if err != nil || amount <= 0 {
		fieldErrors["totalAmount"] = MsgAmountInvalid
	} else {
		input.TotalAmount = amount
	}

	start, err := time.Parse(dateLayout, c.Field("startDate"))
	if err != nil {
		fieldErrors["startDate"] = MsgStartDateInvalid
	} else {
		input.StartDate = start
	}

	end, err := time.Parse(dateLayout, c.Field("endDate"))
	if err != nil {
		fieldErrors["endDate"] = MsgEndDateInvalid
	} else {
		input.EndDate = end
	}

	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && !input.EndDate.After(input.StartDate) {
		fieldErrors["endDate"] = MsgEndBeforeStart
	}

	return input, fieldErrors
}
