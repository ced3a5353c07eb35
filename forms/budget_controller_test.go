package forms_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-client/forms"
	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/stretchr/testify/require"
)

type fakeBudgetSubmitter struct {
	input forms.BudgetInput
	calls int
	err   error
}

func (s *fakeBudgetSubmitter) SubmitBudget(ctx context.Context, input forms.BudgetInput) error {
	s.calls++
	s.input = input
	return s.err
}

func fillBudgetForm(c *forms.BudgetController) {
	c.SetField("name", "Lab Equipment")
	c.SetField("description", "Microscopes")
	c.SetField("totalAmount", "2500.50")
	c.SetField("department", "Science")
	c.SetField("category", "Equipment")
	c.SetField("startDate", "2026-01-01")
	c.SetField("endDate", "2026-12-31")
}

func TestBudgetController_Submit(t *testing.T) {
	t.Run("empty form reports every rule without submitting", func(t *testing.T) {
		submitter := &fakeBudgetSubmitter{}
		controller, err := forms.NewBudgetController(submitter)
		require.NoError(t, err)

		err = controller.Submit(context.Background())
		require.ErrorIs(t, err, interrors.ErrValidationFailed)

		fieldErrors := controller.FieldErrors()
		require.Equal(t, forms.MsgNameRequired, fieldErrors["name"])
		require.Equal(t, forms.MsgDepartmentRequired, fieldErrors["department"])
		require.Equal(t, forms.MsgCategoryRequired, fieldErrors["category"])
		require.Equal(t, forms.MsgAmountInvalid, fieldErrors["totalAmount"])
		require.Equal(t, forms.MsgStartDateInvalid, fieldErrors["startDate"])
		require.Equal(t, forms.MsgEndDateInvalid, fieldErrors["endDate"])
		require.Equal(t, 0, submitter.calls)
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		for _, amount := range []string{"0", "-10", "ten"} {
			submitter := &fakeBudgetSubmitter{}
			controller, err := forms.NewBudgetController(submitter)
			require.NoError(t, err)

			fillBudgetForm(controller)
			controller.SetField("totalAmount", amount)

			err = controller.Submit(context.Background())
			require.ErrorIs(t, err, interrors.ErrValidationFailed, amount)
			require.Equal(t, forms.MsgAmountInvalid, controller.FieldError("totalAmount"))
		}
	})

	t.Run("end date must follow the start date", func(t *testing.T) {
		submitter := &fakeBudgetSubmitter{}
		controller, err := forms.NewBudgetController(submitter)
		require.NoError(t, err)

		fillBudgetForm(controller)
		controller.SetField("endDate", "2026-01-01")

		err = controller.Submit(context.Background())
		require.ErrorIs(t, err, interrors.ErrValidationFailed)
		require.Equal(t, forms.MsgEndBeforeStart, controller.FieldError("endDate"))
	})

	t.Run("valid form reaches the submitter with parsed values", func(t *testing.T) {
		submitter := &fakeBudgetSubmitter{}
		controller, err := forms.NewBudgetController(submitter)
		require.NoError(t, err)

		fillBudgetForm(controller)
		require.NoError(t, controller.Submit(context.Background()))
		require.Equal(t, forms.StateSuccess, controller.State())

		require.Equal(t, 1, submitter.calls)
		require.Equal(t, "Lab Equipment", submitter.input.Name)
		require.Equal(t, 2500.50, submitter.input.TotalAmount)
		require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), submitter.input.StartDate)
		require.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), submitter.input.EndDate)
	})
}
