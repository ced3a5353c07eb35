// Package views is the presentational state machine that decides which
// form or page is visible. It holds no rendering; it validates transitions,
// applies role gating, and clears the prior view's errors on every switch.
package views

import (
	"sync"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/users"
	"github.com/pkg/errors"
)

// View identifies an auth or demo page.
type View string

const (
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewReset     View = "reset"
	ViewSuccess   View = "success"
	ViewDashboard View = "dashboard"
	ViewBudgets   View = "budgets"
	ViewUsers     View = "users"
	ViewReports   View = "reports"
)

var knownViews = map[View]struct{}{
	ViewLogin:     {},
	ViewRegister:  {},
	ViewReset:     {},
	ViewSuccess:   {},
	ViewDashboard: {},
	ViewBudgets:   {},
	ViewUsers:     {},
	ViewReports:   {},
}

// requiredRoles gates views on a role claim of the cached user.
var requiredRoles = map[View]users.RoleType{
	ViewUsers: users.RoleAdmin,
}

// ErrorClearer is implemented by forms registered against a view so the
// router can wipe their errors when the view is left.
type ErrorClearer interface {
	ClearErrors()
}

// Router switches the active view.
type Router struct {
	store *session.Store

	mu       sync.Mutex
	current  View
	clearers map[View][]ErrorClearer
}

func NewRouter(store *session.Store) (*Router, error) {
	if store == nil {
		return nil, errors.New("[views.NewRouter] session store is required")
	}
	return &Router{
		store:    store,
		current:  ViewLogin,
		clearers: map[View][]ErrorClearer{},
	}, nil
}

func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// RegisterForm attaches a form's errors to a view so they are cleared when
// the view is left.
func (r *Router) RegisterForm(view View, clearer ErrorClearer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearers[view] = append(r.clearers[view], clearer)
}

// Navigate switches to the requested view. Unknown views and views the
// cached user's roles do not permit are rejected without leaving the
// current view. Every error of the previously active view is cleared before
// the new view becomes current.
func (r *Router) Navigate(view View) error {
	if _, ok := knownViews[view]; !ok {
		return errors.Wrap(interrors.ErrUnknownView, string(view))
	}
	if role, gated := requiredRoles[view]; gated {
		if !r.store.User().HasRole(role) {
			return errors.Wrap(interrors.ErrViewForbidden, string(view))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, clearer := range r.clearers[r.current] {
		clearer.ClearErrors()
	}
	r.current = view
	return nil
}
