package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-auth-client/auth"
	"github.com/jrsteele09/go-auth-client/budget"
	"github.com/jrsteele09/go-auth-client/budget/localstore"
	"github.com/jrsteele09/go-auth-client/forms"
	"github.com/jrsteele09/go-auth-client/gateway"
	"github.com/jrsteele09/go-auth-client/internal/config"
	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/session/filestorage"
	"github.com/jrsteele09/go-auth-client/views"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running demo: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	email := flag.String("email", "", "email to login with")
	password := flag.String("password", "", "password to login with")
	flag.Parse()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := context.Background()

	storage, err := tokenStorage(c)
	if err != nil {
		return err
	}
	store, err := session.NewStore(storage)
	if err != nil {
		return err
	}

	gatewayClient, err := gateway.New(c, store, gateway.WithLogger(logger))
	if err != nil {
		return err
	}
	authService, err := auth.NewService(c, gatewayClient, store, auth.WithLogger(logger))
	if err != nil {
		return err
	}

	local, err := localstore.New(c.GetDataFolder())
	if err != nil {
		return interrors.Wrapf(err, "open local budget store")
	}
	defer local.Close() //nolint:errcheck

	budgetService, err := budget.NewService(gatewayClient, store,
		budget.WithLocalStore(local), budget.WithLogger(logger))
	if err != nil {
		return err
	}

	router, err := views.NewRouter(store)
	if err != nil {
		return err
	}

	// A previously stored token pair is not trusted until the user fetch
	// succeeds.
	if tokens, ok := store.Load(); ok {
		if session.TokenExpired(tokens.AccessToken, 0) {
			logger.Debug().Msg("Stored access token expired, relying on refresh")
		}
		if _, err := authService.CurrentUser(ctx); err != nil {
			logger.Warn().Err(err).Msg("Stored tokens rejected, login required")
		}
	}

	if !store.IsAuthenticated() && *email != "" {
		if err := login(ctx, authService, router, *email, *password); err != nil {
			return err
		}
	}

	if !store.IsAuthenticated() {
		fmt.Println("Not authenticated. Pass -email and -password to login.")
		return nil
	}

	user := store.User()
	fmt.Printf("Logged in as %s (%s)\n", user.FullName(), user.Email)
	if user.IsAdmin() {
		fmt.Println("Admin account: the users view is available.")
	}

	if err := router.Navigate(views.ViewDashboard); err != nil {
		return err
	}
	return showDashboard(ctx, budgetService)
}

func login(ctx context.Context, authService *auth.Service, router *views.Router, email, password string) error {
	controller, err := forms.NewLoginController(authService)
	if err != nil {
		return err
	}
	router.RegisterForm(views.ViewLogin, controller)

	controller.SetField("email", email)
	controller.SetField("password", password)

	if _, err := controller.Submit(ctx); err != nil {
		if interrors.Is(err, interrors.ErrValidationFailed) {
			for field, message := range controller.FieldErrors() {
				fmt.Printf("%s: %s\n", field, message)
			}
			return err
		}
		if message := controller.FormError(); message != "" {
			return errors.New(message)
		}
		return err
	}
	return nil
}

func showDashboard(ctx context.Context, budgetService *budget.Service) error {
	records, err := budgetService.Fetch(ctx)
	if err != nil {
		fmt.Println("Backend unreachable, showing local records only.")
	}

	stats := budget.ComputeStats(records)
	fmt.Printf("Budgets: %d total, %d approved, %d pending, %d rejected, %d draft\n",
		stats.TotalBudgets, stats.Approved, stats.Pending, stats.Rejected, stats.Draft)
	fmt.Printf("Spend: %.2f of %.2f (%.1f%%)\n", stats.SpentAmount, stats.TotalAmount, stats.UtilizationPercent)

	for _, deptStats := range budget.ComputeDepartmentStats(records, budget.Departments()) {
		if deptStats.Budgets == 0 {
			continue
		}
		fmt.Printf("  %-20s %d budgets, %.1f%% utilized\n", deptStats.Department, deptStats.Budgets, deptStats.UtilizationPercent)
	}
	return nil
}

// tokenStorage picks the persistence behind the session store: an encrypted
// file when a passphrase is configured, otherwise in-memory only for the
// lifetime of the process.
func tokenStorage(c config.Config) (session.Storage, error) {
	passphrase := config.EnvVars{}.GetStoragePassphrase()
	if passphrase == "" {
		return newMemoryStorage(), nil
	}
	return filestorage.New(c.GetDataFolder(), passphrase)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
