package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/semmy-space/coda/internal/config"
	"github.com/semmy-space/coda/internal/credstore"
	"github.com/semmy-space/coda/internal/output"
)

// AuthMenuCmd implements the interactive auth menu
type AuthMenuCmd struct{}

// Run executes the menu loop until the user picks Exit or input ends
func (cmd *AuthMenuCmd) Run(ctx context.Context, cfg *config.Config, svc *credstore.Service, con *Console, sp *SessionProvider, logger *zap.Logger) error {
	m := newAuthMenu(cfg, svc, con, sp, logger)
	return m.run(ctx)
}

// authMenu holds the state of one menu session.
type authMenu struct {
	svc     *credstore.Service
	con     *Console
	sp      *SessionProvider
	logger  *zap.Logger
	hide    bool
	limiter *rate.Limiter
	every   time.Duration
	now     func() time.Time
}

// newAuthMenu allows login_attempts failed logins in a burst, then one more
// per login_cooldown.
func newAuthMenu(cfg *config.Config, svc *credstore.Service, con *Console, sp *SessionProvider, logger *zap.Logger) *authMenu {
	every := cfg.ResolvedLoginCooldown()
	return &authMenu{
		svc:     svc,
		con:     con,
		sp:      sp,
		logger:  logger,
		hide:    cfg.HideUnknownUsers,
		limiter: rate.NewLimiter(rate.Every(every), cfg.ResolvedLoginAttempts()),
		every:   every,
		now:     time.Now,
	}
}

func (m *authMenu) run(ctx context.Context) error {
	m.con.Printf("Welcome to the User Authentication System!\n")

	for {
		m.printMenu()
		answer, err := m.con.Prompt("Enter your choice (1-4): ")
		if errors.Is(err, io.EOF) {
			return m.exit(ctx)
		}
		if err != nil {
			return inputError(err)
		}

		choice, err := strconv.Atoi(answer)
		if err != nil {
			m.con.Printf("Error: Please enter a valid number (1-4).\n")
			continue
		}

		switch choice {
		case 1:
			err = m.register(ctx)
		case 2:
			err = m.login(ctx)
		case 3:
			err = m.listUsers(ctx)
		case 4:
			return m.exit(ctx)
		default:
			m.con.Printf("Error: Invalid choice. Please select option 1-4.\n")
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (m *authMenu) printMenu() {
	rule := strings.Repeat("=", 50)
	m.con.Printf("\n%s\n%s\n%s\n", rule, "           USER AUTHENTICATION SYSTEM", rule)
	m.con.Printf("1. Register New User\n")
	m.con.Printf("2. Login Existing User\n")
	m.con.Printf("3. View All Registered Users\n")
	m.con.Printf("4. Exit\n")
	m.con.Printf("%s\n", strings.Repeat("-", 50))
}

// register returns an error only when input is exhausted; failures are reported and the menu continues.
func (m *authMenu) register(ctx context.Context) error {
	id, err := registerFlow(ctx, m.con, m.svc, "")
	if err != nil {
		return m.report(err, false)
	}
	m.con.Printf("\nSuccess: User '%s' registered successfully!\n", id)
	m.con.Printf("You can now log in with your credentials.\n")
	return nil
}

func (m *authMenu) login(ctx context.Context) error {
	if wait := m.throttled(); wait > 0 {
		m.con.Printf("Error: Too many failed login attempts. Try again in %s.\n", wait.Round(time.Second))
		return nil
	}

	id, err := loginFlow(ctx, m.con, m.svc, "")
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) || errors.Is(err, credstore.ErrBadCredential) {
			m.limiter.AllowN(m.now(), 1)
		}
		return m.report(err, m.hide)
	}

	rememberSession(m.sp, id, m.logger)
	m.con.Printf("\nSuccess: Login successful! Welcome, %s!\n", id)
	m.con.Printf("You are now logged into the system.\n")
	return nil
}

// throttled returns how long until another login may be tried, or zero.
func (m *authMenu) throttled() time.Duration {
	tokens := m.limiter.TokensAt(m.now())
	if tokens >= 1 {
		return 0
	}
	return time.Duration((1 - tokens) * float64(m.every))
}

func (m *authMenu) listUsers(ctx context.Context) error {
	ids, err := m.svc.Identifiers(ctx)
	if err != nil {
		return m.report(err, false)
	}

	rule := strings.Repeat("=", 40)
	m.con.Printf("\n%s\n%s\n%s\n", rule, "           REGISTERED USERS", rule)
	if len(ids) == 0 {
		m.con.Printf("No users registered yet.\n")
	} else {
		m.con.Printf("Total users: %d\n\n", len(ids))
		for i, id := range ids {
			m.con.Printf("%d. %s\n", i+1, id)
		}
	}
	m.con.Printf("%s\n", rule)
	return nil
}

func (m *authMenu) exit(ctx context.Context) error {
	total, err := m.svc.Count(ctx)
	if err != nil {
		return credentialError(err, false)
	}
	m.con.Printf("\nThank you for using the User Authentication System!\n")
	m.con.Printf("Total registered users: %d\n", total)
	m.con.Printf("Goodbye!\n")
	return nil
}

// report prints a flow failure. Input errors end the menu; everything else is shown and swallowed.
func (m *authMenu) report(err error, hide bool) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errNoInput) {
		return err
	}
	mapped := credentialError(err, hide)
	var cliErr *output.CLIError
	if errors.As(mapped, &cliErr) {
		m.con.Printf("Error: %s.\n", cliErr.Message)
		return nil
	}
	m.con.Printf("Error: %v.\n", err)
	return nil
}

