package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/semmy-space/coda/internal/config"
	"github.com/semmy-space/coda/internal/credstore"
	"github.com/semmy-space/coda/internal/output"
	"github.com/semmy-space/coda/internal/secrets"
)

const (
	identifierPrompt = "Enter username (3-20 chars, start with letter, alphanumeric + underscore): "
	secretPrompt     = "Enter password (6-50 chars, must include: uppercase, lowercase, digit, special char): "
)

// unifiedLoginFailure replaces the not-found and bad-secret messages when
// hide_unknown_users is set, so callers cannot probe which identifiers exist.
const unifiedLoginFailure = "invalid identifier or secret"

// AuthRegisterCmd implements the auth register command
type AuthRegisterCmd struct {
	Identifier string `arg:"" optional:"" help:"Identifier to register (prompted when omitted)"`
}

// Run executes the register command
func (cmd *AuthRegisterCmd) Run(ctx context.Context, svc *credstore.Service, con *Console, fp *FormatterProvider) error {
	id, err := registerFlow(ctx, con, svc, cmd.Identifier)
	if err != nil {
		return credentialError(err, false)
	}

	fp.Formatter.PrintSuccess(fmt.Sprintf("User '%s' registered successfully!", id))
	fp.Formatter.PrintHint("Run: coda auth login " + id)
	return nil
}

// AuthLoginCmd implements the auth login command
type AuthLoginCmd struct {
	Identifier string `arg:"" optional:"" help:"Identifier to log in as (prompted when omitted)"`
}

// Run executes the login command
func (cmd *AuthLoginCmd) Run(ctx context.Context, cfg *config.Config, svc *credstore.Service, con *Console, fp *FormatterProvider, sp *SessionProvider, logger *zap.Logger) error {
	id, err := loginFlow(ctx, con, svc, cmd.Identifier)
	if err != nil {
		return credentialError(err, cfg.HideUnknownUsers)
	}

	rememberSession(sp, id, logger)
	fp.Formatter.PrintSuccess(fmt.Sprintf("Login successful! Welcome, %s!", id))
	return nil
}

// AuthUsersCmd implements the auth users command
type AuthUsersCmd struct{}

type userRow struct {
	Number     int    `json:"number"`
	Identifier string `json:"identifier"`
}

// Run executes the users command
func (cmd *AuthUsersCmd) Run(ctx context.Context, svc *credstore.Service, fp *FormatterProvider) error {
	ids, err := svc.Identifiers(ctx)
	if err != nil {
		return credentialError(err, false)
	}

	rows := make([]userRow, len(ids))
	for i, id := range ids {
		rows[i] = userRow{Number: i + 1, Identifier: id}
	}

	cols := []output.Column{
		{Name: "#", Key: "Number"},
		{Name: "Identifier", Key: "Identifier"},
	}
	if err := fp.Formatter.PrintList(rows, cols); err != nil {
		return err
	}

	if len(ids) == 0 {
		fp.Formatter.PrintSuccess("No users registered yet.")
	} else {
		fp.Formatter.PrintSuccess(fmt.Sprintf("Total users: %d", len(ids)))
	}
	return nil
}

// AuthWhoamiCmd implements the auth whoami command
type AuthWhoamiCmd struct{}

// Run executes the whoami command
func (cmd *AuthWhoamiCmd) Run(fp *FormatterProvider, sp *SessionProvider) error {
	session, err := sp.Session()
	if err != nil {
		return err
	}

	id, err := session.Current()
	if errors.Is(err, secrets.ErrNoSession) {
		return output.Wrap(output.ExitAuth, "Not logged in", err).
			WithHint("Run: coda auth login")
	}
	if err != nil {
		return output.Wrap(output.ExitGeneral, err.Error(), err)
	}

	return fp.Formatter.Print(struct {
		Identifier string `json:"identifier"`
	}{Identifier: id})
}

// AuthLogoutCmd implements the auth logout command
type AuthLogoutCmd struct{}

// Run executes the logout command
func (cmd *AuthLogoutCmd) Run(fp *FormatterProvider, sp *SessionProvider) error {
	session, err := sp.Session()
	if err != nil {
		return err
	}

	err = session.End()
	if errors.Is(err, secrets.ErrNoSession) {
		fp.Formatter.PrintSuccess("No active session")
		return nil
	}
	if err != nil {
		return output.Wrap(output.ExitGeneral, err.Error(), err)
	}

	fp.Formatter.PrintSuccess("Logged out")
	return nil
}

// registerFlow prompts for whatever is missing, in this order:
// identifier, availability, secret, confirmation. It returns the registered identifier.
func registerFlow(ctx context.Context, con *Console, svc *credstore.Service, id string) (string, error) {
	con.Header("USER REGISTRATION")

	var err error
	if id == "" {
		id, err = con.PromptValid(identifierPrompt, credstore.ValidateIdentifier)
		if err != nil {
			return "", inputError(err)
		}
	}
	if err := svc.CheckAvailable(ctx, id); err != nil {
		return id, err
	}

	secret, err := con.PromptSecretValid(secretPrompt, credstore.ValidateSecret)
	if err != nil {
		return id, inputError(err)
	}
	confirm, err := con.PromptSecret("Confirm password: ")
	if err != nil {
		return id, inputError(err)
	}

	return id, svc.Register(ctx, id, secret, confirm)
}

// loginFlow prompts for the identifier (unless given) and secret, then authenticates.
func loginFlow(ctx context.Context, con *Console, svc *credstore.Service, id string) (string, error) {
	con.Header("USER LOGIN")

	var err error
	if id == "" {
		id, err = con.Prompt("Enter username: ")
		if err != nil {
			return "", inputError(err)
		}
	}
	secret, err := con.PromptSecret("Enter password: ")
	if err != nil {
		return id, inputError(err)
	}

	return id, svc.Authenticate(ctx, id, secret)
}

// rememberSession records a successful login. The login itself already
// succeeded, so a session store failure is only logged.
func rememberSession(sp *SessionProvider, id string, logger *zap.Logger) {
	session, err := sp.Session()
	if err == nil {
		err = session.Begin(id)
	}
	if err != nil {
		logger.Warn("session not saved", zap.String("identifier", id), zap.Error(err))
		return
	}
	logger.Debug("session saved", zap.String("identifier", id), zap.String("backend", secrets.Backend()))
}

// credentialError maps credstore errors to CLI exit codes. With hide set, not-found
// and bad-secret failures share one message and exit code.
func credentialError(err error, hide bool) error {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var shape *credstore.ShapeError
	switch {
	case errors.As(err, &shape):
		return output.Wrap(output.ExitUsage, "Invalid "+shape.Field+": "+shape.Rule, err)
	case errors.Is(err, credstore.ErrDuplicateIdentifier):
		return output.Wrap(output.ExitConflict, err.Error(), err).
			WithHint("Please choose a different username")
	case errors.Is(err, credstore.ErrSecretMismatch):
		return output.Wrap(output.ExitUsage, "Passwords do not match", err)
	case errors.Is(err, credstore.ErrStoreUnwritable):
		return output.Wrap(output.ExitIOError, err.Error(), err).
			WithHint("Check permissions or choose another file with --store")
	case hide && (errors.Is(err, credstore.ErrNotFound) || errors.Is(err, credstore.ErrBadCredential)):
		return output.Wrap(output.ExitAuth, unifiedLoginFailure, err)
	case errors.Is(err, credstore.ErrNotFound):
		return output.Wrap(output.ExitNotFound, err.Error(), err).
			WithHint("Run: coda auth register")
	case errors.Is(err, credstore.ErrBadCredential):
		return output.Wrap(output.ExitAuth, err.Error(), err)
	}
	return output.Wrap(output.ExitGeneral, err.Error(), err)
}
