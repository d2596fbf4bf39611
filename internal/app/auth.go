package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/service/auth"
	"github.com/oshokin/ncm-player/internal/session"
)

// LoginOptions selects how the identity is obtained.
type LoginOptions struct {
	// Browser runs the interactive browser login.
	Browser bool
	// Credential is a pasted cookie export; Input is read when it is empty.
	Credential string
	// Input supplies the credential when Credential is empty.
	Input io.Reader
}

// ExecuteLoginCommand stores a new session identity.
func ExecuteLoginCommand(ctx context.Context, cfg *config.Config, out io.Writer, opts LoginOptions) {
	err := run(ctx, cfg, func(a *App) error {
		return a.Login(ctx, out, opts, auth.NewRodBrowser())
	})

	switch {
	case errors.Is(err, session.ErrMalformedCredential):
		logger.Fatalf(ctx, "The pasted credential is not valid: %v", err)
	case err != nil:
		logger.Fatalf(ctx, "Login failed: %v", err)
	}
}

// ExecuteLogoutCommand removes the stored identity.
func ExecuteLogoutCommand(ctx context.Context, cfg *config.Config, out io.Writer) {
	err := run(ctx, cfg, func(a *App) error {
		return a.Logout(ctx, out)
	})
	if err != nil {
		logger.Fatalf(ctx, "Logout failed: %v", err)
	}
}

// ExecuteWhoAmICommand prints the account behind the stored identity.
func ExecuteWhoAmICommand(ctx context.Context, cfg *config.Config, out io.Writer) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PrintAccount(ctx, out)
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to load account: %v", err)
	}
}

// Login obtains an identity as opts describe and stores it.
func (a *App) Login(ctx context.Context, out io.Writer, opts LoginOptions, browser auth.Browser) error {
	service := auth.NewService(a.store, browser)

	var (
		count int
		err   error
	)

	if opts.Browser {
		count, err = service.LoginWithBrowser(ctx)
	} else {
		credential := opts.Credential
		if credential == "" && opts.Input != nil {
			raw, readErr := io.ReadAll(opts.Input)
			if readErr != nil {
				return fmt.Errorf("failed to read credential: %w", readErr)
			}

			credential = string(raw)
		}

		count, err = service.LoginWithCredential(ctx, strings.TrimSpace(credential))
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Stored %d cookies.\n", count)

	if !a.store.IsAuthenticated() {
		return nil
	}

	return a.PrintAccount(ctx, out)
}

// Logout removes the stored identity.
func (a *App) Logout(ctx context.Context, out io.Writer) error {
	if err := auth.NewService(a.store, nil).Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "Logged out.")

	return nil
}

// PrintAccount prints the account behind the current identity.
func (a *App) PrintAccount(ctx context.Context, out io.Writer) error {
	if !a.store.IsAuthenticated() {
		fmt.Fprintln(out, "Not logged in.")

		return nil
	}

	account, err := a.catalog.Account(ctx)
	if err != nil {
		return explain(err)
	}

	if account.Profile == nil {
		fmt.Fprintln(out, "Session expired, log in again.")

		return nil
	}

	fmt.Fprintf(out, "Logged in as %s (user %d)\n", account.Profile.Nickname, account.Profile.UserID)

	if account.Account != nil && account.Account.VipType > 0 {
		fmt.Fprintf(out, "VIP type: %d\n", account.Account.VipType)
	}

	return nil
}
