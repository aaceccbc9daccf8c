package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/affiliatepro/internal/client/services"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/moneyx"
)

// getSecret is an indirection over GetSecret so tests can feed secrets
// without a terminal.
var getSecret = GetSecret

// Register creates an account from the entered name, email and phone and
// logs it in.
func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt("Enter username (empty to use the email name)")
	if err != nil {
		return err
	}
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	phone, err := a.prompt("Enter phone (empty to generate)")
	if err != nil {
		return err
	}

	u, err := a.users.Register(ctx, services.RegisterInput{Username: username, Email: email, Phone: phone})
	if err != nil {
		return err
	}
	if err := a.session.Start(ctx, *u); err != nil {
		return err
	}
	a.printf("Registration successful! Welcome, %s.\n", u.DisplayName())
	return nil
}

// Login signs in with an email, creating the account on first use. There
// is no password: the local store is not protected against its own user.
func (a *App) Login(ctx context.Context) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}

	u, err := a.users.LoginOrCreate(ctx, email)
	if err != nil {
		return err
	}
	if err := a.session.Start(ctx, *u); err != nil {
		return err
	}
	a.printf("Login successful! Welcome, %s.\n", u.DisplayName())
	return nil
}

// Reset stores a new secret for the account with the entered email.
func (a *App) Reset(ctx context.Context) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	secret, err := getSecret("New secret", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	confirm, err := getSecret("Repeat secret", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(secret, confirm) {
		return fmt.Errorf("%w: secrets do not match", common.ErrValidation)
	}
	if err := a.users.ResetCredential(ctx, email, secret); err != nil {
		return err
	}
	a.println("Secret updated.")
	return nil
}

// Tiers prints the membership table, marking the current user's tier.
func (a *App) Tiers(ctx context.Context) error {
	tiers, err := a.membership.Tiers(ctx)
	if err != nil {
		return err
	}
	u, loggedIn := a.session.Current()

	for _, t := range tiers {
		label, err := a.membership.ProductAccessLabel(ctx, t.Tier)
		if err != nil {
			return err
		}
		marker := " "
		if loggedIn && u.Level == t.Tier {
			marker = "*"
		}
		withdraw := "no"
		if a.membership.CanWithdraw(t.Tier) {
			withdraw = "yes"
		}
		a.printf("%s %-12s %14s  commission %3d%%  products %-4s withdraw %s\n",
			marker, t.Tier, moneyx.FormatIDR(t.Price), t.Commission, label, withdraw)
	}
	return nil
}

// Admin unlocks the admin commands with a token from the admintoken tool.
func (a *App) Admin(ctx context.Context) error {
	if !a.gate.Enabled() {
		return common.ErrAdminDisabled
	}
	token, err := getSecret("Admin token", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	subject, err := a.gate.Verify(strings.TrimSpace(string(token)))
	if err != nil {
		a.logger.Warn(ctx, "admin token rejected", "error", err)
		return err
	}
	if subject == "" {
		return errors.New("admin token has no subject")
	}
	a.adminSubject = subject
	a.logger.Info(ctx, "admin mode enabled", "subject", subject)
	a.printf("Admin mode enabled for %s.\n", subject)
	return nil
}
