package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/moneyx"
)

func (a *App) Dashboard(ctx context.Context) error {
	u, err := a.session.Require()
	if err != nil {
		return err
	}
	rate, err := a.session.CommissionRate(ctx)
	if err != nil {
		return err
	}
	label, err := a.membership.ProductAccessLabel(ctx, u.Level)
	if err != nil {
		label = "?"
	}

	a.printf("Hello, %s!\n", u.DisplayName())
	a.printf("  Level:       %s (commission %d%%, products: %s)\n", u.Level, rate, label)
	a.printf("  Balance:     %s\n", moneyx.FormatIDR(u.Balance))
	a.printf("  Clicks:      %d\n", u.Clicks)
	a.printf("  Orders:      %d\n", u.Orders)
	a.printf("  Member since %s\n", u.JoinDate.Local().Format("2 Jan 2006"))
	a.printf("  Referral:    %s\n", a.affiliate.ReferralLink(u))
	if !a.membership.CanWithdraw(u.Level) {
		a.println("  Upgrade to Master or above to withdraw your balance.")
	}
	return nil
}

func (a *App) Products(ctx context.Context) error {
	u, err := a.session.Require()
	if err != nil {
		return err
	}
	views, err := a.products.VisibleFor(ctx, u.Level)
	if err != nil {
		return err
	}
	for _, v := range views {
		status := ""
		if v.Locked {
			status = "  [locked: upgrade required]"
		}
		a.printf("%6d  %-36s %16s  %3d%%%s\n", v.ID, v.Name, moneyx.FormatIDR(v.Price), v.Commission, status)
	}
	return nil
}

func (a *App) Link(ctx context.Context) error {
	u, err := a.session.Require()
	if err != nil {
		return err
	}
	a.println(a.affiliate.ReferralLink(u))
	return nil
}

// ProductLink prints the referral link of one product the user's tier can
// promote.
func (a *App) ProductLink(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("plink <product id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errUsage("plink <product id>")
	}
	u, err := a.session.Require()
	if err != nil {
		return err
	}

	p, err := a.products.Get(ctx, id)
	if err != nil {
		return err
	}
	rate, err := a.session.CommissionRate(ctx)
	if err != nil {
		return err
	}
	if p.Commission > rate {
		return common.ErrProductLocked
	}

	link, err := a.affiliate.ProductLink(*p, u)
	if err != nil {
		return err
	}
	a.println(link)
	return nil
}

// Upgrade shows the payment details for the target tier and the link that
// sends the confirmation message to the admin.
func (a *App) Upgrade(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("upgrade <tier>")
	}
	u, err := a.session.Require()
	if err != nil {
		return err
	}

	req, err := a.affiliate.RequestUpgrade(ctx, u, models.Tier(args[0]))
	if err != nil {
		return err
	}
	link, err := a.affiliate.ConfirmationURL(ctx, *req)
	if err != nil {
		return err
	}

	a.printf("Upgrade %s -> %s\n", req.CurrentLevel, req.TargetLevel)
	a.printf("  Transfer %s to %s %s (a.n. %s)\n", moneyx.FormatIDR(req.Price), req.BankName, req.BankAccount, req.AdminName)
	a.println("  Then confirm with the admin:")
	a.printf("  %s\n", link)
	return nil
}

func (a *App) Withdraw(ctx context.Context) error {
	u, err := a.session.Require()
	if err != nil {
		return err
	}
	policy, err := a.settings.WithdrawPolicy(ctx)
	if err != nil {
		return err
	}
	if !policy.Enabled {
		return common.ErrWithdrawDisabled
	}
	a.printf("Balance %s, minimum withdrawal %s\n", moneyx.FormatIDR(u.Balance), moneyx.FormatIDR(policy.Minimum))

	var req models.WithdrawRequest
	if req.Name, err = a.prompt("Account holder name"); err != nil {
		return err
	}
	if req.Account, err = a.prompt("Account number"); err != nil {
		return err
	}
	if req.Bank, err = a.prompt("Bank"); err != nil {
		return err
	}
	if req.Amount, err = GetInt(a.reader, "Amount", a.out); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	w, err := a.affiliate.Withdraw(ctx, u, req)
	if err != nil {
		return err
	}
	a.printf("Withdrawal of %s to %s %s submitted.\n", moneyx.FormatIDR(w.Amount), w.Bank, w.Account)
	return nil
}

// Logout ends the session and leaves admin mode.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.End(ctx); err != nil {
		return err
	}
	a.adminSubject = ""
	a.println("Logged out.")
	return nil
}
