package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/moneyx"
)

func (a *App) Users(ctx context.Context) error {
	users, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		a.println("No users yet.")
		return nil
	}
	for _, u := range users {
		a.printf("%s  %-28s %-16s %-14s %-12s clicks %-5d orders %-5d %s\n",
			u.ID, u.Email, u.Username, u.Phone, u.Level, u.Clicks, u.Orders, moneyx.FormatIDR(u.Balance))
	}
	return nil
}

// EditUser walks through the editable fields; an empty answer keeps the
// current value.
func (a *App) EditUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("edituser <user id>")
	}
	u, err := a.users.Get(ctx, args[0])
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if v, changed, err := GetOptionalText(a.reader, "Username", u.Username, a.out); err != nil {
		return err
	} else if changed {
		patch.Username = &v
	}
	if v, changed, err := GetOptionalText(a.reader, "Email", u.Email, a.out); err != nil {
		return err
	} else if changed {
		patch.Email = &v
	}
	if v, changed, err := GetOptionalText(a.reader, "Phone", u.Phone, a.out); err != nil {
		return err
	} else if changed {
		patch.Phone = &v
	}
	if v, changed, err := GetOptionalText(a.reader, "Level", string(u.Level), a.out); err != nil {
		return err
	} else if changed {
		tier := models.Tier(v)
		patch.Level = &tier
	}
	if patch.Clicks, err = optionalIntFrom(a, "Clicks", int64(u.Clicks), toIntPtr); err != nil {
		return err
	}
	if patch.Orders, err = optionalIntFrom(a, "Orders", int64(u.Orders), toIntPtr); err != nil {
		return err
	}
	if patch.Balance, err = optionalIntFrom(a, "Balance", u.Balance, toInt64Ptr); err != nil {
		return err
	}

	updated, err := a.users.Update(ctx, u.ID, patch)
	if err != nil {
		return err
	}
	a.printf("User %s updated (%s, %s).\n", updated.ID, updated.Email, updated.Level)
	return nil
}

// toInt narrows n to int, rejecting values that do not fit on this platform.
func toInt(n int64) (int, error) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, fmt.Errorf("%w: %d is out of range", common.ErrValidation, n)
	}
	return int(n), nil
}

func toIntPtr(n int64) (*int, error) {
	v, err := toInt(n)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func toInt64Ptr(n int64) (*int64, error) { return &n, nil }

// optionalIntFrom asks for a number; an empty answer yields nil.
func optionalIntFrom[T any](a *App, prompt string, current int64, conv func(int64) (*T, error)) (*T, error) {
	s, changed, err := GetOptionalText(a.reader, prompt, strconv.FormatInt(current, 10), a.out)
	if err != nil || !changed {
		return nil, err
	}
	n, err := parseAmount(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrValidation, prompt, err)
	}
	v, err := conv(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", prompt, err)
	}
	return v, nil
}

// DeleteUser removes a user. Deleting the logged-in user also ends the
// session.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("deluser <user id>")
	}
	id := args[0]
	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}
	if u, ok := a.session.Current(); ok && u.ID == id {
		if err := a.session.End(ctx); err != nil {
			return err
		}
		a.println("The deleted user was logged in; session ended.")
	}
	a.printf("User %s deleted.\n", id)
	return nil
}

func (a *App) Click(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("click <user id>")
	}
	u, err := a.users.RecordClick(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("%s now has %d clicks.\n", u.Email, u.Clicks)
	return nil
}

// Sale records an order of a product through the user's referral and
// credits the commission of the user's tier.
func (a *App) Sale(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage("sale <user id> <product id>")
	}
	productID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errUsage("sale <user id> <product id>")
	}
	u, err := a.users.Get(ctx, args[0])
	if err != nil {
		return err
	}
	p, err := a.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	rate, err := a.membership.RateOrDefault(ctx, u.Level)
	if err != nil {
		return err
	}

	updated, err := a.users.RecordSale(ctx, u.ID, *p, rate)
	if err != nil {
		return err
	}
	a.printf("Sale recorded: %s earns %s (%d%% of %s). Balance %s.\n",
		updated.Email, moneyx.FormatIDR(p.Price*int64(rate)/100), rate, moneyx.FormatIDR(p.Price), moneyx.FormatIDR(updated.Balance))
	return nil
}

func (a *App) AddProduct(ctx context.Context) error {
	var (
		in  models.ProductInput
		err error
	)
	if in.Name, err = a.prompt("Product name"); err != nil {
		return err
	}
	if in.Price, err = GetInt(a.reader, "Price (Rp)", a.out); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	commission, err := GetInt(a.reader, "Commission (%)", a.out)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if in.Commission, err = toInt(commission); err != nil {
		return err
	}
	if in.Image, err = a.prompt("Image URL (optional)"); err != nil {
		return err
	}
	if in.URL, err = a.prompt("Product URL"); err != nil {
		return err
	}

	p, err := a.products.Create(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Product %d created.\n", p.ID)
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("editproduct <product id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errUsage("editproduct <product id>")
	}
	p, err := a.products.Get(ctx, id)
	if err != nil {
		return err
	}

	var patch models.ProductPatch
	if v, changed, err := GetOptionalText(a.reader, "Name", p.Name, a.out); err != nil {
		return err
	} else if changed {
		patch.Name = &v
	}
	if patch.Price, err = optionalIntFrom(a, "Price", p.Price, toInt64Ptr); err != nil {
		return err
	}
	if patch.Commission, err = optionalIntFrom(a, "Commission", int64(p.Commission), toIntPtr); err != nil {
		return err
	}
	if v, changed, err := GetOptionalText(a.reader, "Image URL", p.Image, a.out); err != nil {
		return err
	} else if changed {
		patch.Image = &v
	}
	if v, changed, err := GetOptionalText(a.reader, "Product URL", p.URL, a.out); err != nil {
		return err
	} else if changed {
		patch.URL = &v
	}

	if _, err := a.products.Update(ctx, id, patch); err != nil {
		return err
	}
	a.printf("Product %d updated.\n", id)
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("delproduct <product id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errUsage("delproduct <product id>")
	}
	if err := a.products.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Product %d deleted.\n", id)
	return nil
}

func (a *App) SetTier(ctx context.Context, args []string) error {
	const usage = "settier <tier> <price> <commission>"
	if len(args) != 3 {
		return errUsage(usage)
	}
	price, err := parseAmount(args[1])
	if err != nil {
		return errUsage(usage)
	}
	commission, err := strconv.Atoi(args[2])
	if err != nil {
		return errUsage(usage)
	}
	if err := a.membership.SetTierPricing(ctx, models.Tier(args[0]), price, commission); err != nil {
		return err
	}
	a.printf("%s: %s, commission %d%%.\n", args[0], moneyx.FormatIDR(price), commission)
	return nil
}

func (a *App) Bank(ctx context.Context) error {
	info, err := a.settings.Bank(ctx)
	if err != nil {
		return err
	}
	if info.BankName, _, err = GetOptionalText(a.reader, "Bank name", info.BankName, a.out); err != nil {
		return err
	}
	if info.BankAccount, _, err = GetOptionalText(a.reader, "Account number", info.BankAccount, a.out); err != nil {
		return err
	}
	if info.AdminName, _, err = GetOptionalText(a.reader, "Account holder", info.AdminName, a.out); err != nil {
		return err
	}
	if err := a.settings.SaveBank(ctx, info); err != nil {
		return err
	}
	a.println("Bank details saved.")
	return nil
}

func (a *App) Contact(ctx context.Context) error {
	current, err := a.settings.ContactURL(ctx)
	if err != nil {
		return err
	}
	v, changed, err := GetOptionalText(a.reader, "Admin contact URL", current, a.out)
	if err != nil || !changed {
		return err
	}
	if err := a.settings.SetContactURL(ctx, v); err != nil {
		return err
	}
	a.println("Contact URL saved.")
	return nil
}

// Withdrawals without arguments shows the policy and past requests;
// "withdrawals on|off <min>" changes the policy.
func (a *App) Withdrawals(ctx context.Context, args []string) error {
	const usage = "withdrawals [on|off <minimum>]"
	switch len(args) {
	case 0:
		policy, err := a.settings.WithdrawPolicy(ctx)
		if err != nil {
			return err
		}
		state := "enabled"
		if !policy.Enabled {
			state = "disabled"
		}
		a.printf("Withdrawals %s, minimum %s\n", state, moneyx.FormatIDR(policy.Minimum))

		list, err := a.affiliate.Withdrawals(ctx)
		if err != nil {
			return err
		}
		for _, w := range list {
			a.printf("%s  %s  %-20s %s %s  %s\n", w.CreatedAt.Local().Format("2006-01-02 15:04"),
				w.UserID, w.Name, w.Bank, w.Account, moneyx.FormatIDR(w.Amount))
		}
		return nil

	case 2:
		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
		default:
			return errUsage(usage)
		}
		minimum, err := parseAmount(args[1])
		if err != nil {
			return errUsage(usage)
		}
		if err := a.settings.SetWithdrawPolicy(ctx, models.WithdrawPolicy{Enabled: enabled, Minimum: minimum}); err != nil {
			return err
		}
		a.println("Withdraw settings saved.")
		return nil

	default:
		return errUsage(usage)
	}
}

func (a *App) Export(ctx context.Context) error {
	res, err := a.export.ExportUsers(ctx)
	if err != nil {
		return err
	}
	a.printf("Exported %d users to %s\n", res.Rows, res.Path)
	if res.ObjectKey != "" {
		a.printf("Uploaded to s3://%s/%s\n", a.config.S3Bucket, res.ObjectKey)
	}
	return nil
}
