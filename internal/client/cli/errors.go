package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/affiliatepro/internal/common"
)

// errUsage is returned when a command gets the wrong arguments.
type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }

var friendly = []struct {
	err error
	msg string
}{
	{common.ErrDuplicateEmail, "that email is already registered"},
	{common.ErrUserNotFound, "no user with that email or id"},
	{common.ErrInsufficientBalance, "balance is not sufficient"},
	{common.ErrUnknownTier, "unknown tier"},
	{common.ErrNotFound, "not found"},
	{common.ErrNotLoggedIn, "please login first"},
	{common.ErrUpgradeNotAllowed, "pick a tier above your current one"},
	{common.ErrWithdrawDisabled, "withdrawals are currently disabled"},
	{common.ErrWithdrawNotAllowed, "withdrawals need Master tier or above"},
	{common.ErrProductLocked, "upgrade your membership to promote this product"},
	{common.ErrAdminDisabled, "admin access is not configured"},
	{common.ErrInvalidToken, "invalid or expired admin token"},
}

// describeError turns service errors into short messages. Validation and
// minimum-amount errors keep their detail; unknown errors are shown as is.
func describeError(err error) string {
	var u errUsage
	if errors.As(err, &u) {
		return u.Error()
	}
	if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrBelowMinimum) {
		return err.Error()
	}
	for _, f := range friendly {
		if errors.Is(err, f.err) {
			return f.msg
		}
	}
	return fmt.Sprint(err)
}
