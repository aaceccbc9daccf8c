package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
	"github.com/dmitrijs2005/affiliatepro/internal/moneyx"
	"github.com/google/uuid"
)

// AffiliateService implements the member-facing flows built on top of the
// catalogs: referral links, membership upgrades and withdrawals.
type AffiliateService interface {
	ReferralLink(u models.User) string
	ProductLink(p models.Product, u models.User) (string, error)
	RequestUpgrade(ctx context.Context, u models.User, target models.Tier) (*models.UpgradeRequest, error)
	ConfirmationURL(ctx context.Context, req models.UpgradeRequest) (string, error)
	Withdraw(ctx context.Context, u models.User, req models.WithdrawRequest) (*models.Withdrawal, error)
	Withdrawals(ctx context.Context) ([]models.Withdrawal, error)
}

type affiliateService struct {
	mu         sync.Mutex
	repo       documents.Repository
	membership MembershipCatalog
	users      UserDirectory
	settings   SettingsService
	baseURL    string
	logger     logging.Logger
	now        func() time.Time
}

func NewAffiliateService(
	repo documents.Repository,
	membership MembershipCatalog,
	users UserDirectory,
	settings SettingsService,
	referralBaseURL string,
	logger logging.Logger,
) AffiliateService {
	return &affiliateService{
		repo:       repo,
		membership: membership,
		users:      users,
		settings:   settings,
		baseURL:    strings.TrimRight(referralBaseURL, "/"),
		logger:     logger,
		now:        time.Now,
	}
}

func (a *affiliateService) ReferralLink(u models.User) string {
	return a.baseURL + "/ref=" + u.ID
}

// ProductLink adds the user's id as the ref query parameter of the product
// url, keeping any query it already has.
func (a *affiliateService) ProductLink(p models.Product, u models.User) (string, error) {
	target, err := url.Parse(p.URL)
	if err != nil {
		return "", fmt.Errorf("%w: product url: %w", common.ErrValidation, err)
	}
	q := target.Query()
	q.Set("ref", u.ID)
	target.RawQuery = q.Encode()
	return target.String(), nil
}

func (a *affiliateService) RequestUpgrade(ctx context.Context, u models.User, target models.Tier) (*models.UpgradeRequest, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownTier, target)
	}
	if target.Index() <= u.Level.Index() {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrUpgradeNotAllowed, u.Level, target)
	}

	pricing, err := a.membership.Pricing(ctx, target)
	if err != nil {
		return nil, err
	}
	bank, err := a.settings.Bank(ctx)
	if err != nil {
		return nil, err
	}
	return &models.UpgradeRequest{
		CurrentLevel: u.Level,
		TargetLevel:  target,
		Price:        pricing.Price,
		BankInfo:     bank,
	}, nil
}

func upgradeMessage(req models.UpgradeRequest) string {
	return fmt.Sprintf("Halo Admin, saya mau upgrade membership:\n\n"+
		"• Level Saat Ini: %s\n"+
		"• Upgrade Ke: %s\n"+
		"• Total Pembayaran: Rp %s\n\n"+
		"Sudah transfer, mohon segera diproses. Terima kasih!",
		req.CurrentLevel, req.TargetLevel, moneyx.FormatNumber(req.Price))
}

// ConfirmationURL points at the admin contact link with the payment
// confirmation message prefilled in the text parameter.
func (a *affiliateService) ConfirmationURL(ctx context.Context, req models.UpgradeRequest) (string, error) {
	contact, err := a.settings.ContactURL(ctx)
	if err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(contact, "?") {
		sep = "&"
	}
	text := strings.ReplaceAll(url.QueryEscape(upgradeMessage(req)), "+", "%20")
	return contact + sep + "text=" + text, nil
}

// Withdraw checks, in order: withdrawals enabled, minimum amount, balance,
// tier eligibility. On success the balance is debited and the request is
// appended to the withdrawals document.
func (a *affiliateService) Withdraw(ctx context.Context, u models.User, req models.WithdrawRequest) (*models.Withdrawal, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	policy, err := a.settings.WithdrawPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if !policy.Enabled {
		return nil, common.ErrWithdrawDisabled
	}
	if req.Amount < policy.Minimum {
		return nil, fmt.Errorf("%w: minimum is %s", common.ErrBelowMinimum, moneyx.FormatIDR(policy.Minimum))
	}

	current, err := a.users.Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if req.Amount > current.Balance {
		return nil, common.ErrInsufficientBalance
	}
	if !a.membership.CanWithdraw(current.Level) {
		return nil, fmt.Errorf("%w: %s", common.ErrWithdrawNotAllowed, current.Level)
	}

	if _, err := a.users.AdjustBalance(ctx, current.ID, -req.Amount); err != nil {
		return nil, err
	}

	w := models.Withdrawal{
		ID:        uuid.NewString(),
		UserID:    current.ID,
		Name:      req.Name,
		Account:   req.Account,
		Bank:      req.Bank,
		Amount:    req.Amount,
		CreatedAt: a.now().UTC(),
	}
	if err := a.appendWithdrawal(ctx, w); err != nil {
		if _, rerr := a.users.AdjustBalance(ctx, current.ID, req.Amount); rerr != nil {
			a.logger.Error(ctx, "withdrawal refund failed", "user_id", current.ID, "amount", req.Amount, "error", rerr)
			return nil, errors.Join(err, fmt.Errorf("refund %d: %w", req.Amount, rerr))
		}
		return nil, err
	}
	a.logger.Info(ctx, "withdrawal accepted", "user_id", w.UserID, "amount", w.Amount)
	return &w, nil
}

func (a *affiliateService) appendWithdrawal(ctx context.Context, w models.Withdrawal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	list, err := a.loadWithdrawals(ctx)
	if err != nil {
		return err
	}
	return documents.SetJSON(ctx, a.repo, documents.KeyWithdrawals, append(list, w))
}

func (a *affiliateService) loadWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	if _, err := documents.GetJSON(ctx, a.repo, documents.KeyWithdrawals, &list); err != nil {
		if !errors.Is(err, common.ErrSerialization) {
			return nil, err
		}
		a.logger.Warn(ctx, "invalid withdrawals document treated as empty", "error", err)
		return nil, nil
	}
	return list, nil
}

func (a *affiliateService) Withdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadWithdrawals(ctx)
}
