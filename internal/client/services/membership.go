package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
)

// MembershipCatalog maps tiers to their price and commission rate.
//
// The tier set and order are fixed; SetTierPricing changes only the numbers.
// The pricing table is seeded with defaults on first access.
type MembershipCatalog interface {
	TierOrder() []models.Tier
	Tiers(ctx context.Context) ([]models.TierInfo, error)
	Pricing(ctx context.Context, tier models.Tier) (models.TierPricing, error)
	CommissionRate(ctx context.Context, tier models.Tier) (int, error)
	// RateOrDefault falls back to the lowest tier's rate for unknown tiers.
	RateOrDefault(ctx context.Context, tier models.Tier) (int, error)
	CanWithdraw(tier models.Tier) bool
	ProductAccessLabel(ctx context.Context, tier models.Tier) (string, error)
	SetTierPricing(ctx context.Context, tier models.Tier, price int64, commission int) error
}

type membershipCatalog struct {
	mu     sync.Mutex
	repo   documents.Repository
	logger logging.Logger
}

// NewMembershipCatalog returns a MembershipCatalog stored under the
// membershipSettings document.
func NewMembershipCatalog(repo documents.Repository, logger logging.Logger) MembershipCatalog {
	return &membershipCatalog{repo: repo, logger: logger}
}

func (m *membershipCatalog) TierOrder() []models.Tier {
	return models.TierOrder()
}

// load returns the stored table, seeding it when absent or unreadable and
// filling any tier missing from it with its default.
func (m *membershipCatalog) load(ctx context.Context) (map[models.Tier]models.TierPricing, error) {
	stored := map[models.Tier]models.TierPricing{}
	found, err := documents.GetJSON(ctx, m.repo, documents.KeyMembershipSettings, &stored)
	if err != nil {
		if !errors.Is(err, common.ErrSerialization) {
			return nil, err
		}
		m.logger.Warn(ctx, "invalid membership settings treated as absent", "error", err)
		found = false
	}

	defaults := models.DefaultTierPricing()
	if !found {
		if err := documents.SetJSON(ctx, m.repo, documents.KeyMembershipSettings, defaults); err != nil {
			return nil, err
		}
		m.logger.Info(ctx, "membership settings seeded with defaults")
		return defaults, nil
	}

	table := make(map[models.Tier]models.TierPricing, len(defaults))
	for tier, def := range defaults {
		p, ok := stored[tier]
		if !ok {
			table[tier] = def
			continue
		}
		if err := checkPricing(p); err != nil {
			m.logger.Warn(ctx, "invalid stored tier pricing replaced by default", "tier", tier, "error", err)
			p = def
		}
		table[tier] = p
	}
	return table, nil
}

func checkPricing(p models.TierPricing) error {
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	if p.Commission < 0 || p.Commission > 100 {
		return fmt.Errorf("%w: commission must be within 0..100", common.ErrValidation)
	}
	return nil
}

func (m *membershipCatalog) Tiers(ctx context.Context) ([]models.TierInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TierInfo, 0, len(table))
	for _, tier := range models.TierOrder() {
		out = append(out, models.TierInfo{Tier: tier, TierPricing: table[tier]})
	}
	return out, nil
}

func (m *membershipCatalog) Pricing(ctx context.Context, tier models.Tier) (models.TierPricing, error) {
	if !tier.Valid() {
		return models.TierPricing{}, fmt.Errorf("%w: %q", common.ErrUnknownTier, tier)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	table, err := m.load(ctx)
	if err != nil {
		return models.TierPricing{}, err
	}
	return table[tier], nil
}

func (m *membershipCatalog) CommissionRate(ctx context.Context, tier models.Tier) (int, error) {
	p, err := m.Pricing(ctx, tier)
	if err != nil {
		return 0, err
	}
	return p.Commission, nil
}

func (m *membershipCatalog) RateOrDefault(ctx context.Context, tier models.Tier) (int, error) {
	rate, err := m.CommissionRate(ctx, tier)
	if errors.Is(err, common.ErrUnknownTier) {
		return m.CommissionRate(ctx, models.LowestTier())
	}
	return rate, err
}

func (m *membershipCatalog) CanWithdraw(tier models.Tier) bool {
	return tier.Index() >= models.TierMaster.Index()
}

// ProductAccessLabel bands a tier's commission rate into the product-count
// label shown on the dashboard.
func (m *membershipCatalog) ProductAccessLabel(ctx context.Context, tier models.Tier) (string, error) {
	rate, err := m.CommissionRate(ctx, tier)
	if err != nil {
		return "", err
	}
	switch {
	case rate <= 5:
		return "10", nil
	case rate <= 8:
		return "15", nil
	case rate <= 12:
		return "20", nil
	default:
		return "all", nil
	}
}

func (m *membershipCatalog) SetTierPricing(ctx context.Context, tier models.Tier, price int64, commission int) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownTier, tier)
	}
	if err := checkPricing(models.TierPricing{Price: price, Commission: commission}); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	table, err := m.load(ctx)
	if err != nil {
		return err
	}
	table[tier] = models.TierPricing{Price: price, Commission: commission}
	if err := documents.SetJSON(ctx, m.repo, documents.KeyMembershipSettings, table); err != nil {
		return err
	}
	m.logger.Info(ctx, "tier pricing updated", "tier", tier, "price", price, "commission", commission)
	return nil
}
