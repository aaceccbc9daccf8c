package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/dbx"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
)

// SettingsService reads and writes the admin-managed plain-string settings.
// Empty or missing values read back as their defaults.
type SettingsService interface {
	Bank(ctx context.Context) (models.BankInfo, error)
	SaveBank(ctx context.Context, info models.BankInfo) error
	ContactURL(ctx context.Context) (string, error)
	SetContactURL(ctx context.Context, contactURL string) error
	WithdrawPolicy(ctx context.Context) (models.WithdrawPolicy, error)
	SetWithdrawPolicy(ctx context.Context, p models.WithdrawPolicy) error
}

type settingsService struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSettingsService needs the *sql.DB itself because SaveBank writes its
// keys in one transaction.
func NewSettingsService(db *sql.DB, logger logging.Logger) SettingsService {
	return &settingsService{db: db, logger: logger}
}

func (s *settingsService) getRepo() documents.Repository {
	return documents.NewSQLiteRepository(s.db)
}

func (s *settingsService) stringOr(ctx context.Context, key, def string) (string, error) {
	v, ok, err := documents.GetString(ctx, s.getRepo(), key)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return def, nil
	}
	return v, nil
}

func (s *settingsService) Bank(ctx context.Context) (models.BankInfo, error) {
	var (
		info models.BankInfo
		err  error
	)
	if info.BankName, err = s.stringOr(ctx, documents.KeyBankName, models.DefaultBankName); err != nil {
		return models.BankInfo{}, err
	}
	if info.BankAccount, err = s.stringOr(ctx, documents.KeyBankAccount, models.DefaultBankAccount); err != nil {
		return models.BankInfo{}, err
	}
	if info.AdminName, err = s.stringOr(ctx, documents.KeyAdminName, models.DefaultAdminName); err != nil {
		return models.BankInfo{}, err
	}
	return info, nil
}

// SaveBank stores the three bank keys in a single transaction.
func (s *settingsService) SaveBank(ctx context.Context, info models.BankInfo) error {
	if err := validateStruct(bankForm(info)); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := documents.NewSQLiteRepository(tx)
		if err := documents.SetString(ctx, repo, documents.KeyBankName, info.BankName); err != nil {
			return err
		}
		if err := documents.SetString(ctx, repo, documents.KeyBankAccount, info.BankAccount); err != nil {
			return err
		}
		return documents.SetString(ctx, repo, documents.KeyAdminName, info.AdminName)
	})
	if err != nil {
		return fmt.Errorf("save bank settings: %w", err)
	}
	s.logger.Info(ctx, "bank settings saved", "bank", info.BankName)
	return nil
}

type bankForm struct {
	BankName    string `validate:"required"`
	BankAccount string `validate:"required"`
	AdminName   string `validate:"required"`
}

func (s *settingsService) ContactURL(ctx context.Context) (string, error) {
	return s.stringOr(ctx, documents.KeyContactURL, models.DefaultContactURL)
}

func (s *settingsService) SetContactURL(ctx context.Context, contactURL string) error {
	if err := validateVar("contactUrl", contactURL, "required,url"); err != nil {
		return err
	}
	return documents.SetString(ctx, s.getRepo(), documents.KeyContactURL, contactURL)
}

// WithdrawPolicy treats anything but "false" as enabled and falls back to the
// default minimum when the stored value is missing or unparsable.
func (s *settingsService) WithdrawPolicy(ctx context.Context) (models.WithdrawPolicy, error) {
	repo := s.getRepo()

	enabled, _, err := documents.GetString(ctx, repo, documents.KeyWithdrawEnabled)
	if err != nil {
		return models.WithdrawPolicy{}, err
	}
	minRaw, ok, err := documents.GetString(ctx, repo, documents.KeyMinWithdraw)
	if err != nil {
		return models.WithdrawPolicy{}, err
	}

	p := models.WithdrawPolicy{Enabled: enabled != "false", Minimum: models.DefaultMinWithdraw}
	if ok {
		if n, err := strconv.ParseInt(minRaw, 10, 64); err == nil && n >= 0 {
			p.Minimum = n
		} else {
			s.logger.Warn(ctx, "invalid minWithdraw, using default", "value", minRaw)
		}
	}
	return p, nil
}

func (s *settingsService) SetWithdrawPolicy(ctx context.Context, p models.WithdrawPolicy) error {
	if p.Minimum < 0 {
		return fmt.Errorf("%w: minimum must not be negative", common.ErrValidation)
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := documents.NewSQLiteRepository(tx)
		if err := documents.SetString(ctx, repo, documents.KeyWithdrawEnabled, strconv.FormatBool(p.Enabled)); err != nil {
			return err
		}
		return documents.SetString(ctx, repo, documents.KeyMinWithdraw, strconv.FormatInt(p.Minimum, 10))
	})
	if err != nil {
		return fmt.Errorf("save withdraw policy: %w", err)
	}
	s.logger.Info(ctx, "withdraw policy saved", "enabled", p.Enabled, "minimum", p.Minimum)
	return nil
}
