package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/cryptox"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
	"github.com/google/uuid"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Username string `validate:"max=64"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,max=20"`
}

// UserDirectory is the collection of affiliate accounts, keyed by email.
//
// Mutations that touch the active session user refresh the session's cached
// copy in the same call. Delete does not: ending the session is up to the
// caller.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	LoginOrCreate(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	ResetCredential(ctx context.Context, email string, secret []byte) error
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
	AdjustBalance(ctx context.Context, id string, delta int64) (int64, error)
	RecordClick(ctx context.Context, id string) (*models.User, error)
	RecordSale(ctx context.Context, id string, product models.Product, rate int) (*models.User, error)
}

type userDirectory struct {
	mu      sync.Mutex
	repo    documents.Repository
	session *Session
	logger  logging.Logger
	now     func() time.Time
}

// NewUserDirectory returns a UserDirectory over the users document. session
// may be nil.
func NewUserDirectory(repo documents.Repository, session *Session, logger logging.Logger) UserDirectory {
	return &userDirectory{repo: repo, session: session, logger: logger, now: time.Now}
}

// load returns the stored users; an unreadable document is treated as empty.
func (d *userDirectory) load(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := documents.GetJSON(ctx, d.repo, documents.KeyUsers, &users); err != nil {
		if !errors.Is(err, common.ErrSerialization) {
			return nil, err
		}
		d.logger.Warn(ctx, "invalid users document treated as empty", "error", err)
		return nil, nil
	}
	for i := range users {
		d.sanitize(ctx, &users[i])
	}
	return users, nil
}

// sanitize puts a stored record with an unknown level or negative counters
// back within range.
func (d *userDirectory) sanitize(ctx context.Context, u *models.User) {
	if !u.Level.Valid() {
		d.logger.Warn(ctx, "stored user has unknown level, reset to lowest tier", "user_id", u.ID, "level", u.Level)
		u.Level = models.LowestTier()
	}
	if u.Clicks < 0 || u.Orders < 0 {
		d.logger.Warn(ctx, "stored user has negative counters, reset to zero", "user_id", u.ID)
		u.Clicks = max(u.Clicks, 0)
		u.Orders = max(u.Orders, 0)
	}
}

func (d *userDirectory) save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return documents.SetJSON(ctx, d.repo, documents.KeyUsers, users)
}

func (d *userDirectory) refreshSession(ctx context.Context, u models.User) error {
	if d.session == nil {
		return nil
	}
	return d.session.Refresh(ctx, u)
}

func indexByEmail(users []models.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}

func indexByID(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *userDirectory) newUser(email, username, phone string) models.User {
	if username == "" {
		username = models.EmailLocalPart(email)
	}
	if phone == "" {
		phone = "08" + common.RandomDigits(9)
	}
	return models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Username: username,
		Phone:    phone,
		Level:    models.LowestTier(),
		JoinDate: d.now().UTC(),
	}
}

func (d *userDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByEmail(users, email); i >= 0 {
		return &users[i], nil
	}
	return nil, nil
}

func (d *userDirectory) Get(ctx context.Context, id string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByID(users, id); i >= 0 {
		return &users[i], nil
	}
	return nil, common.ErrUserNotFound
}

func (d *userDirectory) List(ctx context.Context) ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

// LoginOrCreate returns the user registered under email, provisioning a new
// lowest-tier account when there is none. No password is checked.
func (d *userDirectory) LoginOrCreate(ctx context.Context, email string) (*models.User, error) {
	if err := validateVar("email", email, "required,email"); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByEmail(users, email); i >= 0 {
		return &users[i], nil
	}

	u := d.newUser(email, "", "")
	if err := d.save(ctx, append(users, u)); err != nil {
		return nil, err
	}
	d.logger.Info(ctx, "user provisioned on login", "user_id", u.ID)
	return &u, nil
}

func (d *userDirectory) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if indexByEmail(users, in.Email) >= 0 {
		return nil, common.ErrDuplicateEmail
	}

	u := d.newUser(in.Email, in.Username, in.Phone)
	if err := d.save(ctx, append(users, u)); err != nil {
		return nil, err
	}
	d.logger.Info(ctx, "user registered", "user_id", u.ID)
	return &u, nil
}

// ResetCredential stores an argon2id hash of secret for the user with email.
func (d *userDirectory) ResetCredential(ctx context.Context, email string, secret []byte) error {
	if len(secret) == 0 {
		return fmt.Errorf("%w: empty secret", common.ErrValidation)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return err
	}
	i := indexByEmail(users, email)
	if i < 0 {
		return common.ErrUserNotFound
	}

	users[i].SecretSalt, users[i].SecretHash = cryptox.HashSecret(secret)
	if err := d.save(ctx, users); err != nil {
		return err
	}
	d.logger.Info(ctx, "credential reset", "user_id", users[i].ID)
	return d.refreshSession(ctx, users[i])
}

func applyUserPatch(u *models.User, p models.UserPatch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Level != nil {
		u.Level = *p.Level
	}
	if p.Clicks != nil {
		u.Clicks = *p.Clicks
	}
	if p.Orders != nil {
		u.Orders = *p.Orders
	}
	if p.Balance != nil {
		u.Balance = *p.Balance
	}
}

func (d *userDirectory) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(users, id)
	if i < 0 {
		return nil, common.ErrUserNotFound
	}

	u := users[i]
	applyUserPatch(&u, patch)
	if err := validateVar("email", u.Email, "required,email"); err != nil {
		return nil, err
	}
	if !u.Level.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownTier, u.Level)
	}
	if u.Clicks < 0 || u.Orders < 0 {
		return nil, fmt.Errorf("%w: counters must not be negative", common.ErrValidation)
	}
	if j := indexByEmail(users, u.Email); j >= 0 && j != i {
		return nil, common.ErrDuplicateEmail
	}

	users[i] = u
	if err := d.save(ctx, users); err != nil {
		return nil, err
	}
	if err := d.refreshSession(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *userDirectory) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return err
	}
	i := indexByID(users, id)
	if i < 0 {
		return common.ErrUserNotFound
	}

	users = append(users[:i], users[i+1:]...)
	if err := d.save(ctx, users); err != nil {
		return err
	}
	d.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// AdjustBalance adds delta to the user's balance and returns the new value.
// A debit larger than the balance fails with common.ErrInsufficientBalance
// and changes nothing.
func (d *userDirectory) AdjustBalance(ctx context.Context, id string, delta int64) (int64, error) {
	u, err := d.mutate(ctx, id, func(u *models.User) error {
		if delta < 0 && u.Balance+delta < 0 {
			return common.ErrInsufficientBalance
		}
		u.Balance += delta
		return nil
	})
	if err != nil {
		return 0, err
	}
	return u.Balance, nil
}

func (d *userDirectory) RecordClick(ctx context.Context, id string) (*models.User, error) {
	return d.mutate(ctx, id, func(u *models.User) error {
		u.Clicks++
		return nil
	})
}

// RecordSale counts an order and credits price*rate/100 to the user.
func (d *userDirectory) RecordSale(ctx context.Context, id string, product models.Product, rate int) (*models.User, error) {
	if rate < 0 || rate > 100 {
		return nil, fmt.Errorf("%w: rate must be within 0..100", common.ErrValidation)
	}
	return d.mutate(ctx, id, func(u *models.User) error {
		u.Orders++
		u.Balance += product.Price * int64(rate) / 100
		return nil
	})
}

// mutate runs fn on a copy of the user and persists it when fn succeeds.
func (d *userDirectory) mutate(ctx context.Context, id string, fn func(u *models.User) error) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(users, id)
	if i < 0 {
		return nil, common.ErrUserNotFound
	}

	u := users[i]
	if err := fn(&u); err != nil {
		return nil, err
	}
	users[i] = u
	if err := d.save(ctx, users); err != nil {
		return nil, err
	}
	if err := d.refreshSession(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}
