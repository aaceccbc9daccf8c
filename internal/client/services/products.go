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
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
)

// ProductCatalog manages the products affiliates can promote. The default
// catalog is seeded on first access.
type ProductCatalog interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	// VisibleFor lists every product, flagging those whose commission is
	// above the tier's rate as locked.
	VisibleFor(ctx context.Context, tier models.Tier) ([]models.ProductView, error)
	Create(ctx context.Context, in models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productCatalog struct {
	mu         sync.Mutex
	repo       documents.Repository
	membership MembershipCatalog
	logger     logging.Logger
	now        func() time.Time
}

func NewProductCatalog(repo documents.Repository, membership MembershipCatalog, logger logging.Logger) ProductCatalog {
	return &productCatalog{repo: repo, membership: membership, logger: logger, now: time.Now}
}

func (c *productCatalog) load(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	found, err := documents.GetJSON(ctx, c.repo, documents.KeyProducts, &products)
	if err != nil {
		if !errors.Is(err, common.ErrSerialization) {
			return nil, err
		}
		c.logger.Warn(ctx, "invalid products document treated as absent", "error", err)
		found = false
	}
	if found {
		return products, nil
	}

	products = models.DefaultProducts()
	if err := c.save(ctx, products); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "product catalog seeded with defaults", "count", len(products))
	return products, nil
}

func (c *productCatalog) save(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return documents.SetJSON(ctx, c.repo, documents.KeyProducts, products)
}

func productIndex(products []models.Product, id int64) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID is time based like the seed ids of manually added products, but
// never collides with or goes below an existing id.
func (c *productCatalog) nextID(products []models.Product) int64 {
	id := c.now().UnixMilli()
	for _, p := range products {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

func (c *productCatalog) List(ctx context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *productCatalog) Get(ctx context.Context, id int64) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := productIndex(products, id); i >= 0 {
		return &products[i], nil
	}
	return nil, fmt.Errorf("product %d: %w", id, common.ErrNotFound)
}

func (c *productCatalog) VisibleFor(ctx context.Context, tier models.Tier) ([]models.ProductView, error) {
	rate, err := c.membership.CommissionRate(ctx, tier)
	if err != nil {
		return nil, err
	}
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, models.ProductView{Product: p, Locked: p.Commission > rate})
	}
	return out, nil
}

func (c *productCatalog) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	p := models.Product{
		ID:         c.nextID(products),
		Name:       in.Name,
		Price:      in.Price,
		Commission: in.Commission,
		Image:      in.Image,
		URL:        in.URL,
	}
	if err := c.save(ctx, append(products, p)); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "product created", "product_id", p.ID)
	return &p, nil
}

func (c *productCatalog) Update(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := productIndex(products, id)
	if i < 0 {
		return nil, fmt.Errorf("product %d: %w", id, common.ErrNotFound)
	}

	p := products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Commission != nil {
		p.Commission = *patch.Commission
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.URL != nil {
		p.URL = *patch.URL
	}
	if err := validateStruct(models.ProductInput{
		Name: p.Name, Price: p.Price, Commission: p.Commission, Image: p.Image, URL: p.URL,
	}); err != nil {
		return nil, err
	}

	products[i] = p
	if err := c.save(ctx, products); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "product updated", "product_id", p.ID)
	return &p, nil
}

func (c *productCatalog) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.load(ctx)
	if err != nil {
		return err
	}
	i := productIndex(products, id)
	if i < 0 {
		return fmt.Errorf("product %d: %w", id, common.ErrNotFound)
	}
	if err := c.save(ctx, append(products[:i], products[i+1:]...)); err != nil {
		return err
	}
	c.logger.Info(ctx, "product deleted", "product_id", id)
	return nil
}
