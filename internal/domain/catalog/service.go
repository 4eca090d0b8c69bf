package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog owns the service list. Writes are admin-only and gated at the
// router.
type Catalog struct {
	repo *Repository
	log  *slog.Logger
}

func NewCatalog(repo *Repository, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{repo: repo, log: log.With("component", "catalog")}
}

func (c *Catalog) ListActive(ctx context.Context, category string) ([]Service, error) {
	return c.repo.List(ctx, ListFilter{Category: strings.TrimSpace(category), ActiveOnly: true})
}

func (c *Catalog) ListAll(ctx context.Context) ([]Service, error) {
	return c.repo.List(ctx, ListFilter{})
}

// GetActive hides inactive services from public callers.
func (c *Catalog) GetActive(ctx context.Context, id int64) (*Service, error) {
	s, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.IsActive {
		return nil, ErrServiceNotFound
	}
	return s, nil
}

func (c *Catalog) Get(ctx context.Context, id int64) (*Service, error) {
	return c.repo.Get(ctx, id)
}

// ByID indexes every service, active or not. Views use it to attach live
// service data to bookings.
func (c *Catalog) ByID(ctx context.Context) (map[int64]Service, error) {
	rows, err := c.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Service, len(rows))
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

// BookablePrice returns the current base price of an active service.
func (c *Catalog) BookablePrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	s, err := c.GetActive(ctx, id)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return s.BasePrice, nil
}

func (c *Catalog) Create(ctx context.Context, req UpsertRequest) (*Service, error) {
	if req.BasePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	s := &Service{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		BasePrice:   req.BasePrice.Round(2),
		ImageURL:    req.ImageURL,
		IsActive:    req.active(),
	}
	if err := c.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	c.log.Info("service created", "service_id", s.ID, "category", s.Category)
	return s, nil
}

func (c *Catalog) Update(ctx context.Context, id int64, req UpsertRequest) (*Service, error) {
	if req.BasePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	err := c.repo.Update(ctx, id, map[string]any{
		"name":        strings.TrimSpace(req.Name),
		"category":    strings.TrimSpace(req.Category),
		"description": strings.TrimSpace(req.Description),
		"base_price":  req.BasePrice.Round(2),
		"image_url":   req.ImageURL,
		"is_active":   req.active(),
	})
	if err != nil {
		return nil, err
	}
	return c.repo.Get(ctx, id)
}

// Delete removes a service. Existing bookings keep their service_id and
// their estimated cost.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.log.Info("service deleted", "service_id", id)
	return nil
}
