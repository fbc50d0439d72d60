package repository

import (
	"context"
	"garage/internal/models"
	"garage/internal/store"
)

type CatalogRepositoryInterface interface {
	Services(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	Testimonials(ctx context.Context) ([]models.Testimonial, error)
	TimeSlots(ctx context.Context) ([]models.TimeSlot, error)
}

// CatalogRepository serves the read-only reference collections.
type CatalogRepository struct {
	store store.StoreInterface
}

func NewCatalogRepository(st store.StoreInterface) *CatalogRepository {
	return &CatalogRepository{store: st}
}

func (r *CatalogRepository) Services(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return list(ds.Services, filter.match), nil
}

func (r *CatalogRepository) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return list(ds.Testimonials, nil), nil
}

func (r *CatalogRepository) TimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return list(ds.TimeSlots, nil), nil
}
