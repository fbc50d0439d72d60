package repository

import (
	"context"
	"fmt"
	"garage/internal/models"
	"garage/internal/store"
)

type VehicleRepositoryInterface interface {
	List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error)
	Get(ctx context.Context, id string) (models.Vehicle, error)
	Create(ctx context.Context, in models.NewVehicle) (models.Vehicle, error)
	Update(ctx context.Context, id string, patch models.VehiclePatch) (models.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type VehicleRepository struct {
	store store.StoreInterface
	ids   IDGenerator
}

func NewVehicleRepository(st store.StoreInterface, ids IDGenerator) *VehicleRepository {
	return &VehicleRepository{store: st, ids: ids}
}

func (r *VehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return list(ds.Vehicles, filter.match), nil
}

func (r *VehicleRepository) Get(ctx context.Context, id string) (models.Vehicle, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return models.Vehicle{}, err
	}
	i := indexOf(ds.Vehicles, id, vehicleID)
	if i < 0 {
		return models.Vehicle{}, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return ds.Vehicles[i], nil
}

func (r *VehicleRepository) Create(ctx context.Context, in models.NewVehicle) (models.Vehicle, error) {
	if err := in.Validate(); err != nil {
		return models.Vehicle{}, err
	}

	var created models.Vehicle
	err := r.store.Mutate(ctx, func(ds *models.Dataset) error {
		created = in.Vehicle(r.ids.NewID())
		ds.Vehicles = append(ds.Vehicles, created)
		return nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return created, nil
}

// Update merges patch into the stored vehicle in place; its position in the inventory is kept.
func (r *VehicleRepository) Update(ctx context.Context, id string, patch models.VehiclePatch) (models.Vehicle, error) {
	if err := patch.Validate(); err != nil {
		return models.Vehicle{}, err
	}

	var updated models.Vehicle
	err := r.store.Mutate(ctx, func(ds *models.Dataset) error {
		i := indexOf(ds.Vehicles, id, vehicleID)
		if i < 0 {
			return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		patch.Apply(&ds.Vehicles[i])
		updated = ds.Vehicles[i]
		return nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return updated, nil
}

// Delete succeeds whether or not the id exists.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(ds *models.Dataset) error {
		ds.Vehicles = removeAll(ds.Vehicles, id, vehicleID)
		return nil
	})
}
