package api

import (
	"context"
	"errors"
	"fmt"
	"garage/internal/latency"
	"garage/internal/models"
	"garage/internal/repository"
)

type ServicesFacade struct {
	catalog repository.CatalogRepositoryInterface
	latency latency.SimulatorInterface
}

func (s *ServicesFacade) GetAll(ctx context.Context) (Envelope[[]models.Service], error) {
	return s.GetByCategory(ctx, "")
}

func (s *ServicesFacade) GetByCategory(ctx context.Context, category string) (Envelope[[]models.Service], error) {
	return wrap(latency.Do(ctx, s.latency, func(ctx context.Context) ([]models.Service, error) {
		return s.catalog.Services(ctx, repository.ServiceFilter{Category: category})
	}))
}

type VehiclesFacade struct {
	vehicles repository.VehicleRepositoryInterface
	latency  latency.SimulatorInterface
}

func (v *VehiclesFacade) GetAll(ctx context.Context) (Envelope[[]models.Vehicle], error) {
	return v.GetByCondition(ctx, "")
}

// GetByCondition treats "" and "all" as no filter.
func (v *VehiclesFacade) GetByCondition(ctx context.Context, condition string) (Envelope[[]models.Vehicle], error) {
	return wrap(latency.Do(ctx, v.latency, func(ctx context.Context) ([]models.Vehicle, error) {
		return v.vehicles.List(ctx, repository.VehicleFilter{Condition: condition})
	}))
}

// GetByID returns nil data when the vehicle does not exist.
func (v *VehiclesFacade) GetByID(ctx context.Context, id string) (Envelope[*models.Vehicle], error) {
	return wrap(latency.Do(ctx, v.latency, func(ctx context.Context) (*models.Vehicle, error) {
		vehicle, err := v.vehicles.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &vehicle, nil
	}))
}

func (v *VehiclesFacade) Create(ctx context.Context, in models.NewVehicle) (Envelope[models.Vehicle], error) {
	return wrap(latency.Do(ctx, v.latency, func(ctx context.Context) (models.Vehicle, error) {
		return v.vehicles.Create(ctx, in)
	}))
}

func (v *VehiclesFacade) Update(ctx context.Context, id string, patch models.VehiclePatch) (Envelope[models.Vehicle], error) {
	return wrap(latency.Do(ctx, v.latency, func(ctx context.Context) (models.Vehicle, error) {
		return v.vehicles.Update(ctx, id, patch)
	}))
}

func (v *VehiclesFacade) Delete(ctx context.Context, id string) (Envelope[Success], error) {
	return wrap(latency.Do(ctx, v.latency, func(ctx context.Context) (Success, error) {
		if err := v.vehicles.Delete(ctx, id); err != nil {
			return Success{}, err
		}
		return Success{Success: true}, nil
	}))
}

type AppointmentsFacade struct {
	appointments repository.AppointmentRepositoryInterface
	latency      latency.SimulatorInterface
}

func (a *AppointmentsFacade) GetAll(ctx context.Context) (Envelope[[]models.Appointment], error) {
	return a.list(ctx, repository.AppointmentFilter{})
}

func (a *AppointmentsFacade) GetByUser(ctx context.Context, userID string) (Envelope[[]models.Appointment], error) {
	if userID == "" {
		return Envelope[[]models.Appointment]{}, translate(fmt.Errorf("%w: userId is required", models.ErrInvalidInput))
	}
	return a.list(ctx, repository.AppointmentFilter{UserID: userID})
}

func (a *AppointmentsFacade) list(ctx context.Context, filter repository.AppointmentFilter) (Envelope[[]models.Appointment], error) {
	return wrap(latency.Do(ctx, a.latency, func(ctx context.Context) ([]models.Appointment, error) {
		return a.appointments.List(ctx, filter)
	}))
}

func (a *AppointmentsFacade) Create(ctx context.Context, in models.NewAppointment) (Envelope[models.Appointment], error) {
	return wrap(latency.Do(ctx, a.latency, func(ctx context.Context) (models.Appointment, error) {
		return a.appointments.Create(ctx, in)
	}))
}

// UpdateStatus allows scheduled -> in-progress -> completed. Any appointment may be cancelled, even a completed one.
func (a *AppointmentsFacade) UpdateStatus(ctx context.Context, id string, status models.Status) (Envelope[models.Appointment], error) {
	return wrap(latency.Do(ctx, a.latency, func(ctx context.Context) (models.Appointment, error) {
		return a.appointments.SetStatusIf(ctx, id, status, func(current models.Status) error {
			if !current.CanTransition(status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
			}
			return nil
		})
	}))
}

// Update applies a partial change. Status is the only mutable field and goes through UpdateStatus.
func (a *AppointmentsFacade) Update(ctx context.Context, id string, patch models.AppointmentPatch) (Envelope[models.Appointment], error) {
	if err := patch.Validate(); err != nil {
		return Envelope[models.Appointment]{}, translate(err)
	}
	return a.UpdateStatus(ctx, id, *patch.Status)
}

func (a *AppointmentsFacade) Delete(ctx context.Context, id string) (Envelope[Success], error) {
	return wrap(latency.Do(ctx, a.latency, func(ctx context.Context) (Success, error) {
		if err := a.appointments.Delete(ctx, id); err != nil {
			return Success{}, err
		}
		return Success{Success: true}, nil
	}))
}

type UsersFacade struct {
	users   repository.UserRepositoryInterface
	latency latency.SimulatorInterface
}

func (u *UsersFacade) GetAll(ctx context.Context) (Envelope[[]models.PublicUser], error) {
	return wrap(latency.Do(ctx, u.latency, func(ctx context.Context) ([]models.PublicUser, error) {
		return u.users.List(ctx, repository.UserFilter{})
	}))
}

// GetByID returns nil data when the user does not exist.
func (u *UsersFacade) GetByID(ctx context.Context, id string) (Envelope[*models.PublicUser], error) {
	return wrap(latency.Do(ctx, u.latency, func(ctx context.Context) (*models.PublicUser, error) {
		user, err := u.users.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}))
}

type TestimonialsFacade struct {
	catalog repository.CatalogRepositoryInterface
	latency latency.SimulatorInterface
}

func (t *TestimonialsFacade) GetAll(ctx context.Context) (Envelope[[]models.Testimonial], error) {
	return wrap(latency.Do(ctx, t.latency, t.catalog.Testimonials))
}

type TimeSlotsFacade struct {
	catalog repository.CatalogRepositoryInterface
	latency latency.SimulatorInterface
}

func (t *TimeSlotsFacade) GetAll(ctx context.Context) (Envelope[[]models.TimeSlot], error) {
	return wrap(latency.Do(ctx, t.latency, t.catalog.TimeSlots))
}
