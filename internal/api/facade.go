// Package api is the typed surface callers use instead of touching the store: one facade per resource,
// results wrapped in an Envelope, failures reported as *Error.
package api

import (
	"context"
	"garage/internal/latency"
	"garage/internal/models"
	"garage/internal/providers"
	"garage/internal/repository"
	"garage/internal/seed"
	"garage/internal/services"
	"garage/internal/store"
)

type Envelope[T any] struct {
	Data T `json:"data"`
}

type Success struct {
	Success bool `json:"success"`
}

func wrap[T any](data T, err error) (Envelope[T], error) {
	if err != nil {
		return Envelope[T]{}, translate(err)
	}
	return Envelope[T]{Data: data}, nil
}

type Facade struct {
	Auth         *AuthFacade
	Services     *ServicesFacade
	Vehicles     *VehiclesFacade
	Appointments *AppointmentsFacade
	Users        *UsersFacade
	Testimonials *TestimonialsFacade
	TimeSlots    *TimeSlotsFacade

	store   store.StoreInterface
	loader  seed.LoaderInterface
	latency latency.SimulatorInterface
	logger  providers.Logger
}

func NewFacade(
	st store.StoreInterface,
	loader seed.LoaderInterface,
	auth services.AuthServiceInterface,
	users repository.UserRepositoryInterface,
	vehicles repository.VehicleRepositoryInterface,
	appointments repository.AppointmentRepositoryInterface,
	catalog repository.CatalogRepositoryInterface,
	sim latency.SimulatorInterface,
	logger providers.Logger,
) *Facade {
	return &Facade{
		Auth:         &AuthFacade{auth: auth},
		Services:     &ServicesFacade{catalog: catalog, latency: sim},
		Vehicles:     &VehiclesFacade{vehicles: vehicles, latency: sim},
		Appointments: &AppointmentsFacade{appointments: appointments, latency: sim},
		Users:        &UsersFacade{users: users, latency: sim},
		Testimonials: &TestimonialsFacade{catalog: catalog, latency: sim},
		TimeSlots:    &TimeSlotsFacade{catalog: catalog, latency: sim},
		store:        st,
		loader:       loader,
		latency:      sim,
		logger:       logger,
	}
}

// Wait applies the simulated delay to responses that skip the facade, such as cached reference data.
func (f *Facade) Wait(ctx context.Context) error {
	if err := f.latency.Wait(ctx); err != nil {
		return translate(err)
	}
	return nil
}

// Reset throws away every change and the stored session, then reseeds; the next read hydrates from the seed.
func (f *Facade) Reset(ctx context.Context) (Envelope[Success], error) {
	return wrap(latency.Do(ctx, f.latency, func(ctx context.Context) (Success, error) {
		if err := f.store.Reset(ctx); err != nil {
			return Success{}, err
		}
		f.loader.Reset()
		if err := f.loader.EnsureSeeded(ctx); err != nil {
			return Success{}, err
		}
		f.logger.Infof(providers.TypePost, "Dataset reset to seed")
		return Success{Success: true}, nil
	}))
}

// AuthFacade delegates to the auth service, which already waits on the latency simulator.
type AuthFacade struct {
	auth services.AuthServiceInterface
}

// Login never reports INVALID_INPUT: missing fields match no account, so they are invalid credentials.
func (a *AuthFacade) Login(ctx context.Context, creds models.Credentials) (Envelope[models.Session], error) {
	if creds.Validate() != nil {
		return Envelope[models.Session]{}, translate(repository.ErrInvalidCredentials)
	}
	return wrap(a.auth.Login(ctx, creds.Email, creds.Password))
}

func (a *AuthFacade) Register(ctx context.Context, reg models.Registration) (Envelope[models.Session], error) {
	return wrap(a.auth.Register(ctx, reg))
}

func (a *AuthFacade) Logout(ctx context.Context) (Envelope[Success], error) {
	if err := a.auth.Logout(ctx); err != nil {
		return Envelope[Success]{}, translate(err)
	}
	return Envelope[Success]{Data: Success{Success: true}}, nil
}

// CurrentUser returns the stored session, nil data when nobody is signed in.
func (a *AuthFacade) CurrentUser(ctx context.Context) (Envelope[*models.Session], error) {
	return wrap(a.auth.CurrentSession(ctx))
}
