package repository

import (
	"context"
	"fmt"
	"garage/internal/models"
	"garage/internal/store"
	"time"
)

type AppointmentRepositoryInterface interface {
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	Get(ctx context.Context, id string) (models.Appointment, error)
	Create(ctx context.Context, in models.NewAppointment) (models.Appointment, error)
	SetStatus(ctx context.Context, id string, status models.Status) (models.Appointment, error)
	SetStatusIf(ctx context.Context, id string, status models.Status, check func(current models.Status) error) (models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type AppointmentRepository struct {
	store store.StoreInterface
	ids   IDGenerator
	now   func() time.Time
}

func NewAppointmentRepository(st store.StoreInterface, ids IDGenerator) *AppointmentRepository {
	return &AppointmentRepository{store: st, ids: ids, now: time.Now}
}

func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return list(ds.Appointments, filter.match), nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (models.Appointment, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return models.Appointment{}, err
	}
	i := indexOf(ds.Appointments, id, appointmentID)
	if i < 0 {
		return models.Appointment{}, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	return ds.Appointments[i], nil
}

func (r *AppointmentRepository) Create(ctx context.Context, in models.NewAppointment) (models.Appointment, error) {
	if err := in.Validate(); err != nil {
		return models.Appointment{}, err
	}

	var created models.Appointment
	err := r.store.Mutate(ctx, func(ds *models.Dataset) error {
		created = in.Appointment(r.ids.NewID(), r.now())
		ds.Appointments = append(ds.Appointments, created)
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	return created, nil
}

// SetStatus overwrites the status field only. Which transitions are allowed is the caller's business.
func (r *AppointmentRepository) SetStatus(ctx context.Context, id string, status models.Status) (models.Appointment, error) {
	return r.SetStatusIf(ctx, id, status, nil)
}

// SetStatusIf runs check against the stored status inside the same mutation as the write.
func (r *AppointmentRepository) SetStatusIf(ctx context.Context, id string, status models.Status, check func(current models.Status) error) (models.Appointment, error) {
	if !status.Valid() {
		return models.Appointment{}, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}

	var updated models.Appointment
	err := r.store.Mutate(ctx, func(ds *models.Dataset) error {
		i := indexOf(ds.Appointments, id, appointmentID)
		if i < 0 {
			return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
		}
		if check != nil {
			if err := check(ds.Appointments[i].Status); err != nil {
				return err
			}
		}
		ds.Appointments[i].Status = status
		updated = ds.Appointments[i]
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	return updated, nil
}

// Delete succeeds whether or not the id exists.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(ds *models.Dataset) error {
		ds.Appointments = removeAll(ds.Appointments, id, appointmentID)
		return nil
	})
}
