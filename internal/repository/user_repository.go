package repository

import (
	"context"
	"fmt"
	"garage/internal/models"
	"garage/internal/store"
)

type UserRepositoryInterface interface {
	List(ctx context.Context, filter UserFilter) ([]models.PublicUser, error)
	Get(ctx context.Context, id string) (models.PublicUser, error)
	FindByCredentials(ctx context.Context, email, password string) (models.PublicUser, error)
	Create(ctx context.Context, reg models.Registration) (models.PublicUser, error)
}

// UserRepository never hands out a stored User; every read path returns the redacted projection.
type UserRepository struct {
	store store.StoreInterface
	ids   IDGenerator
}

func NewUserRepository(st store.StoreInterface, ids IDGenerator) *UserRepository {
	return &UserRepository{store: st, ids: ids}
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]models.PublicUser, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	users := list(ds.Users, filter.match)
	out := make([]models.PublicUser, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (models.PublicUser, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}
	i := indexOf(ds.Users, id, userID)
	if i < 0 {
		return models.PublicUser{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return ds.Users[i].Public(), nil
}

// FindByCredentials matches email and password exactly, case included.
func (r *UserRepository) FindByCredentials(ctx context.Context, email, password string) (models.PublicUser, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}
	for _, u := range ds.Users {
		if u.Email == email && u.Password == password {
			return u.Public(), nil
		}
	}
	return models.PublicUser{}, ErrInvalidCredentials
}

// Create registers a customer. The email check and the append happen in one mutation.
func (r *UserRepository) Create(ctx context.Context, reg models.Registration) (models.PublicUser, error) {
	if err := reg.Validate(); err != nil {
		return models.PublicUser{}, err
	}

	var created models.User
	err := r.store.Mutate(ctx, func(ds *models.Dataset) error {
		for _, u := range ds.Users {
			if u.Email == reg.Email {
				return fmt.Errorf("%s: %w", reg.Email, ErrEmailTaken)
			}
		}
		created = reg.User(r.ids.NewID())
		ds.Users = append(ds.Users, created)
		return nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}
	return created.Public(), nil
}
