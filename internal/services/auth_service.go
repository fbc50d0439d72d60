package services

import (
	"context"
	"fmt"
	"garage/internal/latency"
	"garage/internal/models"
	"garage/internal/providers"
	"garage/internal/repository"
	"garage/internal/store"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, reg models.Registration) (models.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
}

// AuthService checks credentials and issues opaque tokens. It does not authorize anything afterwards.
type AuthService struct {
	users   repository.UserRepositoryInterface
	store   store.StoreInterface
	tokens  TokenIssuerInterface
	latency latency.SimulatorInterface
	logger  providers.Logger
}

func NewAuthService(
	users repository.UserRepositoryInterface,
	st store.StoreInterface,
	tokens TokenIssuerInterface,
	sim latency.SimulatorInterface,
	logger providers.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		store:   st,
		tokens:  tokens,
		latency: sim,
		logger:  logger,
	}
}

func (as *AuthService) Login(ctx context.Context, email, password string) (models.Session, error) {
	return latency.Do(ctx, as.latency, func(ctx context.Context) (models.Session, error) {
		user, err := as.users.FindByCredentials(ctx, email, password)
		if err != nil {
			return models.Session{}, err
		}
		return as.startSession(ctx, user)
	})
}

// Register creates a customer account and signs it in. When signing in fails the account is kept,
// so the caller can recover with Login instead of registering again.
func (as *AuthService) Register(ctx context.Context, reg models.Registration) (models.Session, error) {
	return latency.Do(ctx, as.latency, func(ctx context.Context) (models.Session, error) {
		user, err := as.users.Create(ctx, reg)
		if err != nil {
			return models.Session{}, err
		}
		as.logger.Infof(providers.TypePost, "Registered user %s", user.ID)
		session, err := as.startSession(ctx, user)
		if err != nil {
			as.logger.Errorf(providers.TypePost, "User %s was created but no session was started: %s", user.ID, err)
			return models.Session{}, fmt.Errorf("account %s created, sign in to continue: %w", user.ID, err)
		}
		return session, nil
	})
}

func (as *AuthService) startSession(ctx context.Context, user models.PublicUser) (models.Session, error) {
	token, err := as.tokens.Issue(user.ID)
	if err != nil {
		return models.Session{}, fmt.Errorf("issue token: %w", err)
	}
	session := models.Session{User: user, Token: token}
	if err := as.store.SaveSession(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Logout forgets the stored session. Issued tokens stay valid until they expire.
func (as *AuthService) Logout(ctx context.Context) error {
	return latency.Run(ctx, as.latency, as.store.ClearSession)
}

func (as *AuthService) CurrentSession(ctx context.Context) (*models.Session, error) {
	return latency.Do(ctx, as.latency, as.store.LoadSession)
}
