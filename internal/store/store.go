// Package store owns the working copy of the dataset and the session slot.
package store

import (
	"context"
	"errors"
	"fmt"
	"garage/internal/models"
	"garage/internal/providers"
	"garage/internal/storage"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type StoreInterface interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Save(ctx context.Context, ds *models.Dataset) error
	Mutate(ctx context.Context, fn func(ds *models.Dataset) error) error
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context) (*models.Session, error)
	ClearSession(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Store serializes load, mutate and save for callers sharing this instance.
// Two instances over one backend do not coordinate; the later save wins.
type Store struct {
	mu      sync.Mutex
	slots   storage.SlotStorage
	keys    storage.Keys
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStore(slots storage.SlotStorage, keys storage.Keys, logger providers.Logger, metrics providers.MetricsProviderInterface) *Store {
	return &Store{
		slots:   slots,
		keys:    keys,
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns the working dataset, hydrating it from the bootstrap slot on first use.
func (s *Store) Load(ctx context.Context) (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*models.Dataset, error) {
	ds, _, err := s.read(ctx, s.keys.Working)
	if err != nil {
		return nil, err
	}
	if ds != nil {
		return ds, nil
	}

	ds, raw, err := s.read(ctx, s.keys.Bootstrap)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return models.NewDataset(), nil
	}

	if err := s.slots.Set(ctx, s.keys.Working, raw); err != nil {
		return nil, fmt.Errorf("hydrate working slot: %w", err)
	}
	s.logger.Infof(providers.TypeApp, "Working slot %s hydrated from %s", s.keys.Working, s.keys.Bootstrap)
	return ds, nil
}

// read decodes a dataset slot. A missing or undecodable slot yields a nil dataset.
func (s *Store) read(ctx context.Context, key string) (*models.Dataset, []byte, error) {
	raw, ok, err := s.slots.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptSlot) {
			s.logger.Warnf(providers.TypeApp, "Ignoring slot %s: %s", key, err)
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	if !ok {
		return nil, nil, nil
	}

	var ds models.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		s.logger.Warnf(providers.TypeApp, "Ignoring slot %s: %s", key, err)
		return nil, nil, nil
	}
	return ds.Normalize(), raw, nil
}

// Save overwrites the working slot with the full dataset.
func (s *Store) Save(ctx context.Context, ds *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, ds)
}

func (s *Store) save(ctx context.Context, ds *models.Dataset) error {
	start := time.Now()
	data, err := json.Marshal(ds.Normalize())
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := s.slots.Set(ctx, s.keys.Working, data); err != nil {
		return fmt.Errorf("write working slot: %w", err)
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	for collection, n := range ds.Counts() {
		s.metrics.SetRecordsTotal(collection, n)
	}
	return nil
}

// Mutate runs fn against a freshly loaded dataset and saves the result. Nothing is saved when fn fails.
func (s *Store) Mutate(ctx context.Context, fn func(ds *models.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.save(ctx, ds)
}

func (s *Store) SaveSession(ctx context.Context, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.slots.Set(ctx, s.keys.Session, data); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}
	return nil
}

// LoadSession returns nil when no session is stored or the slot is unreadable.
func (s *Store) LoadSession(ctx context.Context) (*models.Session, error) {
	raw, ok, err := s.slots.Get(ctx, s.keys.Session)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptSlot) {
			s.logger.Warnf(providers.TypeApp, "Ignoring session slot: %s", err)
			return nil, nil
		}
		return nil, fmt.Errorf("read session slot: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Warnf(providers.TypeApp, "Ignoring session slot: %s", err)
		return nil, nil
	}
	return &session, nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.slots.Delete(ctx, s.keys.Session); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}

// Reset drops the working copy and the session; the next Load hydrates from bootstrap again.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slots.Delete(ctx, s.keys.Working); err != nil {
		return fmt.Errorf("reset working slot: %w", err)
	}
	if err := s.slots.Delete(ctx, s.keys.Session); err != nil {
		return fmt.Errorf("reset session slot: %w", err)
	}
	s.logger.Infof(providers.TypeApp, "Working slot %s reset", s.keys.Working)
	return nil
}
