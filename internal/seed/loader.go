// Package seed fetches the immutable seed document once and places it into the bootstrap slot.
package seed

import (
	"context"
	"errors"
	"fmt"
	"garage/internal/providers"
	"garage/internal/storage"
	"sync"

	json "github.com/goccy/go-json"
)

// ErrSeedUnavailable is logged, never returned to callers: a missing seed degrades to empty collections.
var ErrSeedUnavailable = errors.New("seed unavailable")

type LoaderInterface interface {
	EnsureSeeded(ctx context.Context) error
	Seeded() bool
	Reset()
}

// Loader writes the bootstrap slot at most once per instance unless Reset is called.
type Loader struct {
	mu      sync.Mutex
	seeded  bool
	source  Source
	slots   storage.SlotStorage
	key     string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewLoader(source Source, slots storage.SlotStorage, keys storage.Keys, logger providers.Logger, metrics providers.MetricsProviderInterface) *Loader {
	return &Loader{
		source:  source,
		slots:   slots,
		key:     keys.Bootstrap,
		logger:  logger,
		metrics: metrics,
	}
}

// EnsureSeeded fetches the seed and stores it verbatim. A failed fetch leaves the loader unseeded so a later
// call retries. Only a failing bootstrap write is reported as an error.
func (l *Loader) EnsureSeeded(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seeded {
		return nil
	}

	data, err := l.fetch(ctx)
	if err != nil {
		l.logger.Warnf(providers.TypeApp, "Seed from %s skipped: %s", l.source.Name(), err)
		l.metrics.SetSeeded(false)
		return nil
	}

	if err := l.slots.Set(ctx, l.key, data); err != nil {
		return fmt.Errorf("write bootstrap slot: %w", err)
	}

	l.seeded = true
	l.metrics.SetSeeded(true)
	l.logger.Infof(providers.TypeApp, "Bootstrap slot %s seeded from %s (%d bytes)", l.key, l.source.Name(), len(data))
	return nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeedUnavailable, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid JSON", ErrSeedUnavailable)
	}
	return data, nil
}

func (l *Loader) Seeded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seeded
}

// Reset lets the next EnsureSeeded rewrite the bootstrap slot.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seeded = false
}
