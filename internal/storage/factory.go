package storage

import (
	"context"
	"fmt"
	"garage/internal/providers"
	"garage/internal/structures"
)

// NewSlotStorage opens the backend selected by persistence.driver. The cleanup func closes it.
func NewSlotStorage(conf *structures.Config, logger providers.Logger) (SlotStorage, func(), error) {
	ctx := context.Background()
	p := conf.Persistence

	var (
		s   SlotStorage
		err error
	)
	switch p.Driver {
	case DriverMemory:
		s = NewMemoryStorage()
	case DriverFile:
		var compressor CompressorInterface
		if p.Compress {
			compressor, err = NewZstdCompressor()
			if err != nil {
				return nil, nil, err
			}
		}
		s, err = NewFileStorage(p.Dir, compressor)
	case DriverSqlite:
		s, err = NewSqliteStorage(p.SqlitePath)
	case DriverPostgres:
		s, err = NewPostgresStorage(ctx, p.PostgresDSN)
	case DriverRedis:
		s, err = NewRedisStorage(ctx, p.Redis.Addr, p.Redis.Password, p.Redis.DB)
	case DriverDynamoDB:
		s, err = NewDynamoStorage(ctx, p.DynamoDB)
	default:
		return nil, nil, fmt.Errorf("unknown persistence driver %q", p.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "Slot storage initialized: %s", s.Driver())
	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Closing slot storage: %s", err)
		}
	}
	return s, cleanup, nil
}
