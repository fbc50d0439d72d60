// Package storage holds the durable key -> blob slot backends the working store persists into.
package storage

import (
	"context"
	"errors"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverDynamoDB = "dynamodb"
)

// ErrCorruptSlot marks a slot whose stored bytes could not be decoded by the backend itself.
var ErrCorruptSlot = errors.New("corrupt slot")

// SlotStorage is a durable key -> blob map. Get reports absence with ok=false and a nil error.
type SlotStorage interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Driver() string
	Close() error
}
