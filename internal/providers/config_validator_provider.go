package providers

import (
	"errors"
	"garage/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	return cv.validateDrivers()
}

// validateDrivers checks the settings each selected backend needs; struct tags cannot express these.
func (cv *CnfValidator) validateDrivers() error {
	p := cv.conf.Persistence
	switch p.Driver {
	case "file":
		if p.Dir == "" {
			return errors.New("persistence.dir is required for the file driver")
		}
	case "sqlite":
		if p.SqlitePath == "" {
			return errors.New("persistence.sqlitePath is required for the sqlite driver")
		}
	case "postgres":
		if p.PostgresDSN == "" {
			return errors.New("persistence.postgresDSN is required for the postgres driver")
		}
	case "redis":
		if p.Redis.Addr == "" {
			return errors.New("persistence.redis.addr is required for the redis driver")
		}
	case "dynamodb":
		if p.DynamoDB.Table == "" {
			return errors.New("persistence.dynamodb.table is required for the dynamodb driver")
		}
	}

	s := cv.conf.Seed
	switch s.Driver {
	case "file":
		if s.Path == "" {
			return errors.New("seed.path is required for the file seed driver")
		}
	case "http":
		if s.URL == "" {
			return errors.New("seed.url is required for the http seed driver")
		}
	case "s3":
		if s.S3.Bucket == "" || s.S3.Key == "" {
			return errors.New("seed.s3.bucket and seed.s3.key are required for the s3 seed driver")
		}
	}
	return nil
}
