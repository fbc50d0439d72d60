package providers

import (
	"fmt"
	"garage/internal/latency"
	"garage/internal/structures"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "GarageMockBackend"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)

	_ = v.BindEnv("logger.level", "GARAGE_LOG_LEVEL")
	_ = v.BindEnv("webServer.port", "GARAGE_PORT")
	_ = v.BindEnv("persistence.driver", "GARAGE_STORAGE_DRIVER")
	_ = v.BindEnv("persistence.postgresDSN", "GARAGE_POSTGRES_DSN")
	_ = v.BindEnv("persistence.redis.addr", "GARAGE_REDIS_ADDR")
	_ = v.BindEnv("persistence.redis.password", "GARAGE_REDIS_PASSWORD")
	_ = v.BindEnv("seed.driver", "GARAGE_SEED_DRIVER")
	_ = v.BindEnv("seed.url", "GARAGE_SEED_URL")
	_ = v.BindEnv("seed.s3.accessKeyId", "GARAGE_S3_ACCESS_KEY_ID")
	_ = v.BindEnv("seed.s3.secretAccessKey", "GARAGE_S3_SECRET_ACCESS_KEY")
	_ = v.BindEnv("persistence.dynamodb.accessKeyId", "GARAGE_DYNAMODB_ACCESS_KEY_ID")
	_ = v.BindEnv("persistence.dynamodb.secretAccessKey", "GARAGE_DYNAMODB_SECRET_ACCESS_KEY")
	_ = v.BindEnv("latency.delay", "GARAGE_LATENCY")
	_ = v.BindEnv("auth.secret", "GARAGE_AUTH_SECRET")
	_ = v.BindEnv("cache.enabled", "GARAGE_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "GARAGE_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("persistence.driver", "file")
	v.SetDefault("persistence.keyPrefix", "garage")
	v.SetDefault("persistence.compress", true)
	v.SetDefault("seed.driver", "file")
	v.SetDefault("seed.timeout", 5*time.Second)
	v.SetDefault("latency.delay", latency.DefaultDelay)
	v.SetDefault("auth.sessionWindow", time.Hour)
	v.SetDefault("auth.rateLimit", 5.0)
	v.SetDefault("auth.burst", 10)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.ttl", 30*time.Second)
}
