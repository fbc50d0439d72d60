package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DynamoDBConfig struct {
	Table    string `yaml:"table"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	AWSCredentials `yaml:",inline" mapstructure:",squash"`
}

type Persistence struct {
	Driver      string         `yaml:"driver" validate:"required|in:memory,file,sqlite,postgres,redis,dynamodb"`
	KeyPrefix   string         `yaml:"keyPrefix"`
	Dir         string         `yaml:"dir"`
	Compress    bool           `yaml:"compress"`
	SqlitePath  string         `yaml:"sqlitePath"`
	PostgresDSN string         `yaml:"postgresDSN"`
	Redis       RedisConfig    `yaml:"redis"`
	DynamoDB    DynamoDBConfig `yaml:"dynamodb"`
}

type S3SeedConfig struct {
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"pathStyle"`
	AWSCredentials `yaml:",inline" mapstructure:",squash"`
}

type SeedConfig struct {
	Driver  string        `yaml:"driver" validate:"required|in:file,http,s3,none"`
	Path    string        `yaml:"path"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	S3      S3SeedConfig  `yaml:"s3"`
}

type LatencyConfig struct {
	Delay time.Duration `yaml:"delay"`
}

type AuthConfig struct {
	Secret        string        `yaml:"secret" validate:"required|minLen:8"`
	SessionWindow time.Duration `yaml:"sessionWindow" validate:"required|min:1"`
	RateLimit     float64       `yaml:"rateLimit"`
	Burst         int           `yaml:"burst"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Seed        SeedConfig    `yaml:"seed"`
	Latency     LatencyConfig `yaml:"latency"`
	Auth        AuthConfig    `yaml:"auth"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
