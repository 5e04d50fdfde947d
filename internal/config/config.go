package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env          string `yaml:"env" env:"ESCROW_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	EscrowDB     `yaml:"escrow_db"`
	Storage      `yaml:"storage"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka_service"`
	Engine       `yaml:"engine"`
	Risk         `yaml:"risk"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type EscrowDB struct {
	Dsn            string `yaml:"dsn" env:"ESCROW_DB_DSN"`
	MaxOpenConns   int    `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns   int    `yaml:"max_idle_conns" env-default:"5"`
	MigrateOnStart bool   `yaml:"migrate_on_start" env-default:"true"`
}

type Storage struct {
	// Driver is "postgres" or "memory".
	Driver string `yaml:"driver" env:"ESCROW_STORAGE_DRIVER" env-default:"postgres"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled      bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host         string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	OrderTopic   string `yaml:"order_topic" env-default:"escrow-order-events"`
	DisputeTopic string `yaml:"dispute_topic" env-default:"escrow-dispute-events"`
}

func (k KafkaService) Brokers() []string {
	return []string{fmt.Sprintf("%s:%s", k.Host, k.Port)}
}

type Engine struct {
	ConfirmGracePeriod  time.Duration `yaml:"confirm_grace_period" env-default:"72h"`
	AcceptTimeout       time.Duration `yaml:"accept_timeout" env-default:"48h"`
	SweepInterval       time.Duration `yaml:"sweep_interval" env-default:"30s"`
	SweepBatchSize      int           `yaml:"sweep_batch_size" env-default:"100"`
	ReconcileInterval   time.Duration `yaml:"reconcile_interval" env-default:"5m"`
	DefaultRevisions    int           `yaml:"default_revisions" env-default:"2"`
	DefaultDeliveryDays int           `yaml:"default_delivery_days" env-default:"7"`
}

type Risk struct {
	DisputeWeight     float64 `yaml:"dispute_weight" env-default:"0.7"`
	CancelWeight      float64 `yaml:"cancel_weight" env-default:"0.3"`
	HighRiskThreshold float64 `yaml:"high_risk_threshold" env-default:"50"`
}

func (c *EscrowConfig) Validate() error {
	switch c.Storage.Driver {
	case "postgres":
		if c.EscrowDB.Dsn == "" {
			return errors.New("escrow_db.dsn is required for the postgres storage driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Engine.ConfirmGracePeriod <= 0 {
		return errors.New("engine.confirm_grace_period must be positive")
	}
	if c.Engine.AcceptTimeout <= 0 {
		return errors.New("engine.accept_timeout must be positive")
	}
	if c.Engine.SweepInterval <= 0 {
		return errors.New("engine.sweep_interval must be positive")
	}
	if c.Engine.SweepBatchSize <= 0 {
		return errors.New("engine.sweep_batch_size must be positive")
	}
	if c.Risk.DisputeWeight < 0 || c.Risk.CancelWeight < 0 {
		return errors.New("risk weights cannot be negative")
	}
	if c.Risk.HighRiskThreshold <= 0 || c.Risk.HighRiskThreshold > 100 {
		return errors.New("risk.high_risk_threshold must be in (0, 100]")
	}
	return nil
}

// Load reads the YAML file at path; environment variables override it.
func Load(path string) (*EscrowConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *EscrowConfig {
	configPath := os.Getenv("ESCROW_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	return cfg
}
