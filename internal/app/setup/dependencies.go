package setup

import (
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-escrow-service/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config    *config.EscrowConfig
	DB        *gorm.DB
	Store     domain.Store
	Publisher domain.EventPublisher
	Registry  *prometheus.Registry
	Metrics   *metrics.EngineMetrics

	closers []func() error
}

func InitializeDependencies(cfg *config.EscrowConfig, log *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg}

	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		deps.Store = memory.NewStore()
	default:
		db, err := postgres.InitDB(cfg.EscrowDB)
		if err != nil {
			return nil, err
		}
		if cfg.EscrowDB.MigrateOnStart {
			if err := migrate.RunMigrations(db, migrations.FS); err != nil {
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		deps.DB = db
		deps.Store = repository.NewStore(db)
		deps.closers = append(deps.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}

	if cfg.KafkaService.Enabled {
		pub, err := publisher.NewKafkaPublisher(publisher.KafkaConfig{
			Brokers:      cfg.KafkaService.Brokers(),
			OrderTopic:   cfg.KafkaService.OrderTopic,
			DisputeTopic: cfg.KafkaService.DisputeTopic,
		})
		if err != nil {
			return nil, fmt.Errorf("event publisher: %w", err)
		}
		deps.Publisher = pub
		deps.closers = append(deps.closers, pub.Close)
	} else {
		deps.Publisher = publisher.NewLogPublisher(log)
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.NewEngineMetrics(deps.Registry)

	return deps, nil
}

// Close releases the database pool and the Kafka writer.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			slog.Error("failed to close dependency", "error", err.Error())
		}
	}
}
