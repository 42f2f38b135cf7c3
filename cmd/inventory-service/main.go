package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/inventory/application"
	"storefront/internal/inventory/domain"
	"storefront/internal/inventory/infrastructure"
	"storefront/internal/inventory/interfaces"
	"storefront/internal/pkg/bootstrap"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/mq"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	serviceName := config.Resolve("SERVICE_NAME", cfg.Service.Name, "inventory-service")
	port := config.ResolveInt("SERVICE_PORT", cfg.Service.Port, 8082)
	logger.Init(serviceName)

	repo, closeDB := buildRepository(cfg)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		cache := infrastructure.NewRedisProductCache(redisClient, cfg.Redis.CacheTTL)
		repo = infrastructure.NewCachedProductRepository(repo, cache)
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("product cache enabled")
	}

	writer := mq.NewWriter(cfg.Kafka.Brokers)
	publisher := infrastructure.NewKafkaEventPublisher(writer)

	seedCatalog(repo, cfg.Seed)

	service := application.NewStockService(repo, publisher, otel.Tracer(serviceName))
	handler := interfaces.NewProductHandler(service)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName:    serviceName,
		Port:           port,
		JaegerEndpoint: cfg.Jaeger.Endpoint,
		RegisterRoutes: func(r chi.Router) { handler.RegisterRoutes(r) },
		OnShutdown: func(ctx context.Context) {
			if err := writer.Close(); err != nil {
				logger.Logger.Error().Err(err).Msg("error closing kafka writer")
			}
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Logger.Error().Err(err).Msg("error closing redis client")
				}
			}
			closeDB()
		},
	})
}

// buildRepository opens MySQL when a DSN is configured, otherwise falls
// back to the in-memory store for local runs.
func buildRepository(cfg config.Config) (domain.ProductRepository, func()) {
	if cfg.MySQL.DSN == "" {
		logger.Logger.Warn().Msg("no MySQL DSN configured, using in-memory product store")
		return infrastructure.NewMemoryProductRepository(), func() {}
	}
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to MySQL")
	}
	if err := db.AutoMigrate(&infrastructure.ProductModel{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to migrate product schema")
	}
	return infrastructure.NewGormProductRepository(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// seedCatalog loads the configured initial catalog, skipping products
// that already exist so restarts never reset stock levels.
func seedCatalog(repo domain.ProductRepository, seed config.SeedConfig) {
	ctx := context.Background()
	for _, p := range seed.Products {
		_, err := repo.FindByID(ctx, p.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Logger.Error().Err(err).Str("product_id", p.ID).Msg("seed lookup failed")
			continue
		}
		now := time.Now().UTC()
		product := &domain.Product{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			PriceCents:    p.PriceCents,
			StockQuantity: p.StockQuantity,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := repo.Create(ctx, product); err != nil {
			logger.Logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to seed product")
			continue
		}
		logger.Logger.Info().Str("product_id", p.ID).Int("stock", p.StockQuantity).Msg("seeded product")
	}
}
