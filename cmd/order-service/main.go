package main

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/order/application"
	"storefront/internal/order/domain"
	"storefront/internal/order/infrastructure"
	"storefront/internal/order/infrastructure/adapter"
	"storefront/internal/order/interfaces"
	"storefront/internal/pkg/bootstrap"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/httpclient"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/mq"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	serviceName := config.Resolve("SERVICE_NAME", cfg.Service.Name, "order-service")
	port := config.ResolveInt("SERVICE_PORT", cfg.Service.Port, 8081)
	logger.Init(serviceName)

	repo, closeDB := buildRepository(cfg)

	tracer := otel.Tracer(serviceName)
	inventory := adapter.NewInventoryHTTPAdapter(
		httpclient.NewClient(tracer, cfg.Inventory.CallTimeout),
		cfg.Inventory.BaseURL,
	)

	writer := mq.NewWriter(cfg.Kafka.Brokers)
	publisher := adapter.NewKafkaEventPublisher(writer)

	service := application.NewOrderService(repo, inventory, publisher, tracer)
	handler := interfaces.NewOrderHandler(service)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName:    serviceName,
		Port:           port,
		JaegerEndpoint: cfg.Jaeger.Endpoint,
		RegisterRoutes: func(r chi.Router) { handler.RegisterRoutes(r) },
		OnShutdown: func(ctx context.Context) {
			if err := writer.Close(); err != nil {
				logger.Logger.Error().Err(err).Msg("error closing kafka writer")
			}
			closeDB()
		},
	})
}

func buildRepository(cfg config.Config) (domain.OrderRepository, func()) {
	if cfg.MySQL.DSN == "" {
		logger.Logger.Warn().Msg("no MySQL DSN configured, using in-memory order store")
		return infrastructure.NewMemoryOrderRepository(), func() {}
	}
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to MySQL")
	}
	if err := db.AutoMigrate(&infrastructure.OrderModel{}, &infrastructure.OrderItemModel{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to migrate order schema")
	}
	return infrastructure.NewGormOrderRepository(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
