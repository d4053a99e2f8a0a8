package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/auth"
	"github.com/ghostshadow526/foodiesandstories/internal/cache"
	"github.com/ghostshadow526/foodiesandstories/internal/cart"
	"github.com/ghostshadow526/foodiesandstories/internal/catalog"
	"github.com/ghostshadow526/foodiesandstories/internal/checkout"
	"github.com/ghostshadow526/foodiesandstories/internal/compliance"
	"github.com/ghostshadow526/foodiesandstories/internal/config"
	"github.com/ghostshadow526/foodiesandstories/internal/events"
	httpserver "github.com/ghostshadow526/foodiesandstories/internal/http"
	"github.com/ghostshadow526/foodiesandstories/internal/metrics"
	"github.com/ghostshadow526/foodiesandstories/internal/orders"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"github.com/ghostshadow526/foodiesandstories/internal/upload"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoMaxPoolSize)
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}

	orderRepo := repository.NewMongoOrderRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	articleRepo := repository.NewMongoArticleRepository(db)

	if err := repository.EnsureIndexes(ctx, orderRepo, productRepo, articleRepo); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// The cart store and catalog cache degrade gracefully without Redis.
		log.Printf("redis unreachable at %s, continuing degraded: %v", cfg.RedisAddr, err)
	}

	publisher := events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
	defer publisher.Close()

	cartStore := cart.NewStore(cart.NewRedisStorage(redisClient))
	catalogSvc := catalog.NewService(productRepo, articleRepo, cache.NewRedisCache(redisClient))
	checkoutSvc := checkout.NewService(cartStore, orderRepo, publisher)

	analyzer := compliance.NewClient(cfg.ComplianceEndpoint, cfg.ComplianceAPIKey, cfg.ComplianceTimeout)
	ordersSvc := orders.NewService(orderRepo, analyzer, publisher, orders.PaymentPolicy{
		Method:        cfg.PaymentMethod,
		AccountNumber: cfg.PaymentAccountNumber,
	})

	uploader := upload.NewClient(cfg.UploadEndpoint, cfg.UploadKey, cfg.UploadTimeout)

	srv := httpserver.NewServer(":"+cfg.HTTPPort, httpserver.ServerDeps{
		Cart:     httpserver.NewCartHandler(cartStore, catalogSvc),
		Checkout: httpserver.NewCheckoutHandler(checkoutSvc),
		Orders:   httpserver.NewOrdersHandler(ordersSvc),
		Catalog:  httpserver.NewCatalogHandler(catalogSvc),
		Upload:   httpserver.NewUploadHandler(uploader),
		Auth:     auth.NewStaticProvider(cfg.AdminTokens),
		Metrics:  metrics.NewServerMetrics("api"),
	})

	go func() {
		log.Printf("storefront listening on :%s", cfg.HTTPPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("error closing redis client: %v", err)
	}
	log.Println("server stopped")
}
