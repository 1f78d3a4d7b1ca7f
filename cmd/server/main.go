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

	"github.com/alexedwards/scs/v2"
	"github.com/redis/go-redis/v9"

	"github.com/suhail1malik/EcommerceStore/internal/auth"
	"github.com/suhail1malik/EcommerceStore/internal/cache"
	"github.com/suhail1malik/EcommerceStore/internal/cart"
	"github.com/suhail1malik/EcommerceStore/internal/catalog"
	"github.com/suhail1malik/EcommerceStore/internal/config"
	"github.com/suhail1malik/EcommerceStore/internal/events"
	"github.com/suhail1malik/EcommerceStore/internal/httpapi"
	"github.com/suhail1malik/EcommerceStore/internal/order"
	"github.com/suhail1malik/EcommerceStore/internal/payment"
	"github.com/suhail1malik/EcommerceStore/internal/repository"
	"github.com/suhail1malik/EcommerceStore/internal/review"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	mongoClient, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDatabase)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
	}

	gateway := payment.NewClient(payment.Config{
		BaseURL:  cfg.GatewayBaseURL,
		KeyID:    cfg.GatewayKeyID,
		Secret:   cfg.GatewaySecret,
		Currency: cfg.Currency,
	})

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	carts := cart.NewService(cart.NewRedisStore(redisClient))
	orders := order.NewService(orderRepo, gateway, publisher)
	products := catalog.NewService(productRepo, cache.NewRedisCache(redisClient))
	reviews := review.NewService(productRepo)
	users := auth.NewService(userRepo)

	sessions := scs.New()
	sessions.Lifetime = 24 * time.Hour
	sessions.Cookie.HttpOnly = true

	router := httpapi.NewRouter(httpapi.Handlers{
		Cart:    httpapi.NewCartHandler(carts),
		Order:   httpapi.NewOrderHandler(orders, carts),
		Product: httpapi.NewProductHandler(products, reviews, users),
		User:    httpapi.NewUserHandler(users, sessions),
		Payment: httpapi.NewPaymentHandler(gateway, cfg.Currency),
	}, sessions, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
