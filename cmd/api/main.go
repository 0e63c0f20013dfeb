package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"techstore-api/internal/auth"
	"techstore-api/internal/client"
	"techstore-api/internal/config"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/server"
	"techstore-api/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitDBClient(&cfg.Database)
	paypalClient := client.NewPaypalClient(&cfg.Paypal)
	paynowClient := client.NewPaynowClient(&cfg.Paynow)
	braintreeClient := client.NewBraintreeClient(&cfg.Braintree)

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	if err := productRepo.Seed(context.Background(), model.DefaultCatalog()); err != nil {
		log.Fatal("seed catalog:", err)
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	orderService := service.NewOrderService(db, orderRepo, productRepo, userRepo)
	paymentService := service.NewPaymentService(
		db, cfg.BaseURL,
		paypalClient,
		paynowClient,
		braintreeClient,
		orderRepo,
		paymentRepo,
	)
	catalogService := service.NewCatalogService(productRepo)
	bannerService := service.NewBannerService(bannerRepo)
	userService := service.NewUserService(userRepo, issuer)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		issuer, cfg.Log.Level,
		orderService,
		paymentService,
		catalogService,
		bannerService,
		userService,
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
