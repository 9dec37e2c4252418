package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scoopshop/internal/config"
	"scoopshop/internal/db"
	"scoopshop/internal/httpserver"
	cartrepo "scoopshop/internal/repository/cart"
	categoryrepo "scoopshop/internal/repository/category"
	customerrepo "scoopshop/internal/repository/customer"
	orderrepo "scoopshop/internal/repository/order"
	productrepo "scoopshop/internal/repository/product"
	promotionrepo "scoopshop/internal/repository/promotion"
	reportrepo "scoopshop/internal/repository/report"
	cartsvc "scoopshop/internal/service/cart"
	catalogsvc "scoopshop/internal/service/catalog"
	checkoutsvc "scoopshop/internal/service/checkout"
	customersvc "scoopshop/internal/service/customer"
	loyaltysvc "scoopshop/internal/service/loyalty"
	promotionsvc "scoopshop/internal/service/promotion"
	reportsvc "scoopshop/internal/service/report"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	promotionRepo := promotionrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	reportRepo := reportrepo.NewPostgres(dbpool)

	promotionService := promotionsvc.New(promotionRepo)
	catalogService := catalogsvc.New(productRepo, categoryRepo, promotionRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	customerService := customersvc.New(customerRepo)
	loyaltyService := loyaltysvc.New(orderRepo, promotionRepo, logger)
	checkoutService := checkoutsvc.New(cartRepo, orderRepo, promotionRepo, logger, loyaltyService.AfterCheckout)
	reportService := reportsvc.New(reportRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:    catalogService,
		Cart:       cartService,
		Checkout:   checkoutService,
		Promotions: promotionService,
		Customers:  customerService,
		Reports:    reportService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
