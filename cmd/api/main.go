package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"marketplace-orders/internal/config"
	"marketplace-orders/internal/db"
	"marketplace-orders/internal/httpserver"
	cartrepo "marketplace-orders/internal/repository/cart"
	catalogrepo "marketplace-orders/internal/repository/catalog"
	notifrepo "marketplace-orders/internal/repository/notification"
	orderrepo "marketplace-orders/internal/repository/order"
	tokenrepo "marketplace-orders/internal/repository/token"
	userrepo "marketplace-orders/internal/repository/user"
	vrrepo "marketplace-orders/internal/repository/vendorrequest"
	cartsvc "marketplace-orders/internal/service/cart"
	catalogsvc "marketplace-orders/internal/service/catalog"
	checkoutsvc "marketplace-orders/internal/service/checkout"
	identitysvc "marketplace-orders/internal/service/identity"
	notifsvc "marketplace-orders/internal/service/notification"
	ordersvc "marketplace-orders/internal/service/order"
	paymentsvc "marketplace-orders/internal/service/payment"
	vrsvc "marketplace-orders/internal/service/vendorrequest"
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

	userRepo := userrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	catalogRepo := catalogrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	notifRepo := notifrepo.NewPostgres(dbpool)
	requestRepo := vrrepo.NewPostgres(dbpool)

	identityService := identitysvc.New(userRepo, tokenRepo)
	catalogService := catalogsvc.New(catalogRepo)
	cartService := cartsvc.New(cartRepo, catalogRepo)
	checkoutService := checkoutsvc.New(orderRepo, catalogRepo, logger)
	orderService := ordersvc.New(orderRepo)
	paymentListener := paymentsvc.NewListener(cfg.GatewaySecret, orderRepo, logger)
	notificationService := notifsvc.New(notifRepo)
	requestService := vrsvc.New(requestRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Identity:       identityService,
		Cart:           cartService,
		Checkout:       checkoutService,
		Orders:         orderService,
		Payments:       paymentListener,
		Notifications:  notificationService,
		Catalog:        catalogService,
		VendorRequests: requestService,
	})
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
