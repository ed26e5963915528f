package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize local store
	db, err := config.InitDB(cfg.Store)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to store: %v", err)
	}
	kv := database.NewGormKVStore(db)
	if err := kv.Migrate(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	store := services.NewBillStore(kv)
	if err := store.Load(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to load bills: %v", err)
	}

	backend := services.NewBackendClient(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.CheckoutTimeout)

	catalog := services.NewCatalogService(backend, kv)
	refresher := services.NewCatalogRefresher(catalog)
	refresher.Interval = cfg.CatalogRefreshInterval
	refresher.Timeout = cfg.Backend.FetchTimeout
	refresher.RefreshOnce()
	refresher.Start()
	defer refresher.Stop()

	monitor := services.NewCheckoutMonitor()
	checkout := services.NewCheckoutService(store, backend, monitor)
	checkout.Timeout = cfg.Backend.CheckoutTimeout

	r := router.SetupRouter(router.Dependencies{
		Store:          store,
		Editor:         services.NewBillEditor(store, catalog),
		Catalog:        catalog,
		Refresher:      refresher,
		Checkout:       checkout,
		Monitor:        monitor,
		Tables:         services.NewTableService(store, cfg.Tables),
		RestaurantName: cfg.RestaurantName,
		CORSOrigin:     cfg.CORSOrigin,
		RateLimiter:    middlewares.NewRateLimiter(cfg.RateLimit, 1),
	})
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Printf("Setting trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down terminal service")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.CheckoutTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Forced shutdown: %v", err)
	}
}
