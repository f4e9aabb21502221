package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/adapter/mssql"
	"github.com/pbarros/fornecedores/internal/adapter/rabbitmq"
	"github.com/pbarros/fornecedores/internal/adapter/storage"
	"github.com/pbarros/fornecedores/internal/app/catalog"
	"github.com/pbarros/fornecedores/internal/app/order"
	"github.com/pbarros/fornecedores/internal/app/photo"
	"github.com/pbarros/fornecedores/internal/config"
	"github.com/pbarros/fornecedores/internal/interfaces"

	httpAdapter "github.com/pbarros/fornecedores/internal/adapter/http"
)

const serviceName = "fornecedores-api"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config and PORT env)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lgr := logger.New(serviceName)
	ctx := context.Background()

	// Catalog source is optional: without it /suppliers answers 503 and
	// orders must carry their own unit prices.
	var catalogSource interfaces.CatalogSource
	if cfg.Catalog.Server != "" {
		catalogSource, err = mssql.NewCatalogSource(cfg.Catalog)
		if err != nil {
			log.Fatalf("Failed to initialize catalog source: %v", err)
		}
		defer catalogSource.Close()
		lgr.Info("catalog_configured", "Catalog source configured", "", map[string]interface{}{
			"server": cfg.Catalog.Server,
		})
	} else {
		lgr.Warn("catalog_not_configured", "Running without a catalog source", "", nil)
	}

	// One-time backend selection: PostgreSQL when reachable, SQLite
	// otherwise, for the whole process lifetime.
	store, err := storage.Select(ctx, cfg, lgr)
	if err != nil {
		log.Fatalf("Failed to select order store: %v", err)
	}
	defer store.Close()

	var publisher interfaces.EventPublisher
	if cfg.RabbitMQ.Host != "" {
		conn, err := rabbitmq.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbitmq.NewPublisher(conn)
		defer publisher.Close()
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
	}

	catalogService := catalog.NewService(catalogSource, lgr)
	orderService := order.NewService(store, catalogService, publisher, lgr)
	relay := photo.NewRelay(cfg.PhotoRetention(), lgr)

	supplierHandler := httpAdapter.NewSupplierHandler(catalogService, lgr)
	orderHandler := httpAdapter.NewOrderHandler(orderService, lgr)
	photoHandler := httpAdapter.NewPhotoHandler(relay, lgr)
	healthHandler := httpAdapter.NewHealthHandler(serviceName, store.Name())

	mux := http.NewServeMux()
	mux.HandleFunc("/suppliers", supplierHandler.ListSuppliers)
	mux.HandleFunc("/orders", orderHandler.CreateOrder)
	mux.HandleFunc("/photo", photoHandler.StorePhoto)
	mux.HandleFunc("/photo/", photoHandler.GetPhoto)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/", healthHandler.Health)

	handler := httpAdapter.CORSMiddleware(mux)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Fornecedores API started on port %d", cfg.Server.Port), "", map[string]interface{}{
		"port":    cfg.Server.Port,
		"backend": store.Name(),
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down Fornecedores API", "", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "", nil, err)
	}
}
