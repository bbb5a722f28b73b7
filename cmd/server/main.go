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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ovchar/food_ordering/internal/config"
	"github.com/ovchar/food_ordering/internal/es"
	"github.com/ovchar/food_ordering/internal/httpserver"
	"github.com/ovchar/food_ordering/internal/logging"
	"github.com/ovchar/food_ordering/internal/mykafka"
	"github.com/ovchar/food_ordering/internal/repo"
	"github.com/ovchar/food_ordering/internal/service"
)

const dishIndex = "dishes"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	deps := &httpserver.Deps{
		DB:        db,
		JWTSecret: []byte(configuration.JWT_SECRET),
	}

	r := repo.New(db)
	deps.AuthHandler = &httpserver.AuthHandler{Svc: &service.AuthService{Repo: r, JWTSecret: deps.JWTSecret}}
	deps.MenuHandler = &httpserver.MenuHandler{Svc: &service.CatalogService{Repo: r}}
	deps.CartHandler = &httpserver.CartHandler{
		Cart:     &service.CartService{Repo: r},
		Checkout: &service.CheckoutService{Repo: r},
		Producer: producer,
	}
	deps.OrderHandler = &httpserver.OrderHandler{Svc: &service.OrderService{Repo: r}}
	deps.AdminHandler = &httpserver.AdminHandler{
		Svc:      &service.CatalogService{Repo: r},
		Index:    dishIndex,
		Producer: producer,
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.AdminHandler.ES = esClient
		deps.SearchHandler = &httpserver.SearchHandler{ES: esClient, Index: dishIndex}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
