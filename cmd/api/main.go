package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/pagebound/bookstore-backend/internal/dbmigrate"
	"github.com/pagebound/bookstore-backend/internal/events"
	"github.com/pagebound/bookstore-backend/internal/httpauth"
	"github.com/pagebound/bookstore-backend/internal/modules/auth"
	"github.com/pagebound/bookstore-backend/internal/modules/catalog"
	"github.com/pagebound/bookstore-backend/internal/modules/order"
	"github.com/pagebound/bookstore-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	if err := dbmigrate.Run(db, "file://migrations"); err != nil {
		log.Fatal(err)
	}

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Fatal("JWT_SECRET must be set")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	mw := httpauth.NewMiddleware(jwtKey)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, mw).RegisterRoutes(router)

	authService := auth.NewService(userService, userRepo, jwtKey)
	auth.NewHandler(authService, userService, mw).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	var catalogRepo catalog.Repository = catalog.NewPostgresRepository(db)
	var bookCache catalog.Invalidator = catalog.NoopInvalidator{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		cached := catalog.NewCachedRepository(catalogRepo, client, 5*time.Minute)
		catalogRepo = cached
		bookCache = cached
		fmt.Println("Catalog cache enabled via Redis at " + addr)
	}
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, mw).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		p, err := events.NewKafkaPublisher(brokers)
		if err != nil {
			log.Fatalf("connect Kafka: %v", err)
		}
		defer p.Close()
		publisher = p
		fmt.Println("Order events enabled via Kafka at " + brokers)
	}
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, publisher, bookCache)
	order.NewHandler(orderService, mw).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Bookstore API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
