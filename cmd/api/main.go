package main

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/sweetoven/bakepos-backend/internal/modules/analytics"
	"github.com/sweetoven/bakepos-backend/internal/modules/auth"
	"github.com/sweetoven/bakepos-backend/internal/modules/catalog"
	"github.com/sweetoven/bakepos-backend/internal/modules/customer"
	"github.com/sweetoven/bakepos-backend/internal/modules/inventory"
	"github.com/sweetoven/bakepos-backend/internal/modules/order"
	"github.com/sweetoven/bakepos-backend/internal/modules/staff"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity & Staff ────────────────────────────────────
	staffRepo := staff.NewPostgresRepository(db)
	staffService := staff.NewService(staffRepo)
	staff.NewHandler(staffService).RegisterRoutes(router)

	authService := auth.NewService(staffRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog & Inventory ─────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db, logger)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	// ── Customers ───────────────────────────────────────────
	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db, inventoryRepo)
	orderService := order.NewService(orderRepo, customerService, logger)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Reporting ───────────────────────────────────────────
	analyticsRepo := analytics.NewPostgresRepository(db)
	analyticsService := analytics.NewService(analyticsRepo, logger)
	analytics.NewHandler(analyticsService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("BakePOS API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
