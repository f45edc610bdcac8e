package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nhatro-backend/config"
	"nhatro-backend/controllers"
	"nhatro-backend/routes"
	"nhatro-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	authService := services.NewAuthService(db, jwtSecret)
	motelService := services.NewMotelService(db)
	roomService := services.NewRoomService(db)
	contractService := services.NewContractService(db)
	maintenanceService := services.NewMaintenanceService(db)
	appointmentService := services.NewAppointmentService(db)
	invoiceService := services.NewInvoiceService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	motelController := controllers.NewMotelController(motelService)
	roomController := controllers.NewRoomController(roomService)
	contractController := controllers.NewContractController(contractService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)
	appointmentController := controllers.NewAppointmentController(appointmentService)
	invoiceController := controllers.NewInvoiceController(invoiceService)

	router := routes.SetupRouter(
		authService,
		authController,
		motelController,
		roomController,
		contractController,
		maintenanceController,
		appointmentController,
		invoiceController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
