package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/routes"
	"dental-clinic-server/internal/storage"
	"dental-clinic-server/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using process environment")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Open the persistence backend
	st, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Error opening storage: %v", err)
	}
	defer st.Close()

	// Hydrate the stores (seeds demo data on first start)
	records, err := store.NewRecordStore(st)
	if err != nil {
		log.Fatalf("Error initializing record store: %v", err)
	}
	sessions, err := store.NewSessionStore(st)
	if err != nil {
		log.Fatalf("Error initializing session store: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, records, sessions, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStorage picks the persistence backend from configuration.
func openStorage(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "badger":
		return storage.NewBadgerStore(cfg.Storage.Path)
	case "file":
		return storage.NewFileStore(cfg.Storage.Path)
	case "mysql":
		return storage.NewMySQLStore(cfg.Database.DSN)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
