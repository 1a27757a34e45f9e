package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"app/config"
	"app/consolidator"
	"app/database"
	"app/handlers"
	"app/integration"
	"app/routes"
	"app/store"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	config.LoadFromEnv()
	if config.AppConfig.IntegrationBaseURL == "" {
		log.Fatal("INTEGRATION_BASE_URL is not set")
	}

	// Initialize database and snapshot store
	database.InitDB(databaseURL)
	defer database.CloseDB()

	snapshots := store.NewSnapshotStore(database.GetDB())
	if err := snapshots.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Unable to create snapshot schema: %v", err)
	}

	// Build the consolidation pipeline: gateway, source registry with
	// optional overrides, notifiers.
	overrides, err := config.LoadSourceOverrides(config.AppConfig.DataSourcesFile)
	if err != nil {
		log.Fatalf("Unable to load data source overrides: %v", err)
	}
	sources := consolidator.ConfigureSources(overrides)

	gateway := integration.NewHTTPGateway(config.AppConfig.IntegrationBaseURL)
	notifier := consolidator.MultiNotifier{
		consolidator.LogNotifier{},
		store.SnapshotNotifier{Store: snapshots},
	}
	dataConsolidator := consolidator.New(gateway, sources, notifier)

	handlers.Init(dataConsolidator, snapshots)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
