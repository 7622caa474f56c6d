package main

import (
	"context"
	"log"
	"os"

	"scent-advisor-be/internal/repository/unitofwork"
	"scent-advisor-be/pkg/advisor/collection"
	"scent-advisor-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding House Collection...")

	seeder := NewCatalogSeeder(unitofwork.NewRepositoryFactory(db))
	created, skipped, err := seeder.Seed(context.Background(), collection.House())
	if err != nil {
		log.Fatalf("Error: catalog seeding failed: %v", err)
	}

	log.Printf("Catalog seeding completed! created=%d skipped=%d", created, skipped)
}
