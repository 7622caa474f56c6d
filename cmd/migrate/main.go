package main

import (
	"log"
	"os"

	"scent-advisor-be/internal/model"
	"scent-advisor-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: gen_random_uuid() lives in pgcrypto on older servers
	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate All Models
	models := []interface{}{
		&model.Product{},
		&model.ProductNote{},
		&model.ProductVibe{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.RecommendationLog{},
	}
	log.Printf("Step 2: Running AutoMigrate for %d Tables...", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: metric bounds gorm tags cannot express portably
	log.Println("Step 3: Creating Constraints...")

	postMigrationSQL := []string{
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_metrics') THEN
		     ALTER TABLE products ADD CONSTRAINT chk_products_metrics
		       CHECK (intensity BETWEEN 1 AND 5 AND tenue BETWEEN 1 AND 5 AND sillage BETWEEN 1 AND 5);
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_product_notes_type') THEN
		     ALTER TABLE product_notes ADD CONSTRAINT chk_product_notes_type
		       CHECK (type IN ('TOP', 'HEART', 'BASE'));
		   END IF;
		 END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
