package database

import (
	"fmt"
	"log"

	"github.com/pageza/nutripal/backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table the service owns
func Models() []interface{} {
	return []interface{}{
		&models.UserProfile{},
		&models.FoodLog{},
		&models.MealPlan{},
		&models.Recipe{},
		&models.ChatSession{},
		&models.UserBadge{},
	}
}

// Migrate brings the schema up to date. Postgres gets the pgvector
// extension first so recipe embeddings can use the vector type.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("[Database] migrated %d tables on %s", len(Models()), db.Dialector.Name())
	return nil
}
