package database

import (
	"fmt"
	"log"

	"student-groups/config"
	"student-groups/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect открывает соединение GORM с PostgreSQL и выполняет миграции
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Successfully connected to PostgreSQL (GORM)!")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	log.Println("🔄 Starting database migration...")

	// Сначала независимые таблицы, потом таблица связей
	tables := []interface{}{
		&models.Group{},
		&models.Student{},
		&models.GroupStudent{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			log.Printf("❌ Error migrating table %T: %v", table, err)
			return fmt.Errorf("migrate %T: %w", table, err)
		}
		log.Printf("✅ Created/Updated table for: %T", table)
	}

	log.Println("✅ Database migration completed successfully!")
	return nil
}
