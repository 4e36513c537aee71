// file: database/connect.go
package database

import (
	"log"
	"time"

	"github.com/xFraylin/Hackong-ctf/config"
	"github.com/xFraylin/Hackong-ctf/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens the MySQL connection, tunes the pool and runs migrations.
// TranslateError is on so uniqueness violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// Keeps connections younger than MySQL's wait_timeout.
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := MigrateTables(db); err != nil {
		return nil, err
	}

	log.Println("Database connection established and connection pool configured.")
	return db, nil
}

func MigrateTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Challenge{},
		&models.Room{},
		&models.SolvedChallenge{},
		&models.QuizAttempt{},
	)
}
