package common

import (
	"errors"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var ErrNoDatabasePath = errors.New("database path not set")

// ConnectDb opens the sqlite database at dbFile.
func ConnectDb(dbFile string) (*gorm.DB, error) {
	log.Println("attemptConnectDb: database path:", dbFile)
	if dbFile == "" {
		return nil, ErrNoDatabasePath
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Println("Error opening sqlite db: " + err.Error())
		return nil, err
	}
	log.Println("opened sqlite db at:", dbFile)
	return db, nil
}
