package gormstore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	glebarez "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectSQLite opens (and migrates) a cgo-free SQLite database at path,
// mirroring the teacher's db.Connect(dsn, debug) shape but on the pure-Go
// glebarez driver rather than mattn/go-sqlite3, so the store has no cgo
// build requirement in test or CI.
func ConnectSQLite(path string, debug bool) (*gorm.DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("gormstore: create db directory: %w", err)
			}
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(glebarez.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("gormstore: connect sqlite: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("gormstore: migrate: %w", err)
	}
	return db, nil
}

// ConnectPostgres opens (and migrates) a Postgres database, mirroring the
// teacher's db/postgres.go Connect shape including best-effort database
// auto-creation when it doesn't already exist.
func ConnectPostgres(dsn string, debug bool) (*gorm.DB, error) {
	if err := ensureDatabase(dsn); err != nil && debug {
		fmt.Fprintf(os.Stderr, "gormstore: could not ensure database exists: %v\n", err)
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("gormstore: connect postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("gormstore: migrate: %w", err)
	}
	return db, nil
}

func ensureDatabase(dsn string) error {
	dbName, adminDSN, err := splitDatabaseDSN(dsn)
	if err != nil {
		return err
	}

	db, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect to admin db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var exists bool
	db.Raw("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)", dbName).Scan(&exists)
	if !exists {
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", dbName)).Error; err != nil {
			return fmt.Errorf("create database: %w", err)
		}
	}
	return nil
}

// splitDatabaseDSN parses a postgres:// DSN and returns the target
// database name plus an admin DSN pointing at the "postgres" maintenance
// database instead, so ensureDatabase can CREATE DATABASE without first
// connecting to a database that might not exist yet.
func splitDatabaseDSN(dsn string) (dbName, adminDSN string, err error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", fmt.Errorf("parse dsn: %w", err)
	}
	dbName = strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("could not extract database name from dsn")
	}
	admin := *u
	admin.Path = "/postgres"
	return dbName, admin.String(), nil
}

// Migrate auto-migrates the three graph tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&NodeRow{}, &EdgeRow{}, &RunRow{})
}
