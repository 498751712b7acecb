package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultCategories is the starter set every fresh account gets.
var defaultCategories = []struct {
	Name  string
	Color string
	Icon  string
}{
	{"hogar", "#3b82f6", "home"},
	{"transporte", "#22c55e", "car"},
	{"ocio", "#a855f7", "film"},
	{"alimentación", "#eab308", "shopping-cart"},
	{"salud", "#ef4444", "heart"},
	{"servicios", "#ec4899", "wifi"},
	{"otros", "#6b7280", "tag"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo user and default categories for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearTables(gormDB)
		}

		seedDemoUser(gormDB, cfg.Security.BCryptCost)
	},
}

func clearTables(db *gorm.DB) {
	for _, table := range []string{"loan_payments", "loans", "expenses", "categories", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedDemoUser(db *gorm.DB, bcryptCost int) {
	email := "demo@finanzas.local"
	name := "Demo"
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	row := db.Raw("SELECT id FROM users WHERE email = ?", email).Row()
	if err := row.Scan(&userID); err != nil {
		if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", email, name, string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&userID); err != nil {
			log.Fatalf("failed to read back demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", email)
	} else {
		fmt.Println("demo user already exists; will ensure categories")
	}

	for _, c := range defaultCategories {
		var exists int
		row := db.Raw("SELECT 1 FROM categories WHERE user_id = ? AND name = ?", userID, c.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO categories (user_id, name, color, icon, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", userID, c.Name, c.Color, c.Icon).Error; err != nil {
			log.Fatalf("failed to insert category %s: %v", c.Name, err)
		}
		fmt.Println("Seeded category:", c.Name)
	}
}
