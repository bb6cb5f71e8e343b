// Seeds the database with an admin user and the demo product catalog.
// Intended for local development and fresh deployments.
//
//	DATABASE_URL=postgres://... go run ./cmd/seed
package main

import (
	"errors"
	"flag"

	"github.com/amirclear/shelf-inventory/internal/config"
	"github.com/amirclear/shelf-inventory/internal/infra"
	"github.com/amirclear/shelf-inventory/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := seedAdmin(db, *username, *password); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}
	if err := seedProducts(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed products")
	}
	log.Info().Msg("seed complete")
}

func seedAdmin(db *gorm.DB, username, password string) error {
	var existing model.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Info().Str("username", username).Msg("admin already exists, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := model.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         "admin",
		Active:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("admin user created")
	return nil
}

func seedProducts(db *gorm.DB) error {
	demo := []model.Product{
		{SKU: "COKE-001", Name: "Coca-Cola 330ml", Category: "beverages", UnitPrice: decimal.NewFromFloat(2.50), Stock: 100, WeeklySalesEstimate: 80, ProfitMargin: decimal.NewFromFloat(0.25)},
		{SKU: "PEPSI-001", Name: "Pepsi 330ml", Category: "beverages", UnitPrice: decimal.NewFromFloat(2.30), Stock: 100, WeeklySalesEstimate: 60, ProfitMargin: decimal.NewFromFloat(0.22)},
		{SKU: "CHIPS-001", Name: "Potato Chips 150g", Category: "snacks", UnitPrice: decimal.NewFromFloat(3.80), Stock: 50, WeeklySalesEstimate: 40, ProfitMargin: decimal.NewFromFloat(0.35)},
		{SKU: "WATER-001", Name: "Mineral Water 500ml", Category: "beverages", UnitPrice: decimal.NewFromFloat(1.20), Stock: 200, WeeklySalesEstimate: 120, ProfitMargin: decimal.NewFromFloat(0.15)},
	}

	for _, p := range demo {
		var existing model.Product
		err := db.Where("sku = ?", p.SKU).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		log.Info().Str("sku", p.SKU).Msg("product created")
	}
	return nil
}
