// Command seed fills a database with demo accounts, services and bookings.
// It is idempotent on emails and service names.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"handyhub/internal/config"
	"handyhub/internal/database"
	"handyhub/internal/domain"
	"handyhub/internal/domain/auth"
	"handyhub/internal/domain/booking"
	"handyhub/internal/domain/catalog"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/profile"
	"handyhub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	db, err := database.Connect(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		fatal("db connection", err)
	}
	if err := database.AutoMigrate(db, server.Models()...); err != nil {
		fatal("auto-migrate", err)
	}

	if err := db.Transaction(seed); err != nil {
		fatal("seed", err)
	}
	slog.Info("seed completed")
}

func fatal(what string, err error) {
	slog.Error(what+" failed", "error", err)
	os.Exit(1)
}

type account struct {
	email, password, name string
	role                  domain.Role
}

func seed(tx *gorm.DB) error {
	accounts := []account{
		{"admin@handyhub.local", "admin12345", "Site Admin", domain.RoleAdmin},
		{"alice@example.com", "customer123", "Alice Carter", domain.RoleCustomer},
		{"ben@example.com", "customer123", "Ben Ortiz", domain.RoleCustomer},
		{"mike@fixit.local", "handyman123", "Mike Reyes", domain.RoleHandyman},
		{"sara@brightpaint.local", "handyman123", "Sara Lind", domain.RoleHandyman},
		{"new@handyhub.local", "handyman123", "Noah Pending", domain.RoleHandyman},
	}

	ids := make(map[string]int64, len(accounts))
	for _, a := range accounts {
		p, err := upsertProfile(tx, a)
		if err != nil {
			return err
		}
		ids[a.email] = p.ID
		slog.Info("account ready", "email", a.email, "role", a.role, "password", a.password)
	}

	handymen := []handyman.Profile{
		{ID: ids["mike@fixit.local"], BusinessName: "FixIt Plumbing", Bio: "Leaks, drains and water heaters.",
			HourlyRate: decimal.NewNullDecimal(decimal.NewFromInt(65)), YearsExperience: 12,
			IsVerified: true, IsActive: true, Rating: decimal.RequireFromString("4.80"), TotalJobs: 214},
		{ID: ids["sara@brightpaint.local"], BusinessName: "Bright Paint Co", Bio: "Interior and exterior painting.",
			HourlyRate: decimal.NewNullDecimal(decimal.NewFromInt(55)), YearsExperience: 7,
			IsVerified: true, IsActive: true, Rating: decimal.RequireFromString("4.60"), TotalJobs: 98},
		{ID: ids["new@handyhub.local"], BusinessName: "Noah's Odd Jobs", YearsExperience: 1,
			IsVerified: false, IsActive: true},
	}
	for i := range handymen {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&handymen[i]).Error; err != nil {
			return fmt.Errorf("handyman %s: %w", handymen[i].BusinessName, err)
		}
	}

	services := []catalog.Service{
		{Name: "Leaky faucet repair", Category: "plumbing", BasePrice: decimal.RequireFromString("80.00"), IsActive: true},
		{Name: "Drain unclogging", Category: "plumbing", BasePrice: decimal.RequireFromString("95.00"), IsActive: true},
		{Name: "Room painting", Category: "painting", BasePrice: decimal.RequireFromString("250.00"), IsActive: true},
		{Name: "Furniture assembly", Category: "assembly", BasePrice: decimal.RequireFromString("60.00"), IsActive: true},
		{Name: "Ceiling fan install", Category: "electrical", BasePrice: decimal.RequireFromString("120.00"), IsActive: true},
		{Name: "Gutter cleaning", Category: "exterior", BasePrice: decimal.RequireFromString("110.00"), IsActive: false},
	}
	for i := range services {
		if err := tx.Where(catalog.Service{Name: services[i].Name}).FirstOrCreate(&services[i]).Error; err != nil {
			return fmt.Errorf("service %s: %w", services[i].Name, err)
		}
	}

	var existing int64
	if err := tx.Model(&booking.Booking{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		slog.Info("bookings already present, skipping", "count", existing)
		return nil
	}

	now := time.Now().UTC()
	mike, sara := ids["mike@fixit.local"], ids["sara@brightpaint.local"]
	rating, review := 5, "Fixed the leak in twenty minutes, very tidy."
	bookings := []booking.Booking{
		{CustomerID: ids["alice@example.com"], ServiceID: services[0].ID, Status: booking.StatusPending,
			BookingDate: now.Add(72 * time.Hour), Address: "12 Elm Street", Description: "Kitchen tap drips."},
		{CustomerID: ids["alice@example.com"], ServiceID: services[2].ID, HandymanID: &sara, Status: booking.StatusAccepted,
			BookingDate: now.Add(120 * time.Hour), Address: "12 Elm Street", Description: "Paint the spare bedroom."},
		{CustomerID: ids["ben@example.com"], ServiceID: services[1].ID, HandymanID: &mike, Status: booking.StatusInProgress,
			BookingDate: now.Add(2 * time.Hour), Address: "8 Harbour Road"},
		{CustomerID: ids["ben@example.com"], ServiceID: services[0].ID, HandymanID: &mike, Status: booking.StatusCompleted,
			BookingDate: now.Add(-240 * time.Hour), Address: "8 Harbour Road",
			ActualCost: decimal.NewNullDecimal(decimal.RequireFromString("92.50")), CustomerRating: &rating, CustomerReview: &review},
		{CustomerID: ids["alice@example.com"], ServiceID: services[3].ID, Status: booking.StatusCancelled,
			BookingDate: now.Add(-48 * time.Hour), Address: "12 Elm Street"},
	}
	for i := range bookings {
		b := &bookings[i]
		for _, s := range services {
			if s.ID == b.ServiceID {
				b.EstimatedCost = decimal.NewNullDecimal(s.BasePrice)
			}
		}
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("booking %d: %w", i, err)
		}
	}
	slog.Info("bookings created", "count", len(bookings))
	return nil
}

func upsertProfile(tx *gorm.DB, a account) (*profile.Profile, error) {
	var p profile.Profile
	err := tx.Where("email = ?", profile.NormalizeEmail(a.email)).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(a.password)
	if err != nil {
		return nil, err
	}
	p = profile.Profile{
		Email:        profile.NormalizeEmail(a.email),
		PasswordHash: hash,
		FullName:     a.name,
		Role:         a.role,
	}
	if err := tx.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("profile %s: %w", a.email, err)
	}
	return &p, nil
}
