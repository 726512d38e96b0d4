package main

import (
	"log"
	"time"

	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Reservation{},
		&domain.BusinessHours{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Seeding business hours...")
	hours := []domain.BusinessHours{
		{DayOfWeek: 0, OpenTime: "18:00", CloseTime: "28:00", IsClosed: true},
		{DayOfWeek: 1, OpenTime: "18:00", CloseTime: "28:00"},
		{DayOfWeek: 2, OpenTime: "18:00", CloseTime: "28:00"},
		{DayOfWeek: 3, OpenTime: "18:00", CloseTime: "28:00"},
		{DayOfWeek: 4, OpenTime: "18:00", CloseTime: "28:00"},
		{DayOfWeek: 5, OpenTime: "18:00", CloseTime: "28:00"},
		{DayOfWeek: 6, OpenTime: "18:00", CloseTime: "28:00"},
	}
	for i := range hours {
		h := hours[i]
		db.Exec("DELETE FROM business_hours WHERE day_of_week = ?", h.DayOfWeek)
		if err := db.Create(&h).Error; err != nil {
			log.Fatal("seed business hours failed:", err)
		}
	}

	log.Println("Seeding sample reservations...")
	db.Exec("DELETE FROM reservations")

	tomorrow := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	samples := []domain.Reservation{
		{Date: tomorrow, TimeSlot: 0, PartySize: 2, Name: "Mori", Phone: "+81 90 1234 5678", Status: domain.ReservationConfirmed},
		{Date: tomorrow, TimeSlot: 8, PartySize: 4, Name: "Tanaka", Phone: "+81 80 8765 4321", Email: "tanaka@example.com", Status: domain.ReservationConfirmed},
		{Date: tomorrow, TimeSlot: 28, PartySize: 3, Name: "Suzuki", Notes: "window seat if possible", Status: domain.ReservationConfirmed},
	}
	for i := range samples {
		if err := db.Create(&samples[i]).Error; err != nil {
			log.Fatal("seed reservations failed:", err)
		}
	}

	log.Println("Seed complete.")
}
