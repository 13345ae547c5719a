package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"leadcrm/internal/config"
	"leadcrm/internal/database"
	"leadcrm/internal/domain/audit"
	"leadcrm/internal/domain/auth"
	"leadcrm/internal/domain/catalog"
	"leadcrm/internal/domain/companyuser"
	"leadcrm/internal/domain/document"
	"leadcrm/internal/domain/lead"
	jwtsvc "leadcrm/internal/pkg/jwt"
)

// Seeds the reference catalogs and one demo company account so the API is
// usable right after a fresh migration. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&companyuser.CompanyUser{},
		&catalog.LeadStatus{},
		&catalog.LeadChannel{},
		&catalog.LeadConversion{},
		&catalog.ProductService{},
		&catalog.Country{},
		&lead.Lead{},
		&lead.LeadProductService{},
		&lead.LeadHistory{},
		&document.Document{},
		&audit.Entry{},
	); err != nil {
		log.Fatal(err)
	}

	seedCatalogs(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	seedDemoCompany(db, auth.NewService(auth.NewRepository(db), j))

	log.Println("seed complete")
}

func seedCatalogs(db *gorm.DB) {
	for _, name := range []string{"New", "Contacted", "Qualified", "Won", "Lost"} {
		upsertNamed(db, &catalog.LeadStatus{Name: name})
	}
	for _, name := range []string{"Website Forms", "Referral", "Social Media", "Cold Call", "Email Campaign"} {
		upsertNamed(db, &catalog.LeadChannel{Name: name})
	}
	for _, name := range []string{"Discovery", "Proposal Stage", "Negotiation", "Closed"} {
		upsertNamed(db, &catalog.LeadConversion{Name: name})
	}
	for _, name := range []string{"Web Development", "Mobile Development", "UI/UX Design", "Consulting", "Maintenance"} {
		upsertNamed(db, &catalog.ProductService{Name: name})
	}

	countries := []catalog.Country{
		{Name: "India", CountryCode: "91", CountryCodeAlpha: "IN"},
		{Name: "United States", CountryCode: "1", CountryCodeAlpha: "US"},
		{Name: "United Kingdom", CountryCode: "44", CountryCodeAlpha: "GB"},
		{Name: "Australia", CountryCode: "61", CountryCodeAlpha: "AU"},
		{Name: "Germany", CountryCode: "49", CountryCodeAlpha: "DE"},
	}
	for i := range countries {
		if err := db.Where(catalog.Country{CountryCodeAlpha: countries[i].CountryCodeAlpha}).
			FirstOrCreate(&countries[i]).Error; err != nil {
			log.Fatalf("seed country %s: %v", countries[i].CountryCodeAlpha, err)
		}
	}
}

func upsertNamed(db *gorm.DB, model any) {
	if err := db.Where(model).FirstOrCreate(model).Error; err != nil {
		log.Fatalf("seed %T: %v", model, err)
	}
}

func seedDemoCompany(db *gorm.DB, svc *auth.Service) {
	user, err := svc.Register(context.Background(), "Demo Company", "demo@leadcrm.local", "demo1234")
	if errors.Is(err, auth.ErrEmailExists) {
		return
	}
	if err != nil {
		log.Fatalf("seed demo user: %v", err)
	}

	cu := companyuser.CompanyUser{CompanyID: user.ID, UserID: user.ID}
	if err := db.Create(&cu).Error; err != nil {
		log.Fatalf("seed demo company user: %v", err)
	}
}
