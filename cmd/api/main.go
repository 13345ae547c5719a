package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"leadcrm/internal/config"
	"leadcrm/internal/database"
	"leadcrm/internal/domain/audit"
	"leadcrm/internal/domain/auth"
	"leadcrm/internal/domain/catalog"
	"leadcrm/internal/domain/companyuser"
	"leadcrm/internal/domain/document"
	"leadcrm/internal/domain/lead"
	"leadcrm/internal/middleware"
	jwtsvc "leadcrm/internal/pkg/jwt"
)

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

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	auditRec := audit.NewRecorder(db)
	storage := document.NewStorage(cfg.UploadsDir, cfg.StaticBase, cfg.MaxFileBytes)

	userRepo := auth.NewRepository(db)
	companyUserRepo := companyuser.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	leadRepo := lead.NewRepository(db)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogHandler := catalog.NewHandler(catalogRepo)

	leadService := lead.NewService(
		db,
		leadRepo,
		catalogRepo,
		companyUserRepo,
		storage,
		auditRec,
		cfg.DateFormat,
		cfg.MaxFileBytes,
	)
	leadHandler := lead.NewHandler(leadService, auditRec)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.StaticBase, cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterRoutes(protected)
			leadHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
