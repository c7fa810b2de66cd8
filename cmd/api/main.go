package main

import (
	"os"

	"flowbit/internal/database"
	"flowbit/internal/handler"
	"flowbit/internal/ingest"
	"flowbit/internal/logger"
	"flowbit/internal/repository"
	"flowbit/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found, using environment")
	}
	logger.Setup()

	db, err := database.NewConnection(databaseDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	categoryRepo := repository.NewCategoryRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	resolver := ingest.NewResolver(categoryRepo, vendorRepo, customerRepo)
	assembler := ingest.NewAssembler(invoiceRepo, txManager, ingest.NewNumberGenerator())
	ingestor := ingest.NewIngestor(resolver, assembler, logger.WithComponent("ingest"))

	invoiceService := service.NewInvoiceService(invoiceRepo)
	statsService := service.NewStatsService(statsRepo)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	statsHandler := handler.NewStatsHandler(statsService)
	ingestHandler := handler.NewIngestHandler(ingestor)

	// Set up Gin Router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Register API Routes
	invoiceHandler.RegisterRoutes(router.Group(""))
	statsHandler.RegisterRoutes(router.Group(""))
	ingestHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server listening")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func databaseDSN() string {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	dbHost := get("DB_HOST", "localhost")
	dbPort := get("DB_PORT", "5432")
	dbUser := get("DB_USER", "postgres")
	dbPassword := get("DB_PASSWORD", "postgres")
	dbName := get("DB_NAME", "postgres")
	dbSslMode := get("DB_SSLMODE", "disable")

	return "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
}
