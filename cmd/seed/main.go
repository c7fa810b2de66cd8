package main

import (
	"context"
	"os"

	"flowbit/internal/database"
	"flowbit/internal/ingest"
	"flowbit/internal/logger"
	"flowbit/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Loads a raw invoice batch file into the database, or seeds a minimal
// sample dataset when no batch file is available.
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found, using environment")
	}
	logger.Setup()

	db, err := database.NewConnection(databaseDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	txManager := repository.NewTransactionManager(db)
	resolver := ingest.NewResolver(
		repository.NewCategoryRepository(db),
		repository.NewVendorRepository(db),
		repository.NewCustomerRepository(db),
	)
	assembler := ingest.NewAssembler(repository.NewInvoiceRepository(db), txManager, ingest.NewNumberGenerator())
	ingestor := ingest.NewIngestor(resolver, assembler, logger.WithComponent("seed"))

	ctx := context.Background()
	report, err := run(ctx, ingestor, batchPath())
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion run failed")
	}

	log.Info().
		Int("processed", report.RecordsProcessed).
		Int("failed", len(report.Failures)).
		Int("warnings", len(report.Warnings)).
		Msg("done")
	for _, f := range report.Failures {
		log.Warn().Int("record", f.Index).Str("reason", f.Reason).Msg("record not ingested")
	}
}

func run(ctx context.Context, ingestor *ingest.Ingestor, path string) (ingest.Report, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No input source at all: fall back to sample data. An empty
			// batch file is a normal zero-record run, not a fallback.
			return ingestor.Seed(ctx)
		}
		return ingest.Report{}, err
	}
	defer file.Close()

	batch, err := ingest.DecodeBatch(file)
	if err != nil {
		return ingest.Report{}, err
	}
	return ingestor.Run(ctx, batch)
}

func batchPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	if p := os.Getenv("SEED_FILE"); p != "" {
		return p
	}
	return "data/Analytics_Test_Data.json"
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
