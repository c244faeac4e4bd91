package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"github.com/rpk-planning/capsim/pkg/application/services/simulation"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
	"github.com/rpk-planning/capsim/pkg/infrastructure/repositories/csv"
	"github.com/rpk-planning/capsim/pkg/infrastructure/repositories/memory"
	"github.com/rpk-planning/capsim/pkg/infrastructure/repositories/postgres"
	"github.com/rpk-planning/capsim/pkg/interfaces/httpapi"
)

func main() {
	var (
		baseFile = flag.String("base", "base.csv", "Path to base dataset CSV file")
		addr     = flag.String("addr", "", "Listen address (default :PORT or :8080)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	loader := csv.NewLoader()
	baseRows, err := loader.LoadBaseRows(ctx, *baseFile)
	if err != nil {
		logger.Error("failed to load base dataset", "file", *baseFile, "error", err)
		os.Exit(1)
	}
	logger.Info("base dataset loaded", "file", *baseFile, "rows", len(baseRows))

	store, err := openStore(ctx, logger)
	if err != nil {
		logger.Error("failed to open scenario store", "error", err)
		os.Exit(1)
	}

	evaluator := simulation.NewEvaluator(memory.NewBaseSource(baseRows), store)
	scenarios := simulation.NewScenarioService(store)
	server := httpapi.NewServer(evaluator, scenarios, logger)

	listenAddr := *addr
	if listenAddr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		listenAddr = ":" + port
	}

	logger.Info("starting server", "addr", listenAddr)
	if err := server.Router().Run(listenAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openStore selects the scenario store backend: Postgres when DATABASE_URL
// is set, in-memory otherwise.
func openStore(ctx context.Context, logger *slog.Logger) (repositories.ScenarioStore, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Info("using in-memory scenario store")
		return memory.NewScenarioStore(), nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := postgres.NewScenarioStore(db)
	if err := store.InitSchema(ctx); err != nil {
		return nil, err
	}
	logger.Info("using postgres scenario store")
	return store, nil
}
