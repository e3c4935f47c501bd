// seed carga ítems del menú desde un CSV (nombre,precio) en la base configurada.
//
// Uso: go run ./cmd/seed -file menu.csv [-latin1] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/catalog"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/postgres"
	"github.com/Shreyas100100/Expense-Tracker/pkg/config"
	"github.com/Shreyas100100/Expense-Tracker/pkg/logger"
)

func main() {
	file := flag.String("file", "menu.csv", "CSV con columnas nombre,precio")
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo validar, sin escribir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	defer f.Close()

	items, err := readItems(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("items", len(items)).Msg("CSV leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := catalog.NewItemUseCase(postgres.NewItemRepository(pool))
	created, failed := 0, 0
	for _, in := range items {
		if _, err := uc.Create(ctx, in); err != nil {
			failed++
			log.Warn().Err(err).Str("name", in.Name).Msg("ítem omitido")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("failed", failed).Msg("seed terminado")
}
