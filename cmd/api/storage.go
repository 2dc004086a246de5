package main

import (
	"context"

	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/jhoicas/stock-movements-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-movements-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-movements-api/pkg/config"
	"github.com/jhoicas/stock-movements-api/pkg/logger"
)

// storage repositorios fuera de transacción más el TxRunner del backend elegido.
type storage struct {
	txRunner    inventory.TxRunner
	stock       repository.StockRepository
	ledger      repository.LedgerRepository
	documents   repository.DocumentRepository
	adjustments repository.AdjustmentRepository
	products    repository.ProductRepository
	warehouses  repository.WarehouseRepository
	categories  repository.CategoryRepository
	levels      repository.InventoryLevelRepository
	analytics   repository.AnalyticsRepository
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.New()
		return &storage{
			txRunner:    s,
			stock:       s.Stock(),
			ledger:      s.Ledger(),
			documents:   s.Documents(),
			adjustments: s.Adjustments(),
			products:    s.Products(),
			warehouses:  s.Warehouses(),
			categories:  s.Categories(),
			levels:      s.Levels(),
			analytics:   s.Analytics(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema de base de datos aplicado")
	}
	return &storage{
		txRunner:    postgres.NewTxRunner(pool, cfg.DB.TxRetries, log.Component("tx")),
		stock:       postgres.NewStockRepository(pool),
		ledger:      postgres.NewLedgerRepository(pool),
		documents:   postgres.NewDocumentRepository(pool),
		adjustments: postgres.NewAdjustmentRepository(pool),
		products:    postgres.NewProductRepository(pool),
		warehouses:  postgres.NewWarehouseRepository(pool),
		categories:  postgres.NewCategoryRepository(pool),
		levels:      postgres.NewInventoryLevelRepository(pool),
		analytics:   postgres.NewAnalyticsRepository(pool),
		close:       pool.Close,
	}, nil
}
