package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/tradestore"
)

// Importer periodically pulls the remote trade store export into the local
// journal database.
type Importer struct {
	logger *zap.Logger
	cfg    *config.Config
	store  tradestore.ClientInterface
	db     *gorm.DB
}

// NewImporter creates a new importer.
func NewImporter(logger *zap.Logger, cfg *config.Config, store tradestore.ClientInterface, db *gorm.DB) *Importer {
	return &Importer{
		logger: logger,
		cfg:    cfg,
		store:  store,
		db:     db,
	}
}

// Run starts the sync loop. One sync happens immediately; afterwards the
// loop ticks at the configured interval until the context is cancelled.
func (i *Importer) Run(ctx context.Context) {
	interval := time.Duration(i.cfg.TradeStore.SyncInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i.logger.Info("Starting trade sync loop", zap.Duration("interval", interval))

	if err := i.Sync(ctx); err != nil {
		i.logger.Error("Initial sync failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			i.logger.Info("Stopping importer...")
			return
		case <-ticker.C:
			if err := i.Sync(ctx); err != nil {
				i.logger.Error("Sync failed", zap.Error(err))
			}
		}
	}
}

// Sync fetches the export and upserts each trade by its external id. Trades
// whose date cannot be normalized are skipped; they could never join a
// bucket anyway.
func (i *Importer) Sync(ctx context.Context) error {
	exports, err := i.store.GetTrades(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch trades from store: %w", err)
	}

	imported := 0
	skipped := 0
	for _, e := range exports {
		opened, ok := journal.ParseDate(e.DateOpened)
		if !ok {
			i.logger.Warn("Skipping trade with unparseable date",
				zap.String("external_id", e.ID),
				zap.String("date_opened", e.DateOpened),
			)
			skipped++
			continue
		}

		trade := models.Trade{ExternalID: e.ID}
		fields := models.Trade{
			ExternalID: e.ID,
			DateOpened: opened,
			Premium:    e.Premium,
			MarginReq:  e.MarginReq,
			PL:         e.PL,
			Strategy:   e.Strategy,
			Legs:       e.Legs,
		}
		if err := i.db.Where(models.Trade{ExternalID: e.ID}).Assign(fields).FirstOrCreate(&trade).Error; err != nil {
			return fmt.Errorf("failed to upsert trade '%s': %w", e.ID, err)
		}
		imported++
	}

	i.logger.Info("Trade sync complete",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
	return nil
}
