package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/ledger"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	newFulfillmentUseCase,
)

func newFulfillmentUseCase(repos repository.Factory, ldg *ledger.Ledger, cfg *config.Config, logger *slog.Logger) *FulfillmentUseCase {
	return NewFulfillmentUseCase(repos, ldg, cfg.CancelBlockThreshold, logger)
}
