package usecase

import (
	"errors"
	"math/big"
	"sync"

	"github.com/piresc/cardsettle/internal/pkg/fx"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
)

// settlementUC implements the settlement.SettlementUC interface
type settlementUC struct {
	cfg       *models.Config
	ledger    settlement.LedgerRepo
	cache     settlement.CacheRepo
	chainGW   settlement.ChainGW
	rateGW    settlement.RateGW
	eventGW   settlement.EventGW
	converter *fx.Converter
	divisor   *big.Int

	// background tracks detached side effects so tests and shutdown can wait on them
	background sync.WaitGroup
}

// NewSettlementUC creates a new settlement use case
func NewSettlementUC(
	cfg *models.Config,
	ledger settlement.LedgerRepo,
	cache settlement.CacheRepo,
	chainGW settlement.ChainGW,
	rateGW settlement.RateGW,
	eventGW settlement.EventGW,
) (settlement.SettlementUC, error) {
	if cfg.Settlement.PointsDivisor <= 0 {
		return nil, errors.New("points divisor must be positive")
	}

	return &settlementUC{
		cfg:       cfg,
		ledger:    ledger,
		cache:     cache,
		chainGW:   chainGW,
		rateGW:    rateGW,
		eventGW:   eventGW,
		converter: fx.NewConverter(cfg.Settlement.FiatDecimals, cfg.Chain.TokenDecimals),
		divisor:   big.NewInt(cfg.Settlement.PointsDivisor),
	}, nil
}

// Wait blocks until detached side effects have finished
func (uc *settlementUC) Wait() {
	uc.background.Wait()
}
