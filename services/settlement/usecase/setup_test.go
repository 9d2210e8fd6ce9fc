package usecase

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement/mocks"
	"github.com/stretchr/testify/require"
)

const (
	walletAddress   = "0x3333333333333333333333333333333333333333"
	tokenAddress    = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	treasuryAddress = "0x1111111111111111111111111111111111111111"
)

type fixture struct {
	ledger *mocks.MockLedgerRepo
	cache  *mocks.MockCacheRepo
	chain  *mocks.MockChainGW
	rates  *mocks.MockRateGW
	events *mocks.MockEventGW
	uc     *settlementUC

	card    *models.Card
	user    *models.User
	payment *models.Payment
}

func testConfig() *models.Config {
	cfg := &models.Config{}
	cfg.Settlement.PointsDivisor = 1000
	cfg.Settlement.FiatDecimals = 2
	cfg.Chain.TokenDecimals = 6
	cfg.Chain.TokenSymbol = "USDC"
	cfg.FX.QuoteAsset = "USD"
	return cfg
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithConfig(t, testConfig())
}

func newFixtureWithConfig(t *testing.T, cfg *models.Config) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		ledger: mocks.NewMockLedgerRepo(ctrl),
		cache:  mocks.NewMockCacheRepo(ctrl),
		chain:  mocks.NewMockChainGW(ctrl),
		rates:  mocks.NewMockRateGW(ctrl),
		events: mocks.NewMockEventGW(ctrl),
	}

	uc, err := NewSettlementUC(cfg, f.ledger, f.cache, f.chain, f.rates, f.events)
	require.NoError(t, err)
	f.uc = uc.(*settlementUC)
	t.Cleanup(f.uc.Wait)

	f.user = &models.User{ID: uuid.New(), WalletAddress: walletAddress}
	f.card = &models.Card{ID: uuid.New(), UserID: f.user.ID, ExternalID: "card_ext_1", Status: models.CardStatusActive}
	f.payment = &models.Payment{
		ID:                  uuid.New(),
		CardID:              f.card.ID,
		ExternalID:          "auth_1",
		ProgramAmountMinor:  "375",
		ProgramCurrency:     "GBP",
		MerchantName:        "Coffee Shop",
		MerchantAmountMinor: "450",
		MerchantCurrency:    "EUR",
		Status:              models.PaymentStatusStarted,
	}
	return f
}

func gbpRate(rate float64) models.FXRate {
	return models.FXRate{Base: "GBP", Quote: "USD", Rate: rate, AsOf: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

// expectOwner sets up the Card to User resolution
func (f *fixture) expectOwner() {
	f.ledger.EXPECT().GetCardByID(gomock.Any(), f.card.ID).Return(f.card, nil)
	f.ledger.EXPECT().GetUserByID(gomock.Any(), f.user.ID).Return(f.user, nil)
}
