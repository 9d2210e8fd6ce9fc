package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/piresc/cardsettle/internal/pkg/chain"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokenAddr    = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	treasuryAddr = "0x1111111111111111111111111111111111111111"
	pointsAddr   = "0x2222222222222222222222222222222222222222"
	userAddr     = "0x3333333333333333333333333333333333333333"
	signerAddr   = "0x4444444444444444444444444444444444444444"
)

type fakeChainClient struct {
	allowance  *big.Int
	balance    *big.Int
	readErr    error
	sendHash   common.Hash
	sendErr    error
	receiptErr error

	spender  common.Address
	sentTo   common.Address
	sentData []byte
	timeout  time.Duration
}

func (f *fakeChainClient) From() common.Address { return common.HexToAddress(signerAddr) }

func (f *fakeChainClient) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	return f.balance, f.readErr
}

func (f *fakeChainClient) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	f.spender = spender
	return f.allowance, f.readErr
}

func (f *fakeChainClient) SendContractTx(ctx context.Context, contract common.Address, data []byte) (common.Hash, error) {
	f.sentTo = contract
	f.sentData = data
	return f.sendHash, f.sendErr
}

func (f *fakeChainClient) WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	f.timeout = timeout
	if f.receiptErr != nil {
		return nil, f.receiptErr
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash}, nil
}

func chainConfig() models.ChainConfig {
	return models.ChainConfig{
		TokenAddress:          tokenAddr,
		TreasuryAddress:       treasuryAddr,
		PointsContractAddress: pointsAddr,
		ConfirmationTimeout:   90,
	}
}

func TestNewChainGW_InvalidAddresses(t *testing.T) {
	cfg := chainConfig()
	cfg.TokenAddress = "not-an-address"
	_, err := NewChainGW(cfg, &fakeChainClient{})
	assert.Error(t, err)

	cfg = chainConfig()
	cfg.TreasuryAddress = ""
	_, err = NewChainGW(cfg, &fakeChainClient{})
	assert.Error(t, err)
}

func TestChainGW_Reads(t *testing.T) {
	client := &fakeChainClient{allowance: big.NewInt(1_000_000), balance: big.NewInt(5_000_000)}
	gw, err := NewChainGW(chainConfig(), client)
	require.NoError(t, err)

	allowance, err := gw.ReadAllowance(context.Background(), userAddr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), allowance)
	assert.Equal(t, common.HexToAddress(signerAddr), client.spender)

	balance, err := gw.ReadBalance(context.Background(), userAddr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5_000_000), balance)

	_, err = gw.ReadBalance(context.Background(), "bogus")
	assert.Error(t, err)
}

func TestChainGW_ReadTransientMapsToUnavailable(t *testing.T) {
	client := &fakeChainClient{readErr: fmt.Errorf("%w: balanceOf: eof", chain.ErrTransient)}
	gw, err := NewChainGW(chainConfig(), client)
	require.NoError(t, err)

	_, err = gw.ReadBalance(context.Background(), userAddr)
	assert.ErrorIs(t, err, settlement.ErrChainUnavailable)
}

func TestChainGW_PullTransfer(t *testing.T) {
	hash := common.HexToHash("0xabc")
	client := &fakeChainClient{sendHash: hash}
	gw, err := NewChainGW(chainConfig(), client)
	require.NoError(t, err)

	txHash, err := gw.PullTransfer(context.Background(), userAddr, big.NewInt(4_762_500))
	require.NoError(t, err)
	assert.Equal(t, hash.Hex(), txHash)
	assert.Equal(t, common.HexToAddress(tokenAddr), client.sentTo)

	want, err := chain.PackTransferFrom(common.HexToAddress(userAddr), common.HexToAddress(treasuryAddr), big.NewInt(4_762_500))
	require.NoError(t, err)
	assert.Equal(t, want, client.sentData)
}

func TestChainGW_PullTransferErrors(t *testing.T) {
	hash := common.HexToHash("0xdef")

	t.Run("ambiguous broadcast keeps the hash", func(t *testing.T) {
		client := &fakeChainClient{sendHash: hash, sendErr: fmt.Errorf("%w: connection reset", chain.ErrBroadcastUnknown)}
		gw, err := NewChainGW(chainConfig(), client)
		require.NoError(t, err)

		txHash, err := gw.PullTransfer(context.Background(), userAddr, big.NewInt(1))
		assert.ErrorIs(t, err, settlement.ErrBroadcastUnknown)
		assert.Equal(t, hash.Hex(), txHash)
	})

	t.Run("rejected submission has no hash", func(t *testing.T) {
		client := &fakeChainClient{sendErr: errors.New("send transaction: nonce too low")}
		gw, err := NewChainGW(chainConfig(), client)
		require.NoError(t, err)

		txHash, err := gw.PullTransfer(context.Background(), userAddr, big.NewInt(1))
		require.Error(t, err)
		assert.NotErrorIs(t, err, settlement.ErrBroadcastUnknown)
		assert.Empty(t, txHash)
	})
}

func TestChainGW_AwardPoints(t *testing.T) {
	client := &fakeChainClient{sendHash: common.HexToHash("0x01")}
	gw, err := NewChainGW(chainConfig(), client)
	require.NoError(t, err)

	_, err = gw.AwardPoints(context.Background(), userAddr, big.NewInt(4762))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(pointsAddr), client.sentTo)

	cfg := chainConfig()
	cfg.PointsContractAddress = ""
	noPoints, err := NewChainGW(cfg, client)
	require.NoError(t, err)
	_, err = noPoints.AwardPoints(context.Background(), userAddr, big.NewInt(1))
	assert.Error(t, err)
}

func TestChainGW_WaitForConfirmation(t *testing.T) {
	tests := []struct {
		name       string
		receiptErr error
		wantErr    error
	}{
		{"mined", nil, nil},
		{"reverted", chain.ErrReverted, settlement.ErrTxReverted},
		{"timeout", fmt.Errorf("%w: 0xabc", chain.ErrReceiptTimeout), settlement.ErrConfirmationTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeChainClient{receiptErr: tt.receiptErr}
			gw, err := NewChainGW(chainConfig(), client)
			require.NoError(t, err)

			err = gw.WaitForConfirmation(context.Background(), "0xabc")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, 90*time.Second, client.timeout)
		})
	}
}
