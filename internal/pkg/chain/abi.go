package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Minimal fungible token interface used for settlement
const erc20ABIJSON = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

// Loyalty points contract, minted by the platform key
const pointsABIJSON = `[
	{"type":"function","name":"award","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[]}
]`

var (
	erc20ABI  = mustParseABI(erc20ABIJSON)
	pointsABI = mustParseABI(pointsABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("chain: invalid embedded ABI: %v", err))
	}
	return parsed
}

// PackTransferFrom encodes transferFrom(from, to, amount)
func PackTransferFrom(from, to common.Address, amount *big.Int) ([]byte, error) {
	return erc20ABI.Pack("transferFrom", from, to, amount)
}

// PackAward encodes award(to, amount)
func PackAward(to common.Address, amount *big.Int) ([]byte, error) {
	return pointsABI.Pack("award", to, amount)
}

func unpackUint256(method string, out []byte) (*big.Int, error) {
	values, err := erc20ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("decode %s result: expected 1 value, got %d", method, len(values))
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode %s result: unexpected type %T", method, values[0])
	}
	return amount, nil
}
