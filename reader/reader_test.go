package reader

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ncommon "github.com/tranvictor/narrator/common"
)

type fakeClient struct {
	txs      map[common.Hash]*types.Transaction
	receipts map[common.Hash]*types.Receipt
	contract map[common.Address]map[string][]byte // method -> packed output
	txErr    error
	calls    atomic.Int32
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		txs:      map[common.Hash]*types.Transaction{},
		receipts: map[common.Hash]*types.Receipt{},
		contract: map[common.Address]map[string][]byte{},
	}
}

func (f *fakeClient) TransactionByHash(_ context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	if f.txErr != nil {
		return nil, false, f.txErr
	}
	tx, found := f.txs[hash]
	if !found {
		return nil, false, ethereum.NotFound
	}
	return tx, false, nil
}

func (f *fakeClient) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	receipt, found := f.receipts[hash]
	if !found {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (f *fakeClient) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls.Add(1)
	methods, found := f.contract[*msg.To]
	if !found {
		return nil, errors.New("execution reverted")
	}
	for name, method := range ncommon.GetERC20ABI().Methods {
		if bytes.Equal(msg.Data[:4], method.ID) {
			if out, ok := methods[name]; ok {
				return out, nil
			}
		}
	}
	return nil, errors.New("execution reverted")
}

func (f *fakeClient) addToken(t *testing.T, addr common.Address, decimals uint8, symbol string) {
	t.Helper()
	erc20 := ncommon.GetERC20ABI()
	dec, err := erc20.Methods["decimals"].Outputs.Pack(decimals)
	require.NoError(t, err)
	sym, err := erc20.Methods["symbol"].Outputs.Pack(symbol)
	require.NoError(t, err)
	f.contract[addr] = map[string][]byte{"decimals": dec, "symbol": sym}
}

func signedTx(t *testing.T, key *ecdsa.PrivateKey, to *common.Address, value int64, data []byte) *types.Transaction {
	t.Helper()
	chainID := big.NewInt(5887)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     1,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(100),
		Gas:       100000,
		To:        to,
		Value:     big.NewInt(value),
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	require.NoError(t, err)
	return signed
}

func TestTransactionRecoversSender(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	client := newFakeClient()
	tx := signedTx(t, key, &to, 42, []byte{0xa9, 0x05, 0x9c, 0xbb})
	client.txs[tx.Hash()] = tx

	raw, err := NewReader(client, nil).Transaction(context.Background(), tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), raw.Hash)
	assert.Equal(t, from, raw.From)
	require.NotNil(t, raw.To)
	assert.Equal(t, to, *raw.To)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, raw.Input)
	assert.Equal(t, int64(42), raw.Value.Int64())
}

func TestTransactionNotFound(t *testing.T) {
	r := NewReader(newFakeClient(), nil)
	_, err := r.Transaction(context.Background(), common.HexToHash("0x01"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Receipt(context.Background(), common.HexToHash("0x01"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionTransportError(t *testing.T) {
	client := newFakeClient()
	client.txErr = errors.New("dial tcp: connection refused")
	_, err := NewReader(client, nil).Transaction(context.Background(), common.HexToHash("0x01"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestReceipt(t *testing.T) {
	client := newFakeClient()
	deployed := common.HexToAddress("0x3333333333333333333333333333333333333333")
	client.receipts[common.HexToHash("0x01")] = &types.Receipt{Status: types.ReceiptStatusSuccessful}
	client.receipts[common.HexToHash("0x02")] = &types.Receipt{Status: types.ReceiptStatusFailed}
	client.receipts[common.HexToHash("0x03")] = &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		ContractAddress: deployed,
	}
	r := NewReader(client, nil)

	receipt, err := r.Receipt(context.Background(), common.HexToHash("0x01"))
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Nil(t, receipt.ContractAddress)

	receipt, err = r.Receipt(context.Background(), common.HexToHash("0x02"))
	require.NoError(t, err)
	assert.False(t, receipt.Success)

	receipt, err = r.Receipt(context.Background(), common.HexToHash("0x03"))
	require.NoError(t, err)
	require.NotNil(t, receipt.ContractAddress)
	assert.Equal(t, deployed, *receipt.ContractAddress)
}

func TestTokenCache(t *testing.T) {
	client := newFakeClient()
	usdc := common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	client.addToken(t, usdc, 6, "USDC")
	cache := NewTokenCache(NewReader(client, nil))

	info, err := cache.TokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, ncommon.TokenInfo{Decimals: 6, Symbol: "USDC"}, info)
	assert.Equal(t, int32(2), client.calls.Load())

	info, err = cache.TokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, "USDC", info.Symbol)
	assert.Equal(t, int32(2), client.calls.Load())
}

func TestTokenCacheRemembersNonTokens(t *testing.T) {
	client := newFakeClient()
	cache := NewTokenCache(NewReader(client, nil))
	eoa := common.HexToAddress("0x1111111111111111111111111111111111111111")

	_, err := cache.TokenInfo(context.Background(), eoa)
	require.Error(t, err)
	calls := client.calls.Load()

	_, err = cache.TokenInfo(context.Background(), eoa)
	require.Error(t, err)
	assert.Equal(t, calls, client.calls.Load())
}
