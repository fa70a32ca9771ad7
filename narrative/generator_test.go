package narrative

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/narrator/addrbook"
	ncommon "github.com/tranvictor/narrator/common"
	"github.com/tranvictor/narrator/txdecoder"
)

var (
	alice  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	sale   = common.HexToAddress("0x3333333333333333333333333333333333333333")
	router = common.HexToAddress("0x4444444444444444444444444444444444444444")
	usdc   = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	weth   = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	txHash = common.HexToHash("0xabcd" + strings.Repeat("0", 56) + "ef01")
)

const txSuffix = " [tx: 0xabcd...ef01]"

var registry = txdecoder.NewDefaultRegistry()

func decoder() *txdecoder.Decoder {
	return txdecoder.NewDecoder(registry, nil, nil)
}

func wei(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, s)
	return v
}

// decodeCall ABI-encodes args for the registered function with the given
// canonical signature and decodes the result, as the pipeline would.
func decodeCall(t *testing.T, canonical string, to common.Address, args ...any) *txdecoder.DecodedCall {
	t.Helper()
	for _, entry := range registry.Entries() {
		if entry.Signature.Canonical() != canonical {
			continue
		}
		method := entry.Method()
		packed, err := method.Inputs.Pack(args...)
		require.NoError(t, err)
		input := append(append([]byte{}, entry.Selector[:]...), packed...)
		call, err := decoder().Decode(input, &to)
		require.NoError(t, err)
		return call
	}
	t.Fatalf("%s is not registered", canonical)
	return nil
}

type tokenMap map[common.Address]ncommon.TokenInfo

func (m tokenMap) TokenInfo(_ context.Context, token common.Address) (ncommon.TokenInfo, error) {
	info, found := m[token]
	if !found {
		return ncommon.TokenInfo{}, fmt.Errorf("no metadata for %s", token.Hex())
	}
	return info, nil
}

type countingResolver struct {
	calls atomic.Int32
	inner addrbook.LabelResolver
}

func (c *countingResolver) ResolveLabel(ctx context.Context, addr common.Address) (string, error) {
	c.calls.Add(1)
	return c.inner.ResolveLabel(ctx, addr)
}

func TestFungibleTokenNarratives(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()

	tcs := []struct {
		name     string
		call     *txdecoder.DecodedCall
		expected string
	}{
		{
			name:     "transfer",
			call:     decodeCall(t, "transfer(address,uint256)", usdc, bob, wei(t, "1500000000000000000")),
			expected: "0x1111...1111 transferred 1.5 tokens to 0x2222...2222 via contract at 0xa0b8...eb48",
		},
		{
			name:     "approve",
			call:     decodeCall(t, "approve(address,uint256)", usdc, bob, wei(t, "1000000000000000000000")),
			expected: "0x1111...1111 approved 0x2222...2222 to spend 1000 tokens from contract at 0xa0b8...eb48",
		},
		{
			name:     "transferFrom",
			call:     decodeCall(t, "transferFrom(address,address,uint256)", usdc, bob, sale, wei(t, "1")),
			expected: "0x1111...1111 transferred 0.000000000000000001 tokens from 0x2222...2222 to 0x3333...3333 via contract at 0xa0b8...eb48",
		},
		{
			name:     "mint",
			call:     decodeCall(t, "mint(address,uint256)", usdc, bob, wei(t, "2000000000000000000")),
			expected: "0x1111...1111 minted 2 tokens to 0x2222...2222 via contract at 0xa0b8...eb48",
		},
		{
			name:     "burn",
			call:     decodeCall(t, "burn(uint256)", usdc, wei(t, "500000000000000000")),
			expected: "0x1111...1111 burned 0.5 tokens via contract at 0xa0b8...eb48",
		},
		{
			name: "unknown function in family",
			call: &txdecoder.DecodedCall{
				FunctionName: "permit",
				ContractType: txdecoder.FungibleToken,
				Selector:     "0xd505accf",
			},
			expected: "0x1111...1111 called unknown ERC-20 function",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := g.GenerateNarrative(ctx, tc.call, alice, &usdc, txHash, false)
			assert.Equal(t, tc.expected+txSuffix, got)
		})
	}
}

func TestFungibleTokenUsesTokenMetadata(t *testing.T) {
	g := NewGenerator(WithTokenInfo(tokenMap{usdc: {Decimals: 6, Symbol: "USDC"}}))
	call := decodeCall(t, "transfer(address,uint256)", usdc, bob, wei(t, "1500000"))

	got := g.GenerateNarrative(context.Background(), call, alice, &usdc, txHash, false)
	assert.Equal(t, "0x1111...1111 transferred 1.5 USDC to 0x2222...2222 via contract at 0xa0b8...eb48"+txSuffix, got)

	// failing metadata falls back to 18 decimals
	other := common.HexToAddress("0x5555555555555555555555555555555555555555")
	call = decodeCall(t, "transfer(address,uint256)", other, bob, wei(t, "1500000"))
	got = g.GenerateNarrative(context.Background(), call, alice, &other, txHash, false)
	assert.Equal(t, "0x1111...1111 transferred 0.0000000000015 tokens to 0x2222...2222 via contract at 0x5555...5555"+txSuffix, got)
}

func TestLocalWalletRendersYou(t *testing.T) {
	g := NewGenerator(WithWallet(alice))
	call := decodeCall(t, "transferFrom(address,address,uint256)", usdc, alice, bob, wei(t, "1000000000000000000"))

	got := g.GenerateNarrative(context.Background(), call, alice, &usdc, txHash, true)
	assert.Equal(t, "you transferred 1 tokens from you to 0x2222...2222 via contract at 0xa0b8...eb48"+txSuffix, got)

	got = g.GenerateNarrative(context.Background(), call, alice, &usdc, txHash, false)
	assert.Equal(t, "0x1111...1111 transferred 1 tokens from 0x1111...1111 to 0x2222...2222 via contract at 0xa0b8...eb48"+txSuffix, got)

	// isLocalWallet without a configured wallet changes nothing
	got = NewGenerator().GenerateNarrative(context.Background(), call, alice, &usdc, txHash, true)
	assert.True(t, strings.HasPrefix(got, "0x1111...1111 transferred"), got)
}

func TestLabelsReplaceAddresses(t *testing.T) {
	labels := addrbook.Map{
		ncommon.LowerHex(usdc): "USDC",
		ncommon.LowerHex(bob):  "Bob",
	}
	g := NewGenerator(WithLabelResolver(labels), WithWallet(alice))
	call := decodeCall(t, "transfer(address,uint256)", usdc, bob, wei(t, "3000000000000000000"))

	got := g.GenerateNarrative(context.Background(), call, alice, &usdc, txHash, true)
	assert.Equal(t, "you transferred 3 tokens to Bob via contract at USDC"+txSuffix, got)
}

func TestLabelFailuresFallBackToAddresses(t *testing.T) {
	failing := addrbook.ResolverFunc(func(context.Context, common.Address) (string, error) {
		return "", errors.New("label service is down")
	})
	g := NewGenerator(WithLabelResolver(failing))
	call := decodeCall(t, "transfer(address,uint256)", usdc, bob, wei(t, "1000000000000000000"))

	got := g.GenerateNarrative(context.Background(), call, alice, &usdc, txHash, false)
	assert.Equal(t, "0x1111...1111 transferred 1 tokens to 0x2222...2222 via contract at 0xa0b8...eb48"+txSuffix, got)
}

func TestCancelledContextSkipsLabels(t *testing.T) {
	resolver := &countingResolver{inner: addrbook.Map{ncommon.LowerHex(usdc): "USDC"}}
	g := NewGenerator(WithLabelResolver(resolver))
	call := decodeCall(t, "transfer(address,uint256)", usdc, bob, wei(t, "1000000000000000000"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := g.GenerateNarrative(ctx, call, alice, &usdc, txHash, false)
	assert.Equal(t, "0x1111...1111 transferred 1 tokens to 0x2222...2222 via contract at 0xa0b8...eb48"+txSuffix, got)
	assert.Equal(t, int32(0), resolver.calls.Load())
}

func TestFullAddresses(t *testing.T) {
	g := NewGenerator(WithFullAddresses(true))
	call := decodeCall(t, "transfer(address,uint256)", usdc, bob, wei(t, "1000000000000000000"))

	got := g.GenerateNarrative(context.Background(), call, alice, &usdc, txHash, false)
	assert.Equal(t,
		"0x1111111111111111111111111111111111111111 transferred 1 tokens to "+
			"0x2222222222222222222222222222222222222222 via contract at "+
			"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"+txSuffix, got)
}

func TestDeterminism(t *testing.T) {
	g := NewGenerator(
		WithWallet(alice),
		WithLabelResolver(addrbook.Map{ncommon.LowerHex(sale): "Sale"}),
		WithTokenInfo(tokenMap{usdc: {Decimals: 6, Symbol: "USDC"}}),
	)
	call := decodeCall(t, "invest(address,uint256)", sale, usdc, wei(t, "100000000"))
	first := g.GenerateNarrative(context.Background(), call, alice, &sale, txHash, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, g.GenerateNarrative(context.Background(), call, alice, &sale, txHash, true))
	}
}

func TestContractCreation(t *testing.T) {
	g := NewGenerator()
	deployed, err := decoder().DecodeTransaction(txdecoder.RawTransaction{
		Hash:            txHash,
		From:            alice,
		Input:           []byte{0x60, 0x80, 0x60, 0x40},
		ContractAddress: &bob,
	})
	require.NoError(t, err)

	got := g.GenerateNarrative(context.Background(), deployed, alice, nil, txHash, false)
	assert.Equal(t, "0x1111...1111 deployed contract at 0x2222222222222222222222222222222222222222"+txSuffix, got)

	labeled := NewGenerator(WithLabelResolver(addrbook.Map{ncommon.LowerHex(bob): "Token Factory"}))
	got = labeled.GenerateNarrative(context.Background(), deployed, alice, nil, txHash, false)
	assert.Equal(t, "0x1111...1111 deployed contract at Token Factory"+txSuffix, got)

	bare, err := decoder().Decode(nil, nil)
	require.NoError(t, err)
	got = g.GenerateNarrative(context.Background(), bare, alice, nil, txHash, false)
	assert.Equal(t, "0x1111...1111 deployed contract"+txSuffix, got)
	assert.Contains(t, got, "deployed contract")
}

func TestUnknownSelector(t *testing.T) {
	call, err := decoder().Decode(append([]byte{0xde, 0xad, 0xbe, 0xef}, make([]byte, 32)...), &usdc)
	require.NoError(t, err)

	got := NewGenerator().GenerateNarrative(context.Background(), call, alice, &usdc, txHash, false)
	assert.Equal(t, "0x1111...1111 called unknown function 0xdeadbeef at 0xa0b8...eb48"+txSuffix, got)
}

func TestMissingDestination(t *testing.T) {
	call := decodeCall(t, "activate()", sale)
	got := NewGenerator().GenerateNarrative(context.Background(), call, alice, nil, txHash, false)
	assert.Equal(t, "0x1111...1111 activated primary sale at unknown contract"+txSuffix, got)
}

func TestFailedSuffix(t *testing.T) {
	call := decodeCall(t, "pause()", sale)
	got := NewGenerator().Generate(context.Background(), Input{
		Call:   call,
		From:   alice,
		To:     &sale,
		Hash:   txHash,
		Failed: true,
	})
	assert.Equal(t, "0x1111...1111 paused primary sale at 0x3333...3333 (transaction failed)"+txSuffix, got)
}

func TestUndecodedCall(t *testing.T) {
	g := NewGenerator()
	got := g.Generate(context.Background(), Input{From: alice, To: &sale, Hash: txHash})
	assert.Equal(t, "0x1111...1111 called contract at 0x3333...3333"+txSuffix, got)

	got = g.Generate(context.Background(), Input{From: alice, Hash: txHash})
	assert.Equal(t, "0x1111...1111 deployed contract"+txSuffix, got)
}

func TestNativeTransfer(t *testing.T) {
	g := NewGenerator(WithNativeToken("OM", 18))
	call, err := decoder().DecodeTransaction(txdecoder.RawTransaction{
		Hash:  txHash,
		From:  alice,
		To:    &bob,
		Value: wei(t, "2500000000000000000"),
	})
	require.NoError(t, err)

	got := g.GenerateNarrative(context.Background(), call, alice, &bob, txHash, false)
	assert.Equal(t, "0x1111...1111 sent 2.5 OM to 0x2222...2222"+txSuffix, got)

	bare, err := decoder().Decode(nil, &bob)
	require.NoError(t, err)
	got = g.GenerateNarrative(context.Background(), bare, alice, &bob, txHash, false)
	assert.Equal(t, "0x1111...1111 sent OM to 0x2222...2222"+txSuffix, got)

	got = g.Generate(context.Background(), Input{Call: bare, From: alice, To: &bob, Hash: txHash, Value: wei(t, "1000000000000000000")})
	assert.Equal(t, "0x1111...1111 sent 1 OM to 0x2222...2222"+txSuffix, got)
}

func TestPrimarySaleNarratives(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()
	restricted := []common.Address{bob, router}

	tcs := []struct {
		name     string
		call     *txdecoder.DecodedCall
		expected string
	}{
		{
			name:     "invest falls back to 6 decimals",
			call:     decodeCall(t, "invest(address,uint256)", sale, usdc, wei(t, "250000000")),
			expected: "0x1111...1111 invested 250 tokens (0xa0b8...eb48) in primary sale at 0x3333...3333",
		},
		{
			name:     "activate",
			call:     decodeCall(t, "activate()", sale),
			expected: "0x1111...1111 activated primary sale at 0x3333...3333",
		},
		{
			name:     "endSale",
			call:     decodeCall(t, "endSale()", sale),
			expected: "0x1111...1111 ended primary sale at 0x3333...3333",
		},
		{
			name:     "initializeSettlement",
			call:     decodeCall(t, "initializeSettlement(address,address)", sale, usdc, bob),
			expected: "0x1111...1111 initialized settlement with asset token 0xa0b8...eb48 from owner 0x2222...2222 at 0x3333...3333",
		},
		{
			name:     "settleBatch without restrictions",
			call:     decodeCall(t, "settleBatch(uint256,address[])", sale, big.NewInt(50), []common.Address{}),
			expected: "0x1111...1111 settled batch of 50 investors at 0x3333...3333",
		},
		{
			name:     "settleBatch with restrictions",
			call:     decodeCall(t, "settleBatch(uint256,address[])", sale, big.NewInt(50), restricted),
			expected: "0x1111...1111 settled batch of 50 investors (excluded 2 restricted wallets) at 0x3333...3333",
		},
		{
			name:     "finalizeSettlement",
			call:     decodeCall(t, "finalizeSettlement()", sale),
			expected: "0x1111...1111 finalized settlement at 0x3333...3333",
		},
		{
			name:     "claimRefund",
			call:     decodeCall(t, "claimRefund()", sale),
			expected: "0x1111...1111 claimed refund from primary sale at 0x3333...3333",
		},
		{
			name:     "cancel",
			call:     decodeCall(t, "cancel()", sale),
			expected: "0x1111...1111 cancelled primary sale at 0x3333...3333",
		},
		{
			name:     "unpause",
			call:     decodeCall(t, "unpause()", sale),
			expected: "0x1111...1111 unpaused primary sale at 0x3333...3333",
		},
		{
			name:     "topUpRefunds",
			call:     decodeCall(t, "topUpRefunds(address,uint256)", sale, usdc, wei(t, "1000000")),
			expected: "0x1111...1111 topped up refund pool with 1 tokens (0xa0b8...eb48) at 0x3333...3333",
		},
		{
			name:     "emergencyWithdrawERC20",
			call:     decodeCall(t, "emergencyWithdrawERC20(address,address,uint256)", sale, usdc, bob, wei(t, "7500000")),
			expected: "0x1111...1111 emergency withdrew 7.5 tokens (0xa0b8...eb48) to 0x2222...2222 from 0x3333...3333",
		},
		{
			name: "unknown function in family",
			call: &txdecoder.DecodedCall{
				FunctionName: "setPrice",
				ContractType: txdecoder.PrimarySale,
				Selector:     "0x91b7f5ed",
			},
			expected: "0x1111...1111 called unknown PrimarySale function at 0x3333...3333",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := g.GenerateNarrative(ctx, tc.call, alice, &sale, txHash, false)
			assert.Equal(t, tc.expected+txSuffix, got)
		})
	}
}

func TestNonFungibleTokenNarratives(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()
	collection := common.HexToAddress("0x6666666666666666666666666666666666666666")

	tcs := []struct {
		name     string
		call     *txdecoder.DecodedCall
		expected string
	}{
		{
			name:     "safeTransferFrom",
			call:     decodeCall(t, "safeTransferFrom(address,address,uint256)", collection, alice, bob, big.NewInt(42)),
			expected: "0x1111...1111 transferred token #42 from 0x1111...1111 to 0x2222...2222 via collection at 0x6666...6666",
		},
		{
			name:     "safeTransferFrom with data",
			call:     decodeCall(t, "safeTransferFrom(address,address,uint256,bytes)", collection, alice, bob, big.NewInt(7), []byte{0x01}),
			expected: "0x1111...1111 transferred token #7 from 0x1111...1111 to 0x2222...2222 via collection at 0x6666...6666",
		},
		{
			name:     "setApprovalForAll granted",
			call:     decodeCall(t, "setApprovalForAll(address,bool)", collection, bob, true),
			expected: "0x1111...1111 granted operator approval for 0x2222...2222 on collection at 0x6666...6666",
		},
		{
			name:     "setApprovalForAll revoked",
			call:     decodeCall(t, "setApprovalForAll(address,bool)", collection, bob, false),
			expected: "0x1111...1111 revoked operator approval for 0x2222...2222 on collection at 0x6666...6666",
		},
		{
			name: "function without template",
			call: &txdecoder.DecodedCall{
				FunctionName: "approve",
				ContractType: txdecoder.NonFungibleToken,
				Selector:     "0x095ea7b3",
			},
			expected: "0x1111...1111 called ERC-721 function 'approve' at 0x6666...6666",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := g.GenerateNarrative(ctx, tc.call, alice, &collection, txHash, false)
			assert.Equal(t, tc.expected+txSuffix, got)
		})
	}
}

func TestPoolManagerNarratives(t *testing.T) {
	g := NewGenerator(WithTokenInfo(tokenMap{
		usdc: {Decimals: 6, Symbol: "USDC"},
		weth: {Decimals: 18, Symbol: "WETH"},
	}))
	ctx := context.Background()
	deadline := big.NewInt(1700000000)
	usdcToWeth := []common.Address{usdc, weth}
	wethToUsdc := []common.Address{weth, usdc}
	unlisted := common.HexToAddress("0x7777777777777777777777777777777777777777")

	tcs := []struct {
		name     string
		call     *txdecoder.DecodedCall
		value    *big.Int
		expected string
	}{
		{
			name: "swapExactTokensForTokens",
			call: decodeCall(t, "swapExactTokensForTokens(uint256,uint256,address[],address,uint256)", router,
				wei(t, "1000000"), wei(t, "500000000000000000"), usdcToWeth, alice, deadline),
			expected: "0x1111...1111 swapped 1 USDC for at least 0.5 WETH via router at 0x4444...4444",
		},
		{
			name: "swapTokensForExactTokens",
			call: decodeCall(t, "swapTokensForExactTokens(uint256,uint256,address[],address,uint256)", router,
				wei(t, "2000000000000000000"), wei(t, "5000000000"), usdcToWeth, alice, deadline),
			expected: "0x1111...1111 swapped at most 5000 USDC for 2 WETH via router at 0x4444...4444",
		},
		{
			name: "swapExactETHForTokens",
			call: decodeCall(t, "swapExactETHForTokens(uint256,address[],address,uint256)", router,
				wei(t, "1000000000"), wethToUsdc, alice, deadline),
			value:    wei(t, "1000000000000000000"),
			expected: "0x1111...1111 swapped 1 ETH for at least 1000 USDC via router at 0x4444...4444",
		},
		{
			name: "swapETHForExactTokens",
			call: decodeCall(t, "swapETHForExactTokens(uint256,address[],address,uint256)", router,
				wei(t, "1000000000"), wethToUsdc, alice, deadline),
			value:    wei(t, "600000000000000000"),
			expected: "0x1111...1111 swapped at most 0.6 ETH for 1000 USDC via router at 0x4444...4444",
		},
		{
			name: "swapExactTokensForETH",
			call: decodeCall(t, "swapExactTokensForETH(uint256,uint256,address[],address,uint256)", router,
				wei(t, "3000000"), wei(t, "1000000000000000"), usdcToWeth, alice, deadline),
			expected: "0x1111...1111 swapped 3 USDC for at least 0.001 ETH via router at 0x4444...4444",
		},
		{
			name: "swapTokensForExactETH",
			call: decodeCall(t, "swapTokensForExactETH(uint256,uint256,address[],address,uint256)", router,
				wei(t, "1000000000000000000"), wei(t, "4000000000"), usdcToWeth, alice, deadline),
			expected: "0x1111...1111 swapped at most 4000 USDC for 1 ETH via router at 0x4444...4444",
		},
		{
			name: "swap through an unlisted token",
			call: decodeCall(t, "swapExactTokensForTokens(uint256,uint256,address[],address,uint256)", router,
				wei(t, "1000000000000000000"), wei(t, "1000000"), []common.Address{unlisted, usdc}, alice, deadline),
			expected: "0x1111...1111 swapped 1 0x7777...7777 for at least 1 USDC via router at 0x4444...4444",
		},
		{
			name: "addLiquidity",
			call: decodeCall(t, "addLiquidity(address,address,uint256,uint256,uint256,uint256,address,uint256)", router,
				usdc, weth, wei(t, "2000000000"), wei(t, "1000000000000000000"), big.NewInt(0), big.NewInt(0), alice, deadline),
			expected: "0x1111...1111 added liquidity of 2000 USDC and 1 WETH at 0x4444...4444",
		},
		{
			name: "addLiquidityETH",
			call: decodeCall(t, "addLiquidityETH(address,uint256,uint256,uint256,address,uint256)", router,
				usdc, wei(t, "2000000000"), big.NewInt(0), big.NewInt(0), alice, deadline),
			value:    wei(t, "1000000000000000000"),
			expected: "0x1111...1111 added liquidity of 2000 USDC and 1 ETH at 0x4444...4444",
		},
		{
			name: "removeLiquidity",
			call: decodeCall(t, "removeLiquidity(address,address,uint256,uint256,uint256,address,uint256)", router,
				usdc, weth, wei(t, "1500000000000000000"), big.NewInt(0), big.NewInt(0), alice, deadline),
			expected: "0x1111...1111 removed 1.5 LP tokens of USDC/WETH liquidity at 0x4444...4444",
		},
		{
			name: "removeLiquidityETH",
			call: decodeCall(t, "removeLiquidityETH(address,uint256,uint256,uint256,address,uint256)", router,
				usdc, wei(t, "1000000000000000000"), big.NewInt(0), big.NewInt(0), alice, deadline),
			expected: "0x1111...1111 removed 1 LP tokens of USDC/ETH liquidity at 0x4444...4444",
		},
		{
			name: "unknown function in family",
			call: &txdecoder.DecodedCall{
				FunctionName: "skim",
				ContractType: txdecoder.PoolManager,
				Selector:     "0xbc25cf77",
			},
			expected: "0x1111...1111 called unknown pool function 'skim' at 0x4444...4444",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Generate(ctx, Input{Call: tc.call, From: alice, To: &router, Hash: txHash, Value: tc.value})
			assert.Equal(t, tc.expected+txSuffix, got)
		})
	}
}

func TestGenericNarratives(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()
	three := []common.Address{alice, bob, router}

	tcs := []struct {
		name     string
		call     *txdecoder.DecodedCall
		value    *big.Int
		expected string
	}{
		{
			name:     "setAllowedBatch added only",
			call:     decodeCall(t, "setAllowedBatch(address[],bool[])", sale, three, []bool{true, true, true}),
			expected: "0x1111...1111 updated allowlist for 3 addresses (added: 3) at 0x3333...3333",
		},
		{
			name:     "setAllowedBatch removed only",
			call:     decodeCall(t, "setAllowedBatch(address[],bool[])", sale, three[:2], []bool{false, false}),
			expected: "0x1111...1111 updated allowlist for 2 addresses (removed: 2) at 0x3333...3333",
		},
		{
			name:     "setAllowedBatch mixed",
			call:     decodeCall(t, "setAllowedBatch(address[],bool[])", sale, three, []bool{true, false, true}),
			expected: "0x1111...1111 updated allowlist for 3 addresses (added: 2, removed: 1) at 0x3333...3333",
		},
		{
			name:     "transferOwnership",
			call:     decodeCall(t, "transferOwnership(address)", sale, bob),
			expected: "0x1111...1111 transferred ownership of 0x3333...3333 to 0x2222...2222",
		},
		{
			name:     "renounceOwnership",
			call:     decodeCall(t, "renounceOwnership()", sale),
			expected: "0x1111...1111 renounced ownership of 0x3333...3333",
		},
		{
			name:     "multicall",
			call:     decodeCall(t, "multicall(bytes[])", sale, [][]byte{{0x01}, {0x02, 0x03}}),
			expected: "0x1111...1111 executed a multicall of 2 calls at 0x3333...3333",
		},
		{
			name:     "deposit",
			call:     decodeCall(t, "deposit()", sale),
			value:    wei(t, "250000000000000000"),
			expected: "0x1111...1111 deposited 0.25 ETH into 0x3333...3333",
		},
		{
			name:     "deposit without value",
			call:     decodeCall(t, "deposit()", sale),
			expected: "0x1111...1111 deposited ETH into 0x3333...3333",
		},
		{
			name:     "withdraw",
			call:     decodeCall(t, "withdraw(uint256)", sale, wei(t, "1000000000000000000")),
			expected: "0x1111...1111 withdrew 1 ETH from 0x3333...3333",
		},
		{
			name: "function without template",
			call: &txdecoder.DecodedCall{
				FunctionName: "setFee",
				ContractType: txdecoder.Generic,
				Selector:     "0x69fe0e2d",
			},
			expected: "0x1111...1111 called setFee (0x69fe0e2d) at 0x3333...3333",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Generate(ctx, Input{Call: tc.call, From: alice, To: &sale, Hash: txHash, Value: tc.value})
			assert.Equal(t, tc.expected+txSuffix, got)
		})
	}
}

func TestGenerateBatchKeepsOrder(t *testing.T) {
	g := NewGenerator(WithWorkers(3))
	var inputs []Input
	var expected []string
	for i := 1; i <= 20; i++ {
		call := decodeCall(t, "settleBatch(uint256,address[])", sale, big.NewInt(int64(i)), []common.Address{})
		inputs = append(inputs, Input{Call: call, From: alice, To: &sale, Hash: txHash})
		expected = append(expected, fmt.Sprintf("0x1111...1111 settled batch of %d investors at 0x3333...3333%s", i, txSuffix))
	}
	assert.Equal(t, expected, g.GenerateBatch(context.Background(), inputs))
	assert.Empty(t, g.GenerateBatch(context.Background(), nil))
}

func TestSequential(t *testing.T) {
	assert.Equal(t, "No transactions found.", Sequential(nil))
	assert.Equal(t, "only one", Sequential([]string{"only one"}))
	assert.Equal(t, "First. a\nFinally. b\n", Sequential([]string{"a", "b"}))
	assert.Equal(t, "First. a\nThen. b\nThen. c\nFinally. d\n", Sequential([]string{"a", "b", "c", "d"}))
}
