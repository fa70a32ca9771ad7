package txdecoder

import (
	"strings"
)

// Param is one named, typed input of a function signature.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Signature is a function name plus its ordered parameter list.
type Signature struct {
	Name    string  `json:"name"`
	Params  []Param `json:"params"`
	Payable bool    `json:"payable,omitempty"`
}

// Canonical returns the form hashed into the selector, e.g.
// "transfer(address,uint256)".
func (s Signature) Canonical() string {
	types := make([]string, len(s.Params))
	for i, p := range s.Params {
		types[i] = p.Type
	}
	return s.Name + "(" + strings.Join(types, ",") + ")"
}

// Family groups the signatures of one contract interface under a tag.
type Family struct {
	Type       ContractType
	Signatures []Signature
}

func sig(name string, params ...Param) Signature {
	return Signature{Name: name, Params: params}
}

func payable(name string, params ...Param) Signature {
	return Signature{Name: name, Params: params, Payable: true}
}

func p(name, typ string) Param {
	return Param{Name: name, Type: typ}
}

var primarySaleFamily = Family{
	Type: PrimarySale,
	Signatures: []Signature{
		sig("invest", p("token", "address"), p("amount", "uint256")),
		sig("activate"),
		sig("endSale"),
		sig("initializeSettlement", p("assetToken", "address"), p("assetOwner", "address")),
		sig("settleBatch", p("batchSize", "uint256"), p("restrictedWallets", "address[]")),
		sig("finalizeSettlement"),
		sig("claimRefund"),
		sig("cancel"),
		sig("pause"),
		sig("unpause"),
		sig("topUpRefunds", p("token", "address"), p("amount", "uint256")),
		sig("emergencyWithdrawERC20", p("token", "address"), p("recipient", "address"), p("amount", "uint256")),
	},
}

// Uniswap V2 router02 surface.
var poolManagerFamily = Family{
	Type: PoolManager,
	Signatures: []Signature{
		sig("swapExactTokensForTokens",
			p("amountIn", "uint256"), p("amountOutMin", "uint256"), p("path", "address[]"),
			p("to", "address"), p("deadline", "uint256")),
		sig("swapTokensForExactTokens",
			p("amountOut", "uint256"), p("amountInMax", "uint256"), p("path", "address[]"),
			p("to", "address"), p("deadline", "uint256")),
		payable("swapExactETHForTokens",
			p("amountOutMin", "uint256"), p("path", "address[]"), p("to", "address"), p("deadline", "uint256")),
		payable("swapETHForExactTokens",
			p("amountOut", "uint256"), p("path", "address[]"), p("to", "address"), p("deadline", "uint256")),
		sig("swapExactTokensForETH",
			p("amountIn", "uint256"), p("amountOutMin", "uint256"), p("path", "address[]"),
			p("to", "address"), p("deadline", "uint256")),
		sig("swapTokensForExactETH",
			p("amountOut", "uint256"), p("amountInMax", "uint256"), p("path", "address[]"),
			p("to", "address"), p("deadline", "uint256")),
		sig("addLiquidity",
			p("tokenA", "address"), p("tokenB", "address"),
			p("amountADesired", "uint256"), p("amountBDesired", "uint256"),
			p("amountAMin", "uint256"), p("amountBMin", "uint256"),
			p("to", "address"), p("deadline", "uint256")),
		payable("addLiquidityETH",
			p("token", "address"), p("amountTokenDesired", "uint256"),
			p("amountTokenMin", "uint256"), p("amountETHMin", "uint256"),
			p("to", "address"), p("deadline", "uint256")),
		sig("removeLiquidity",
			p("tokenA", "address"), p("tokenB", "address"), p("liquidity", "uint256"),
			p("amountAMin", "uint256"), p("amountBMin", "uint256"),
			p("to", "address"), p("deadline", "uint256")),
		sig("removeLiquidityETH",
			p("token", "address"), p("liquidity", "uint256"),
			p("amountTokenMin", "uint256"), p("amountETHMin", "uint256"),
			p("to", "address"), p("deadline", "uint256")),
	},
}

var fungibleTokenFamily = Family{
	Type: FungibleToken,
	Signatures: []Signature{
		sig("transfer", p("to", "address"), p("amount", "uint256")),
		sig("approve", p("spender", "address"), p("amount", "uint256")),
		sig("transferFrom", p("from", "address"), p("to", "address"), p("amount", "uint256")),
		sig("mint", p("to", "address"), p("amount", "uint256")),
		sig("burn", p("amount", "uint256")),
	},
}

// approve and transferFrom share their selectors with the fungible token
// family and end up shadowed by it.
var nonFungibleTokenFamily = Family{
	Type: NonFungibleToken,
	Signatures: []Signature{
		sig("safeTransferFrom", p("from", "address"), p("to", "address"), p("tokenId", "uint256")),
		sig("safeTransferFrom", p("from", "address"), p("to", "address"), p("tokenId", "uint256"), p("data", "bytes")),
		sig("setApprovalForAll", p("operator", "address"), p("approved", "bool")),
		sig("transferFrom", p("from", "address"), p("to", "address"), p("tokenId", "uint256")),
		sig("approve", p("to", "address"), p("tokenId", "uint256")),
	},
}

var genericFamily = Family{
	Type: Generic,
	Signatures: []Signature{
		sig("setAllowedBatch", p("addrs", "address[]"), p("flags", "bool[]")),
		sig("transferOwnership", p("newOwner", "address")),
		sig("renounceOwnership"),
		sig("multicall", p("data", "bytes[]")),
		payable("deposit"),
		sig("withdraw", p("wad", "uint256")),
	},
}

// DefaultFamilies returns the built-in interface set in precedence order.
// When two families share a selector the earlier family owns it:
//
//	PrimarySale > PoolManager > FungibleToken > NonFungibleToken > Generic
func DefaultFamilies() []Family {
	return []Family{
		primarySaleFamily,
		poolManagerFamily,
		fungibleTokenFamily,
		nonFungibleTokenFamily,
		genericFamily,
	}
}
