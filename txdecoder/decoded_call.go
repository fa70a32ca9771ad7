package txdecoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	ConstructorFunction = "constructor"
	UnknownFunction     = "unknown"
	NativeTransfer      = "transfer"

	// Keys folded into Parameters from transaction context rather than from
	// the ABI payload.
	ParamAsset           = "asset"
	ParamValue           = "value"
	ParamContractAddress = "contract_address"

	NativeAsset = "native"
)

// DecodedCall is the structured form of one transaction input.
type DecodedCall struct {
	FunctionName string        `json:"function_name"`
	ContractType ContractType  `json:"contract_type"`
	Selector     string        `json:"selector"`
	Parameters   *Parameters   `json:"parameters"`
	RawInput     hexutil.Bytes `json:"raw_input"`
}

// IsNativeTransfer reports whether the call moved the chain's native asset
// with no calldata.
func (c *DecodedCall) IsNativeTransfer() bool {
	if c.Selector != "" || c.FunctionName != NativeTransfer {
		return false
	}
	asset, _ := c.Param(ParamAsset)
	return asset == NativeAsset
}

func (c *DecodedCall) Param(name string) (any, bool) {
	if c.Parameters == nil {
		return nil, false
	}
	return c.Parameters.Get(name)
}

// ParamString returns the parameter as a string or "" if it is missing or not
// a scalar string.
func (c *DecodedCall) ParamString(name string) string {
	v, ok := c.Param(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (c *DecodedCall) ParamList(name string) []any {
	v, ok := c.Param(name)
	if !ok {
		return nil
	}
	l, _ := v.([]any)
	return l
}

// RawTransaction is what the fetch collaborator hands over for decoding.
// ContractAddress comes from the receipt and is only set for deployments.
type RawTransaction struct {
	Hash            common.Hash
	From            common.Address
	To              *common.Address
	Input           []byte
	Value           *big.Int
	ContractAddress *common.Address
}

// Result pairs the outcome of decoding one transaction of a batch.
type Result struct {
	Call *DecodedCall
	Err  error
}
