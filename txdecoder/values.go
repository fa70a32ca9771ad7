package txdecoder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parameters maps parameter names to encoded values in ABI order.
type Parameters = orderedmap.OrderedMap[string, any]

func NewParameters() *Parameters {
	return orderedmap.New[string, any]()
}

// encodeValue turns an unpacked go-ethereum value into its interchange form:
// integers as decimal strings, addresses as lowercase hex, byte arrays as 0x
// hex, lists for arrays and ordered maps for tuples.
func encodeValue(t abi.Type, value any) any {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		realVal := reflect.ValueOf(value)
		result := make([]any, 0, realVal.Len())
		for i := 0; i < realVal.Len(); i++ {
			result = append(result, encodeValue(*t.Elem, realVal.Index(i).Interface()))
		}
		return result
	case abi.TupleTy:
		realVal := reflect.Indirect(reflect.ValueOf(value))
		fields := NewParameters()
		for i, elem := range t.TupleElems {
			fields.Set(paramName(t.TupleRawNames[i], i), encodeValue(*elem, realVal.Field(i).Interface()))
		}
		return fields
	default:
		return encodeScalar(t, value)
	}
}

func encodeScalar(t abi.Type, value any) any {
	switch t.T {
	case abi.StringTy:
		return value.(string)
	case abi.IntTy, abi.UintTy:
		return fmt.Sprintf("%d", value)
	case abi.BoolTy:
		return value.(bool)
	case abi.AddressTy:
		return strings.ToLower(value.(common.Address).Hex())
	case abi.HashTy:
		return strings.ToLower(value.(common.Hash).Hex())
	case abi.BytesTy:
		return hexutil.Encode(value.([]byte))
	case abi.FixedBytesTy, abi.FunctionTy:
		realVal := reflect.ValueOf(value)
		word := make([]byte, realVal.Len())
		reflect.Copy(reflect.ValueOf(word), realVal)
		return hexutil.Encode(word)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func paramName(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("arg%d", index)
	}
	return name
}
