package txdecoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

const wordSize = 32

var errDirtyAddress = errors.New("abi: improperly encoded address value")

// checkAddressPadding walks the argument encoding in data and rejects any
// address word whose upper 12 bytes are not zero. UnpackValues keeps the low
// 20 bytes of such a word without complaint.
func checkAddressPadding(args abi.Arguments, data []byte) error {
	types := make([]abi.Type, len(args))
	for i, arg := range args {
		types[i] = arg.Type
	}
	return checkTuple(types, data)
}

func hasAddress(t abi.Type) bool {
	switch t.T {
	case abi.AddressTy:
		return true
	case abi.SliceTy, abi.ArrayTy:
		return hasAddress(*t.Elem)
	case abi.TupleTy:
		for _, elem := range t.TupleElems {
			if hasAddress(*elem) {
				return true
			}
		}
	}
	return false
}

func isDynamic(t abi.Type) bool {
	switch t.T {
	case abi.StringTy, abi.BytesTy, abi.SliceTy:
		return true
	case abi.ArrayTy:
		return isDynamic(*t.Elem)
	case abi.TupleTy:
		for _, elem := range t.TupleElems {
			if isDynamic(*elem) {
				return true
			}
		}
	}
	return false
}

// headSize is the number of bytes t takes in the head of its enclosing
// tuple.
func headSize(t abi.Type) int {
	if isDynamic(t) {
		return wordSize
	}
	switch t.T {
	case abi.ArrayTy:
		return t.Size * headSize(*t.Elem)
	case abi.TupleTy:
		size := 0
		for _, elem := range t.TupleElems {
			size += headSize(*elem)
		}
		return size
	default:
		return wordSize
	}
}

func readOffset(data []byte, at int) (int, error) {
	if at < 0 || at+wordSize > len(data) {
		return 0, errors.Errorf("abi: offset word at %d out of bounds", at)
	}
	v := new(big.Int).SetBytes(data[at : at+wordSize])
	if !v.IsInt64() || v.Int64() > int64(len(data)) {
		return 0, errors.Errorf("abi: offset %s out of bounds", v)
	}
	return int(v.Int64()), nil
}

func checkTuple(types []abi.Type, data []byte) error {
	at := 0
	for _, t := range types {
		if !hasAddress(t) {
			at += headSize(t)
			continue
		}
		if isDynamic(t) {
			offset, err := readOffset(data, at)
			if err != nil {
				return err
			}
			if err := checkValue(t, data[offset:]); err != nil {
				return err
			}
			at += wordSize
			continue
		}
		if at > len(data) {
			return errors.Errorf("abi: argument at %d out of bounds", at)
		}
		if err := checkValue(t, data[at:]); err != nil {
			return err
		}
		at += headSize(t)
	}
	return nil
}

// checkValue checks one value whose encoding starts at data[0].
func checkValue(t abi.Type, data []byte) error {
	switch t.T {
	case abi.AddressTy:
		if len(data) < wordSize {
			return errors.New("abi: address word out of bounds")
		}
		for _, b := range data[:wordSize-20] {
			if b != 0 {
				return errDirtyAddress
			}
		}
		return nil
	case abi.SliceTy:
		n, err := readOffset(data, 0)
		if err != nil {
			return err
		}
		return checkTuple(repeat(*t.Elem, n), data[wordSize:])
	case abi.ArrayTy:
		return checkTuple(repeat(*t.Elem, t.Size), data)
	case abi.TupleTy:
		elems := make([]abi.Type, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			elems[i] = *elem
		}
		return checkTuple(elems, data)
	default:
		return nil
	}
}

func repeat(t abi.Type, n int) []abi.Type {
	out := make([]abi.Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}
