package txdecoder

import (
	"fmt"

	"github.com/pkg/errors"
)

type DecodeErrorKind uint8

const (
	MalformedInput DecodeErrorKind = iota + 1
	AbiMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case AbiMismatch:
		return "AbiMismatch"
	default:
		return fmt.Sprintf("DecodeErrorKind(%d)", uint8(k))
	}
}

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrAbiMismatch    = errors.New("abi mismatch")
)

// DecodeError is returned by Decode when the input cannot be turned into a
// DecodedCall. Selector and Signature are empty for MalformedInput.
type DecodeError struct {
	Kind      DecodeErrorKind
	Selector  string
	Signature string
	InputLen  int
	Err       error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case MalformedInput:
		return fmt.Sprintf("malformed input: data (%dB) too short to have a method ID", e.InputLen)
	case AbiMismatch:
		msg := fmt.Sprintf("abi mismatch: %s (%s) could not unpack %dB of input", e.Signature, e.Selector, e.InputLen)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	default:
		return fmt.Sprintf("decode error (%s)", e.Kind)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *DecodeError) Is(target error) bool {
	switch e.Kind {
	case MalformedInput:
		return target == ErrMalformedInput
	case AbiMismatch:
		return target == ErrAbiMismatch
	}
	return false
}
