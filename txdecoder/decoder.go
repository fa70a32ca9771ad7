package txdecoder

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchWorkers = 8

// Decoder turns transaction inputs into DecodedCalls using a shared,
// read-only Registry. It holds no mutable state and is safe for concurrent
// use.
type Decoder struct {
	registry *Registry
	logger   *zap.Logger
	metrics  *Metrics
	workers  int
}

// NewDecoder returns a Decoder over registry. l and m may be nil.
func NewDecoder(registry *Registry, l *zap.Logger, m *Metrics) *Decoder {
	if l == nil {
		l = zap.NewNop()
	}
	return &Decoder{
		registry: registry,
		logger:   l,
		metrics:  m,
		workers:  defaultBatchWorkers,
	}
}

// WithWorkers sets how many inputs DecodeBatch works on at once.
func (d *Decoder) WithWorkers(n int) *Decoder {
	if n > 0 {
		d.workers = n
	}
	return d
}

func (d *Decoder) Registry() *Registry {
	return d.registry
}

// Decode interprets input sent to destination. A nil destination is a
// contract creation, empty input with a destination is a native transfer and
// an unregistered selector is returned as an Unknown call, not an error.
func (d *Decoder) Decode(input []byte, destination *common.Address) (*DecodedCall, error) {
	raw := make([]byte, len(input))
	copy(raw, input)

	if destination == nil {
		d.metrics.observe(ContractCreation, OutcomeDecoded)
		return &DecodedCall{
			FunctionName: ConstructorFunction,
			ContractType: Classify(nil, nil),
			Selector:     ZeroSelector.Hex(),
			Parameters:   NewParameters(),
			RawInput:     raw,
		}, nil
	}

	if len(input) == 0 {
		params := NewParameters()
		params.Set(ParamAsset, NativeAsset)
		d.metrics.observe(Generic, OutcomeDecoded)
		return &DecodedCall{
			FunctionName: NativeTransfer,
			ContractType: Generic,
			Selector:     "",
			Parameters:   params,
			RawInput:     raw,
		}, nil
	}

	selector, ok := SelectorFromBytes(input)
	if !ok {
		d.metrics.observe(Unknown, OutcomeMalformedInput)
		d.logger.Debug("Input too short to carry a selector",
			zap.Int("input_len", len(input)),
			zap.String("destination", strings.ToLower(destination.Hex())),
		)
		return nil, &DecodeError{Kind: MalformedInput, InputLen: len(input)}
	}

	entry, found := d.registry.Lookup(selector)
	contractType := Classify(entry, destination)
	if !found {
		d.metrics.observe(contractType, OutcomeUnknownSelector)
		return &DecodedCall{
			FunctionName: UnknownFunction,
			ContractType: contractType,
			Selector:     selector.Hex(),
			Parameters:   NewParameters(),
			RawInput:     raw,
		}, nil
	}

	params, err := unpackParameters(entry, input[SelectorLength:])
	if err != nil {
		d.metrics.observe(contractType, OutcomeAbiMismatch)
		d.logger.Debug("Failed to unpack call arguments",
			zap.String("selector", selector.Hex()),
			zap.String("signature", entry.Signature.Canonical()),
			zap.Int("input_len", len(input)),
			zap.Error(err),
		)
		return nil, &DecodeError{
			Kind:      AbiMismatch,
			Selector:  selector.Hex(),
			Signature: entry.Signature.Canonical(),
			InputLen:  len(input),
			Err:       err,
		}
	}

	d.metrics.observe(contractType, OutcomeDecoded)
	return &DecodedCall{
		FunctionName: entry.Signature.Name,
		ContractType: contractType,
		Selector:     selector.Hex(),
		Parameters:   params,
		RawInput:     raw,
	}, nil
}

func unpackParameters(entry *SelectorEntry, data []byte) (*Parameters, error) {
	method := entry.Method()
	values, err := method.Inputs.UnpackValues(data)
	if err != nil {
		return nil, err
	}
	if err := checkAddressPadding(method.Inputs, data); err != nil {
		return nil, err
	}
	params := NewParameters()
	for i, input := range method.Inputs {
		params.Set(paramName(input.Name, i), encodeValue(input.Type, values[i]))
	}
	return params, nil
}

// DecodeTransaction decodes tx and folds in the context only the
// transaction carries: the transferred value for native transfers and the
// deployed address for contract creations.
func (d *Decoder) DecodeTransaction(tx RawTransaction) (*DecodedCall, error) {
	call, err := d.Decode(tx.Input, tx.To)
	if err != nil {
		return nil, err
	}
	switch {
	case call.ContractType == ContractCreation:
		if tx.ContractAddress != nil {
			call.Parameters.Set(ParamContractAddress, strings.ToLower(tx.ContractAddress.Hex()))
		}
	case call.IsNativeTransfer():
		if tx.Value != nil {
			call.Parameters.Set(ParamValue, tx.Value.String())
		}
	}
	return call, nil
}

// DecodeBatch decodes every transaction independently. The result slice has
// one entry per input, in input order; a failure in one entry never affects
// another.
func (d *Decoder) DecodeBatch(txs []RawTransaction) []Result {
	results := make([]Result, len(txs))
	var g errgroup.Group
	g.SetLimit(d.workers)
	for i := range txs {
		g.Go(func() error {
			call, err := d.DecodeTransaction(txs[i])
			results[i] = Result{Call: call, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
