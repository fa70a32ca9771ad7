package txdecoder

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

const SelectorLength = 4

// Selector is the first four bytes of keccak256 of a canonical signature.
type Selector [SelectorLength]byte

// ZeroSelector marks contract creations, which have no function selector.
var ZeroSelector = Selector{}

func SelectorFromBytes(b []byte) (Selector, bool) {
	var s Selector
	if len(b) < SelectorLength {
		return s, false
	}
	copy(s[:], b[:SelectorLength])
	return s, true
}

func (s Selector) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Selector) String() string {
	return s.Hex()
}

// SelectorEntry binds one selector to the signature and family that own it.
type SelectorEntry struct {
	Selector  Selector
	Signature Signature
	Family    ContractType

	method abi.Method
}

// Method returns the go-ethereum method used to unpack arguments.
func (e *SelectorEntry) Method() abi.Method {
	return e.method
}

// Registry is the immutable selector table. Build it once with NewRegistry
// and share the pointer; there is no way to add or remove entries later.
type Registry struct {
	entries    []*SelectorEntry
	bySelector map[Selector]*SelectorEntry
	shadowed   []*SelectorEntry
}

// NewRegistry registers families in the order given and, inside each family,
// in declaration order. The first registration of a selector wins; any later
// signature hashing to the same selector is only kept in Shadowed.
func NewRegistry(families ...Family) (*Registry, error) {
	r := &Registry{
		bySelector: map[Selector]*SelectorEntry{},
	}
	for _, family := range families {
		if family.Type == ContractCreation || family.Type == Unknown {
			return nil, errors.Errorf("family %s cannot own selectors", family.Type)
		}
		for _, signature := range family.Signatures {
			method, err := buildMethod(signature)
			if err != nil {
				return nil, errors.Wrapf(err, "building %s", signature.Canonical())
			}
			entry := &SelectorEntry{
				Signature: signature,
				Family:    family.Type,
				method:    method,
			}
			copy(entry.Selector[:], method.ID)

			if _, taken := r.bySelector[entry.Selector]; taken {
				r.shadowed = append(r.shadowed, entry)
				continue
			}
			r.bySelector[entry.Selector] = entry
			r.entries = append(r.entries, entry)
		}
	}
	return r, nil
}

// NewDefaultRegistry builds the registry for the built-in interface set.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultFamilies()...)
	if err != nil {
		panic(err)
	}
	return r
}

func buildMethod(s Signature) (abi.Method, error) {
	inputs := make(abi.Arguments, 0, len(s.Params))
	for _, param := range s.Params {
		t, err := abi.NewType(param.Type, "", nil)
		if err != nil {
			return abi.Method{}, errors.Wrapf(err, "parameter %s", param.Name)
		}
		inputs = append(inputs, abi.Argument{Name: param.Name, Type: t})
	}
	mutability := "nonpayable"
	if s.Payable {
		mutability = "payable"
	}
	return abi.NewMethod(s.Name, s.Name, abi.Function, mutability, false, s.Payable, inputs, nil), nil
}

// Lookup returns the entry that owns selector, if any.
func (r *Registry) Lookup(selector Selector) (*SelectorEntry, bool) {
	entry, found := r.bySelector[selector]
	return entry, found
}

// Entries returns the winning entries in registration order.
func (r *Registry) Entries() []*SelectorEntry {
	out := make([]*SelectorEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Shadowed returns the entries that lost a selector collision.
func (r *Registry) Shadowed() []*SelectorEntry {
	out := make([]*SelectorEntry, len(r.shadowed))
	copy(out, r.shadowed)
	return out
}

func (r *Registry) Len() int {
	return len(r.entries)
}
