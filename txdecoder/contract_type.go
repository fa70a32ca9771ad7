package txdecoder

import (
	"fmt"
)

// ContractType is the closed set of categories a decoded call can fall in.
type ContractType uint8

const (
	Unknown ContractType = iota
	FungibleToken
	NonFungibleToken
	PoolManager
	PrimarySale
	ContractCreation
	Generic
)

var contractTypeNames = map[ContractType]string{
	Unknown:          "Unknown",
	FungibleToken:    "FungibleToken",
	NonFungibleToken: "NonFungibleToken",
	PoolManager:      "PoolManager",
	PrimarySale:      "PrimarySale",
	ContractCreation: "ContractCreation",
	Generic:          "Generic",
}

// AllContractTypes lists every tag in declaration order.
func AllContractTypes() []ContractType {
	return []ContractType{
		Unknown,
		FungibleToken,
		NonFungibleToken,
		PoolManager,
		PrimarySale,
		ContractCreation,
		Generic,
	}
}

func (t ContractType) String() string {
	if name, ok := contractTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ContractType(%d)", uint8(t))
}

func (t ContractType) MarshalText() ([]byte, error) {
	name, ok := contractTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("invalid contract type %d", uint8(t))
	}
	return []byte(name), nil
}

func (t *ContractType) UnmarshalText(text []byte) error {
	parsed, err := ParseContractType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseContractType(s string) (ContractType, error) {
	for t, name := range contractTypeNames {
		if name == s {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("unsupported contract type %q", s)
}
