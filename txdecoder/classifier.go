package txdecoder

import (
	"github.com/ethereum/go-ethereum/common"
)

// Classify tags a call. A missing destination always means ContractCreation;
// otherwise the family of the registry's chosen entry is used as is, so
// decode and classify can never disagree on a shared selector.
func Classify(entry *SelectorEntry, destination *common.Address) ContractType {
	if destination == nil {
		return ContractCreation
	}
	if entry != nil {
		return entry.Family
	}
	return Unknown
}
