package addrbook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sahilm/fuzzy"
)

const maxSearchResults = 10

type AddressDesc struct {
	Address string `json:"address"`
	Desc    string `json:"desc"`
}

// fuzzySource lets sahilm/fuzzy match against "Desc_with_underscores_0xaddr".
type fuzzySource []AddressDesc

func (s fuzzySource) Len() int {
	return len(s)
}

func (s fuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", strings.ReplaceAll(s[i].Desc, " ", "_"), s[i].Address)
}

// Book is a local address book: a JSON object of {"0xaddress": "name"}.
type Book struct {
	labels map[common.Address]string
	source fuzzySource
}

func NewBook(entries map[string]string) (*Book, error) {
	b := &Book{labels: map[common.Address]string{}}
	for addr, name := range entries {
		if !common.IsHexAddress(addr) {
			return nil, errors.Errorf("invalid address %q in address book", addr)
		}
		b.labels[common.HexToAddress(addr)] = name
	}
	for addr, name := range b.labels {
		b.source = append(b.source, AddressDesc{Address: strings.ToLower(addr.Hex()), Desc: name})
	}
	sort.Slice(b.source, func(i, j int) bool {
		return b.source[i].Address < b.source[j].Address
	})
	return b, nil
}

// LoadBook reads a Book from path. A missing file yields an empty book.
func LoadBook(path string) (*Book, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewBook(nil)
		}
		return nil, errors.Wrapf(err, "reading address book %s", path)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, errors.Wrapf(err, "parsing address book %s", path)
	}
	return NewBook(entries)
}

func (b *Book) ResolveLabel(_ context.Context, addr common.Address) (string, error) {
	return b.labels[addr], nil
}

func (b *Book) Len() int {
	return len(b.labels)
}

// Search fuzzy-matches input against names and addresses and returns at most
// ten results, best first.
func (b *Book) Search(input string) []AddressDesc {
	matches := fuzzy.FindFrom(strings.ReplaceAll(input, " ", "_"), b.source)
	result := []AddressDesc{}
	for i := 0; i < len(matches) && i < maxSearchResults; i++ {
		result = append(result, b.source[matches[i].Index])
	}
	return result
}
