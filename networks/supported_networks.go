package networks

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Insert more Network implementations here to support more chains.
var supportedNetworks = []Network{
	EthereumMainnet,
	MantraDukong,
}

var ErrNetworkNotFound = errors.New("network not found")

type Registry struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (r *Registry) add(n Network) error {
	names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
	for _, name := range names {
		if _, found := r.networks[name]; found {
			return errors.Errorf("network with name or alternative name of '%s' already exists", name)
		}
	}
	for _, name := range names {
		r.networks[name] = n
	}
	r.networksByID[n.GetChainID()] = n
	return nil
}

// NewRegistry holds the built-in networks plus every custom network found
// as a JSON file in customDir. An empty customDir skips custom networks.
// Custom networks that fail to load are logged and skipped.
func NewRegistry(customDir string, l *zap.Logger) *Registry {
	if l == nil {
		l = zap.NewNop()
	}
	result := &Registry{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n); err != nil {
			panic(err)
		}
	}
	if customDir == "" {
		return result
	}

	files, err := filepath.Glob(filepath.Join(customDir, "*.json"))
	if err != nil {
		l.Sugar().Warnw("Failed to list custom networks", zap.String("dir", customDir), zap.Error(err))
		return result
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			l.Sugar().Warnw("Failed to read custom network", zap.String("file", file), zap.Error(err))
			continue
		}
		n, err := NewNetworkFromJSON(content)
		if err != nil {
			l.Sugar().Warnw("Failed to parse custom network", zap.String("file", file), zap.Error(err))
			continue
		}
		if err := result.add(n); err != nil {
			l.Sugar().Warnw("Ignoring custom network", zap.String("file", file), zap.Error(err))
		}
	}
	return result
}

// DefaultCustomDir is ~/.narrator/networks.
func DefaultCustomDir() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".narrator", "networks")
}

func (r *Registry) GetNetwork(name string) (Network, error) {
	res, found := r.networks[name]
	if !found {
		return nil, errors.Wrapf(ErrNetworkNotFound, "network name '%s'", name)
	}
	return res, nil
}

func (r *Registry) GetNetworkByID(id uint64) (Network, error) {
	res, found := r.networksByID[id]
	if !found {
		return nil, errors.Wrapf(ErrNetworkNotFound, "network id %d", id)
	}
	return res, nil
}

// GetSupportedNetworkNames lists every name and alternative name.
func (r *Registry) GetSupportedNetworkNames() []string {
	res := []string{}
	for name := range r.networks {
		res = append(res, name)
	}
	return res
}
