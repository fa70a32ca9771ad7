package cmd

import (
	"context"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tranvictor/narrator/addrbook"
	"github.com/tranvictor/narrator/config"
	"github.com/tranvictor/narrator/logger"
	"github.com/tranvictor/narrator/narrative"
	"github.com/tranvictor/narrator/networks"
	"github.com/tranvictor/narrator/reader"
	"github.com/tranvictor/narrator/txdecoder"
	"github.com/tranvictor/narrator/ui"
)

// app is what every command needs, built from the bound flags.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	ui      ui.UI
	network networks.Network

	labels     addrbook.LabelResolver
	book       *addrbook.Book
	labelCache *addrbook.Cached
	cachePath  string

	promRegistry *prometheus.Registry
	decoder      *txdecoder.Decoder
}

func defaultLabelCache() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".narrator", "labels.json")
}

func newApp() (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	network, err := networks.NewRegistry(cfg.NetworksDir, l).GetNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:          cfg,
		logger:       l,
		ui:           ui.NewTerminalUI(),
		network:      network,
		promRegistry: prometheus.NewRegistry(),
	}

	var resolvers []addrbook.LabelResolver
	if cfg.AddressBook != "" {
		a.book, err = addrbook.LoadBook(cfg.AddressBook)
		if err != nil {
			return nil, err
		}
		resolvers = append(resolvers, a.book)
	}
	if cfg.LabelUrl != "" {
		a.cachePath = cfg.LabelCache
		if a.cachePath == "" {
			a.cachePath = defaultLabelCache()
		}
		a.labelCache = addrbook.LoadCached(addrbook.NewHTTPResolver(cfg.LabelUrl, l), a.cachePath)
		resolvers = append(resolvers, a.labelCache)
	}
	if len(resolvers) > 0 {
		a.labels = addrbook.NewChain(l, resolvers...)
	}

	metrics, err := txdecoder.NewMetrics(a.promRegistry)
	if err != nil {
		return nil, err
	}
	a.decoder = txdecoder.NewDecoder(txdecoder.NewDefaultRegistry(), l, metrics).WithWorkers(cfg.Workers)
	return a, nil
}

// dial connects to --rpc-url, or to the network's node when it is empty.
func (a *app) dial(ctx context.Context) (*reader.Reader, error) {
	url := a.cfg.RpcUrl
	if url == "" {
		var err error
		url, err = a.network.NodeURL()
		if err != nil {
			return nil, err
		}
	}
	a.logger.Sugar().Debugw("Dialing node",
		zap.String("network", a.network.GetName()),
		zap.String("url", url),
	)
	return reader.Dial(ctx, url, a.logger)
}

// generator builds a narrative generator over the app's labels. tokens may
// be nil, in which case every amount is rendered with default decimals.
func (a *app) generator(tokens narrative.TokenInfoSource) *narrative.Generator {
	opts := []narrative.Option{
		narrative.WithNativeToken(a.network.GetNativeTokenSymbol(), a.network.GetNativeTokenDecimal()),
		narrative.WithFullAddresses(a.cfg.FullAddresses),
		narrative.WithLogger(a.logger),
	}
	if a.cfg.Workers > 0 {
		opts = append(opts, narrative.WithWorkers(a.cfg.Workers))
	}
	if a.cfg.Wallet != nil {
		opts = append(opts, narrative.WithWallet(*a.cfg.Wallet))
	}
	if a.labels != nil {
		opts = append(opts, narrative.WithLabelResolver(a.labels))
	}
	if tokens != nil {
		opts = append(opts, narrative.WithTokenInfo(tokens))
	}
	return narrative.NewGenerator(opts...)
}

// close persists fetched labels and logs the decode totals.
func (a *app) close() {
	if a.labelCache != nil && a.cachePath != "" {
		if err := a.labelCache.Persist(a.cachePath); err != nil {
			a.logger.Sugar().Warnw("Failed to persist label cache",
				zap.String("path", a.cachePath),
				zap.Error(err),
			)
		}
	}
	a.logDecodeTotals()
	_ = a.logger.Sync()
}

func (a *app) logDecodeTotals() {
	families, err := a.promRegistry.Gather()
	if err != nil {
		a.logger.Sugar().Debugw("Failed to gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []any{zap.Float64("count", m.GetCounter().GetValue())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			a.logger.Sugar().Debugw(mf.GetName(), fields...)
		}
	}
}
