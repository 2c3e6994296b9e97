package adapter

import (
	"context"
	"errors"

	"github.com/ElrondNetwork/bounty-market-gateway/config"
	"github.com/ElrondNetwork/bounty-market-gateway/interaction"
	"github.com/ElrondNetwork/bounty-market-gateway/ledger"
	"github.com/ElrondNetwork/bounty-market-gateway/market"
	"github.com/ElrondNetwork/bounty-market-gateway/view"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("adapter")

type adapter struct {
	client     ledger.Client
	view       *view.View
	pipeline   *market.Pipeline
	dispatcher *market.Dispatcher
	config     config.GeneralConfig
}

func NewAdapter(cfg config.GeneralConfig) (*adapter, error) {
	interactor, err := interaction.NewBlockchainInteractor(cfg.Blockchain)
	if err != nil {
		return nil, err
	}
	contract, err := ledger.NewContract(interactor, cfg.Contract.Address)
	if err != nil {
		return nil, err
	}
	return newAdapter(contract, cfg)
}

func newAdapter(client ledger.Client, cfg config.GeneralConfig) (*adapter, error) {
	if client == nil {
		return nil, errors.New("nil ledger client provided")
	}

	v := view.New()
	if cfg.Refresh.FixedRows > 0 {
		v = view.NewFixed(cfg.Refresh.FixedRows)
	}

	marketConfig := market.Config{
		Client:             client,
		View:               v,
		Reporter:           market.NewLogReporter(),
		Decimals:           cfg.Contract.Decimals,
		MaxConcurrentReads: cfg.Refresh.MaxConcurrentReads,
	}
	pipeline, err := market.NewPipeline(marketConfig)
	if err != nil {
		return nil, err
	}
	dispatcher, err := market.NewDispatcher(marketConfig, pipeline)
	if err != nil {
		return nil, err
	}

	return &adapter{
		client:     client,
		view:       v,
		pipeline:   pipeline,
		dispatcher: dispatcher,
		config:     cfg,
	}, nil
}

// Refresh re-reads the market into the view.
func (a *adapter) Refresh(ctx context.Context) market.RefreshResult {
	return a.pipeline.Refresh(ctx)
}

// Snapshot returns the currently rendered market.
func (a *adapter) Snapshot() view.Snapshot {
	return a.view.Snapshot()
}

func (a *adapter) Accounts(ctx context.Context) ([]string, error) {
	return a.client.ListAccounts(ctx)
}

// Warmup runs the startup refresh when configured.
func (a *adapter) Warmup(ctx context.Context) {
	if !a.config.Server.RefreshOnStart {
		return
	}
	res := a.Refresh(ctx)
	if res.Err != nil {
		log.Warn("startup refresh failed", "run", res.RunID, "err", res.Err.Error())
		return
	}
	log.Info("startup refresh done", "run", res.RunID, "rows", res.Rows)
}
