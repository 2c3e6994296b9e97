package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/ElrondNetwork/bounty-market-gateway/denom"
	"github.com/ElrondNetwork/bounty-market-gateway/ledger"
	"github.com/ElrondNetwork/bounty-market-gateway/view"
	"github.com/google/uuid"
)

const defaultMaxConcurrentReads = 4

// Config is shared by the pipeline and the dispatcher. It is built once at
// startup and only read afterwards.
type Config struct {
	Client   ledger.Client
	View     *view.View
	Reporter Reporter
	// Decimals defaults to denom.LedgerDecimals when nil.
	Decimals           *uint
	MaxConcurrentReads int
}

// Pipeline re-reads the market from the contract and renders it onto the view.
type Pipeline struct {
	client   ledger.Client
	view     *view.View
	reporter Reporter
	decimals uint
	maxReads int
}

func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.Client == nil {
		return nil, errNilClient
	}
	if cfg.View == nil {
		return nil, errNilView
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NewLogReporter()
	}
	decimals := decimalsOf(cfg)
	maxReads := cfg.MaxConcurrentReads
	if maxReads < 1 {
		maxReads = defaultMaxConcurrentReads
	}

	return &Pipeline{
		client:   cfg.Client,
		view:     cfg.View,
		reporter: reporter,
		decimals: decimals,
		maxReads: maxReads,
	}, nil
}

// Refresh runs balance, bounty details and descriptions in that order. A failed
// balance or detail read ends the run; rows rendered so far stay rendered.
func (p *Pipeline) Refresh(ctx context.Context) RefreshResult {
	res := RefreshResult{RunID: uuid.New().String()}
	log.Debug("refresh started", "run", res.RunID)

	accounts, err := p.client.ListAccounts(ctx)
	if err != nil {
		p.reporter.Failure(fmt.Sprintf("refresh %s: listAccounts", res.RunID), err)
	} else if len(accounts) > 0 {
		res.Account = accounts[0]
	}

	balance, err := p.client.MarketBalance(ctx)
	if err != nil {
		return p.abort(res, "getMarketBalance", err)
	}
	res.Balance = denom.FromSmallest(balance, p.decimals)
	p.view.SetMarketBalance(res.Balance)
	p.view.SetAccount(res.Account)

	details, err := p.client.BountyDetailAll(ctx)
	if err == nil {
		err = details.Validate()
	}
	if err != nil {
		return p.abort(res, "getBountyDetailAll", err)
	}

	res.Rows = details.Len()
	if p.view.Fixed() {
		res.Rows = p.view.Rows()
	} else {
		p.view.Resize(res.Rows)
	}

	for i := 0; i < details.Len() && i < res.Rows; i++ {
		bounty := details.At(i)
		p.view.SetPanelHeader(i,
			fmt.Sprintf("Bounty ID: %d", i),
			denom.FromSmallest(bounty.Value, p.decimals),
			bounty.Owner,
		)
	}

	p.renderDescriptions(ctx, &res)

	log.Debug("refresh finished",
		"run", res.RunID,
		"rows", res.Rows,
		"descriptions", res.DescriptionsRendered,
		"failed", len(res.DescriptionErrors),
	)
	return res
}

// renderDescriptions fetches all row descriptions concurrently and renders
// each one as soon as it arrives. A cancelled context stops the fan-out and is
// reported once for the whole run.
func (p *Pipeline) renderDescriptions(ctx context.Context, res *RefreshResult) {
	var wg sync.WaitGroup
	var mut sync.Mutex
	slots := make(chan struct{}, p.maxReads)

	for i := 0; i < res.Rows; i++ {
		if !acquire(ctx, slots) {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-slots }()

			desc, err := p.client.BountyDescription(ctx, uint64(i))
			mut.Lock()
			defer mut.Unlock()
			if err != nil {
				if res.DescriptionErrors == nil {
					res.DescriptionErrors = make(map[int]error)
				}
				res.DescriptionErrors[i] = err
				if ctx.Err() == nil {
					p.reporter.Failure(fmt.Sprintf("refresh %s: getBountyDesc(%d)", res.RunID, i), err)
				}
				return
			}
			p.view.SetPanelDescription(i, desc)
			res.DescriptionsRendered++
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("getBountyDesc: %w", err)
		p.reporter.Failure("refresh "+res.RunID, res.Err)
	}
}

func acquire(ctx context.Context, slots chan struct{}) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func decimalsOf(cfg Config) uint {
	if cfg.Decimals == nil {
		return denom.LedgerDecimals
	}
	return *cfg.Decimals
}

func (p *Pipeline) abort(res RefreshResult, step string, err error) RefreshResult {
	res.Err = fmt.Errorf("%s: %w", step, err)
	p.reporter.Failure("refresh "+res.RunID, res.Err)
	return res
}
