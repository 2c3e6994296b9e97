package market

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ElrondNetwork/bounty-market-gateway/denom"
	"github.com/ElrondNetwork/bounty-market-gateway/ledger"
)

type writeFunc func(from string) (string, error)

// Dispatcher turns user commands into single contract writes sent from the
// first available account, each followed by a full refresh.
type Dispatcher struct {
	client   ledger.Client
	pipeline *Pipeline
	reporter Reporter
	decimals uint
}

func NewDispatcher(cfg Config, pipeline *Pipeline) (*Dispatcher, error) {
	if cfg.Client == nil {
		return nil, errNilClient
	}
	if pipeline == nil {
		return nil, errNilPipeline
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NewLogReporter()
	}
	decimals := decimalsOf(cfg)

	return &Dispatcher{
		client:   cfg.Client,
		pipeline: pipeline,
		reporter: reporter,
		decimals: decimals,
	}, nil
}

// CreateBounty funds a new bounty. value is a decimal amount in whole currency units.
func (d *Dispatcher) CreateBounty(ctx context.Context, description string, value string) CommandResult {
	amount, err := denom.ToSmallest(value, d.decimals)
	if err != nil {
		return d.reject(ActionCreateBounty, fmt.Errorf("%w: bounty value: %v", ErrInvalidInput, err))
	}

	return d.dispatch(ctx, ActionCreateBounty, func(from string) (string, error) {
		return d.client.CreateBounty(ctx, from, description, amount)
	})
}

func (d *Dispatcher) CreateProposal(ctx context.Context, bountyID string, description string) CommandResult {
	id, err := parseID("bounty id", bountyID)
	if err != nil {
		return d.reject(ActionCreateProposal, err)
	}

	return d.dispatch(ctx, ActionCreateProposal, func(from string) (string, error) {
		return d.client.CreateProposal(ctx, from, id, description)
	})
}

func (d *Dispatcher) ApproveProposal(ctx context.Context, bountyID string, proposalID string) CommandResult {
	bID, pID, err := parseIDPair(bountyID, proposalID)
	if err != nil {
		return d.reject(ActionApproveProposal, err)
	}

	return d.dispatch(ctx, ActionApproveProposal, func(from string) (string, error) {
		return d.client.ApproveProposal(ctx, from, bID, pID)
	})
}

func (d *Dispatcher) RejectProposal(ctx context.Context, bountyID string, proposalID string) CommandResult {
	bID, pID, err := parseIDPair(bountyID, proposalID)
	if err != nil {
		return d.reject(ActionRejectProposal, err)
	}

	return d.dispatch(ctx, ActionRejectProposal, func(from string) (string, error) {
		return d.client.RejectProposal(ctx, from, bID, pID)
	})
}

func (d *Dispatcher) Withdraw(ctx context.Context) CommandResult {
	return d.dispatch(ctx, ActionWithdraw, func(from string) (string, error) {
		return d.client.MakeWithdrawal(ctx, from)
	})
}

// dispatch resolves the sender, submits the write and refreshes once the
// submission is accepted. Nothing is retried.
func (d *Dispatcher) dispatch(ctx context.Context, action Action, write writeFunc) CommandResult {
	res := CommandResult{Action: action}

	accounts, err := d.client.ListAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = ledger.ErrNoAccounts
	}
	if err != nil {
		if !errors.Is(err, ledger.ErrNoAccounts) {
			err = fmt.Errorf("%w: %v", ledger.ErrNoAccounts, err)
		}
		return d.fail(res, err)
	}
	res.Sender = accounts[0]

	res.TxHash, err = write(res.Sender)
	if err != nil {
		return d.fail(res, err)
	}
	log.Info("command submitted", "action", string(action), "sender", res.Sender, "hash", res.TxHash)

	refresh := d.pipeline.Refresh(ctx)
	res.Refresh = &refresh
	return res
}

func (d *Dispatcher) reject(action Action, err error) CommandResult {
	return d.fail(CommandResult{Action: action}, err)
}

func (d *Dispatcher) fail(res CommandResult, err error) CommandResult {
	res.Err = err
	d.reporter.Failure(string(res.Action), err)
	return res
}

func parseID(field string, raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidInput, field, raw)
	}
	return id, nil
}

func parseIDPair(bountyID string, proposalID string) (uint64, uint64, error) {
	bID, err := parseID("bounty id", bountyID)
	if err != nil {
		return 0, 0, err
	}
	pID, err := parseID("proposal id", proposalID)
	if err != nil {
		return 0, 0, err
	}
	return bID, pID, nil
}
