// Package ledger describes the bounty market contract as seen by the gateway
// and implements it on top of an Elrond proxy.
package ledger

import (
	"context"
	"fmt"
	"math/big"
)

// Bounty is one row of the market as read from the contract.
type Bounty struct {
	Index       uint64
	IsOpen      bool
	Owner       string
	Value       *big.Int
	Description string
}

// BountyDetails holds the aggregate bounty read as four parallel sequences.
type BountyDetails struct {
	Indexes []uint64
	IsOpen  []bool
	Owners  []string
	Values  []*big.Int
}

// Len is the number of bounties in the aggregate read.
func (bd BountyDetails) Len() int {
	return len(bd.Values)
}

// Validate checks that all four sequences have the same length.
func (bd BountyDetails) Validate() error {
	n := len(bd.Values)
	if len(bd.Indexes) != n || len(bd.IsOpen) != n || len(bd.Owners) != n {
		return fmt.Errorf("%w: indexes=%d open=%d owners=%d values=%d",
			ErrMismatchedDetails, len(bd.Indexes), len(bd.IsOpen), len(bd.Owners), n)
	}
	return nil
}

// At returns the i-th bounty without its description.
func (bd BountyDetails) At(i int) Bounty {
	return Bounty{
		Index:  bd.Indexes[i],
		IsOpen: bd.IsOpen[i],
		Owner:  bd.Owners[i],
		Value:  bd.Values[i],
	}
}

// Accounts lists the identities commands may be sent from.
type Accounts interface {
	ListAccounts(ctx context.Context) ([]string, error)
}

// Reader implements the safe contract methods.
type Reader interface {
	MarketBalance(ctx context.Context) (*big.Int, error)
	BountyDetailAll(ctx context.Context) (BountyDetails, error)
	BountyDescription(ctx context.Context, index uint64) (string, error)
}

// Writer implements the state-changing contract methods. Each call returns
// once the transaction is submitted, not when it executes.
type Writer interface {
	CreateBounty(ctx context.Context, from string, description string, value *big.Int) (string, error)
	CreateProposal(ctx context.Context, from string, bountyID uint64, description string) (string, error)
	ApproveProposal(ctx context.Context, from string, bountyID uint64, proposalID uint64) (string, error)
	RejectProposal(ctx context.Context, from string, bountyID uint64, proposalID uint64) (string, error)
	MakeWithdrawal(ctx context.Context, from string) (string, error)
}

// Client is the full contract surface used by the gateway.
type Client interface {
	Accounts
	Reader
	Writer
}
