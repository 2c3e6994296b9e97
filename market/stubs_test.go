package market

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ElrondNetwork/bounty-market-gateway/ledger"
)

var errLedger = errors.New("ledger unavailable")

type write struct {
	action      Action
	from        string
	bountyID    uint64
	proposalID  uint64
	description string
	value       *big.Int
}

type ledgerStub struct {
	mut sync.Mutex

	accounts    []string
	accountsErr error
	balance     *big.Int
	balanceErr  error
	details     ledger.BountyDetails
	detailsErr  error
	descs       map[uint64]string
	descErrs    map[uint64]error
	writeErr    error

	descCalls []uint64
	writes    []write
}

func (ls *ledgerStub) ListAccounts(_ context.Context) ([]string, error) {
	return ls.accounts, ls.accountsErr
}

func (ls *ledgerStub) MarketBalance(_ context.Context) (*big.Int, error) {
	return ls.balance, ls.balanceErr
}

func (ls *ledgerStub) BountyDetailAll(_ context.Context) (ledger.BountyDetails, error) {
	return ls.details, ls.detailsErr
}

func (ls *ledgerStub) BountyDescription(_ context.Context, index uint64) (string, error) {
	ls.mut.Lock()
	defer ls.mut.Unlock()
	ls.descCalls = append(ls.descCalls, index)
	if err := ls.descErrs[index]; err != nil {
		return "", err
	}
	return ls.descs[index], nil
}

func (ls *ledgerStub) record(w write) (string, error) {
	ls.mut.Lock()
	defer ls.mut.Unlock()
	if ls.writeErr != nil {
		return "", ls.writeErr
	}
	ls.writes = append(ls.writes, w)
	return "txhash", nil
}

func (ls *ledgerStub) CreateBounty(_ context.Context, from string, description string, value *big.Int) (string, error) {
	return ls.record(write{action: ActionCreateBounty, from: from, description: description, value: value})
}

func (ls *ledgerStub) CreateProposal(_ context.Context, from string, bountyID uint64, description string) (string, error) {
	return ls.record(write{action: ActionCreateProposal, from: from, bountyID: bountyID, description: description})
}

func (ls *ledgerStub) ApproveProposal(_ context.Context, from string, bountyID uint64, proposalID uint64) (string, error) {
	return ls.record(write{action: ActionApproveProposal, from: from, bountyID: bountyID, proposalID: proposalID})
}

func (ls *ledgerStub) RejectProposal(_ context.Context, from string, bountyID uint64, proposalID uint64) (string, error) {
	return ls.record(write{action: ActionRejectProposal, from: from, bountyID: bountyID, proposalID: proposalID})
}

func (ls *ledgerStub) MakeWithdrawal(_ context.Context, from string) (string, error) {
	return ls.record(write{action: ActionWithdraw, from: from})
}

type reporterStub struct {
	mut      sync.Mutex
	failures []string
}

func (rs *reporterStub) Failure(op string, _ error) {
	rs.mut.Lock()
	defer rs.mut.Unlock()
	rs.failures = append(rs.failures, op)
}

func (rs *reporterStub) count() int {
	rs.mut.Lock()
	defer rs.mut.Unlock()
	return len(rs.failures)
}

func ether(whole int64, tenths int64) *big.Int {
	unit := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(17), nil)
	return big.NewInt(0).Mul(big.NewInt(whole*10+tenths), unit)
}

func sampleDetails(n int) ledger.BountyDetails {
	details := ledger.BountyDetails{}
	for i := 0; i < n; i++ {
		details.Indexes = append(details.Indexes, uint64(i))
		details.IsOpen = append(details.IsOpen, i%2 == 0)
		details.Owners = append(details.Owners, "erd1owner"+string(rune('a'+i)))
		details.Values = append(details.Values, ether(int64(i), 5))
	}
	return details
}
