package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-sdk/erdgo/data"
)

var log = logger.GetOrCreate("ledger")

const (
	fnGetMarketBalance   = "getMarketBalance"
	fnGetBountyDetail    = "getBountyDetailAll"
	fnGetBountyDesc      = "getBountyDesc"
	fnCreateBounty       = "createBounty"
	fnCreateProposal     = "createProposal"
	fnApproveProposal    = "approveProposal"
	fnRejectProposal     = "rejectProposal"
	fnMakeWithdrawal     = "makeWithdrawal"
	vmReturnCodeOk       = "ok"
	zeroTransactionValue = "0"
)

// Interactor is the chain access used by Contract.
type Interactor interface {
	Accounts() ([]string, error)
	Transact(sender string, value string, inputData []byte, receiver string) (string, error)
	Query(request *data.VmValueRequest) (*data.VmValuesResponseData, error)
}

// Contract is a Client bound to one deployed bounty market contract.
type Contract struct {
	interactor Interactor
	address    string
}

func NewContract(interactor Interactor, address string) (*Contract, error) {
	if interactor == nil {
		return nil, errors.New("nil interactor provided")
	}
	if address == "" {
		return nil, errors.New("empty contract address")
	}
	return &Contract{
		interactor: interactor,
		address:    address,
	}, nil
}

func (c *Contract) ListAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accounts, err := c.interactor.Accounts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAccounts, err)
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}
	return accounts, nil
}

func (c *Contract) MarketBalance(ctx context.Context) (*big.Int, error) {
	returnData, err := c.query(ctx, fnGetMarketBalance)
	if err != nil {
		return nil, err
	}
	if len(returnData) != 1 {
		return nil, fmt.Errorf("%w: %s returned %d items", ErrMalformedReturnData, fnGetMarketBalance, len(returnData))
	}
	return decodeBigUint(returnData[0]), nil
}

func (c *Contract) BountyDetailAll(ctx context.Context) (BountyDetails, error) {
	returnData, err := c.query(ctx, fnGetBountyDetail)
	if err != nil {
		return BountyDetails{}, err
	}
	return decodeBountyDetails(returnData)
}

func (c *Contract) BountyDescription(ctx context.Context, index uint64) (string, error) {
	returnData, err := c.query(ctx, fnGetBountyDesc, hexUint(index))
	if err != nil {
		return "", err
	}
	switch len(returnData) {
	case 0:
		return "", nil
	case 1:
		return string(returnData[0]), nil
	default:
		return "", fmt.Errorf("%w: %s returned %d items", ErrMalformedReturnData, fnGetBountyDesc, len(returnData))
	}
}

func (c *Contract) CreateBounty(ctx context.Context, from string, description string, value *big.Int) (string, error) {
	if value == nil || value.Sign() < 0 {
		return "", errors.New("invalid bounty value")
	}
	return c.transact(ctx, from, value.String(), callData(fnCreateBounty, hexString(description)))
}

func (c *Contract) CreateProposal(ctx context.Context, from string, bountyID uint64, description string) (string, error) {
	return c.transact(ctx, from, zeroTransactionValue,
		callData(fnCreateProposal, hexUint(bountyID), hexString(description)))
}

func (c *Contract) ApproveProposal(ctx context.Context, from string, bountyID uint64, proposalID uint64) (string, error) {
	return c.transact(ctx, from, zeroTransactionValue,
		callData(fnApproveProposal, hexUint(bountyID), hexUint(proposalID)))
}

func (c *Contract) RejectProposal(ctx context.Context, from string, bountyID uint64, proposalID uint64) (string, error) {
	return c.transact(ctx, from, zeroTransactionValue,
		callData(fnRejectProposal, hexUint(bountyID), hexUint(proposalID)))
}

func (c *Contract) MakeWithdrawal(ctx context.Context, from string) (string, error) {
	return c.transact(ctx, from, zeroTransactionValue, callData(fnMakeWithdrawal))
}

func (c *Contract) transact(ctx context.Context, from string, value string, inputData []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	txHash, err := c.interactor.Transact(from, value, inputData, c.address)
	if err != nil {
		return "", fmt.Errorf("sending %s: %w", string(inputData), err)
	}
	return txHash, nil
}

func (c *Contract) query(ctx context.Context, funcName string, argsHex ...string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response, err := c.interactor.Query(&data.VmValueRequest{
		Address:  c.address,
		FuncName: funcName,
		Args:     argsHex,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", funcName, err)
	}

	return returnDataOf(funcName, response)
}

func returnDataOf(funcName string, response *data.VmValuesResponseData) ([][]byte, error) {
	if response == nil || response.Data == nil {
		return nil, fmt.Errorf("%w: %s returned no output", ErrQueryFailed, funcName)
	}

	output := response.Data
	if output.ReturnCode != vmReturnCodeOk {
		log.Debug("contract query rejected",
			"func", funcName,
			"code", output.ReturnCode,
			"message", output.ReturnMessage,
		)
		return nil, fmt.Errorf("%w: %s: %s %s", ErrQueryFailed, funcName, output.ReturnCode, output.ReturnMessage)
	}

	return output.ReturnData, nil
}
