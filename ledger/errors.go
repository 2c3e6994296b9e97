package ledger

import "errors"

var ErrNoAccounts = errors.New("no accounts available")

var ErrMismatchedDetails = errors.New("bounty detail sequences differ in length")

var ErrMalformedReturnData = errors.New("malformed return data")

var ErrQueryFailed = errors.New("contract query failed")
