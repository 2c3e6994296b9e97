package market

import "errors"

// ErrInvalidInput is returned when a form field cannot be converted into a contract argument.
var ErrInvalidInput = errors.New("invalid input")

var errNilClient = errors.New("nil ledger client provided")

var errNilView = errors.New("nil view provided")

var errNilPipeline = errors.New("nil refresh pipeline provided")
