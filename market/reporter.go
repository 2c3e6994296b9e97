package market

import (
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("market")

// Reporter receives every failure the dispatcher and pipeline swallow.
type Reporter interface {
	Failure(op string, err error)
}

type logReporter struct{}

// NewLogReporter returns a Reporter that writes failures to the market logger.
func NewLogReporter() Reporter {
	return &logReporter{}
}

func (lr *logReporter) Failure(op string, err error) {
	log.Error("operation failed", "op", op, "err", err.Error())
}
