package interaction

import (
	"net/http"
	"time"

	"github.com/ElrondNetwork/elrond-sdk/erdgo/blockchain"
	"github.com/ElrondNetwork/elrond-sdk/erdgo/data"
)

const proxyRequestTimeout = 30 * time.Second

// chainProxy is the subset of the Elrond gateway used by the interactor.
type chainProxy interface {
	GetAccount(bech32Address string) (*data.Account, error)
	SendTransaction(tx *data.Transaction) (string, error)
	ExecuteVMQuery(request *data.VmValueRequest) (*data.VmValuesResponseData, error)
}

type elrondGateway struct {
	proxy blockchain.ProxyHandler
}

func newElrondGateway(proxyUrl string) *elrondGateway {
	client := &http.Client{Timeout: proxyRequestTimeout}
	return &elrondGateway{proxy: blockchain.NewElrondProxy(proxyUrl, client)}
}

func (eg *elrondGateway) GetAccount(bech32Address string) (*data.Account, error) {
	addressHandler, err := data.NewAddressFromBech32String(bech32Address)
	if err != nil {
		return nil, err
	}
	return eg.proxy.GetAccount(addressHandler)
}

func (eg *elrondGateway) SendTransaction(tx *data.Transaction) (string, error) {
	return eg.proxy.SendTransaction(tx)
}

func (eg *elrondGateway) ExecuteVMQuery(request *data.VmValueRequest) (*data.VmValuesResponseData, error) {
	return eg.proxy.ExecuteVMQuery(request)
}
