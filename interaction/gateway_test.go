package interaction

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ElrondNetwork/elrond-sdk/erdgo/data"
	"github.com/stretchr/testify/require"
)

type elrondProxyServer struct {
	mut     sync.Mutex
	nonce   uint64
	sent    []data.Transaction
	queries []data.VmValueRequest
}

func (eps *elrondProxyServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/address/", func(w http.ResponseWriter, r *http.Request) {
		eps.mut.Lock()
		defer eps.mut.Unlock()
		_, _ = fmt.Fprintf(w, `{"data":{"account":{"address":%q,"nonce":%d,"balance":"0"}},"code":"successful"}`,
			r.URL.Path[len("/address/"):], eps.nonce)
	})
	mux.HandleFunc("/transaction/send", func(w http.ResponseWriter, r *http.Request) {
		var tx data.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		eps.mut.Lock()
		eps.sent = append(eps.sent, tx)
		eps.mut.Unlock()
		_, _ = w.Write([]byte(`{"data":{"txHash":"abcd"},"code":"successful"}`))
	})
	mux.HandleFunc("/vm-values/query", func(w http.ResponseWriter, r *http.Request) {
		var request data.VmValueRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		eps.mut.Lock()
		eps.queries = append(eps.queries, request)
		eps.mut.Unlock()
		_, _ = w.Write([]byte(`{"data":{"data":{"returnData":["BQ=="],"returnCode":"ok"}},"code":"successful"}`))
	})
	return mux
}

func TestElrondGateway_TransactShouldUseProxyNonce(t *testing.T) {
	t.Parallel()
	backend := &elrondProxyServer{nonce: 5}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	w := testWallet(t, 1)
	bi := newBlockchainInteractor(newElrondGateway(srv.URL), testChainInfo(), []*wallet{w})

	hash, err := bi.Transact(w.address, "0", []byte("makeWithdrawal"), w.address)
	require.Nil(t, err)
	require.Equal(t, "abcd", hash)

	backend.mut.Lock()
	defer backend.mut.Unlock()
	require.Len(t, backend.sent, 1)
	require.Equal(t, uint64(5), backend.sent[0].Nonce)
	require.Equal(t, w.address, backend.sent[0].SndAddr)
	require.Equal(t, []byte("makeWithdrawal"), backend.sent[0].Data)
}

func TestElrondGateway_QueryShouldDecodeReturnData(t *testing.T) {
	t.Parallel()
	backend := &elrondProxyServer{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	bi := newBlockchainInteractor(newElrondGateway(srv.URL), testChainInfo(), nil)

	response, err := bi.Query(&data.VmValueRequest{Address: "erd1contract", FuncName: "getMarketBalance"})
	require.Nil(t, err)
	require.Equal(t, "ok", response.Data.ReturnCode)
	require.Equal(t, [][]byte{{5}}, response.Data.ReturnData)

	backend.mut.Lock()
	defer backend.mut.Unlock()
	require.Len(t, backend.queries, 1)
	require.Equal(t, "getMarketBalance", backend.queries[0].FuncName)
}

func TestElrondGateway_InvalidAddressShouldErr(t *testing.T) {
	t.Parallel()
	gw := newElrondGateway("http://127.0.0.1:0")

	_, err := gw.GetAccount("not-bech32")
	require.Error(t, err)
}
