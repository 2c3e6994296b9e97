package interaction

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ElrondNetwork/bounty-market-gateway/config"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	pemKeys "github.com/ElrondNetwork/elrond-sdk-erdgo"
	"github.com/ElrondNetwork/elrond-sdk/erdgo"
	"github.com/ElrondNetwork/elrond-sdk/erdgo/data"
)

var log = logger.GetOrCreate("interaction")

var (
	// ErrNoWallets is returned when no PEM file could be loaded.
	ErrNoWallets = errors.New("no wallets loaded")
	// ErrUnknownSender is returned when a transaction names a sender with no loaded wallet.
	ErrUnknownSender = errors.New("unknown sender")
)

type wallet struct {
	privateKey []byte
	address    string
	account    *data.Account
	mut        sync.Mutex
}

type BlockchainInteractor struct {
	proxy    chainProxy
	chainID  string
	gasLimit uint64
	gasPrice uint64
	wallets  []*wallet
}

// NewBlockchainInteractor loads one wallet per configured PEM file. Files that
// fail to load are skipped so the gateway can still serve reads.
func NewBlockchainInteractor(chainInfo config.BlockchainInformation) (*BlockchainInteractor, error) {
	if chainInfo.ProxyUrl == "" {
		return nil, errors.New("empty proxy url")
	}

	wallets := make([]*wallet, 0, len(chainInfo.PemPaths))
	for _, pemPath := range chainInfo.PemPaths {
		w, err := loadWallet(pemPath)
		if err != nil {
			log.Error("failed loading wallet", "pem", pemPath, "err", err.Error())
			continue
		}
		wallets = append(wallets, w)
	}
	if len(wallets) == 0 {
		log.Warn("no wallets loaded, commands will be refused")
	}

	return newBlockchainInteractor(newElrondGateway(chainInfo.ProxyUrl), chainInfo, wallets), nil
}

func loadWallet(pemPath string) (*wallet, error) {
	sk, err := pemKeys.LoadPrivateKeyFromPemFile(pemPath)
	if err != nil {
		return nil, err
	}
	address, err := pemKeys.GetAddressFromPrivateKey(sk)
	if err != nil {
		return nil, err
	}
	return &wallet{privateKey: sk, address: address}, nil
}

func newBlockchainInteractor(
	proxy chainProxy,
	chainInfo config.BlockchainInformation,
	wallets []*wallet,
) *BlockchainInteractor {
	return &BlockchainInteractor{
		proxy:    proxy,
		chainID:  chainInfo.ChainID,
		gasLimit: chainInfo.GasLimit,
		gasPrice: chainInfo.GasPrice,
		wallets:  wallets,
	}
}

// Accounts returns the bech32 addresses of the loaded wallets in configuration order.
func (bi *BlockchainInteractor) Accounts() ([]string, error) {
	if len(bi.wallets) == 0 {
		return nil, ErrNoWallets
	}

	addresses := make([]string, 0, len(bi.wallets))
	for _, w := range bi.wallets {
		addresses = append(addresses, w.address)
	}
	return addresses, nil
}

// Transact signs and sends a transaction from sender. The local nonce only
// advances when the proxy accepts the transaction; a rejected send drops the
// cached account so the next send starts from the chain nonce.
func (bi *BlockchainInteractor) Transact(
	sender string,
	value string,
	inputData []byte,
	receiver string,
) (string, error) {
	w, err := bi.walletFor(sender)
	if err != nil {
		return "", err
	}

	w.mut.Lock()
	defer w.mut.Unlock()

	if w.account == nil {
		account, errGet := bi.proxy.GetAccount(w.address)
		if errGet != nil {
			log.Debug("failed fetching account", "address", w.address, "err", errGet.Error())
			return "", errGet
		}
		w.account = account
	}

	tx, err := bi.createSignedTx(w, value, inputData, receiver)
	if err != nil {
		return "", err
	}

	txHash, err := bi.proxy.SendTransaction(tx)
	if err != nil {
		log.Debug("failed sending transaction", "sender", w.address, "nonce", w.account.Nonce, "err", err.Error())
		w.account = nil
		return "", err
	}

	log.Info("sent transaction", "sender", w.address, "nonce", w.account.Nonce, "hash", txHash)
	w.account.Nonce++
	return txHash, nil
}

// Query runs a read-only smart contract query.
func (bi *BlockchainInteractor) Query(request *data.VmValueRequest) (*data.VmValuesResponseData, error) {
	response, err := bi.proxy.ExecuteVMQuery(request)
	if err != nil {
		log.Debug("failed executing vm query", "func", request.FuncName, "err", err.Error())
		return nil, err
	}
	return response, nil
}

func (bi *BlockchainInteractor) createSignedTx(
	w *wallet,
	value string,
	inputData []byte,
	receiver string,
) (*data.Transaction, error) {
	tx := &data.Transaction{
		Value:    value,
		RcvAddr:  receiver,
		Data:     inputData,
		Nonce:    w.account.Nonce,
		SndAddr:  w.address,
		GasPrice: bi.gasPrice,
		GasLimit: bi.gasLimit,
		ChainID:  bi.chainID,
		Version:  1,
		Options:  0,
	}

	err := erdgo.SignTransaction(tx, w.privateKey)
	if err != nil {
		log.Debug("failed signing transaction", "err", err.Error())
		return nil, err
	}

	return tx, nil
}

func (bi *BlockchainInteractor) walletFor(address string) (*wallet, error) {
	for _, w := range bi.wallets {
		if w.address == address {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSender, address)
}
