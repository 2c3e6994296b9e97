package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[Blockchain]
    GasPrice = 1000000000
    GasLimit = 60000000
    ProxyUrl = "http://localhost:7950"
    ChainID = "local-testnet"
    PemPaths = ["a.pem", "b.pem"]

[Contract]
    Address = "erd1contract"

[Refresh]
    FixedRows = 16
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_ShouldWork(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.Nil(t, err)
	require.Equal(t, "http://localhost:7950", cfg.Blockchain.ProxyUrl)
	require.Equal(t, []string{"a.pem", "b.pem"}, cfg.Blockchain.PemPaths)
	require.Equal(t, uint64(60000000), cfg.Blockchain.GasLimit)
	require.Equal(t, 16, cfg.Refresh.FixedRows)
	require.NotNil(t, cfg.Contract.Decimals)
	require.Equal(t, uint(defaultDecimals), *cfg.Contract.Decimals)
	require.Equal(t, defaultMaxConcurrentReads, cfg.Refresh.MaxConcurrentReads)
	require.Equal(t, defaultPort, cfg.Server.Port)
}

func TestLoadConfig_ExplicitZeroDecimalsShouldBeKept(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
[Blockchain]
    ProxyUrl = "http://localhost:7950"
    ChainID = "local-testnet"

[Contract]
    Address = "erd1contract"
    Decimals = 0
`))
	require.Nil(t, err)
	require.NotNil(t, cfg.Contract.Decimals)
	require.Equal(t, uint(0), *cfg.Contract.Decimals)
}

func TestLoadConfig_EnvOverridesShouldWork(t *testing.T) {
	t.Setenv(envProxyUrl, "http://proxy.override")
	t.Setenv(envServerPort, ":6000")
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.Nil(t, err)
	require.Equal(t, "http://proxy.override", cfg.Blockchain.ProxyUrl)
	require.Equal(t, ":6000", cfg.Server.Port)
}

func TestLoadConfig_MissingFileShouldErr(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadConfig_MissingContractShouldErr(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
[Blockchain]
    ProxyUrl = "http://localhost:7950"
    ChainID = "local-testnet"
`))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGeneralConfig_ValidateNegativeRowsShouldErr(t *testing.T) {
	t.Parallel()
	cfg := GeneralConfig{
		Blockchain: BlockchainInformation{ProxyUrl: "p", ChainID: "c"},
		Contract:   ContractInformation{Address: "a"},
		Refresh:    RefreshConfig{FixedRows: -1, MaxConcurrentReads: 1},
	}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
