package config

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

// DefaultConfigPath is used when no path is given on the command line.
const DefaultConfigPath = "./config/config.toml"

const (
	envProxyUrl        = "BOUNTY_PROXY_URL"
	envContractAddress = "BOUNTY_CONTRACT_ADDRESS"
	envServerPort      = "BOUNTY_SERVER_PORT"
)

const (
	defaultDecimals           = 18
	defaultMaxConcurrentReads = 4
	defaultPort               = ":5000"
)

var log = logger.GetOrCreate("config")

// ErrInvalidConfig is returned by Validate for missing or inconsistent settings.
var ErrInvalidConfig = errors.New("invalid config")

type GeneralConfig struct {
	Blockchain BlockchainInformation
	Contract   ContractInformation
	Server     ServerConfig
	Refresh    RefreshConfig
}

type BlockchainInformation struct {
	GasPrice uint64
	GasLimit uint64
	ProxyUrl string
	ChainID  string
	PemPaths []string
}

// ContractInformation locates the market contract. Decimals is left nil when
// absent from the file so an explicit 0 is kept.
type ContractInformation struct {
	Address  string
	Decimals *uint
}

type ServerConfig struct {
	Port           string
	RefreshOnStart bool
}

// RefreshConfig tunes the refresh pipeline. A zero FixedRows derives the row
// count from the aggregate bounty read.
type RefreshConfig struct {
	FixedRows          int
	MaxConcurrentReads int
}

func LoadConfig(configPath string) (GeneralConfig, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	configFile, err := os.Open(configPath)
	if err != nil {
		return GeneralConfig{}, err
	}
	defer func(configFile *os.File) {
		err = configFile.Close()
		if err != nil {
			log.Error("failure closing file reader", "err", err.Error())
		}
	}(configFile)

	config := &GeneralConfig{}
	err = toml.NewDecoder(configFile).Decode(config)
	if err != nil {
		return GeneralConfig{}, err
	}

	loadEnvFile(".env")
	config.applyEnvOverrides()
	config.applyDefaults()

	err = config.Validate()
	if err != nil {
		return GeneralConfig{}, err
	}

	return *config, nil
}

// Validate checks that the settings needed to reach the contract are present.
func (gc *GeneralConfig) Validate() error {
	if gc.Blockchain.ProxyUrl == "" {
		return fmt.Errorf("%w: missing Blockchain.ProxyUrl", ErrInvalidConfig)
	}
	if gc.Blockchain.ChainID == "" {
		return fmt.Errorf("%w: missing Blockchain.ChainID", ErrInvalidConfig)
	}
	if gc.Contract.Address == "" {
		return fmt.Errorf("%w: missing Contract.Address", ErrInvalidConfig)
	}
	if gc.Refresh.FixedRows < 0 {
		return fmt.Errorf("%w: negative Refresh.FixedRows", ErrInvalidConfig)
	}
	if gc.Refresh.MaxConcurrentReads < 1 {
		return fmt.Errorf("%w: Refresh.MaxConcurrentReads must be positive", ErrInvalidConfig)
	}
	return nil
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn("failed to load env file", "path", path, "err", err.Error())
	}
}

func (gc *GeneralConfig) applyEnvOverrides() {
	if v := os.Getenv(envProxyUrl); v != "" {
		gc.Blockchain.ProxyUrl = v
	}
	if v := os.Getenv(envContractAddress); v != "" {
		gc.Contract.Address = v
	}
	if v := os.Getenv(envServerPort); v != "" {
		gc.Server.Port = v
	}
}

func (gc *GeneralConfig) applyDefaults() {
	if gc.Contract.Decimals == nil {
		decimals := uint(defaultDecimals)
		gc.Contract.Decimals = &decimals
	}
	if gc.Refresh.MaxConcurrentReads == 0 {
		gc.Refresh.MaxConcurrentReads = defaultMaxConcurrentReads
	}
	if gc.Server.Port == "" {
		gc.Server.Port = defaultPort
	}
}
