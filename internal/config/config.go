package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the ledger and the
	// operator state
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// ProgramIDKey is the address the booth program is registered at
	ProgramIDKey = "PROGRAM_ID"
	// ExchangeRateKey is the amount of asset B paid for each unit of asset A
	ExchangeRateKey = "EXCHANGE_RATE"
	// LamportsPerByteYearKey is the rent charged per byte of account space
	LamportsPerByteYearKey = "LAMPORTS_PER_BYTE_YEAR"
	// ExemptionThresholdKey is the number of years of rent an account must
	// hold to be rent exempt
	ExemptionThresholdKey = "EXEMPTION_THRESHOLD"
	// AirdropLamportsKey is the default amount of lamports credited by the
	// airdrop command
	AirdropLamportsKey = "AIRDROP_LAMPORTS"

	DbLocation     = "db"
	StatsLocation  = "stats"
	StateFilename  = "state.json"
	DBBadger       = "badger"
	DBInMemory     = "inmemory"
	defaultProgram = "XBooth1111111111111111111111111111111111111"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("xbooth", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("XBOOTH")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(ProgramIDKey, defaultProgram)
	vip.SetDefault(ExchangeRateKey, "1")
	vip.SetDefault(LamportsPerByteYearKey, 3480)
	vip.SetDefault(ExemptionThresholdKey, 2)
	vip.SetDefault(AirdropLamportsKey, 10_000_000_000)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetProgramID returns the configured address of the booth program.
func GetProgramID() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(GetString(ProgramIDKey))
}

// GetExchangeRate returns the configured rate of the booth program.
func GetExchangeRate() decimal.Decimal {
	return decimal.RequireFromString(GetString(ExchangeRateKey))
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either '%s' or '%s'", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	if _, err := solana.PublicKeyFromBase58(GetString(ProgramIDKey)); err != nil {
		return fmt.Errorf("%s is not a valid address: %s", ProgramIDKey, err)
	}

	rate, err := decimal.NewFromString(GetString(ExchangeRateKey))
	if err != nil {
		return fmt.Errorf("%s is not a valid number: %s", ExchangeRateKey, err)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%s must be greater than zero", ExchangeRateKey)
	}

	lamportsPerByteYear := GetInt(LamportsPerByteYearKey)
	exemptionThreshold := GetInt(ExemptionThresholdKey)
	if lamportsPerByteYear < 0 || exemptionThreshold < 0 {
		return fmt.Errorf("rent params must not be negative")
	}
	if (lamportsPerByteYear == 0) != (exemptionThreshold == 0) {
		return fmt.Errorf("rent params must be both zero or both positive")
	}

	if GetInt(AirdropLamportsKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", AirdropLamportsKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(filepath.Join(datadir, StatsLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
