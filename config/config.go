// Package config holds the settings a tournament is built from: format,
// buy-in, bounty, payouts and blinds.
//
// Settings come from ~/.pkoledger.yaml, PKOLEDGER_* environment variables
// and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ts4z/pkoledger/builtins"
	"github.com/ts4z/pkoledger/ledger"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/money"
)

const (
	KeyTournamentType = "tournament_type"
	KeyBuyIn          = "buy_in"
	KeyBounty         = "bounty"
	KeyPaytable       = "paytable"
	KeyPaytableDir    = "paytable_dir"
	KeyLevelsFile     = "levels_file"
	KeyCacheSize      = "cache_size"
	KeyDriftPolicy    = "drift_policy"
)

// Viper-based config loader
func Init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".pkoledger")
	viper.AddConfigPath(home)
	SetDefaults(viper.GetViper())
	err = viper.ReadInConfig() // ignore error if config file missing
	if err != nil {
		log.Printf("viper can't read config file: %v", err)
	}
}

// SetDefaults installs defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix("PKOLEDGER")
	v.AutomaticEnv()
	v.SetDefault(KeyTournamentType, "pko")
	v.SetDefault(KeyBuyIn, "100")
	v.SetDefault(KeyBounty, "50")
	v.SetDefault(KeyPaytable, builtins.HomeGamePaytableName)
	v.SetDefault(KeyPaytableDir, "")
	v.SetDefault(KeyLevelsFile, "")
	v.SetDefault(KeyCacheSize, 16)
	v.SetDefault(KeyDriftPolicy, ledger.DriftRepair.String())
}

func TournamentType() (model.TournamentType, error) {
	return model.ParseTournamentType(viper.GetString(KeyTournamentType))
}

func BuyIn() (decimal.Decimal, error) {
	return money.Parse(viper.GetString(KeyBuyIn))
}

func Bounty() (decimal.Decimal, error) {
	return money.Parse(viper.GetString(KeyBounty))
}

func PaytableName() string {
	return viper.GetString(KeyPaytable)
}

func PaytableDir() string {
	return viper.GetString(KeyPaytableDir)
}

func LevelsFile() string {
	return viper.GetString(KeyLevelsFile)
}

func CacheSize() int {
	return viper.GetInt(KeyCacheSize)
}

func DriftPolicy() (ledger.DriftPolicy, error) {
	return ParseDriftPolicy(viper.GetString(KeyDriftPolicy))
}

func ParseDriftPolicy(s string) (ledger.DriftPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repair", "":
		return ledger.DriftRepair, nil
	case "reject":
		return ledger.DriftReject, nil
	}
	return ledger.DriftRepair, fmt.Errorf("unknown drift policy %q, want repair or reject", s)
}
