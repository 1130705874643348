package main

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts4z/pkoledger/builtins"
	"github.com/ts4z/pkoledger/config"
	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/ledger"
	"github.com/ts4z/pkoledger/model"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	config.SetDefaults(viper.GetViper())
	t.Cleanup(viper.Reset)
}

func TestNewLedgerFromDefaults(t *testing.T) {
	resetConfig(t)
	ctx := context.Background()
	storage := newPaytableStorage()
	defer storage.Close()

	l, err := newLedger(ctx, storage, clockwork.NewFakeClock())
	require.NoError(t, err)
	assert.Equal(t, model.PKO, l.Type())
	assert.Equal(t, "50", l.BountyAmount().String())
	assert.Equal(t, builtins.HomeGamePaytableName, l.Paytable().Name)
	assert.Equal(t, ledger.DriftRepair, l.DriftPolicy())
}

func TestNewLedgerRegularSkipsBounty(t *testing.T) {
	resetConfig(t)
	viper.Set(config.KeyTournamentType, "regular")
	viper.Set(config.KeyBounty, "not money")
	storage := newPaytableStorage()

	l, err := newLedger(context.Background(), storage, clockwork.NewFakeClock())
	require.NoError(t, err)
	assert.True(t, l.BountyAmount().IsZero())
}

func TestNewLedgerErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown paytable", config.KeyPaytable, "nope"},
		{"bad buy-in", config.KeyBuyIn, "-1"},
		{"zero bounty", config.KeyBounty, "0"},
		{"bad drift policy", config.KeyDriftPolicy, "shrug"},
		{"missing levels file", config.KeyLevelsFile, "/nonexistent/levels.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			viper.Set(tt.key, tt.val)
			_, err := newLedger(context.Background(), newPaytableStorage(), clockwork.NewFakeClock())
			assert.Error(t, err)
		})
	}
}

func TestUnknownPaytableIsNotFound(t *testing.T) {
	resetConfig(t)
	viper.Set(config.KeyPaytable, "nope")
	_, err := newLedger(context.Background(), newPaytableStorage(), clockwork.NewFakeClock())
	assert.ErrorIs(t, err, fault.NotFound)
}
