package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ts4z/pkoledger/config"
	"github.com/ts4z/pkoledger/console"
	"github.com/ts4z/pkoledger/ledger"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/ocsv"
	"github.com/ts4z/pkoledger/state"
	"github.com/ts4z/pkoledger/textutil"
	"github.com/ts4z/pkoledger/ts"
)

var (
	numPlayers   int
	extendBy     int
	levelsFormat string
)

// newPaytableStorage puts the paytable directory, if any, ahead of the
// builtins, behind an LRU.
func newPaytableStorage() state.PaytableStorage {
	var next state.PaytableStorage = state.NewBuiltinPaytableStorage()
	if dir := config.PaytableDir(); dir != "" {
		next = state.NewChainPaytableStorage(state.NewDirPaytableStorage(dir), next)
	}
	return state.NewCachingPaytableStorage(config.CacheSize(), next)
}

// newLedger builds an empty tournament from configuration.
func newLedger(ctx context.Context, storage state.PaytableStorage, clock ledger.Clock) (*ledger.Ledger, error) {
	tt, err := config.TournamentType()
	if err != nil {
		return nil, err
	}
	buyIn, err := config.BuyIn()
	if err != nil {
		return nil, fmt.Errorf("buy-in: %w", err)
	}
	var bounty decimal.Decimal
	if tt.HasBounties() {
		bounty, err = config.Bounty()
		if err != nil {
			return nil, fmt.Errorf("bounty: %w", err)
		}
	}
	policy, err := config.DriftPolicy()
	if err != nil {
		return nil, err
	}
	pt, err := storage.FetchPaytableByName(ctx, config.PaytableName())
	if err != nil {
		return nil, err
	}
	levels, err := state.LoadLevels(config.LevelsFile())
	if err != nil {
		return nil, err
	}
	return ledger.New(ledger.Config{
		Type:        tt,
		BuyIn:       buyIn,
		Bounty:      bounty,
		Levels:      levels,
		Paytable:    pt,
		DriftPolicy: policy,
	}, ledger.WithClock(clock))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func play(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	storage := newPaytableStorage()
	defer storage.Close()

	l, err := newLedger(ctx, storage, ts.NewRealClock())
	if err != nil {
		return err
	}
	log.Printf("tournament %s: %v, buy-in %s, paytable %q",
		l.ID(), l.Type(), textutil.FormatMoney(l.BuyIn()), l.Paytable().Name)

	c := console.New(ledger.NewLocked(l), cmd.OutOrStdout())

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	} else if isTerminal(os.Stdin) {
		c.Prompt = "> "
	}
	return c.Run(ctx, in)
}

func payouts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	storage := newPaytableStorage()
	defer storage.Close()

	pt, err := storage.FetchPaytableByName(ctx, config.PaytableName())
	if err != nil {
		return err
	}
	buyIn, err := config.BuyIn()
	if err != nil {
		return fmt.Errorf("buy-in: %w", err)
	}
	if numPlayers < 1 {
		return fmt.Errorf("--players must be at least 1, got %d", numPlayers)
	}
	pool := buyIn.Mul(decimal.NewFromInt(int64(numPlayers)))
	prizes, err := pt.Payout(pool, numPlayers)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("%s, %d players, prize pool %s", pt.Name, numPlayers, textutil.FormatMoney(pool))
	data := pterm.TableData{{"Place", "Prize"}}
	for _, p := range prizes {
		data = append(data, []string{textutil.FormatPlace(p.Place), textutil.FormatMoney(p.Amount)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func paytables(cmd *cobra.Command, args []string) error {
	storage := newPaytableStorage()
	defer storage.Close()

	slugs, err := storage.FetchPaytableSlugs(cmd.Context())
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Name", "Tiers"}}
	for _, s := range slugs {
		data = append(data, []string{s.Name, strconv.Itoa(s.Tiers)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func levels(cmd *cobra.Command, args []string) error {
	lvls, err := state.LoadLevels(config.LevelsFile())
	if err != nil {
		return err
	}
	lvls = model.ExtendLevels(lvls, extendBy)

	switch levelsFormat {
	case "text":
		fmt.Fprint(cmd.OutOrStdout(), state.FormatLevels(lvls))
		return nil
	case "csv":
		return ocsv.WriteLevels(cmd.OutOrStdout(), lvls)
	case "table":
	default:
		return fmt.Errorf("unknown format %q, want table, text or csv", levelsFormat)
	}
	data := pterm.TableData{{"Level", "Blinds", "Duration"}}
	for i, l := range lvls {
		data = append(data, []string{strconv.Itoa(i + 1), l.String(), l.Duration.String()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Fatalf("can't bind flag %s: %v", flag, err)
	}
}

func main() {
	if !isTerminal(os.Stdout) {
		pterm.DisableStyling()
	}

	rootCmd := &cobra.Command{
		Use:          "pkoledger",
		Short:        "Track prize pool, bounties and payouts for a poker tournament",
		SilenceUsage: true,
	}
	cobra.OnInitialize(config.Init)

	pf := rootCmd.PersistentFlags()
	pf.String("type", "pko", "Tournament type: pko or regular")
	pf.String("buy-in", "100", "Buy-in per entry that goes to the prize pool")
	pf.String("bounty", "50", "Starting bounty on each player (pko only)")
	pf.String("paytable", "", "Name of the paytable to use")
	pf.String("paytable-dir", "", "Directory of YAML paytables, searched before the builtins")
	pf.String("levels", "", "Blind structure file (.yaml, Oakleaf .csv or text); default is the house structure")
	pf.String("drift-policy", "repair", "What to do when a stored bounty disagrees with the ledger: repair or reject")
	bindFlag(rootCmd, config.KeyTournamentType, "type")
	bindFlag(rootCmd, config.KeyBuyIn, "buy-in")
	bindFlag(rootCmd, config.KeyBounty, "bounty")
	bindFlag(rootCmd, config.KeyPaytable, "paytable")
	bindFlag(rootCmd, config.KeyPaytableDir, "paytable-dir")
	bindFlag(rootCmd, config.KeyLevelsFile, "levels")
	bindFlag(rootCmd, config.KeyDriftPolicy, "drift-policy")

	playCmd := &cobra.Command{
		Use:   "play [script]",
		Short: "Run a tournament from console commands on stdin or a script file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  play,
	}

	payoutsCmd := &cobra.Command{
		Use:   "payouts",
		Short: "Print the prize sheet for a field size",
		RunE:  payouts,
	}
	payoutsCmd.Flags().IntVar(&numPlayers, "players", 10, "Number of entries")

	paytablesCmd := &cobra.Command{
		Use:   "paytables",
		Short: "List available paytables",
		RunE:  paytables,
	}

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the blind structure",
		RunE:  levels,
	}
	levelsCmd.Flags().IntVar(&extendBy, "extend", 0, "Append this many doubled levels")
	levelsCmd.Flags().StringVar(&levelsFormat, "format", "table", "Output format: table, text (the levels file form) or csv (Oakleaf)")

	rootCmd.AddCommand(playCmd, payoutsCmd, paytablesCmd, levelsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
