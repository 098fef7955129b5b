package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	jsoniter "github.com/json-iterator/go"

	"strategy_dashboard/internal/app/service"
)

var commands = []subcommands.Command{
	&portfolioCmd{},
	&walletsCmd{},
	&priceCmd{},
}

type portfolioCmd struct {
	chains string
	asJSON bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "aggregate one wallet into tokens, protocols and risk" }
func (*portfolioCmd) Usage() string {
	return `dashctl portfolio [-chains <id|name,...>] [-json] <address>

  Fetches balances, transactions and DeFi positions for the wallet and prints
  the aggregated dashboard figures.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.chains, "chains", "", "comma-separated chain ids or names (1,base) to restrict the fetch to")
	f.BoolVar(&c.asJSON, "json", false, "print the raw snapshot as JSON")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	e, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.close()
	chainIDs, err := e.app.Portfolio.ParseChainFilter(c.chains)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	snap, err := e.app.Portfolio.GetPortfolio(ctx, f.Arg(0), chainIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.asJSON {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout).Encode(snap); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	writeSnapshot(os.Stdout, snap)
	return subcommands.ExitSuccess
}

type walletsCmd struct {
	chains string
	file   string
}

func (*walletsCmd) Name() string     { return "wallets" }
func (*walletsCmd) Synopsis() string { return "summarise every wallet of the wallet list" }
func (*walletsCmd) Usage() string {
	return `dashctl wallets [-file <path>] [-chains <id|name,...>]

  Builds a snapshot per wallet, running at most performance.max_concurrent_routines
  at a time, and prints one line per wallet.
`
}

func (c *walletsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.chains, "chains", "", "comma-separated chain ids or names (1,base) to restrict the fetch to")
	f.StringVar(&c.file, "file", "", "wallet list to read instead of wallets.filePath")
}

func (c *walletsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.close()
	chainIDs, err := e.app.Portfolio.ParseChainFilter(c.chains)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	wallets := e.app.Wallets
	if c.file != "" {
		wallets = walletsFromFile(c.file)
	}
	reports, err := service.FetchAllWalletsPortfolio(ctx, e.app.Portfolio, wallets, chainIDs, e.cfg.Performance.MaxConcurrentRoutines, e.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running batch: %v\n", err)
		return subcommands.ExitFailure
	}
	failed := writeReports(os.Stdout, reports)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d wallets failed\n", failed, len(reports))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type priceCmd struct {
	days int
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "show market data for a token symbol" }
func (*priceCmd) Usage() string {
	return `dashctl price [-days <n>] <symbol>

  Resolves the symbol on the market data provider and prints its current
  snapshot. With -days, also prints the OHLCV candles of that window.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "also print OHLCV candles for this many days (1-365)")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.days < 0 || c.days > 365 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	symbol := strings.TrimSpace(f.Arg(0))
	e, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.close()

	snap, err := e.app.Market.Snapshot(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	writeMarket(os.Stdout, snap)

	if c.days == 0 {
		return subcommands.ExitSuccess
	}
	candles, err := e.app.Market.OHLCV(ctx, symbol, c.days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching candles for %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	writeCandles(os.Stdout, candles)
	return subcommands.ExitSuccess
}
