package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/app/service"
	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/infrastructure/walletloader"
	"strategy_dashboard/internal/pkg/logger"
	"strategy_dashboard/internal/pkg/utils"
)

// usd renders a dollar amount in cents precision, "$1,234.56".
func usd(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func percent(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func walletsFromFile(path string) port.WalletProvider {
	return walletloader.NewWalletFileLoader(path, logger.NewSlogAdapter())
}

func writeSnapshot(w io.Writer, s *entity.PortfolioSnapshot) {
	fmt.Fprintf(w, "Wallet:    %s\n", s.WalletAddress)
	fmt.Fprintf(w, "Total:     %s (tokens %s, deployed %s)\n", usd(s.Totals.TotalValue), usd(s.Totals.TokenValue), usd(s.Totals.DeployedValue))
	fmt.Fprintf(w, "Health:    %d  Diversification: %d  Top allocation: %s\n",
		s.Risk.PortfolioHealth, s.Risk.DiversificationScore, percent(s.Risk.TopAllocation))
	fmt.Fprintf(w, "Exposure:  %s  Liquidation: %s  Chains: %d\n", s.Risk.ExposureRisk, s.Risk.LiquidationRisk, s.Risk.ChainCount)
	fmt.Fprintf(w, "Sources:   %s\n", formatSources(s.Sources))

	if len(s.Tokens) > 0 {
		fmt.Fprintln(w, "\nTOKENS")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "SYMBOL\tCHAIN\tBALANCE\tPRICE\tVALUE\tALLOC\t")
		for _, t := range s.Tokens {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
				t.Symbol, t.Chain, utils.FormatDecimal(t.Balance, 6), usd(t.PriceUSD), usd(t.ValueUSD), percent(t.Allocation))
		}
		tw.Flush()
	}

	if len(s.Protocols) > 0 {
		fmt.Fprintln(w, "\nPROTOCOLS")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCHAIN\tTYPE\tDEPLOYED\tEARNED")
		for _, p := range s.Protocols {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Chain, p.Kind, usd(p.AmountDeployed), usd(p.Earned))
		}
		tw.Flush()
	}

	if len(s.Transactions) > 0 {
		fmt.Fprintln(w, "\nTRANSACTIONS")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tSTATUS\tCHAIN\tAMOUNT\tHASH")
		for _, t := range s.Transactions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.6g\t%s\n", t.BlockTime.UTC().Format("2006-01-02 15:04"), t.Label, t.Chain, t.DisplayAmount, t.Hash)
		}
		tw.Flush()
	}
}

func formatSources(sources map[string]entity.SourceState) string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += name + "=" + string(sources[name])
	}
	return out
}

// writeReports prints one line per wallet and returns the number of failed wallets.
func writeReports(w io.Writer, reports []service.WalletReport) int {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WALLET\tLABEL\tTOTAL\tTOKENS\tDEPLOYED\tHEALTH\tSTATUS")
	failed := 0
	var grand float64
	for _, r := range reports {
		if r.Err != nil {
			failed++
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t%v\n", r.Wallet.Address, r.Wallet.Label, r.Err)
			continue
		}
		t := r.Snapshot.Totals
		grand += t.TotalValue
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\tok\n",
			r.Wallet.Address, r.Wallet.Label, usd(t.TotalValue), usd(t.TokenValue), usd(t.DeployedValue), r.Snapshot.Risk.PortfolioHealth)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d wallets, %s total\n", len(reports), usd(grand))
	return failed
}

func writeMarket(w io.Writer, m *entity.MarketSnapshot) {
	fmt.Fprintf(w, "%s (%s) [%s]\n", m.Name, m.Symbol, m.ID)
	fmt.Fprintf(w, "Price:      %s  24h: %s\n", usdPrice(m.PriceUSD), percent(m.Change24h))
	fmt.Fprintf(w, "24h range:  %s - %s\n", usdPrice(m.Low24h), usdPrice(m.High24h))
	fmt.Fprintf(w, "Market cap: %s  Volume: %s\n", usd(m.MarketCap), usd(m.Volume24h))
}

// usdPrice keeps sub-cent precision for cheap tokens.
func usdPrice(v float64) string {
	if !math.IsNaN(v) && v != 0 && v < 1 && v > -1 {
		return "$" + decimal.NewFromFloat(v).StringFixed(6)
	}
	return usd(v)
}

func writeCandles(w io.Writer, candles []entity.Candle) {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOPEN\tHIGH\tLOW\tCLOSE\tVOLUME")
	for _, c := range candles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Time.UTC().Format("2006-01-02 15:04"),
			usdPrice(c.Open), usdPrice(c.High), usdPrice(c.Low), usdPrice(c.Close), usd(c.Volume))
	}
	tw.Flush()
}
